//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("BytewalkCheck", js.FuncOf(checkContent))
	js.Global().Set("BytewalkLocate", js.FuncOf(locate))
	js.Global().Set("BytewalkValid", js.FuncOf(valid))

	// Keep WASM running
	<-make(chan struct{})
}
