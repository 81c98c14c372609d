package enum

import (
	"context"
	"sync"

	"github.com/praetorian-inc/bytewalk/pkg/types"
)

// CombinedEnumerator runs several enumerators in order. Overlapping targets
// (the same path reached from two roots) are yielded once.
type CombinedEnumerator struct {
	enumerators []Enumerator
}

// NewCombinedEnumerator wraps the provided enumerators.
func NewCombinedEnumerator(enumerators ...Enumerator) *CombinedEnumerator {
	return &CombinedEnumerator{enumerators: enumerators}
}

// Enumerate runs each child enumerator in sequence.
func (c *CombinedEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	var mu sync.Mutex
	seen := make(map[string]bool)

	for _, e := range c.enumerators {
		err := e.Enumerate(ctx, func(content []byte, blobID types.BlobID, prov types.Provenance) error {
			key := prov.Kind() + ":" + prov.Path()
			mu.Lock()
			dup := seen[key]
			seen[key] = true
			mu.Unlock()
			if dup {
				return nil
			}
			return callback(content, blobID, prov)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
