package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "human", cfg.Format)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, ":memory:", cfg.Output)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
}

func TestParse(t *testing.T) {
	input := `
include_hidden: true
max_diagnostics: 5
exclude:
  - vendor/
  - "*.min.js"
format: sarif
`
	cfg, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.True(t, cfg.IncludeHidden)
	assert.Equal(t, 5, cfg.MaxDiagnostics)
	assert.Equal(t, []string{"vendor/", "*.min.js"}, cfg.Exclude)
	assert.Equal(t, "sarif", cfg.Format)
	// Unset keys keep their defaults
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "unknown key", input: "colour: never\n", wantErr: "field colour not found"},
		{name: "bad format", input: "format: xml\n", wantErr: `unknown format "xml"`},
		{name: "bad color", input: "color: sometimes\n", wantErr: `unknown color mode "sometimes"`},
		{name: "negative size", input: "max_file_size: -1\n", wantErr: "max_file_size"},
		{name: "negative diagnostics", input: "max_diagnostics: -2\n", wantErr: "max_diagnostics"},
		{name: "wrong type", input: "include_hidden: [1]\n", wantErr: "parsing config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: never\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "never", cfg.Color)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_DefaultFileOptional(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(DefaultFile, []byte("format: json\n"), 0644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_InvalidFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, path)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Exclude = []string{"build/"}

	data, err := Marshal(cfg)
	require.NoError(t, err)

	parsed, err := Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}
