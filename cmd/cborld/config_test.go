package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cborld/format"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contexts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
contexts:
  33000: https://example.org/ctx
terms:
  amount: simple
  issued: dateTime
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "https://example.org/ctx", cfg.Contexts[33000])

	terms, err := cfg.appTermMap()
	require.NoError(t, err)
	require.Equal(t, map[string]format.CodecType{
		"amount": format.CodecSimple,
		"issued": format.CodecXSDDateTime,
	}, terms)
}

func TestLoadConfig_RejectsLowContextCodes(t *testing.T) {
	tests := []struct {
		name string
		code uint64
	}{
		{"zero", 0},
		{"keyword block", 100},
		{"registry code", 0x11},
		{"one below boundary", format.MinAppContextCode - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, fmt.Sprintf("contexts:\n  %d: https://example.org/ctx\n", tt.code))

			_, err := loadConfig(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), fmt.Sprintf("%d", tt.code))
			require.Contains(t, err.Error(), "32768")
		})
	}
}

func TestLoadConfig_AcceptsBoundaryCode(t *testing.T) {
	path := writeConfig(t, fmt.Sprintf("contexts:\n  %d: https://example.org/ctx\n", format.MinAppContextCode))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Contexts, 1)
}

func TestLoadConfig_UnknownCodecName(t *testing.T) {
	path := writeConfig(t, `
terms:
  amount: lzw
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	_, err = cfg.appTermMap()
	require.Error(t, err)
	require.Contains(t, err.Error(), "lzw")
	require.Contains(t, err.Error(), "amount")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfig_LoadDocuments(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "ctx.jsonld")
	doc := []byte(`{"@context": {"name": "https://schema.org/name"}}`)
	require.NoError(t, os.WriteFile(docPath, doc, 0o600))

	cfg := &config{Documents: map[string]string{"https://example.org/ctx": docPath}}
	docs, err := cfg.loadDocuments()
	require.NoError(t, err)
	require.Equal(t, doc, docs["https://example.org/ctx"])
}

func TestConfig_LoadDocuments_MissingFile(t *testing.T) {
	cfg := &config{Documents: map[string]string{
		"https://example.org/ctx": filepath.Join(t.TempDir(), "absent.jsonld"),
	}}

	_, err := cfg.loadDocuments()
	require.Error(t, err)
	require.Contains(t, err.Error(), "absent.jsonld")
}
