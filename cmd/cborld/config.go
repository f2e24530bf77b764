package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/cborld/format"
)

// config is the YAML configuration accepted by --contexts.
//
//	contexts:
//	  33000: https://example.org/ctx
//	documents:
//	  https://example.org/ctx: ./contexts/ctx.jsonld
//	terms:
//	  amount: simple
//
// contexts maps application context codes (>= 32768) to URLs; documents
// maps context URLs to local files served instead of fetching over the
// network; terms maps term strings to codec names (see
// format.ParseCodecType), overriding the codecs derived from the
// resolved contexts.
type config struct {
	Contexts  map[uint64]string `yaml:"contexts"`
	Documents map[string]string `yaml:"documents"`
	Terms     map[string]string `yaml:"terms"`
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	for code := range cfg.Contexts {
		if code < format.MinAppContextCode {
			return nil, fmt.Errorf("config %s: context code %d below %d", path, code, format.MinAppContextCode)
		}
	}

	return &cfg, nil
}

// appTermMap converts the terms section into an application term-codec
// map, resolving codec names through format.ParseCodecType.
func (c *config) appTermMap() (map[string]format.CodecType, error) {
	if len(c.Terms) == 0 {
		return nil, nil
	}

	m := make(map[string]format.CodecType, len(c.Terms))
	for term, name := range c.Terms {
		ct, err := format.ParseCodecType(name)
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", term, err)
		}
		m[term] = ct
	}

	return m, nil
}

// loadDocuments reads every file referenced by the documents section
// into an in-memory map keyed by context URL.
func (c *config) loadDocuments() (map[string][]byte, error) {
	docs := make(map[string][]byte, len(c.Documents))
	for url, path := range c.Documents {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read context document %s: %w", path, err)
		}
		docs[url] = data
	}

	return docs, nil
}
