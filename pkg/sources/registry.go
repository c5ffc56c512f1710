// Package sources holds the source registry and the per-source headline
// acquisition logic. A source is one configured news outlet: a content
// page, a CSS selector for its headlines and an optional feed URL that
// is preferred over scraping when present.
package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is one configured news outlet. Immutable after registry load.
type Source struct {
	Name       string `json:"name" yaml:"name"`
	ContentURL string `json:"content_url" yaml:"content_url"`
	Selector   string `json:"selector" yaml:"selector"`
	FeedURL    string `json:"feed_url" yaml:"feed_url"`
}

// configFile represents the structure of the sources configuration file.
type configFile struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// Registry is the ordered, read-only set of configured sources.
type Registry struct {
	sources []Source
	idx     map[string]Source
}

// NewRegistry builds a registry from the given sources, validating each
// entry and rejecting duplicate names. Iteration order follows the
// input order.
func NewRegistry(srcs []Source) (*Registry, error) {
	if len(srcs) == 0 {
		return nil, errors.New("registry requires at least one source")
	}

	reg := &Registry{
		sources: make([]Source, len(srcs)),
		idx:     make(map[string]Source, len(srcs)),
	}

	for i := range srcs {
		src := sanitizeSource(srcs[i])
		if err := validateSource(src); err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		if _, exists := reg.idx[src.Name]; exists {
			return nil, fmt.Errorf("duplicate source name %q", src.Name)
		}
		reg.sources[i] = src
		reg.idx[src.Name] = src
	}

	return reg, nil
}

// LoadRegistry loads the source registry from a YAML/JSON file.
// Environment references in the file are expanded before decoding.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sources file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(raw)))

	cfg, err := parseSourcesFile(expanded, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(cfg.Sources) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}

	return NewRegistry(cfg.Sources)
}

// parseSourcesFile attempts to decode the sources file content.
func parseSourcesFile(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yamlUnmarshal},
		{name: "yaml", ext: ".yml", fn: yamlUnmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var cfg configFile
		if err := d.fn(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	return configFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

func yamlUnmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// sanitizeSource trims the source config fields.
func sanitizeSource(src Source) Source {
	src.Name = strings.TrimSpace(src.Name)
	src.ContentURL = strings.TrimSpace(src.ContentURL)
	src.Selector = strings.TrimSpace(src.Selector)
	src.FeedURL = strings.TrimSpace(src.FeedURL)
	return src
}

// validateSource checks that required fields are present.
func validateSource(src Source) error {
	if src.Name == "" {
		return errors.New("name is required")
	}
	if src.ContentURL == "" {
		return fmt.Errorf("content_url is required for source %q", src.Name)
	}
	if src.Selector == "" {
		return fmt.Errorf("selector is required for source %q", src.Name)
	}
	return nil
}

// ByName returns the source config by name.
func (r *Registry) ByName(name string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}
	src, ok := r.idx[strings.TrimSpace(name)]
	return src, ok
}

// All returns the configured sources in registry order.
func (r *Registry) All() []Source {
	if r == nil {
		return nil
	}
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Len returns the number of configured sources.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sources)
}
