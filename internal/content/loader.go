package content

// loader.go - optional YAML content file.
//
//	jokes:
//	  - "JA <name-holder>: ..."
//	proverbs:
//	  - "PA <name-holder>: ..."
//
// A missing key falls back to the built-in list for that category; a
// key that is present but empty (`jokes: []`, `jokes:` or `jokes: ~`)
// is rejected.

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type fileFormat struct {
	Jokes    yaml.Node `yaml:"jokes"`
	Proverbs yaml.Node `yaml:"proverbs"`
}

// LoadFile reads a content file from disk.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	lib, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// Load parses YAML content from r.
func Load(r io.Reader) (*Library, error) {
	var f fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	jokes, err := list(&f.Jokes, "jokes", defaultJokes)
	if err != nil {
		return nil, err
	}
	proverbs, err := list(&f.Proverbs, "proverbs", defaultProverbs)
	if err != nil {
		return nil, err
	}
	return NewLibrary(jokes, proverbs)
}

// list decodes one category.  An absent key (zero Node) keeps the
// fallback; a null value decodes to no items.
func list(n *yaml.Node, key string, fallback []string) ([]string, error) {
	if n.Kind == 0 {
		return fallback, nil
	}
	if n.ShortTag() == "!!null" {
		return nil, nil
	}
	var items []string
	if err := n.Decode(&items); err != nil {
		return nil, fmt.Errorf("parse content: %s: %w", key, err)
	}
	return items, nil
}
