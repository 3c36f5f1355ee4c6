package vocabulary

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/kbukum/pronounce/validation"
)

type file struct {
	Words []Word `yaml:"words"`
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) ([]Word, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("vocabulary: parse: %w", err)
	}
	for i, w := range f.Words {
		if err := validation.Validate(w); err != nil {
			return nil, fmt.Errorf("vocabulary: word %d: %w", i, err)
		}
	}
	return f.Words, nil
}

// Load reads the YAML catalog at path and merges it over the built-in
// words. Entries in the file replace built-in entries with the same key.
// An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vocabulary: read %s: %w", path, err)
	}
	words, err := Parse(data)
	if err != nil {
		return nil, err
	}
	for _, w := range words {
		c.Add(w)
	}
	return c, nil
}
