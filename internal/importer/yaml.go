package importer

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlEntry is one bookmark in a YAML import file.
type yamlEntry struct {
	Name string   `yaml:"name"`
	URL  string   `yaml:"url"`
	Tags []string `yaml:"tags"`
}

// yamlFile is the root structure of a YAML import file:
//
//	bookmarks:
//	  - name: Go
//	    url: https://go.dev
//	    tags: [go, docs]
type yamlFile struct {
	Bookmarks []yamlEntry `yaml:"bookmarks"`
}

// ParseYAML parses a YAML bookmark list into entries. Entries without a URL
// are skipped; entries without a name fall back to the URL.
func ParseYAML(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks yaml: %w", err)
	}

	entries := make([]Entry, 0, len(f.Bookmarks))
	for _, b := range f.Bookmarks {
		if b.URL == "" {
			continue
		}
		name := b.Name
		if name == "" {
			name = b.URL
		}
		entries = append(entries, Entry{Name: name, URL: b.URL, Tags: b.Tags})
	}
	return entries, nil
}
