package importer

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseHTML_FlattensFoldersIntoTags(t *testing.T) {
	input := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<DL><p>
    <DT><H3>Development</H3>
    <DL><p>
        <DT><H3>Go</H3>
        <DL><p>
            <DT><A HREF="https://go.dev" ADD_DATE="1700000000">Go Dev</A>
        </DL><p>
        <DT><A HREF="https://github.com">GitHub</A>
    </DL><p>
    <DT><A HREF="https://example.com">Example</A>
</DL><p>`

	entries, err := ParseHTML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	byURL := make(map[string]Entry)
	for _, e := range entries {
		byURL[e.URL] = e
	}

	goDev := byURL["https://go.dev"]
	if goDev.Name != "Go Dev" {
		t.Errorf("unexpected name: %q", goDev.Name)
	}
	if !reflect.DeepEqual(goDev.Tags, []string{"Development", "Go"}) {
		t.Errorf("expected folder path as tags, got %v", goDev.Tags)
	}
	if !goDev.CreatedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("ADD_DATE not honored: %v", goDev.CreatedAt)
	}

	github := byURL["https://github.com"]
	if !reflect.DeepEqual(github.Tags, []string{"Development"}) {
		t.Errorf("expected single folder tag, got %v", github.Tags)
	}
	if !github.CreatedAt.IsZero() {
		t.Errorf("expected zero timestamp without ADD_DATE, got %v", github.CreatedAt)
	}

	root := byURL["https://example.com"]
	if len(root.Tags) != 0 {
		t.Errorf("expected no tags at root level, got %v", root.Tags)
	}
}

func TestParseHTML_SkipsAnchorsWithoutHref(t *testing.T) {
	input := `<DL><p>
    <DT><A>No link</A>
    <DT><A HREF="">Empty link</A>
    <DT><A HREF="https://kept.example.com"></A>
</DL><p>`

	entries, err := ParseHTML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	// Name falls back to the URL
	if entries[0].Name != "https://kept.example.com" {
		t.Errorf("expected URL fallback name, got %q", entries[0].Name)
	}
}

func TestParseYAML(t *testing.T) {
	input := `
bookmarks:
  - name: Go
    url: https://go.dev
    tags: [go, docs]
  - url: https://nameless.example.com
  - name: No URL
`

	entries, err := ParseYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("failed to parse YAML: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Go" || entries[0].URL != "https://go.dev" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if !reflect.DeepEqual(entries[0].Tags, []string{"go", "docs"}) {
		t.Errorf("unexpected tags: %v", entries[0].Tags)
	}
	if entries[1].Name != "https://nameless.example.com" {
		t.Errorf("expected URL fallback name, got %q", entries[1].Name)
	}
}

func TestParseYAML_Invalid(t *testing.T) {
	if _, err := ParseYAML(strings.NewReader("bookmarks: {broken")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestParseYAML_Empty(t *testing.T) {
	entries, err := ParseYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("failed to parse empty input: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
