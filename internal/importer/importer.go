// Package importer parses bookmark files into entries ready for the
// directory. Netscape HTML exports and plain YAML lists are supported.
package importer

import "time"

// Entry is one imported bookmark before it is persisted. A zero CreatedAt
// means the source carried no timestamp and the store stamps the current
// time; otherwise the original timestamp is preserved through the update
// override path.
type Entry struct {
	Name      string
	URL       string
	Tags      []string
	CreatedAt time.Time
}
