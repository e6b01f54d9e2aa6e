package render

import (
	"fmt"
	"strings"

	"github.com/rhaitools/rhaidocs/internal/docs"
)

// ItemDoc renders one item as a standalone markdown document, the format
// the index stores per item and serves to clients. Sections are laid out
// flat regardless of the configured page flavor.
func ItemDoc(item docs.Item) string {
	d := newItemData(item, Options{Flavor: FlavorMDBook, Sections: SectionsRust})

	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n", d.Kind, d.Name)
	if d.Signatures != "" {
		b.WriteString("\n```js\n" + d.Signatures + "\n```\n")
	}
	if d.Sections != "" {
		b.WriteString("\n" + d.Sections)
	}
	return b.String()
}

// SectionText flattens an item's comment sections to plain text for
// keyword indexing.
func SectionText(item docs.Item) string {
	var sections []docs.Section
	switch it := item.(type) {
	case *docs.FunctionItem:
		sections = it.Docs
	case *docs.TypeItem:
		sections = it.Docs
	}

	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s.Name == "Description" {
			parts = append(parts, s.Body)
			continue
		}
		parts = append(parts, s.Name+"\n"+s.Body)
	}
	return strings.Join(parts, "\n\n")
}
