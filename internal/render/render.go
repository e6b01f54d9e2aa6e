// Package render turns a documentation tree into publishable documents:
// docusaurus MDX pages, mdbook chapters or a JSON dump of the model.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/rhaitools/rhaidocs/internal/docs"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Flavor selects the output dialect.
type Flavor int

const (
	// FlavorDocusaurus emits MDX pages with front matter and Tabs imports.
	FlavorDocusaurus Flavor = iota
	// FlavorMDBook emits plain markdown chapters.
	FlavorMDBook
	// FlavorJSON dumps the documentation model for downstream tooling.
	FlavorJSON
)

func (f Flavor) String() string {
	switch f {
	case FlavorMDBook:
		return "mdbook"
	case FlavorJSON:
		return "json"
	default:
		return "docusaurus"
	}
}

// Extension is the file extension documents of this flavor are written with.
func (f Flavor) Extension() string {
	switch f {
	case FlavorMDBook:
		return ".md"
	case FlavorJSON:
		return ".json"
	default:
		return ".mdx"
	}
}

// ParseFlavor maps a configuration value onto a Flavor.
func ParseFlavor(s string) (Flavor, error) {
	switch s {
	case "docusaurus":
		return FlavorDocusaurus, nil
	case "mdbook":
		return FlavorMDBook, nil
	case "json":
		return FlavorJSON, nil
	default:
		return 0, fmt.Errorf("unknown flavor %q, expected docusaurus, mdbook or json", s)
	}
}

// SectionFormat selects how comment sections are laid out in the markdown
// flavors.
type SectionFormat int

const (
	// SectionsRust lays sections out as plain markdown headings, the way
	// rustdoc renders them.
	SectionsRust SectionFormat = iota
	// SectionsTabs wraps each section in a tab block.
	SectionsTabs
)

func (f SectionFormat) String() string {
	if f == SectionsTabs {
		return "tabs"
	}
	return "rust"
}

// ParseSectionFormat maps a configuration value onto a SectionFormat.
func ParseSectionFormat(s string) (SectionFormat, error) {
	switch s {
	case "rust":
		return SectionsRust, nil
	case "tabs":
		return SectionsTabs, nil
	default:
		return 0, fmt.Errorf("unknown section format %q, expected rust or tabs", s)
	}
}

// Options configure one Render call.
type Options struct {
	Flavor   Flavor
	Sections SectionFormat
	// Slug prefixes every docusaurus page slug. Empty puts pages under the
	// site root.
	Slug string
}

// Render produces one document per module in the tree, keyed by module
// name. Two modules sharing a name collide and the deeper one wins, the
// same collision the files would have on disk.
func Render(root *docs.Module, opts Options) (map[string]string, error) {
	out := make(map[string]string)
	err := root.Walk(func(mod *docs.Module) error {
		doc, err := renderModule(mod, opts)
		if err != nil {
			return fmt.Errorf("rendering module %s: %w", mod.Namespace, err)
		}
		out[mod.Name] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func renderModule(mod *docs.Module, opts Options) (string, error) {
	switch opts.Flavor {
	case FlavorJSON:
		return renderJSON(mod)
	case FlavorMDBook:
		return renderTemplate("mdbook.tmpl", mod, opts)
	default:
		return renderTemplate("docusaurus.tmpl", mod, opts)
	}
}

// moduleData is the template payload for the markdown flavors.
type moduleData struct {
	Title     string
	Slug      string
	Namespace string
	Docs      string
	Items     []itemData
}

type itemData struct {
	Kind       string
	Name       string
	Signatures string
	// Sections is the pre-rendered section block for this item.
	Sections string
}

func renderTemplate(name string, mod *docs.Module, opts Options) (string, error) {
	slug := "/" + mod.Name
	if opts.Slug != "" {
		slug = opts.Slug + "/" + mod.Name
	}

	data := moduleData{
		Title:     mod.Name,
		Slug:      slug,
		Namespace: mod.Namespace,
		Docs:      mod.Docs,
		Items:     make([]itemData, 0, len(mod.Items)),
	}
	for _, item := range mod.Items {
		data.Items = append(data.Items, newItemData(item, opts))
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func newItemData(item docs.Item, opts Options) itemData {
	if fn, ok := item.(*docs.FunctionItem); ok {
		return itemData{
			Kind:       fn.Kind,
			Name:       fn.GroupName,
			Signatures: fn.Signatures(),
			Sections:   sectionBlock(fn.Docs, opts),
		}
	}
	ty := item.(*docs.TypeItem)
	return itemData{
		Kind:     "type",
		Name:     ty.DisplayName,
		Sections: sectionBlock(ty.Docs, opts),
	}
}
