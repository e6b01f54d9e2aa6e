package render

import (
	"encoding/json"

	"github.com/rhaitools/rhaidocs/internal/docs"
)

// jsonModule is the flavor used by tooling that consumes the documentation
// model directly instead of rendered markdown.
type jsonModule struct {
	Name      string     `json:"name"`
	Namespace string     `json:"namespace"`
	Docs      string     `json:"docs"`
	Items     []jsonItem `json:"items"`
}

type jsonItem struct {
	Type       string         `json:"type,omitempty"`
	HeadingID  string         `json:"heading_id"`
	Name       string         `json:"name"`
	Signatures string         `json:"signatures,omitempty"`
	Sections   []docs.Section `json:"sections"`
}

func renderJSON(mod *docs.Module) (string, error) {
	doc := jsonModule{
		Name:      mod.Name,
		Namespace: mod.Namespace,
		Docs:      mod.Docs,
		Items:     make([]jsonItem, 0, len(mod.Items)),
	}
	for _, item := range mod.Items {
		doc.Items = append(doc.Items, newJSONItem(item))
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

func newJSONItem(item docs.Item) jsonItem {
	if fn, ok := item.(*docs.FunctionItem); ok {
		return jsonItem{
			Type:       fn.Kind,
			HeadingID:  fn.HeadingID(),
			Name:       fn.GroupName,
			Signatures: fn.Signatures(),
			Sections:   sectionsOrEmpty(fn.Docs),
		}
	}
	ty := item.(*docs.TypeItem)
	return jsonItem{
		HeadingID: ty.HeadingID(),
		Name:      ty.DisplayName,
		Sections:  sectionsOrEmpty(ty.Docs),
	}
}

func sectionsOrEmpty(sections []docs.Section) []docs.Section {
	if sections == nil {
		return []docs.Section{}
	}
	return sections
}
