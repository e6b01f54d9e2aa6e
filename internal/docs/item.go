package docs

import (
	"strings"

	"github.com/rhaitools/rhaidocs/internal/metadata"
)

// Item is one documentation unit: a function overload group or a custom
// type. Undocumented units never become items, they are silently excluded
// during classification.
type Item interface {
	// Name is the display name items sort by.
	Name() string
	// OrderIndex is the 1-based directive value in by-index mode, 0 otherwise.
	OrderIndex() int
	// HeadingID is a markdown anchor derived from the item kind and name.
	HeadingID() string

	itemNode()
}

// FunctionItem documents a group of overloads sharing one display name.
type FunctionItem struct {
	GroupName string
	// Kind is the display keyword of the documented root overload.
	Kind string
	// Overloads holds every overload's synthesized definition in discovery
	// order, documented or not.
	Overloads []Definition
	// Docs holds the sections extracted from the root overload's comments.
	Docs  []Section
	Index int
}

// TypeItem documents a registered custom type.
type TypeItem struct {
	DisplayName string
	TypeName    string
	Docs        []Section
	Index       int
}

func (*FunctionItem) itemNode() {}
func (*TypeItem) itemNode()     {}

func (i *FunctionItem) Name() string    { return i.GroupName }
func (i *FunctionItem) OrderIndex() int { return i.Index }

func (i *FunctionItem) HeadingID() string {
	return strings.ReplaceAll(i.Kind, " ", "") + "-" + i.GroupName
}

// Signatures renders every overload definition, newline-joined.
func (i *FunctionItem) Signatures() string {
	defs := make([]string, len(i.Overloads))
	for n, def := range i.Overloads {
		defs[n] = def.String()
	}
	return strings.Join(defs, "\n")
}

func (i *TypeItem) Name() string      { return i.DisplayName }
func (i *TypeItem) OrderIndex() int   { return i.Index }
func (i *TypeItem) HeadingID() string { return "type-" + i.DisplayName }

// newFunctionItem classifies one overload group. It returns nil for
// anonymous groups and for groups where no overload is documented. In
// by-index mode the root overload's comments must carry the ordering
// directive.
func newFunctionItem(group Group, opts Options, namespace string) (*FunctionItem, error) {
	if strings.HasPrefix(group.Name, "anon$") {
		return nil, nil
	}

	var root *metadata.Function
	for n := range group.Overloads {
		if group.Overloads[n].Documented() {
			root = &group.Overloads[n]
			break
		}
	}
	if root == nil {
		return nil, nil
	}

	index := 0
	if opts.Order == OrderByIndex {
		var err error
		index, err = findOrderIndex(root.DocComments, namespace, group.Name)
		if err != nil {
			return nil, err
		}
	}

	overloads := make([]Definition, len(group.Overloads))
	for n := range group.Overloads {
		overloads[n] = Synthesize(&group.Overloads[n])
	}

	return &FunctionItem{
		GroupName: group.Name,
		Kind:      Synthesize(root).Kind(),
		Overloads: overloads,
		Docs:      ExtractSections(CleanComments(root.DocComments)),
		Index:     index,
	}, nil
}

// newTypeItem classifies one custom type record, nil when undocumented.
func newTypeItem(ty *metadata.CustomType, opts Options, namespace string) (*TypeItem, error) {
	if !ty.Documented() {
		return nil, nil
	}

	index := 0
	if opts.Order == OrderByIndex {
		var err error
		index, err = findOrderIndex(ty.DocComments, namespace, ty.DisplayName)
		if err != nil {
			return nil, err
		}
	}

	return &TypeItem{
		DisplayName: ty.DisplayName,
		TypeName:    ty.TypeName,
		Docs:        ExtractSections(CleanComments(ty.DocComments)),
		Index:       index,
	}, nil
}
