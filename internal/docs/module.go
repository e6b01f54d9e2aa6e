// Package docs turns decoded engine metadata into an orderable
// documentation model: overloads are grouped and classified, comments are
// split into sections, and modules assemble into a tree ready for
// rendering.
package docs

import (
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/rhaitools/rhaidocs/internal/metadata"
)

// RootModule is the name and namespace of the top documentation level.
const RootModule = "global"

// Options select which transformation branches run. They never change the
// per-item algorithms, only filtering and ordering.
type Options struct {
	Order Order
	// IncludeStandard keeps the engine's standard package builtins, the
	// root level functions registered under the internal namespace.
	IncludeStandard bool
}

// Module is one level of the documentation tree. The tree is acyclic and
// finite by construction; parents exclusively own their children.
type Module struct {
	Namespace string
	Name      string
	Docs      string
	Items     []Item
	Children  []*Module
}

// Walk visits the module and every descendant, parents first. It stops at
// the first error.
func (m *Module) Walk(fn func(*Module) error) error {
	if err := fn(m); err != nil {
		return err
	}
	for _, child := range m.Children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Build decodes raw engine metadata and assembles the documentation tree.
// Sibling submodules keep their declaration order. Any failure in any
// subtree aborts the whole build; no partial tree is returned.
func Build(data []byte, opts Options) (*Module, error) {
	meta, err := metadata.Decode(data)
	if err != nil {
		return nil, err
	}
	return buildModule(meta, RootModule, RootModule, opts, true)
}

func buildModule(meta *metadata.Module, namespace, name string, opts Options, root bool) (*Module, error) {
	mod := &Module{Namespace: namespace, Name: name}
	if meta.Doc != nil {
		mod.Docs = RemoveTestCode(CleanComments([]string{*meta.Doc}))
	}

	var items []Item

	for i := range meta.CustomTypes {
		item, err := newTypeItem(&meta.CustomTypes[i], opts, namespace)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, item)
		}
	}

	fns := meta.Functions
	if root && !opts.IncludeStandard {
		fns = withoutStandard(fns)
	}
	for _, group := range GroupFunctions(fns) {
		item, err := newFunctionItem(group, opts, namespace)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, item)
		}
	}

	ordered, err := orderItems(items, opts.Order, namespace)
	if err != nil {
		return nil, err
	}
	mod.Items = ordered

	if len(meta.Modules) == 0 {
		return mod, nil
	}
	err = jsonparser.ObjectEach(meta.Modules, func(key, value []byte, _ jsonparser.ValueType, _ int) error {
		sub, err := metadata.Decode(value)
		if err != nil {
			return fmt.Errorf("decoding submodule %s: %w", key, err)
		}
		child, err := buildModule(sub, namespace+"/"+string(key), string(key), opts, false)
		if err != nil {
			return err
		}
		mod.Children = append(mod.Children, child)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking submodules of %s: %w", namespace, err)
	}

	return mod, nil
}

// withoutStandard drops functions the engine registered in its internal
// namespace, which is where standard package builtins land in the root
// metadata level.
func withoutStandard(fns []metadata.Function) []metadata.Function {
	kept := make([]metadata.Function, 0, len(fns))
	for _, fn := range fns {
		if fn.Namespace == "internal" {
			continue
		}
		kept = append(kept, fn)
	}
	return kept
}
