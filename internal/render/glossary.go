package render

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/rhaitools/rhaidocs/internal/docs"
	"github.com/rhaitools/rhaidocs/internal/metadata"
)

// highlightComponent is the MDX component glossary bullets use as their
// kind badge.
//
//go:embed components/highlight.js
var highlightComponent string

// GlossaryOptions configure one Glossary call.
type GlossaryOptions struct {
	Flavor Flavor
	// IncludeStandard keeps the engine's standard package builtins.
	IncludeStandard bool
}

// Glossary builds a compact signature listing of every function in the
// metadata, documented or not, one block per module. The docusaurus flavor
// opens with the Highlight component definition the bullets reference.
func Glossary(data []byte, opts GlossaryOptions) (string, error) {
	meta, err := metadata.Decode(data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if opts.Flavor == FlavorDocusaurus {
		b.WriteString(strings.TrimRight(highlightComponent, "\n"))
		b.WriteString("\n\n")
	}
	if err := glossaryModule(&b, meta, docs.RootModule, docs.RootModule, opts, true); err != nil {
		return "", err
	}
	return b.String(), nil
}

func glossaryModule(b *strings.Builder, meta *metadata.Module, namespace, name string, opts GlossaryOptions, root bool) error {
	b.WriteString("### " + name + "\n")

	fns := meta.Functions
	if root && !opts.IncludeStandard {
		kept := make([]metadata.Function, 0, len(fns))
		for _, fn := range fns {
			if fn.Namespace != "internal" {
				kept = append(kept, fn)
			}
		}
		fns = kept
	}

	for _, group := range docs.GroupFunctions(fns) {
		if strings.HasPrefix(group.Name, "anon$") {
			continue
		}
		for i := range group.Overloads {
			def := docs.Synthesize(&group.Overloads[i])
			sig := strings.TrimPrefix(def.String(), def.Kind()+" ")
			if opts.Flavor == FlavorDocusaurus {
				fmt.Fprintf(b, "- <Highlight color=\"#25c2a0\">%s</Highlight> <code>{%q}</code>\n", def.Kind(), sig)
			} else {
				fmt.Fprintf(b, "- **%s** `%s`\n", def.Kind(), sig)
			}
		}
	}

	if len(meta.Modules) == 0 {
		return nil
	}
	err := jsonparser.ObjectEach(meta.Modules, func(key, value []byte, _ jsonparser.ValueType, _ int) error {
		sub, err := metadata.Decode(value)
		if err != nil {
			return fmt.Errorf("decoding submodule %s: %w", key, err)
		}
		return glossaryModule(b, sub, namespace+"/"+string(key), string(key), opts, false)
	})
	if err != nil {
		return fmt.Errorf("walking submodules of %s: %w", namespace, err)
	}
	return nil
}
