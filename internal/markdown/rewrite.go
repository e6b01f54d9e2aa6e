// Package markdown adjusts rendered documentation before it is served:
// discovering intra-page anchor links, rewriting link destinations to
// resolvable URIs, and prepending front matter.
package markdown

import (
	"fmt"
	"sort"
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"
)

func parse(src string) ast.Node {
	return gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))
}

// AnchorDestinations returns the unique in-page anchor destinations
// (links starting with "#") found in src, in first-seen order. Script
// metadata carries no link table, so anchors written in doc comments
// have to be discovered from the rendered markdown.
func AnchorDestinations(src string) []string {
	if !strings.Contains(src, "](#") && !strings.Contains(src, "]: #") {
		return nil
	}

	seen := make(map[string]bool)
	var dests []string

	ast.WalkFunc(parse(src), func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if link, ok := node.(*ast.Link); ok {
			dest := string(link.Destination)
			if strings.HasPrefix(dest, "#") && !seen[dest] {
				seen[dest] = true
				dests = append(dests, dest)
			}
		}
		return ast.GoToNext
	})

	return dests
}

// RewriteLinks rewrites markdown link destinations using the provided link
// map. It parses the markdown to AST to find all link destinations, then
// performs targeted string replacements to preserve original formatting.
func RewriteLinks(src string, linkMap map[string]string) string {
	if len(linkMap) == 0 {
		return src
	}

	// Collect unique destinations that need replacement
	seen := make(map[string]bool)
	type replacement struct {
		oldDest string
		newDest string
	}
	var replacements []replacement

	ast.WalkFunc(parse(src), func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if link, ok := node.(*ast.Link); ok {
			dest := string(link.Destination)
			if newDest, ok := linkMap[dest]; ok && !seen[dest] {
				seen[dest] = true
				replacements = append(replacements, replacement{dest, newDest})
			}
		}
		return ast.GoToNext
	})

	if len(replacements) == 0 {
		return src
	}

	result := src

	// Inline links: [text](destination) — one pass per replacement
	for _, r := range replacements {
		result = strings.ReplaceAll(result, "]("+r.oldDest+")", "]("+r.newDest+")")
	}

	// Reference-style definitions: [ref]: destination — single pass over lines
	refMap := make(map[string]string, len(replacements))
	for _, r := range replacements {
		refMap["]: "+r.oldDest] = "]: " + r.newDest
	}
	lines := strings.Split(result, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for oldSuffix, newSuffix := range refMap {
			if strings.HasSuffix(trimmed, oldSuffix) {
				lines[i] = strings.Replace(line, oldSuffix, newSuffix, 1)
				break
			}
		}
	}
	result = strings.Join(lines, "\n")

	return result
}

// AddFrontMatter prepends a YAML front-matter block with the given fields,
// sorted by key.
func AddFrontMatter(src string, fields map[string]string) string {
	if len(fields) == 0 {
		return src
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("---\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s: %s\n", k, fields[k]))
	}
	b.WriteString("---\n\n")
	b.WriteString(src)
	return b.String()
}
