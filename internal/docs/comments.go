package docs

import "strings"

// orderDirective is the in-comment annotation controlling item display
// order. Directive lines never reach rendered output.
const orderDirective = "# rhai-autodocs:index:"

// Section is one named slice of a documentation comment, delimited by
// heading marker lines outside code fences.
type Section struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// CleanComments strips ordering directives and the verbatim doc comment
// marker tokens from raw comment lines, returning the markdown body.
func CleanComments(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, raw := range lines {
		for _, line := range strings.Split(raw, "\n") {
			if strings.Contains(line, orderDirective) {
				continue
			}
			kept = append(kept, line)
		}
	}
	body := strings.Join(kept, "\n")
	body = strings.ReplaceAll(body, "/// ", "")
	body = strings.ReplaceAll(body, "///", "")
	body = strings.ReplaceAll(body, "/**", "")
	body = strings.ReplaceAll(body, "**/", "")
	return body
}

// ExtractSections splits a cleaned comment body into named sections. A line
// containing "# " outside a code fence starts a new section named by the
// text after the marker. Inside a fence, lines starting with "# " are
// test-sample boilerplate and are dropped, which leaves map literals
// (#{ ... }) intact. The initial section is named "Description" and is
// discarded when a heading arrives before any body text.
func ExtractSections(docs string) []Section {
	if docs == "" {
		return nil
	}

	var (
		sections []Section
		name     = "Description"
		body     []string
		inFence  bool
		first    = true
	)

	for _, line := range strings.Split(docs, "\n") {
		if strings.Contains(line, orderDirective) {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			body = append(body, line)
			continue
		}
		if inFence {
			if !strings.HasPrefix(line, "# ") {
				body = append(body, line)
			}
			continue
		}
		if i := strings.Index(line, "# "); i >= 0 && line[i+2:] != "" {
			if !first || hasText(body) {
				sections = append(sections, Section{Name: name, Body: joinBody(body)})
			}
			first = false
			name = line[i+2:]
			body = nil
			continue
		}
		body = append(body, line)
	}

	if len(body) > 0 {
		sections = append(sections, Section{Name: name, Body: joinBody(body)})
	}

	return sections
}

func hasText(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

func joinBody(lines []string) string {
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// RemoveTestCode drops fenced code lines starting with the "# " token, the
// convention rustdoc uses for compile-only sample lines. Used for module
// doc bodies, which are rendered whole rather than split into sections.
func RemoveTestCode(docs string) string {
	var (
		kept    []string
		inFence bool
	)
	for _, line := range strings.Split(docs, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			kept = append(kept, line)
			continue
		}
		if inFence && strings.HasPrefix(line, "# ") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}
