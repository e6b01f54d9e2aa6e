package render

import (
	"strings"

	"github.com/rhaitools/rhaidocs/internal/docs"
)

// sectionBlock renders an item's comment sections in the configured layout.
// Items without sections contribute nothing.
func sectionBlock(sections []docs.Section, opts Options) string {
	if len(sections) == 0 {
		return ""
	}
	if opts.Sections == SectionsTabs {
		if opts.Flavor == FlavorMDBook {
			return mdbookTabs(sections)
		}
		return docusaurusTabs(sections)
	}
	return flatSections(sections)
}

// docusaurusTabs wraps each section in a TabItem. Bodies are indented so
// MDX keeps them inside the tab instead of closing the component early.
func docusaurusTabs(sections []docs.Section) string {
	var b strings.Builder
	b.WriteString("<Tabs>\n")
	for i, s := range sections {
		b.WriteString(`    <TabItem value="` + s.Name + `"`)
		if i == 0 {
			b.WriteString(" default")
		}
		b.WriteString(">\n\n")
		b.WriteString(indent(s.Body, "        "))
		b.WriteString("\n    </TabItem>\n")
	}
	b.WriteString("</Tabs>\n")
	return b.String()
}

// mdbookTabs emits blocks for the mdbook-tabs preprocessor.
func mdbookTabs(sections []docs.Section) string {
	var b strings.Builder
	b.WriteString("{{#tabs }}\n")
	for _, s := range sections {
		b.WriteString(`{{#tab name="` + s.Name + `" }}` + "\n")
		b.WriteString(s.Body + "\n")
		b.WriteString("{{#endtab }}\n")
	}
	b.WriteString("{{#endtabs }}\n")
	return b.String()
}

// flatSections lays sections out as regular markdown: the leading
// description keeps its body bare, named sections become level three
// headings.
func flatSections(sections []docs.Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i == 0 && s.Name == "Description" {
			b.WriteString(s.Body + "\n")
			continue
		}
		b.WriteString("\n### " + s.Name + "\n\n" + s.Body + "\n")
	}
	return b.String()
}

// indent prefixes every non-blank line.
func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
