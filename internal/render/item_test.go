package render

import (
	"testing"

	"github.com/rhaitools/rhaidocs/internal/docs"
)

func TestItemDocFunction(t *testing.T) {
	t.Parallel()

	root, err := docs.Build([]byte(`{
		"functions": [
			{
				"access": "public", "name": "push", "namespace": "global",
				"numParams": 2,
				"params": [{"name": "array", "type": "Array"}, {"name": "item", "type": "?"}],
				"returnType": "()",
				"signature": "push(array: Array, item: ?)",
				"docComments": [
					"/// Appends an item in place.",
					"/// # Example",
					"/// `+"```"+`rhai",
					"/// let x = [];",
					"/// x.push(1);",
					"/// `+"```"+`"
				]
			}
		]
	}`), docs.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(root.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(root.Items))
	}

	want := "# fn push\n" +
		"\n" +
		"```js\n" +
		"fn push(array: Array, item: ?)\n" +
		"```\n" +
		"\n" +
		"Appends an item in place.\n" +
		"\n" +
		"### Example\n" +
		"\n" +
		"```rhai\n" +
		"let x = [];\n" +
		"x.push(1);\n" +
		"```\n"
	if got := ItemDoc(root.Items[0]); got != want {
		t.Errorf("ItemDoc:\ngot  %q\nwant %q", got, want)
	}
}

func TestItemDocType(t *testing.T) {
	t.Parallel()

	item := &docs.TypeItem{
		DisplayName: "Inventory",
		TypeName:    "shop::Inventory",
		Docs:        []docs.Section{{Name: "Description", Body: "Tracks stock."}},
	}
	want := "# type Inventory\n\nTracks stock.\n"
	if got := ItemDoc(item); got != want {
		t.Errorf("ItemDoc:\ngot  %q\nwant %q", got, want)
	}

	// No sections, no signatures: the heading stands alone.
	bare := &docs.TypeItem{DisplayName: "Opaque"}
	if got := ItemDoc(bare); got != "# type Opaque\n" {
		t.Errorf("ItemDoc(bare) = %q", got)
	}
}

func TestSectionText(t *testing.T) {
	t.Parallel()

	root, err := docs.Build([]byte(`{
		"functions": [
			{
				"access": "public", "name": "add", "namespace": "global",
				"numParams": 2,
				"params": [{"name": "a", "type": "INT"}, {"name": "b", "type": "INT"}],
				"returnType": "INT",
				"signature": "add(a: i64, b: i64) -> i64",
				"docComments": ["/// Adds two numbers.", "/// # Args", "/// * a - the first operand."]
			}
		]
	}`), docs.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// The description body stays bare so keyword matches hit the prose, named
	// sections keep their heading text as a match target.
	want := "Adds two numbers.\n\nArgs\n* a - the first operand."
	if got := SectionText(root.Items[0]); got != want {
		t.Errorf("SectionText:\ngot  %q\nwant %q", got, want)
	}

	ty := &docs.TypeItem{
		DisplayName: "Inventory",
		Docs:        []docs.Section{{Name: "Example", Body: "let i = inventory();"}},
	}
	if got := SectionText(ty); got != "Example\nlet i = inventory();" {
		t.Errorf("SectionText(type) = %q", got)
	}

	if got := SectionText(&docs.TypeItem{DisplayName: "Opaque"}); got != "" {
		t.Errorf("SectionText(no docs) = %q, want empty", got)
	}
}
