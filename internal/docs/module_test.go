package docs

import (
	"errors"
	"testing"
)

func mustBuild(t *testing.T, data string, opts Options) *Module {
	t.Helper()
	mod, err := Build([]byte(data), opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return mod
}

func TestBuildSharesDocsAcrossOverloads(t *testing.T) {
	t.Parallel()

	mod := mustBuild(t, `{
		"functions": [
			{
				"access": "public", "name": "add", "namespace": "global",
				"numParams": 2,
				"params": [{"name": "a", "type": "INT"}, {"name": "b", "type": "INT"}],
				"returnType": "INT",
				"signature": "add(a: i64, b: i64) -> i64",
				"docComments": ["/// Adds two integers.", "/// # rhai-autodocs:index:1"]
			},
			{
				"access": "public", "name": "add", "namespace": "global",
				"numParams": 2,
				"params": [{"name": "a", "type": "FLOAT"}, {"name": "b", "type": "FLOAT"}],
				"returnType": "FLOAT",
				"signature": "add(a: f64, b: f64) -> f64"
			}
		]
	}`, Options{})

	if len(mod.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(mod.Items))
	}
	item, ok := mod.Items[0].(*FunctionItem)
	if !ok {
		t.Fatalf("item is %T, want function", mod.Items[0])
	}
	if item.GroupName != "add" || item.Kind != "fn" {
		t.Errorf("got group %q kind %q, want add/fn", item.GroupName, item.Kind)
	}

	want := "fn add(a: int, b: int) -> int\nfn add(a: float, b: float) -> float"
	if got := item.Signatures(); got != want {
		t.Errorf("signatures = %q, want %q", got, want)
	}

	if len(item.Docs) != 1 || item.Docs[0].Name != "Description" || item.Docs[0].Body != "Adds two integers." {
		t.Errorf("docs = %#v, want single description from the documented overload", item.Docs)
	}
}

func TestBuildMergesFieldAccessors(t *testing.T) {
	t.Parallel()

	mod := mustBuild(t, `{
		"functions": [
			{
				"access": "public", "name": "get$age", "namespace": "global",
				"numParams": 1,
				"params": [{"name": "self", "type": "MyType"}],
				"returnType": "INT",
				"signature": "get$age(self: MyType) -> i64",
				"docComments": ["/// Age in years."]
			},
			{
				"access": "public", "name": "set$age", "namespace": "global",
				"numParams": 2,
				"params": [{"name": "self", "type": "MyType"}, {"name": "value", "type": "INT"}],
				"signature": "set$age(self: MyType, value: i64)"
			}
		]
	}`, Options{})

	if len(mod.Items) != 1 {
		t.Fatalf("got %d items, want accessors merged into 1", len(mod.Items))
	}
	item := mod.Items[0].(*FunctionItem)
	if item.GroupName != "age" {
		t.Errorf("group = %q, want age", item.GroupName)
	}
	if item.Kind != "get" {
		t.Errorf("kind = %q, want get from the documented root", item.Kind)
	}
	want := "get MyType.age -> int\nset MyType.age = int"
	if got := item.Signatures(); got != want {
		t.Errorf("signatures = %q, want %q", got, want)
	}
	if got := item.HeadingID(); got != "get-age" {
		t.Errorf("heading id = %q, want get-age", got)
	}
}

func TestBuildDropsUndocumentedAndAnonymous(t *testing.T) {
	t.Parallel()

	mod := mustBuild(t, `{
		"functions": [
			{"access": "public", "name": "hidden", "namespace": "global", "numParams": 0, "signature": "hidden()"},
			{"access": "public", "name": "anon$1000", "namespace": "global", "numParams": 0, "signature": "anon$1000()", "docComments": ["/// Closure."]},
			{"access": "public", "name": "shown", "namespace": "global", "numParams": 0, "signature": "shown()", "docComments": []}
		]
	}`, Options{})

	if len(mod.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(mod.Items))
	}
	if got := mod.Items[0].Name(); got != "shown" {
		t.Errorf("kept item = %q, want shown with its empty comment list", got)
	}
}

func TestBuildCustomTypes(t *testing.T) {
	t.Parallel()

	mod := mustBuild(t, `{
		"customTypes": [
			{"typeName": "my::scripting::MyType", "displayName": "MyType", "docComments": ["/// A scripted type."]},
			{"typeName": "my::scripting::Hidden", "displayName": "Hidden"}
		]
	}`, Options{})

	if len(mod.Items) != 1 {
		t.Fatalf("got %d items, want the documented type only", len(mod.Items))
	}
	item, ok := mod.Items[0].(*TypeItem)
	if !ok {
		t.Fatalf("item is %T, want type", mod.Items[0])
	}
	if item.DisplayName != "MyType" || item.TypeName != "my::scripting::MyType" {
		t.Errorf("got %q/%q, want MyType/my::scripting::MyType", item.DisplayName, item.TypeName)
	}
	if got := item.HeadingID(); got != "type-MyType" {
		t.Errorf("heading id = %q, want type-MyType", got)
	}
}

func TestBuildOrderAlphabetical(t *testing.T) {
	t.Parallel()

	mod := mustBuild(t, `{
		"functions": [
			{"access": "public", "name": "zip", "namespace": "global", "numParams": 0, "signature": "zip()", "docComments": ["/// Z."]},
			{"access": "public", "name": "arc", "namespace": "global", "numParams": 0, "signature": "arc()", "docComments": ["/// A."]},
			{"access": "public", "name": "mid", "namespace": "global", "numParams": 0, "signature": "mid()", "docComments": ["/// M."]}
		]
	}`, Options{Order: OrderAlphabetical})

	want := []string{"arc", "mid", "zip"}
	if len(mod.Items) != len(want) {
		t.Fatalf("got %d items, want %d", len(mod.Items), len(want))
	}
	for i, name := range want {
		if got := mod.Items[i].Name(); got != name {
			t.Errorf("items[%d] = %q, want %q", i, got, name)
		}
	}
}

func TestBuildOrderByIndex(t *testing.T) {
	t.Parallel()

	mod := mustBuild(t, `{
		"functions": [
			{"access": "public", "name": "beta", "namespace": "global", "numParams": 0, "signature": "beta()", "docComments": ["/// B.", "/// # rhai-autodocs:index:2"]},
			{"access": "public", "name": "zeta", "namespace": "global", "numParams": 0, "signature": "zeta()", "docComments": ["/// Z.", "/// # rhai-autodocs:index:1"]}
		]
	}`, Options{Order: OrderByIndex})

	want := []string{"zeta", "beta"}
	for i, name := range want {
		if got := mod.Items[i].Name(); got != name {
			t.Errorf("items[%d] = %q, want %q", i, got, name)
		}
	}
}

func TestBuildOrderByIndexErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing directive", func(t *testing.T) {
		t.Parallel()
		_, err := Build([]byte(`{
			"functions": [
				{"access": "public", "name": "orphan", "namespace": "global", "numParams": 0, "signature": "orphan()", "docComments": ["/// No directive."]}
			]
		}`), Options{Order: OrderByIndex})
		var missing *MissingOrderDirectiveError
		if !errors.As(err, &missing) {
			t.Fatalf("got %v, want missing directive error", err)
		}
		if missing.Item != "orphan" || missing.Namespace != "global" {
			t.Errorf("error names %q in %q, want orphan in global", missing.Item, missing.Namespace)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()
		for _, value := range []string{"one", "-1", "1.5", ""} {
			_, err := Build([]byte(`{
				"functions": [
					{"access": "public", "name": "bad", "namespace": "global", "numParams": 0, "signature": "bad()", "docComments": ["/// # rhai-autodocs:index:`+value+`"]}
				]
			}`), Options{Order: OrderByIndex})
			var invalid *InvalidOrderDirectiveError
			if !errors.As(err, &invalid) {
				t.Fatalf("value %q: got %v, want invalid directive error", value, err)
			}
			if invalid.Value != value {
				t.Errorf("error carries value %q, want %q", invalid.Value, value)
			}
		}
	})

	t.Run("duplicate index", func(t *testing.T) {
		t.Parallel()
		_, err := Build([]byte(`{
			"functions": [
				{"access": "public", "name": "first", "namespace": "global", "numParams": 0, "signature": "first()", "docComments": ["/// # rhai-autodocs:index:1"]},
				{"access": "public", "name": "second", "namespace": "global", "numParams": 0, "signature": "second()", "docComments": ["/// # rhai-autodocs:index:1"]}
			]
		}`), Options{Order: OrderByIndex})
		var out *OrderIndexOutOfRangeError
		if !errors.As(err, &out) {
			t.Fatalf("got %v, want out of range error", err)
		}
		if out.Conflict == "" {
			t.Errorf("duplicate slot should name the conflicting item, got %#v", out)
		}
	})

	t.Run("index past count", func(t *testing.T) {
		t.Parallel()
		_, err := Build([]byte(`{
			"functions": [
				{"access": "public", "name": "lone", "namespace": "global", "numParams": 0, "signature": "lone()", "docComments": ["/// # rhai-autodocs:index:3"]}
			]
		}`), Options{Order: OrderByIndex})
		var out *OrderIndexOutOfRangeError
		if !errors.As(err, &out) {
			t.Fatalf("got %v, want out of range error", err)
		}
		if out.Index != 3 || out.Count != 1 || out.Conflict != "" {
			t.Errorf("got index %d count %d conflict %q, want 3/1/none", out.Index, out.Count, out.Conflict)
		}
	})

	t.Run("zero index", func(t *testing.T) {
		t.Parallel()
		_, err := Build([]byte(`{
			"functions": [
				{"access": "public", "name": "zero", "namespace": "global", "numParams": 0, "signature": "zero()", "docComments": ["/// # rhai-autodocs:index:0"]}
			]
		}`), Options{Order: OrderByIndex})
		var out *OrderIndexOutOfRangeError
		if !errors.As(err, &out) {
			t.Fatalf("got %v, want out of range error", err)
		}
	})
}

func TestBuildSubmoduleTree(t *testing.T) {
	t.Parallel()

	mod := mustBuild(t, `{
		"doc": "/// Root documentation.",
		"modules": {
			"zeta": {
				"functions": [
					{"access": "public", "name": "go", "namespace": "zeta", "numParams": 0, "signature": "go()", "docComments": ["/// Run."]}
				]
			},
			"alpha": {
				"modules": {
					"inner": {}
				}
			}
		}
	}`, Options{})

	if mod.Namespace != "global" || mod.Name != "global" {
		t.Errorf("root = %q/%q, want global/global", mod.Namespace, mod.Name)
	}
	if mod.Docs != "Root documentation." {
		t.Errorf("root docs = %q", mod.Docs)
	}

	if len(mod.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(mod.Children))
	}
	// Declaration order, not alphabetical.
	if mod.Children[0].Name != "zeta" || mod.Children[1].Name != "alpha" {
		t.Errorf("children = %q, %q, want zeta, alpha", mod.Children[0].Name, mod.Children[1].Name)
	}
	if got := mod.Children[0].Namespace; got != "global/zeta" {
		t.Errorf("child namespace = %q, want global/zeta", got)
	}
	if len(mod.Children[0].Items) != 1 {
		t.Errorf("zeta has %d items, want 1", len(mod.Children[0].Items))
	}

	alpha := mod.Children[1]
	if len(alpha.Children) != 1 {
		t.Fatalf("alpha has %d children, want 1", len(alpha.Children))
	}
	if got := alpha.Children[0].Namespace; got != "global/alpha/inner" {
		t.Errorf("nested namespace = %q, want global/alpha/inner", got)
	}
}

func TestBuildSubtreeFailureAborts(t *testing.T) {
	t.Parallel()

	_, err := Build([]byte(`{
		"modules": {
			"broken": {
				"functions": [
					{"access": "public", "name": "late", "namespace": "broken", "numParams": 0, "signature": "late()", "docComments": ["/// No directive."]}
				]
			}
		}
	}`), Options{Order: OrderByIndex})

	var missing *MissingOrderDirectiveError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want missing directive error from subtree", err)
	}
	if missing.Namespace != "global/broken" {
		t.Errorf("error namespace = %q, want global/broken", missing.Namespace)
	}
}

func TestBuildStandardFilter(t *testing.T) {
	t.Parallel()

	data := `{
		"functions": [
			{"access": "public", "name": "print", "namespace": "internal", "numParams": 1, "params": [{"name": "text", "type": "&str"}], "signature": "print(text: &str)", "docComments": ["/// Builtin."]},
			{"access": "public", "name": "mine", "namespace": "global", "numParams": 0, "signature": "mine()", "docComments": ["/// Custom."]}
		]
	}`

	mod := mustBuild(t, data, Options{})
	if len(mod.Items) != 1 || mod.Items[0].Name() != "mine" {
		t.Fatalf("default build kept %d items, want only mine", len(mod.Items))
	}

	mod = mustBuild(t, data, Options{IncludeStandard: true})
	if len(mod.Items) != 2 {
		t.Fatalf("inclusive build kept %d items, want 2", len(mod.Items))
	}
}

func TestBuildModuleDocsCleaned(t *testing.T) {
	t.Parallel()

	mod := mustBuild(t, `{
		"doc": "/// Utilities.\n///\n/// `+"```"+`rhai\n/// # hidden setup\n/// let x = util();\n/// `+"```"+`"
	}`, Options{})

	want := "Utilities.\n\n```rhai\nlet x = util();\n```"
	if mod.Docs != want {
		t.Errorf("docs = %q, want %q", mod.Docs, want)
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	mod := mustBuild(t, `{
		"modules": {
			"zeta": {},
			"alpha": {
				"modules": {
					"inner": {}
				}
			}
		}
	}`, Options{})

	var visited []string
	err := mod.Walk(func(m *Module) error {
		visited = append(visited, m.Namespace)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []string{"global", "global/zeta", "global/alpha", "global/alpha/inner"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}

	stop := errors.New("stop")
	visited = visited[:0]
	err = mod.Walk(func(m *Module) error {
		visited = append(visited, m.Namespace)
		if m.Namespace == "global/zeta" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("got %v, want the callback error", err)
	}
	if len(visited) != 2 {
		t.Errorf("walk continued after error, visited %v", visited)
	}
}
