package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func TestAnchorDestinations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "inline anchors",
			src:  "See [`push`](#fn-push) and [`pop`](#fn-pop).",
			want: []string{"#fn-push", "#fn-pop"},
		},
		{
			name: "duplicates collapse",
			src:  "[a](#fn-add) then [a again](#fn-add).",
			want: []string{"#fn-add"},
		},
		{
			name: "external links ignored",
			src:  "See [the book](https://rhai.rs/book) and [`len`](#fn-len).",
			want: []string{"#fn-len"},
		},
		{
			name: "reference style",
			src:  "Uses [merge][m] internally.\n\n[m]: #fn-merge",
			want: []string{"#fn-merge"},
		},
		{
			name: "no anchors",
			src:  "Plain text with [a link](https://example.com).",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := AnchorDestinations(tc.src)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRewriteLinks_InlineLinks(t *testing.T) {
	t.Parallel()
	src := "See [`push`](#fn-push) for growing arrays."
	got := RewriteLinks(src, map[string]string{"#fn-push": "rhaidoc://global/array/push"})
	want := "See [`push`](rhaidoc://global/array/push) for growing arrays."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRewriteLinks_ReferenceStyleLinks(t *testing.T) {
	t.Parallel()
	src := "Uses [merge][m] internally.\n\n[m]: #fn-merge"
	got := RewriteLinks(src, map[string]string{"#fn-merge": "rhaidoc://global/array/merge"})
	if !strings.Contains(got, "[m]: rhaidoc://global/array/merge") {
		t.Errorf("reference link not rewritten: %q", got)
	}
}

func TestRewriteLinks_EmptyMap(t *testing.T) {
	t.Parallel()
	src := "Hello [world](#fn-world)."
	got := RewriteLinks(src, nil)
	if got != src {
		t.Errorf("expected unchanged, got %q", got)
	}
	got = RewriteLinks(src, map[string]string{})
	if got != src {
		t.Errorf("expected unchanged for empty map, got %q", got)
	}
}

func TestRewriteLinks_NoMatchingLinks(t *testing.T) {
	t.Parallel()
	src := "Check [this](keep-me) out."
	got := RewriteLinks(src, map[string]string{"other": "rhaidoc://global/x"})
	if got != src {
		t.Errorf("expected unchanged, got %q", got)
	}
}

func TestRewriteLinks_MultipleLinks(t *testing.T) {
	t.Parallel()
	src := "[push](#fn-push) and [pop](#fn-pop) together."
	got := RewriteLinks(src, map[string]string{
		"#fn-push": "rhaidoc://global/array/push",
		"#fn-pop":  "rhaidoc://global/array/pop",
	})
	if !strings.Contains(got, "(rhaidoc://global/array/push)") {
		t.Error("push link not rewritten")
	}
	if !strings.Contains(got, "(rhaidoc://global/array/pop)") {
		t.Error("pop link not rewritten")
	}
}

func TestAddFrontMatter(t *testing.T) {
	t.Parallel()

	t.Run("basic", func(t *testing.T) {
		got := AddFrontMatter("# array", map[string]string{"fn-push": "rhaidoc://global/array/push"})
		if !strings.HasPrefix(got, "---\n") {
			t.Error("missing opening ---")
		}
		if !strings.Contains(got, "fn-push: rhaidoc://global/array/push") {
			t.Error("missing fragment entry")
		}
		if !strings.HasSuffix(got, "# array") {
			t.Error("original content missing")
		}
	})

	t.Run("sorted_keys", func(t *testing.T) {
		got := AddFrontMatter("body", map[string]string{
			"type-Vec": "rhaidoc://global/array/Vec",
			"fn-push":  "rhaidoc://global/array/push",
		})
		fIdx := strings.Index(got, "fn-push")
		tIdx := strings.Index(got, "type-Vec")
		if fIdx > tIdx {
			t.Error("keys not sorted alphabetically")
		}
	})

	t.Run("empty_map", func(t *testing.T) {
		got := AddFrontMatter("body", nil)
		if got != "body" {
			t.Errorf("expected unchanged for empty map, got %q", got)
		}
	})
}
