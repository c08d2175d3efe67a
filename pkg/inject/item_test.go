package inject

import (
	"errors"
	"testing"
)

func TestItemRender(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		expected string
	}{
		{
			"script file",
			&ScriptFile{URL: "/Test.js"},
			`<script src="/Test.js" type="text/javascript"></script>`,
		},
		{
			"style file",
			&StyleFile{URL: "/site.css"},
			`<link href="/site.css" type="text/css" rel="stylesheet" />`,
		},
		{
			"meta name",
			&MetaTag{Usage: MetaName, Name: "description", Content: "A & B"},
			`<meta name="description" content="A &amp; B" />`,
		},
		{
			"meta http-equiv",
			&MetaTag{Usage: MetaHTTPEquiv, Name: "refresh", Content: "30"},
			`<meta http-equiv="refresh" content="30" />`,
		},
		{
			"meta charset",
			&MetaTag{Usage: MetaCharset, Name: "utf-8"},
			`<meta charset="utf-8" content="" />`,
		},
		{
			"hidden field",
			&HiddenField{Name: "id", Value: `say "hi"`},
			`<input type="hidden" name="id" value="say &quot;hi&quot;" />`,
		},
		{
			"script block",
			&ScriptBlock{key: "k", Script: "init();"},
			"init();",
		},
		{
			"array",
			&ArrayDeclaration{Name: "v", Elements: []string{"1.5", `"x"`}},
			`var v = [1.5, "x"];`,
		},
		{
			"empty array",
			&ArrayDeclaration{Name: "v"},
			`var v = [];`,
		},
		{
			"template default engine",
			&TemplateBlock{ID: "row", Content: "<li></li>"},
			"<script id=\"row\" type=\"text/html\" >\r\n<li></li>\r\n</script>",
		},
		{
			"template underscore",
			&TemplateBlock{ID: "row", Content: "<%= x %>", engine: EngineUnderscore},
			"<script id=\"row\" type=\"text/template\" >\r\n<%= x %>\r\n</script>",
		},
		{
			"placeholder",
			&Placeholder{Content: "<div>raw</div>"},
			"<div>raw</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Render(); got != tt.expected {
				t.Errorf("Render() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestItemValidation(t *testing.T) {
	tests := []struct {
		name string
		make func() error
		want error
	}{
		{"script file", func() error { _, err := NewScriptFile(""); return err }, ErrEmptyKey},
		{"style file", func() error { _, err := NewStyleFile(""); return err }, ErrEmptyKey},
		{"meta tag", func() error { _, err := NewMetaTag(MetaName, "", "x"); return err }, ErrEmptyKey},
		{"hidden field", func() error { _, err := NewHiddenField("", "x"); return err }, ErrEmptyKey},
		{"array", func() error { _, err := NewArrayDeclaration(""); return err }, ErrEmptyKey},
		{"template", func() error { _, err := NewTemplateBlock("", "x"); return err }, ErrEmptyKey},
		{"placeholder", func() error { _, err := NewPlaceholder(""); return err }, ErrEmptyKey},
		{"script tag", func() error { _, err := NewScriptBlock("", "<script>x()</script>"); return err }, ErrScriptTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.make(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestItemMerge(t *testing.T) {
	t.Run("meta tag keeps first", func(t *testing.T) {
		a := &MetaTag{Name: "d", Content: "first"}
		if err := a.merge(&MetaTag{Name: "d", Content: "second"}); err != nil {
			t.Fatal(err)
		}
		if a.Content != "first" {
			t.Errorf("Content = %q, want first", a.Content)
		}
	})

	t.Run("hidden field takes last", func(t *testing.T) {
		a := &HiddenField{Name: "f", Value: "1"}
		_ = a.merge(&HiddenField{Name: "f", Value: "2"})
		if a.Value != "2" {
			t.Errorf("Value = %q, want 2", a.Value)
		}
	})

	t.Run("script block replaces body", func(t *testing.T) {
		a := &ScriptBlock{key: "k", Script: "one();"}
		_ = a.merge(&ScriptBlock{key: "k", Script: "two();"})
		if a.Script != "two();" {
			t.Errorf("Script = %q, want two();", a.Script)
		}
	})

	t.Run("array appends", func(t *testing.T) {
		a := &ArrayDeclaration{Name: "v", Elements: []string{"1"}}
		_ = a.merge(&ArrayDeclaration{Name: "v", Elements: []string{"2", "3"}})
		if got := a.Render(); got != "var v = [1, 2, 3];" {
			t.Errorf("Render() = %q", got)
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		a := &ScriptFile{URL: "x"}
		if err := a.merge(&StyleFile{URL: "x"}); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("merge() error = %v, want ErrTypeMismatch", err)
		}
	})
}
