package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E001",
			wantMsg: "Content kind is not registered",
			wantCat: CategoryConfig,
		},
		{
			name:    "validation error",
			code:    "E010",
			wantMsg: "Content item identity is empty",
			wantCat: CategoryValidation,
		},
		{
			name:    "render error",
			code:    "E020",
			wantMsg: "Content was added but not output because the page lacks an injection point",
			wantCat: CategoryRender,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryUsage, "file %q not found", "page.html")
	if err.Message != `file "page.html" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryUsage {
		t.Errorf("Category = %q, want %q", err.Category, CategoryUsage)
	}
	if err.Error() != `file "page.html" not found` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestInjectError_Error(t *testing.T) {
	err := New("E011").WithDetail("key [a]")
	want := "E011: Content item type differs from the existing item with the same key: key [a]"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestInjectError_Is(t *testing.T) {
	err := New("E001").WithDetail("kind TemplateBlocks")
	wrapped := fmt.Errorf("access: %w", err)

	if !stderrors.Is(wrapped, New("E001")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(wrapped, New("E002")) {
		t.Error("errors.Is should not match a different code")
	}
	if stderrors.Is(wrapped, Newf(CategoryUsage, "no code")) {
		t.Error("errors.Is should not match an error without a code")
	}
}

func TestInjectError_Wrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New("E161").Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable through errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should return nil")
	}

	orig := New("E010")
	if FromError(orig, "E120") != orig {
		t.Error("FromError should return an InjectError unchanged")
	}

	plain := stderrors.New("boom")
	got := FromError(plain, "E120")
	if got.Code != "E120" || got.Wrapped != plain {
		t.Errorf("FromError = %+v", got)
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", stderrors.New("x"), ""},
		{"direct", New("E020"), "E020"},
		{"wrapped", fmt.Errorf("outer: %w", New("E013")), "E013"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E001").
		WithDetail("kind TemplateBlocks").
		WithSuggestion("Register a template engine").
		Wrap(stderrors.New("cause"))
	out := err.Format()

	for _, want := range []string{
		"ERROR E001: Content kind is not registered",
		"kind TemplateBlocks",
		"Caused by: cause",
		"Hint: Register a template engine",
		"Learn more: " + docBase + "E001",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E160").Wrap(stderrors.New("no such file"))
	want := "E160: Cannot read page (no such file)"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint plain = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, New("E021"))
	if !strings.Contains(buf.String(), "ERROR E021: Manager is closed") {
		t.Errorf("Fprint coded = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) != len(registry) {
		t.Fatalf("GetAllCodes() returned %d codes, want %d", len(codes), len(registry))
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Errorf("GetTemplate(%q) not found", code)
		}
		if tmpl.Message == "" {
			t.Errorf("code %s has empty message", code)
		}
		if tmpl.DocURL != docBase+code {
			t.Errorf("code %s DocURL = %q", code, tmpl.DocURL)
		}
	}
}

func TestRegister(t *testing.T) {
	Register("E900", ErrorTemplate{Category: CategoryCLI, Message: "Custom"})
	defer delete(registry, "E900")

	if got := New("E900").Message; got != "Custom" {
		t.Errorf("Message = %q, want %q", got, "Custom")
	}
}

func TestWrapText(t *testing.T) {
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
	lines := wrapText("one two three four five six", 9)
	for _, l := range lines {
		if len(l) > 9 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
