package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManifestResolve(t *testing.T) {
	m := NewManifest()
	m.Set("js/site.js", "js/site.3f9a1c.js")
	m.Set("css/site.css", "css/site.b71e02.css")

	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"found entry", "js/site.js", "js/site.3f9a1c.js"},
		{"found entry css", "css/site.css", "css/site.b71e02.css"},
		{"missing entry returns original", "js/other.js", "js/other.js"},
		{"empty string returns empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Resolve(tt.source)
			if got != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.source, got, tt.expected)
			}
		})
	}
}

func TestManifestHasAndLen(t *testing.T) {
	m := NewManifest()
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}

	m.Set("site.js", "site.1.js")
	m.Set("site.css", "site.2.css")

	if !m.Has("site.js") {
		t.Error("Has(site.js) = false, want true")
	}
	if m.Has("other.js") {
		t.Error("Has(other.js) = true, want false")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestManifestAllIsCopy(t *testing.T) {
	m := NewManifest()
	m.Set("site.js", "site.1.js")

	all := m.All()
	all["site.js"] = "changed"

	if got := m.Resolve("site.js"); got != "site.1.js" {
		t.Errorf("Resolve after mutating All() = %q, want site.1.js", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte(`{"site.js": "site.abc.js"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := m.Resolve("site.js"); got != "site.abc.js" {
		t.Errorf("Resolve(site.js) = %q, want site.abc.js", got)
	}

	// Loaded manifests accept new entries.
	m.Set("x.js", "x.1.js")
	if !m.Has("x.js") {
		t.Error("Set after Load did not add entry")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() should fail for invalid JSON")
	}
}

func TestAppRelative(t *testing.T) {
	tests := []struct {
		url  string
		rel  string
		isAR bool
	}{
		{"~/js/site.js", "js/site.js", true},
		{"~", "", true},
		{"~/", "", true},
		{"/js/site.js", "", false},
		{"https://cdn.example.com/a.js", "", false},
		{"~js/site.js", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			rel, ok := AppRelative(tt.url)
			if ok != tt.isAR {
				t.Fatalf("AppRelative(%q) ok = %v, want %v", tt.url, ok, tt.isAR)
			}
			if ok && rel != tt.rel {
				t.Errorf("AppRelative(%q) = %q, want %q", tt.url, rel, tt.rel)
			}
		})
	}
}

func TestResolver(t *testing.T) {
	m := NewManifest()
	m.Set("js/site.js", "js/site.3f9a1c.js")

	tests := []struct {
		name     string
		base     string
		url      string
		expected string
	}{
		{"fingerprinted", "/app/", "~/js/site.js", "/app/js/site.3f9a1c.js"},
		{"base without slash", "/app", "~/js/site.js", "/app/js/site.3f9a1c.js"},
		{"root base", "", "~/js/site.js", "/js/site.3f9a1c.js"},
		{"missing entry", "/app/", "~/js/other.js", "/app/js/other.js"},
		{"absolute untouched", "/app/", "/js/site.js", "/js/site.js"},
		{"external untouched", "/app/", "//cdn.example.com/a.js", "//cdn.example.com/a.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(m, tt.base)
			if got := r.Asset(tt.url); got != tt.expected {
				t.Errorf("Asset(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestResolverNilManifest(t *testing.T) {
	r := NewResolver(nil, "/app/")
	if got := r.Asset("~/site.js"); got != "/app/site.js" {
		t.Errorf("Asset(~/site.js) = %q, want /app/site.js", got)
	}
}

func TestPassthroughResolver(t *testing.T) {
	r := NewPassthroughResolver("/assets/")

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"js file", "~/site.js", "/assets/site.js"},
		{"nested path", "~/images/logo.png", "/assets/images/logo.png"},
		{"absolute untouched", "/site.js", "/site.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Asset(tt.url); got != tt.expected {
				t.Errorf("Asset(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}
