package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/inject/internal/config"
	ierrors "github.com/vango-dev/inject/internal/errors"
	"github.com/vango-dev/inject/internal/manifest"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"minimal", false},
		{"site", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				if ierrors.Code(err) != "E145" {
					t.Errorf("code = %q, want E145", ierrors.Code(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
			}
		})
	}
}

func TestList(t *testing.T) {
	got := strings.Join(List(), ",")
	if got != "minimal,site" {
		t.Errorf("List() = %q", got)
	}
}

func TestCreateSite(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		engine bool
	}{
		{"defaults", Config{SiteName: "Shop"}, false},
		{"engine", Config{SiteName: "Shop", Keyword: "Slot", Engine: "knockout", Minify: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tmpl, _ := Get("site")
			if err := tmpl.Create(dir, tt.cfg); err != nil {
				t.Fatalf("Create error: %v", err)
			}

			for _, p := range tmpl.Paths() {
				if _, err := os.Stat(filepath.Join(dir, p)); err != nil {
					t.Errorf("missing %s", p)
				}
			}

			cfg, err := config.Load(dir)
			if err != nil {
				t.Fatalf("generated inject.json does not load: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("generated inject.json is invalid: %v", err)
			}
			if cfg.Output.Minify != tt.cfg.Minify {
				t.Errorf("Output.Minify = %v", cfg.Output.Minify)
			}
			if (cfg.Templates.Engine != "") != tt.engine {
				t.Errorf("Templates.Engine = %q", cfg.Templates.Engine)
			}

			m, err := manifest.Load(filepath.Join(dir, "public", "index.yaml"))
			if err != nil {
				t.Fatalf("generated manifest is invalid: %v", err)
			}
			if (len(m.Templates) > 0) != tt.engine {
				t.Errorf("Templates = %+v", m.Templates)
			}

			page, err := os.ReadFile(filepath.Join(dir, "public", "index.html"))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(page), `<!-- `+cfg.Marker.Keyword+`="ScriptFiles" -->`) {
				t.Errorf("page lacks a ScriptFiles injection point:\n%s", page)
			}
			if strings.Contains(string(page), "TemplateBlocks") != tt.engine {
				t.Errorf("TemplateBlocks injection point presence should follow the engine:\n%s", page)
			}
		})
	}
}

func TestCreateRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "inject.json")
	if err := os.WriteFile(existing, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	tmpl, _ := Get("site")
	if err := tmpl.Create(dir, Config{}); ierrors.Code(err) != "E140" {
		t.Fatalf("code = %q, want E140", ierrors.Code(err))
	}

	data, _ := os.ReadFile(existing)
	if string(data) != "{}" {
		t.Error("existing file was overwritten")
	}
	if _, err := os.Stat(filepath.Join(dir, "public")); !os.IsNotExist(err) {
		t.Error("no file should be written when a target exists")
	}
}
