package templates

import (
	"bytes"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"text/template"

	"github.com/vango-dev/inject/internal/errors"
	"github.com/vango-dev/inject/pkg/inject"
)

// Config contains template configuration.
type Config struct {
	// SiteName is used in page titles.
	SiteName string

	// Keyword is the injection point keyword (default: "Marker").
	Keyword string

	// Engine names the client template engine. Empty disables template
	// blocks.
	Engine string

	// Minify enables minification of resolved pages.
	Minify bool
}

// Template represents a site template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"site":    siteTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E145").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: minimal, site")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	return slices.Sorted(maps.Keys(templates))
}

// Paths returns the files the template writes, sorted.
func (t *Template) Paths() []string {
	return slices.Sorted(maps.Keys(t.Files))
}

// Create writes the template into dir. Existing files are never
// overwritten; nothing is written if any target already exists.
func (t *Template) Create(dir string, cfg Config) error {
	if cfg.Keyword == "" {
		cfg.Keyword = inject.DefaultKeyword
	}

	paths := t.Paths()
	for _, relPath := range paths {
		if _, err := os.Stat(filepath.Join(dir, relPath)); err == nil {
			return errors.New("E140").
				WithDetail("File '" + relPath + "' already exists").
				WithSuggestion("Choose an empty directory or remove the existing file")
		}
	}

	for _, relPath := range paths {
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	return nil
}

const configFile = `{
  "reportErrors": "log",
  "marker": {
    "keyword": "{{.Keyword}}"
  },
{{- if .Engine}}
  "templates": {
    "engine": "{{.Engine}}"
  },
{{- end}}
  "output": {
    "minify": {{.Minify}}
  },
  "server": {
    "dir": "public"
  }
}
`

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "Configuration file only",
		Files: map[string]string{
			"inject.json": configFile,
		},
	}
}

func siteTemplate() *Template {
	return &Template{
		Name:        "site",
		Description: "Configuration with a sample page and manifest",
		Files: map[string]string{
			"inject.json": configFile,

			"public/index.html": `<!DOCTYPE html>
<html>
<head>
    <title>{{.SiteName}}</title>
    <!-- {{.Keyword}}="MetaTags" -->
    <!-- {{.Keyword}}="StyleFiles" -->
</head>
<body>
    <form method="post">
        <!-- {{.Keyword}}="HiddenFields" -->
        <button type="submit">Send</button>
    </form>
    <!-- {{.Keyword}}="Placeholders:Footer" -->
{{- if .Engine}}
    <!-- {{.Keyword}}="TemplateBlocks" -->
{{- end}}
    <!-- {{.Keyword}}="ScriptFiles" -->
    <!-- {{.Keyword}}="ScriptBlocks" -->
</body>
</html>
`,

			"public/index.yaml": `# Content registered before public/index.html is resolved.
meta:
  - name: description
    content: {{.SiteName}} home page
styles:
  - url: ~/css/site.css
hidden:
  - name: formId
    value: contact
placeholders:
  - content: <footer>{{.SiteName}}</footer>
    group: Footer
{{- if .Engine}}
templates:
  - id: greeting
    content: <p>Hello</p>
{{- end}}
scripts:
  - url: ~/js/site.js
arrays:
  - name: featured
    values: [1, 2, 3]
scriptBlocks:
  - key: ready
    script: console.log("ready");
    order: 10
`,

			"public/css/site.css": `body {
    font-family: system-ui, sans-serif;
}
`,

			"public/js/site.js": `console.log("{{.SiteName}}");
`,
		},
	}
}
