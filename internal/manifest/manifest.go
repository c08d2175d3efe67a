// Package manifest reads YAML registration manifests and applies them to
// an inject.Manager, so pages can be resolved without a host application.
//
//	scripts:
//	  - url: ~/js/site.js
//	    order: 10
//	meta:
//	  - name: description
//	    content: Product catalog
//	    group: Header
//	arrays:
//	  - name: productIds
//	    values: [3, 5, 8]
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/inject/internal/errors"
	"github.com/vango-dev/inject/pkg/inject"
)

// Placement positions an entry inside its collection.
type Placement struct {
	Order int    `yaml:"order,omitempty"`
	Group string `yaml:"group,omitempty" validate:"omitempty,token"`
}

func (p Placement) options() []inject.AddOption {
	return []inject.AddOption{inject.Order(p.Order), inject.Group(p.Group)}
}

// FileEntry is a script or style file.
type FileEntry struct {
	URL       string `yaml:"url" validate:"required"`
	Placement `yaml:",inline"`
}

// MetaEntry is a meta tag. Usage defaults to "name".
type MetaEntry struct {
	Name      string `yaml:"name" validate:"required"`
	Content   string `yaml:"content"`
	Usage     string `yaml:"usage,omitempty" validate:"omitempty,oneof=name http-equiv charset"`
	Placement `yaml:",inline"`
}

// HiddenEntry is a hidden form field.
type HiddenEntry struct {
	Name      string `yaml:"name" validate:"required"`
	Value     string `yaml:"value"`
	Placement `yaml:",inline"`
}

// ScriptBlockEntry is a script block. Entries without a key are always
// emitted.
type ScriptBlockEntry struct {
	Key       string `yaml:"key,omitempty"`
	Script    string `yaml:"script" validate:"required"`
	Placement `yaml:",inline"`
}

// ArrayEntry declares a script array from converted values, a verbatim
// expression, or both.
type ArrayEntry struct {
	Name      string `yaml:"name" validate:"required,token"`
	Values    []any  `yaml:"values,omitempty" validate:"required_without=Code"`
	Code      string `yaml:"code,omitempty" validate:"required_without=Values"`
	Placement `yaml:",inline"`
}

// TemplateEntry is a client template block.
type TemplateEntry struct {
	ID        string `yaml:"id" validate:"required"`
	Content   string `yaml:"content"`
	Placement `yaml:",inline"`
}

// PlaceholderEntry is raw content.
type PlaceholderEntry struct {
	Content   string `yaml:"content" validate:"required"`
	Placement `yaml:",inline"`
}

// Manifest lists the content to register before a page is resolved.
type Manifest struct {
	Scripts      []FileEntry        `yaml:"scripts,omitempty" validate:"dive"`
	Styles       []FileEntry        `yaml:"styles,omitempty" validate:"dive"`
	Meta         []MetaEntry        `yaml:"meta,omitempty" validate:"dive"`
	Hidden       []HiddenEntry      `yaml:"hidden,omitempty" validate:"dive"`
	ScriptBlocks []ScriptBlockEntry `yaml:"scriptBlocks,omitempty" validate:"dive"`
	Arrays       []ArrayEntry       `yaml:"arrays,omitempty" validate:"dive"`
	Templates    []TemplateEntry    `yaml:"templates,omitempty" validate:"dive"`
	Placeholders []PlaceholderEntry `yaml:"placeholders,omitempty" validate:"dive"`
}

var tokenRegex = regexp.MustCompile(`^\w+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Groups and array names end up inside injection points and script
	// identifiers, so they are limited to word characters.
	_ = v.RegisterValidation("token", func(fl validator.FieldLevel) bool {
		return tokenRegex.MatchString(fl.Field().String())
	})
	return v
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E150").WithDetail(path).Wrap(err)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest. Unknown fields are rejected.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, errors.New("E150").
			WithDetail("Failed to parse YAML: " + err.Error()).
			WithSuggestion("Check the indentation and field names of the manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every entry is complete.
func (m *Manifest) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.New("E151").Wrap(err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describe(fe))
	}
	return errors.New("E151").WithDetail(strings.Join(fields, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Manifest.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_without":
		return field + " is required when " + fe.Param() + " is empty"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "token":
		return field + " may only contain letters, digits and underscores"
	}
	return field + " failed " + fe.Tag()
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.Scripts) + len(m.Styles) + len(m.Meta) + len(m.Hidden) +
		len(m.ScriptBlocks) + len(m.Arrays) + len(m.Templates) + len(m.Placeholders)
}

// Apply registers every entry with mgr. Entries that fail do not stop the
// rest; their errors are combined.
func (m *Manifest) Apply(mgr *inject.Manager) error {
	var err error
	for _, e := range m.Scripts {
		err = multierr.Append(err, mgr.AddScriptFile(e.URL, e.options()...))
	}
	for _, e := range m.Styles {
		err = multierr.Append(err, mgr.AddStyleFile(e.URL, e.options()...))
	}
	for _, e := range m.Meta {
		err = multierr.Append(err, mgr.AddMetaTagUsage(metaUsage(e.Usage), e.Name, e.Content, e.options()...))
	}
	for _, e := range m.Hidden {
		err = multierr.Append(err, mgr.AddHiddenField(e.Name, e.Value, e.options()...))
	}
	for _, e := range m.ScriptBlocks {
		err = multierr.Append(err, mgr.AddKeyedScriptBlock(e.Key, e.Script, e.options()...))
	}
	for _, e := range m.Arrays {
		if len(e.Values) > 0 {
			err = multierr.Append(err, mgr.AddArrayValues(e.Name, e.Values, e.options()...))
		}
		if e.Code != "" {
			err = multierr.Append(err, mgr.AddArrayCode(e.Name, inject.Code(e.Code), e.options()...))
		}
	}
	for _, e := range m.Templates {
		err = multierr.Append(err, mgr.AddTemplateBlock(e.ID, e.Content, e.options()...))
	}
	for _, e := range m.Placeholders {
		err = multierr.Append(err, mgr.AddPlaceholder(e.Content, e.options()...))
	}
	return err
}

func metaUsage(s string) inject.MetaUsage {
	switch s {
	case "http-equiv":
		return inject.MetaHTTPEquiv
	case "charset":
		return inject.MetaCharset
	}
	return inject.MetaName
}
