package inject

import (
	"fmt"
	"strings"

	ierrors "github.com/vango-dev/inject/internal/errors"
)

// Item is a single piece of content held by a collection.
//
// Items are identified by Key. When an item is added under a key that is
// already present, the existing item absorbs the newcomer through merge
// instead of a second entry being created.
type Item interface {
	// Key returns the identity of the item within its collection.
	Key() string

	// Render returns the markup or script emitted for the item.
	Render() string

	// Close releases resources held by the item. It is called once when
	// the owning collection is closed.
	Close() error

	merge(newer Item) error
}

// mismatch builds the error returned when two items share a key but not a type.
func mismatch(existing, newer Item) error {
	return ierrors.New("E011").
		WithDetailf("key [%s]: existing %T, new %T", existing.Key(), existing, newer)
}

// noClose provides a Close that does nothing.
type noClose struct{}

func (noClose) Close() error { return nil }

func emptyKey(what string) error {
	return ierrors.New("E010").WithDetailf("%s must not be empty", what)
}

// =============================================================================
// Script and Style Files
// =============================================================================

// ScriptFile references an external script by URL.
type ScriptFile struct {
	noClose

	URL string
}

// NewScriptFile returns a script file item for url.
func NewScriptFile(url string) (*ScriptFile, error) {
	if url == "" {
		return nil, emptyKey("script file URL")
	}
	return &ScriptFile{URL: url}, nil
}

func (f *ScriptFile) Key() string { return f.URL }

func (f *ScriptFile) Render() string {
	return `<script src="` + escapeAttr(f.URL) + `" type="text/javascript"></script>`
}

func (f *ScriptFile) merge(newer Item) error {
	if _, ok := newer.(*ScriptFile); !ok {
		return mismatch(f, newer)
	}
	return nil
}

// StyleFile references an external style sheet by URL.
type StyleFile struct {
	noClose

	URL string
}

// NewStyleFile returns a style sheet item for url.
func NewStyleFile(url string) (*StyleFile, error) {
	if url == "" {
		return nil, emptyKey("style file URL")
	}
	return &StyleFile{URL: url}, nil
}

func (f *StyleFile) Key() string { return f.URL }

func (f *StyleFile) Render() string {
	return `<link href="` + escapeAttr(f.URL) + `" type="text/css" rel="stylesheet" />`
}

func (f *StyleFile) merge(newer Item) error {
	if _, ok := newer.(*StyleFile); !ok {
		return mismatch(f, newer)
	}
	return nil
}

// =============================================================================
// Meta Tags
// =============================================================================

// MetaUsage selects the attribute a meta tag is identified by.
type MetaUsage int

const (
	MetaName MetaUsage = iota
	MetaHTTPEquiv
	MetaCharset
)

// Attr returns the HTML attribute name for the usage.
func (u MetaUsage) Attr() string {
	switch u {
	case MetaHTTPEquiv:
		return "http-equiv"
	case MetaCharset:
		return "charset"
	default:
		return "name"
	}
}

// MetaTag is a <meta> element keyed by its name.
type MetaTag struct {
	noClose

	Usage   MetaUsage
	Name    string
	Content string
}

// NewMetaTag returns a meta tag item.
func NewMetaTag(usage MetaUsage, name, content string) (*MetaTag, error) {
	if name == "" {
		return nil, emptyKey("meta tag name")
	}
	return &MetaTag{Usage: usage, Name: name, Content: content}, nil
}

func (t *MetaTag) Key() string { return t.Name }

func (t *MetaTag) Render() string {
	return `<meta ` + t.Usage.Attr() + `="` + escapeAttr(t.Name) + `" content="` + escapeAttr(t.Content) + `" />`
}

// The first meta tag registered under a name wins.
func (t *MetaTag) merge(newer Item) error {
	if _, ok := newer.(*MetaTag); !ok {
		return mismatch(t, newer)
	}
	return nil
}

// =============================================================================
// Hidden Fields
// =============================================================================

// HiddenField is an <input type="hidden"> keyed by its name.
type HiddenField struct {
	noClose

	Name  string
	Value string
}

// NewHiddenField returns a hidden field item.
func NewHiddenField(name, value string) (*HiddenField, error) {
	if name == "" {
		return nil, emptyKey("hidden field name")
	}
	return &HiddenField{Name: name, Value: value}, nil
}

func (h *HiddenField) Key() string { return h.Name }

func (h *HiddenField) Render() string {
	return `<input type="hidden" name="` + escapeAttr(h.Name) + `" value="` + escapeAttr(h.Value) + `" />`
}

// The last value registered for a name wins.
func (h *HiddenField) merge(newer Item) error {
	n, ok := newer.(*HiddenField)
	if !ok {
		return mismatch(h, newer)
	}
	h.Value = n.Value
	return nil
}

// =============================================================================
// Script Blocks
// =============================================================================

// ScriptItem is content emitted inside the shared <script> element of a
// ScriptBlocks collection. Implemented by *ScriptBlock and *ArrayDeclaration.
type ScriptItem interface {
	Item
	scriptItem()
}

// ScriptBlock is a fragment of inline script. An empty key asks the
// collection to assign a unique one so the block is always emitted.
type ScriptBlock struct {
	noClose

	key    string
	Script string
}

// NewScriptBlock returns a script block. The script must not be wrapped in
// a <script> element.
func NewScriptBlock(key, script string) (*ScriptBlock, error) {
	if strings.HasPrefix(script, "<") {
		return nil, ierrors.New("E012").WithDetailf("script begins with %q", firstLine(script))
	}
	return &ScriptBlock{key: key, Script: script}, nil
}

func (b *ScriptBlock) Key() string    { return b.key }
func (b *ScriptBlock) Render() string { return b.Script }
func (b *ScriptBlock) scriptItem()    {}

// A later block under the same key replaces the script body in place.
func (b *ScriptBlock) merge(newer Item) error {
	n, ok := newer.(*ScriptBlock)
	if !ok {
		return mismatch(b, newer)
	}
	b.Script = n.Script
	return nil
}

// ArrayDeclaration declares a JavaScript array variable. Adding another
// declaration with the same name appends its elements.
type ArrayDeclaration struct {
	noClose

	Name     string
	Elements []string
}

// NewArrayDeclaration returns a declaration whose elements are already
// converted to script literals.
func NewArrayDeclaration(name string, elements ...string) (*ArrayDeclaration, error) {
	if name == "" {
		return nil, emptyKey("array name")
	}
	return &ArrayDeclaration{Name: name, Elements: elements}, nil
}

func (a *ArrayDeclaration) Key() string { return a.Name }

func (a *ArrayDeclaration) Render() string {
	return "var " + a.Name + " = [" + strings.Join(a.Elements, ", ") + "];"
}

func (a *ArrayDeclaration) scriptItem() {}

func (a *ArrayDeclaration) merge(newer Item) error {
	n, ok := newer.(*ArrayDeclaration)
	if !ok {
		return mismatch(a, newer)
	}
	a.Elements = append(a.Elements, n.Elements...)
	return nil
}

// =============================================================================
// Template Blocks
// =============================================================================

// TemplateBlock is a client-side template emitted as a typed <script>
// element. The MIME type comes from the owning collection's engine.
type TemplateBlock struct {
	noClose

	ID      string
	Content string

	engine TemplateEngine
}

// NewTemplateBlock returns a template block item.
func NewTemplateBlock(id, content string) (*TemplateBlock, error) {
	if id == "" {
		return nil, emptyKey("template id")
	}
	return &TemplateBlock{ID: id, Content: content}, nil
}

func (t *TemplateBlock) Key() string { return t.ID }

func (t *TemplateBlock) Render() string {
	return fmt.Sprintf("<script id=\"%s\" type=\"%s\" >\r\n%s\r\n</script>",
		escapeAttr(t.ID), t.engine.MIMEType(), t.Content)
}

func (t *TemplateBlock) merge(newer Item) error {
	if _, ok := newer.(*TemplateBlock); !ok {
		return mismatch(t, newer)
	}
	return nil
}

// =============================================================================
// Placeholders
// =============================================================================

// Placeholder is raw content emitted verbatim. It is keyed by the content
// itself, so identical text is emitted once.
type Placeholder struct {
	noClose

	Content string
}

// NewPlaceholder returns a placeholder item.
func NewPlaceholder(content string) (*Placeholder, error) {
	if content == "" {
		return nil, emptyKey("placeholder content")
	}
	return &Placeholder{Content: content}, nil
}

func (p *Placeholder) Key() string    { return p.Content }
func (p *Placeholder) Render() string { return p.Content }

func (p *Placeholder) merge(newer Item) error {
	if _, ok := newer.(*Placeholder); !ok {
		return mismatch(p, newer)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
