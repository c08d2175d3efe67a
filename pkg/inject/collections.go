package inject

import (
	"context"
	"strconv"
)

// Collection is a per-kind, per-group container of content items.
type Collection interface {
	// Kind returns the content kind the collection serves.
	Kind() Kind

	// Render returns the markup that replaces the collection's injection
	// point. ctx is the request-scoped context of the owning Manager.
	Render(ctx context.Context) string

	// CountKeys returns the number of unique items.
	CountKeys() int

	// Close releases the collection's items.
	Close() error
}

// ScriptFilesInjector is the contract of the ScriptFiles kind.
type ScriptFilesInjector interface {
	Collection
	Add(item *ScriptFile, order int) error
	Contains(url string) bool
}

// StyleFilesInjector is the contract of the StyleFiles kind.
type StyleFilesInjector interface {
	Collection
	Add(item *StyleFile, order int) error
	Contains(url string) bool
}

// MetaTagsInjector is the contract of the MetaTags kind.
type MetaTagsInjector interface {
	Collection
	Add(item *MetaTag, order int) error
	Contains(name string) bool
}

// HiddenFieldsInjector is the contract of the HiddenFields kind.
type HiddenFieldsInjector interface {
	Collection
	Add(item *HiddenField, order int) error
	Contains(name string) bool
}

// ScriptBlocksInjector is the contract of the ScriptBlocks kind.
type ScriptBlocksInjector interface {
	Collection
	Add(item ScriptItem, order int) error
	Contains(key string) bool
}

// TemplateBlocksInjector is the contract of the TemplateBlocks kind.
type TemplateBlocksInjector interface {
	Collection
	Add(item *TemplateBlock, order int) error
	Contains(id string) bool
	Engine() TemplateEngine
}

// PlaceholdersInjector is the contract of the Placeholders kind.
type PlaceholdersInjector interface {
	Collection
	Add(item *Placeholder, order int) error
	Contains(content string) bool
}

// keyed adapts a Registry to the Collection interface.
type keyed[T Item] struct {
	kind Kind
	reg  *Registry[T]
}

func newKeyed[T Item](kind Kind, opts ...RegistryOption) keyed[T] {
	return keyed[T]{kind: kind, reg: NewRegistry[T](opts...)}
}

func (c *keyed[T]) Kind() Kind                    { return c.kind }
func (c *keyed[T]) Render(context.Context) string { return c.reg.Render() }
func (c *keyed[T]) CountKeys() int                { return c.reg.CountKeys() }
func (c *keyed[T]) Contains(key string) bool      { return c.reg.Contains(key) }
func (c *keyed[T]) Get(key string) (T, bool)      { return c.reg.Get(key) }
func (c *keyed[T]) Items() []T                    { return c.reg.Items() }
func (c *keyed[T]) Close() error                  { return c.reg.Close() }
func (c *keyed[T]) Add(item T, order int) error   { return c.reg.Add(item, order) }

// ScriptFileCollection renders <script src> elements. URLs compare
// case-insensitively.
type ScriptFileCollection struct {
	keyed[*ScriptFile]
}

func NewScriptFiles() *ScriptFileCollection {
	return &ScriptFileCollection{newKeyed[*ScriptFile](ScriptFiles, WithFoldedKeys())}
}

// StyleFileCollection renders <link rel="stylesheet"> elements. URLs
// compare case-insensitively.
type StyleFileCollection struct {
	keyed[*StyleFile]
}

func NewStyleFiles() *StyleFileCollection {
	return &StyleFileCollection{newKeyed[*StyleFile](StyleFiles, WithFoldedKeys())}
}

// MetaTagCollection renders <meta> elements. The first tag for a name wins.
type MetaTagCollection struct {
	keyed[*MetaTag]
}

func NewMetaTags() *MetaTagCollection {
	return &MetaTagCollection{newKeyed[*MetaTag](MetaTags, WithFoldedKeys())}
}

// HiddenFieldCollection renders hidden inputs. The last value for a name wins.
type HiddenFieldCollection struct {
	keyed[*HiddenField]
}

func NewHiddenFields() *HiddenFieldCollection {
	return &HiddenFieldCollection{newKeyed[*HiddenField](HiddenFields, WithFoldedKeys())}
}

const (
	scriptOpenTag  = `<script type="text/javascript">`
	scriptCloseTag = `</script>`

	autoKeyPrefix = "UNQ"
)

// ScriptBlockCollection renders script blocks and array declarations
// inside a single <script> element.
type ScriptBlockCollection struct {
	keyed[ScriptItem]
	nextID int
}

func NewScriptBlocks() *ScriptBlockCollection {
	return &ScriptBlockCollection{
		keyed:  newKeyed[ScriptItem](ScriptBlocks, WithLayout(scriptOpenTag, scriptCloseTag)),
		nextID: 1,
	}
}

// Add registers item. A script block without a key receives a unique one
// so that it is never merged with another block.
func (c *ScriptBlockCollection) Add(item ScriptItem, order int) error {
	if b, ok := item.(*ScriptBlock); ok && b.key == "" {
		b.key = autoKeyPrefix + strconv.Itoa(c.nextID)
		c.nextID++
	}
	return c.keyed.Add(item, order)
}

// TemplateBlockCollection renders client templates for one engine.
type TemplateBlockCollection struct {
	keyed[*TemplateBlock]
	engine TemplateEngine
}

func NewTemplateBlocks(engine TemplateEngine) *TemplateBlockCollection {
	return &TemplateBlockCollection{
		keyed:  newKeyed[*TemplateBlock](TemplateBlocks),
		engine: engine,
	}
}

func (c *TemplateBlockCollection) Engine() TemplateEngine { return c.engine }

// Add registers item and binds it to the collection's engine.
func (c *TemplateBlockCollection) Add(item *TemplateBlock, order int) error {
	item.engine = c.engine
	return c.keyed.Add(item, order)
}

// PlaceholderCollection renders raw content, one entry per distinct text.
type PlaceholderCollection struct {
	keyed[*Placeholder]
}

func NewPlaceholders() *PlaceholderCollection {
	return &PlaceholderCollection{newKeyed[*Placeholder](Placeholders)}
}
