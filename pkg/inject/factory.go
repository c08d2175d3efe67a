package inject

import (
	"slices"

	ierrors "github.com/vango-dev/inject/internal/errors"
)

// Constructor creates a new, empty collection.
type Constructor func() Collection

// Factory maps each Kind to the constructor used for new collections.
type Factory struct {
	ctors map[Kind]Constructor
}

// NewFactory returns a factory with the built-in collections registered
// for every kind except TemplateBlocks, which needs an engine choice.
// Use RegisterTemplateEngine to enable template blocks.
func NewFactory() *Factory {
	f := &Factory{ctors: make(map[Kind]Constructor)}
	f.ctors[ScriptFiles] = func() Collection { return NewScriptFiles() }
	f.ctors[StyleFiles] = func() Collection { return NewStyleFiles() }
	f.ctors[MetaTags] = func() Collection { return NewMetaTags() }
	f.ctors[HiddenFields] = func() Collection { return NewHiddenFields() }
	f.ctors[ScriptBlocks] = func() Collection { return NewScriptBlocks() }
	f.ctors[Placeholders] = func() Collection { return NewPlaceholders() }
	return f
}

// Register maps kind to ctor, replacing any previous mapping. The
// constructor is probed once and must produce a collection that reports
// kind and implements the kind's injector interface.
func (f *Factory) Register(kind Kind, ctor Constructor) error {
	if !kind.Valid() {
		return ierrors.New("E003").WithDetailf("unknown kind %s", kind)
	}
	if ctor == nil {
		return ierrors.New("E003").WithDetailf("nil constructor for %s", kind)
	}

	probe := ctor()
	if !kind.satisfiedBy(probe) {
		return ierrors.New("E003").WithDetailf("%T does not implement %s", probe, kind)
	}
	if err := probe.Close(); err != nil {
		return ierrors.New("E003").WithDetailf("probe for %s", kind).Wrap(err)
	}

	f.ctors[kind] = ctor
	return nil
}

// RegisterTemplateEngine registers the built-in TemplateBlocks collection
// for engine.
func (f *Factory) RegisterTemplateEngine(engine TemplateEngine) {
	f.ctors[TemplateBlocks] = func() Collection { return NewTemplateBlocks(engine) }
}

// Registered reports whether kind has a constructor.
func (f *Factory) Registered(kind Kind) bool {
	_, ok := f.ctors[kind]
	return ok
}

// Kinds returns the registered kinds in ascending order.
func (f *Factory) Kinds() []Kind {
	kinds := make([]Kind, 0, len(f.ctors))
	for k := range f.ctors {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Lookup creates a collection for kind, reporting false when the kind is
// not registered.
func (f *Factory) Lookup(kind Kind) (Collection, bool) {
	ctor, ok := f.ctors[kind]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Create creates a collection for kind or returns an E001 error when the
// kind is not registered.
func (f *Factory) Create(kind Kind) (Collection, error) {
	c, ok := f.Lookup(kind)
	if !ok {
		return nil, ierrors.New("E001").WithDetailf("no collection registered for %s", kind).
			WithSuggestion("Register a constructor with Factory.Register before requesting this kind")
	}
	return c, nil
}
