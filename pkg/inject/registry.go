package inject

import (
	"slices"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/cases"

	ierrors "github.com/vango-dev/inject/internal/errors"
)

// Layout wraps the rendered items of a registry. Only script block
// collections use one.
type Layout struct {
	Prefix string
	Suffix string
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	layout Layout
	fold   bool
}

// WithLayout wraps non-empty output in prefix and suffix.
func WithLayout(prefix, suffix string) RegistryOption {
	return func(c *registryConfig) {
		c.layout = Layout{Prefix: prefix, Suffix: suffix}
	}
}

// WithFoldedKeys makes key comparison case-insensitive.
func WithFoldedKeys() RegistryOption {
	return func(c *registryConfig) {
		c.fold = true
	}
}

// Registry holds content items unique by key and ordered by
// (order number, insertion sequence).
//
// Two views are maintained over the same items: a key index used for
// uniqueness and lookup, and per-order buckets used for rendering.
type Registry[T Item] struct {
	layout Layout
	fold   bool
	caser  cases.Caser

	byKey   map[string]T
	buckets map[int][]T
	orders  []int // ascending, one entry per non-empty bucket
}

// NewRegistry creates an empty registry.
func NewRegistry[T Item](opts ...RegistryOption) *Registry[T] {
	var cfg registryConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &Registry[T]{
		layout:  cfg.layout,
		fold:    cfg.fold,
		byKey:   make(map[string]T),
		buckets: make(map[int][]T),
	}
	if r.fold {
		r.caser = cases.Fold()
	}
	return r
}

func (r *Registry[T]) normalize(key string) string {
	if r.fold {
		return r.caser.String(key)
	}
	return key
}

// Add inserts item under order. When an item with the same key exists,
// the existing item merges the new one and the order argument is ignored.
func (r *Registry[T]) Add(item T, order int) error {
	key := item.Key()
	if key == "" {
		return ierrors.New("E010").WithDetail("item key must not be empty")
	}

	k := r.normalize(key)
	if existing, ok := r.byKey[k]; ok {
		return existing.merge(item)
	}

	r.byKey[k] = item
	bucket, ok := r.buckets[order]
	if !ok {
		i, _ := slices.BinarySearch(r.orders, order)
		r.orders = slices.Insert(r.orders, i, order)
	}
	r.buckets[order] = append(bucket, item)
	return nil
}

// Contains reports whether key is registered.
func (r *Registry[T]) Contains(key string) bool {
	_, ok := r.byKey[r.normalize(key)]
	return ok
}

// Get returns the item registered under key.
func (r *Registry[T]) Get(key string) (T, bool) {
	item, ok := r.byKey[r.normalize(key)]
	return item, ok
}

// CountKeys returns the number of unique keys.
func (r *Registry[T]) CountKeys() int {
	return len(r.byKey)
}

// Items returns the items in render order.
func (r *Registry[T]) Items() []T {
	items := make([]T, 0, len(r.byKey))
	for _, order := range r.orders {
		items = append(items, r.buckets[order]...)
	}
	return items
}

// Render returns the layout prefix, every item on its own line and the
// layout suffix, with trailing line breaks removed. An empty registry
// renders as "".
func (r *Registry[T]) Render() string {
	if len(r.byKey) == 0 {
		return ""
	}

	var sb strings.Builder
	if r.layout.Prefix != "" {
		sb.WriteString(r.layout.Prefix)
		sb.WriteByte('\n')
	}
	for _, order := range r.orders {
		for _, item := range r.buckets[order] {
			sb.WriteString(item.Render())
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(r.layout.Suffix)

	return strings.TrimRight(sb.String(), "\r\n")
}

// Close releases every item and empties the registry.
func (r *Registry[T]) Close() error {
	var err error
	for _, item := range r.Items() {
		err = multierr.Append(err, item.Close())
	}
	clear(r.byKey)
	clear(r.buckets)
	r.orders = r.orders[:0]
	return err
}
