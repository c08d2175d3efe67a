package inject

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.uber.org/multierr"

	ierrors "github.com/vango-dev/inject/internal/errors"
	"github.com/vango-dev/inject/pkg/assets"
)

// Config configures a Manager.
type Config struct {
	// Factory creates collections on first access.
	// Default: NewFactory()
	Factory *Factory

	// Grammar recognizes injection points.
	// Default: DefaultGrammar()
	Grammar *Grammar

	// ReportMode is used by ReportErrors.
	// Default: ReportError
	ReportMode ReportMode

	// RawArrayStrings disables HTML encoding of strings passed to
	// AddArrayValue. Quotes are still escaped.
	RawArrayStrings bool

	// Resolver expands application-relative file URLs. Nil leaves URLs as
	// given.
	Resolver assets.Resolver

	// Logger receives diagnostics. Nil means slog.Default().
	Logger *slog.Logger

	// Observer is notified after each resolution.
	Observer Observer
}

// ResolveStats describes one resolution pass.
type ResolveStats struct {
	// Points is the number of injection points recognized.
	Points int
	// Filled is the number of injection points matched to a collection.
	Filled int
	// Orphans lists collections no injection point referenced.
	Orphans     []Point
	InputBytes  int
	OutputBytes int
	Duration    time.Duration
}

// Observer receives resolution statistics.
type Observer interface {
	ObserveResolve(ctx context.Context, stats ResolveStats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, stats ResolveStats)

func (f ObserverFunc) ObserveResolve(ctx context.Context, stats ResolveStats) {
	f(ctx, stats)
}

// instance is a collection created for one (kind, group) pair.
type instance struct {
	point Point
	coll  Collection
}

// Manager coordinates one render pass: it hands out collections, captures
// the rendered page and rewrites its injection points.
//
// The Manager starts collecting. The first Resolve on a non-empty capture
// moves it to resolved, after which Resolve does nothing.
type Manager struct {
	ctx      context.Context
	out      io.Writer
	factory  *Factory
	grammar  *Grammar
	mode     ReportMode
	encode   bool
	resolver assets.Resolver
	logger   *slog.Logger
	observer Observer

	capture   *bytes.Buffer
	instances []*instance
	remaining []*instance // nil until a resolution snapshot is taken
	orphans   []Point // unmatched points captured by Close
	resolved  bool
	closed    bool
}

// New creates a Manager that writes the resolved page to out.
func New(ctx context.Context, out io.Writer, cfg Config) (*Manager, error) {
	if out == nil {
		return nil, ierrors.New("E004")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := &Manager{
		ctx:      ctx,
		out:      out,
		factory:  cfg.Factory,
		grammar:  cfg.Grammar,
		mode:     cfg.ReportMode,
		encode:   !cfg.RawArrayStrings,
		resolver: cfg.Resolver,
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}
	if m.factory == nil {
		m.factory = NewFactory()
	}
	if m.grammar == nil {
		m.grammar = DefaultGrammar()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m, nil
}

// Context returns the request-scoped context passed to New.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Writer returns the capture buffer the page must be rendered into. The
// buffer is created on the first call. After Close every write fails with
// ErrClosed.
func (m *Manager) Writer() io.Writer {
	if m.closed {
		return closedWriter{}
	}
	if m.capture == nil {
		m.capture = new(bytes.Buffer)
	}
	return m.capture
}

// Marker returns an injection point for kind and group in the Manager's
// grammar.
func (m *Manager) Marker(kind Kind, group string) string {
	return m.grammar.Marker(kind, group)
}

// Access returns the collection for kind and group, creating it on first
// use. Group names compare case-insensitively; "" is the default group.
func (m *Manager) Access(kind Kind, group string) (Collection, error) {
	if m.closed {
		return nil, ierrors.New("E021")
	}
	for _, inst := range m.instances {
		if inst.point.Kind == kind && strings.EqualFold(inst.point.Group, group) {
			return inst.coll, nil
		}
	}

	coll, err := m.factory.Create(kind)
	if err != nil {
		return nil, err
	}
	m.instances = append(m.instances, &instance{
		point: Point{Kind: kind, Group: group},
		coll:  coll,
	})
	m.logger.Debug("collection created", "kind", kind.String(), "group", group)
	return coll, nil
}

// accessAs returns the collection for kind and group asserted to T.
func accessAs[T Collection](m *Manager, kind Kind, group string) (T, error) {
	var zero T
	c, err := m.Access(kind, group)
	if err != nil {
		return zero, err
	}
	t, ok := c.(T)
	if !ok {
		return zero, ierrors.New("E003").WithDetailf("%T does not implement %s", c, kind)
	}
	return t, nil
}

// ScriptFilesIn returns the ScriptFiles collection of group.
func (m *Manager) ScriptFilesIn(group string) (ScriptFilesInjector, error) {
	return accessAs[ScriptFilesInjector](m, ScriptFiles, group)
}

// StyleFilesIn returns the StyleFiles collection of group.
func (m *Manager) StyleFilesIn(group string) (StyleFilesInjector, error) {
	return accessAs[StyleFilesInjector](m, StyleFiles, group)
}

// MetaTagsIn returns the MetaTags collection of group.
func (m *Manager) MetaTagsIn(group string) (MetaTagsInjector, error) {
	return accessAs[MetaTagsInjector](m, MetaTags, group)
}

// HiddenFieldsIn returns the HiddenFields collection of group.
func (m *Manager) HiddenFieldsIn(group string) (HiddenFieldsInjector, error) {
	return accessAs[HiddenFieldsInjector](m, HiddenFields, group)
}

// ScriptBlocksIn returns the ScriptBlocks collection of group.
func (m *Manager) ScriptBlocksIn(group string) (ScriptBlocksInjector, error) {
	return accessAs[ScriptBlocksInjector](m, ScriptBlocks, group)
}

// TemplateBlocksIn returns the TemplateBlocks collection of group.
func (m *Manager) TemplateBlocksIn(group string) (TemplateBlocksInjector, error) {
	return accessAs[TemplateBlocksInjector](m, TemplateBlocks, group)
}

// PlaceholdersIn returns the Placeholders collection of group.
func (m *Manager) PlaceholdersIn(group string) (PlaceholdersInjector, error) {
	return accessAs[PlaceholdersInjector](m, Placeholders, group)
}

// Points returns the (kind, group) pairs of every collection created so
// far, in creation order.
func (m *Manager) Points() []Point {
	points := make([]Point, len(m.instances))
	for i, inst := range m.instances {
		points[i] = inst.point
	}
	return points
}

// Resolved reports whether the capture has been rewritten and written out.
func (m *Manager) Resolved() bool {
	return m.resolved
}

// Resolve rewrites the captured page and writes it to the output writer.
//
// Every injection point is replaced by the rendered collection it names,
// or by nothing when no such collection exists. Unrecognized comments are
// left alone. Resolve returns E002 if Writer was never called. An empty
// capture is left unresolved. After the first successful pass Resolve
// does nothing.
func (m *Manager) Resolve() error {
	if m.closed {
		return ierrors.New("E021")
	}
	if m.capture == nil {
		return ierrors.New("E002").
			WithSuggestion("Render the page into Manager.Writer() before resolving")
	}
	if m.resolved || m.capture.Len() == 0 {
		return nil
	}

	start := time.Now()
	input := m.capture.String()
	m.remaining = slices.Clone(m.instances)
	output, points, filled := m.rewrite(input)

	// Mark resolved before writing so a failed write is never retried
	// into a partially written response.
	m.resolved = true
	m.capture.Reset()

	if _, err := io.WriteString(m.out, output); err != nil {
		return ierrors.New("E161").Wrap(err)
	}

	stats := ResolveStats{
		Points:      points,
		Filled:      filled,
		Orphans:     m.Remaining(),
		InputBytes:  len(input),
		OutputBytes: len(output),
		Duration:    time.Since(start),
	}
	m.logger.Debug("page resolved",
		"points", stats.Points,
		"filled", stats.Filled,
		"orphans", len(stats.Orphans),
		"duration", stats.Duration,
	)
	if m.observer != nil {
		m.observer.ObserveResolve(m.ctx, stats)
	}
	return nil
}

// ResolveString rewrites the injection points of content without touching
// the capture buffer or the output writer. Collections matched here are
// removed from the set ReportErrors reports.
func (m *Manager) ResolveString(content string) string {
	if m.remaining == nil {
		m.remaining = slices.Clone(m.instances)
	}
	out, _, _ := m.rewrite(content)
	return out
}

func (m *Manager) rewrite(content string) (string, int, int) {
	filled := 0
	out, points := m.grammar.Replace(content, func(tok Token) string {
		inst := m.match(tok)
		if inst == nil {
			return ""
		}
		filled++
		m.remaining = slices.DeleteFunc(m.remaining, func(r *instance) bool { return r == inst })
		return inst.coll.Render(m.ctx)
	})
	return out, points, filled
}

// match finds the collection for tok. The normalized kind name must match
// exactly; the group compares case-insensitively.
func (m *Manager) match(tok Token) *instance {
	name := NormalizeName(tok.Name)
	for _, inst := range m.instances {
		if inst.point.Kind.TokenName() == name && strings.EqualFold(inst.point.Group, tok.Group) {
			return inst
		}
	}
	return nil
}

// Remaining returns the collections that were accessed but not matched by
// any injection point during resolution.
func (m *Manager) Remaining() []Point {
	if m.closed {
		return slices.Clone(m.orphans)
	}
	var points []Point
	for _, inst := range m.remaining {
		points = append(points, inst.point)
	}
	return points
}

// ReportErrors reports unmatched content using the configured ReportMode.
func (m *Manager) ReportErrors() error {
	return m.ReportErrorsWith(m.mode)
}

// ReportErrorsWith reports unmatched content using mode.
func (m *Manager) ReportErrorsWith(mode ReportMode) error {
	points := m.Remaining()
	if len(points) == 0 || mode == ReportNone {
		return nil
	}

	err := orphanError(points)
	if mode == ReportLog {
		m.logger.Warn(err.Message, "points", joinPoints(points))
		return nil
	}
	return err
}

// Close resolves a pending capture and releases every collection. It is
// safe to call more than once; only the first call does any work.
// Unmatched points stay available to ReportErrors.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}

	var err error
	if m.capture != nil {
		err = m.Resolve()
	}

	m.orphans = m.Remaining()
	for _, inst := range m.instances {
		err = multierr.Append(err, inst.coll.Close())
	}
	m.closed = true
	m.capture = nil
	m.remaining = nil
	return err
}

// closedWriter rejects writes to a closed Manager.
type closedWriter struct{}

func (closedWriter) Write([]byte) (int, error) {
	return 0, ierrors.New("E021")
}

// Observers fans one resolution out to several observers. Nil entries are
// skipped.
func Observers(observers ...Observer) Observer {
	return ObserverFunc(func(ctx context.Context, stats ResolveStats) {
		for _, o := range observers {
			if o != nil {
				o.ObserveResolve(ctx, stats)
			}
		}
	})
}
