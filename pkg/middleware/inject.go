package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	ierrors "github.com/vango-dev/inject/internal/errors"
	"github.com/vango-dev/inject/internal/htmlmin"
	"github.com/vango-dev/inject/pkg/inject"
)

// InjectConfig configures the Inject middleware.
type InjectConfig struct {
	// Manager is the template for each request's Manager. Its Factory is
	// shared between requests and must not be modified while serving.
	Manager inject.Config

	// Minify minifies HTML responses after resolution.
	Minify bool

	// ErrorHandler writes the response when resolution or reporting fails.
	// Default: 500 with the error code.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

	// OnError is called with every resolution failure.
	OnError func(err error)

	// Logger receives resolution failures. Nil means slog.Default().
	Logger *slog.Logger
}

// InjectOption configures the Inject middleware.
type InjectOption func(*InjectConfig)

// WithManagerConfig sets the per-request Manager configuration.
func WithManagerConfig(cfg inject.Config) InjectOption {
	return func(c *InjectConfig) {
		c.Manager = cfg
	}
}

// WithObserver adds an observer to the per-request Manager.
func WithObserver(o inject.Observer) InjectOption {
	return func(c *InjectConfig) {
		c.Manager.Observer = inject.Observers(c.Manager.Observer, o)
	}
}

// WithMetrics records resolutions and failures in m.
func WithMetrics(m *Metrics) InjectOption {
	return func(c *InjectConfig) {
		WithObserver(m)(c)
		prev := c.OnError
		c.OnError = func(err error) {
			if prev != nil {
				prev(err)
			}
			m.RecordError(err)
		}
	}
}

// WithMinify enables HTML minification of resolved responses.
func WithMinify(minify bool) InjectOption {
	return func(c *InjectConfig) {
		c.Minify = minify
	}
}

// WithErrorHandler sets the handler used when resolution fails.
func WithErrorHandler(h func(w http.ResponseWriter, r *http.Request, err error)) InjectOption {
	return func(c *InjectConfig) {
		c.ErrorHandler = h
	}
}

// WithLogger sets the logger for the middleware and each Manager.
func WithLogger(logger *slog.Logger) InjectOption {
	return func(c *InjectConfig) {
		c.Logger = logger
		c.Manager.Logger = logger
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	msg := http.StatusText(http.StatusInternalServerError)
	if code := ierrors.Code(err); code != "" {
		msg += " (" + code + ")"
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

type managerKey struct{}

// NewContext returns a copy of ctx carrying m.
func NewContext(ctx context.Context, m *inject.Manager) context.Context {
	return context.WithValue(ctx, managerKey{}, m)
}

// FromContext returns the Manager of the current request, or nil outside
// the Inject middleware.
func FromContext(ctx context.Context) *inject.Manager {
	m, _ := ctx.Value(managerKey{}).(*inject.Manager)
	return m
}

// Inject captures the response of the wrapped handler and resolves its
// injection points before it is sent.
//
// The response is buffered in full. Status and headers set by the handler
// are forwarded; Content-Length is recomputed. Range requests are served
// the full page. Non-HTML responses are passed through unchanged.
func Inject(opts ...InjectOption) func(http.Handler) http.Handler {
	config := InjectConfig{ErrorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(&config)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var page bytes.Buffer
			m, err := inject.New(r.Context(), &page, config.Manager)
			if err != nil {
				config.ErrorHandler(w, r, err)
				return
			}
			defer m.Close()

			// Markers can only be resolved against the complete page.
			inner := r.Clone(NewContext(r.Context(), m))
			inner.Header.Del("Range")
			inner.Header.Del("If-Range")

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, inner)

			if !isHTML(w.Header().Get("Content-Type")) {
				w.WriteHeader(cw.status)
				_, _ = w.Write(cw.body.Bytes())
				return
			}

			if _, err := cw.body.WriteTo(m.Writer()); err != nil {
				config.ErrorHandler(w, r, err)
				return
			}
			if err := resolve(m); err != nil {
				logger.Error("inject resolution failed",
					"path", r.URL.Path,
					"error", err,
				)
				if config.OnError != nil {
					config.OnError(err)
				}
				config.ErrorHandler(w, r, err)
				return
			}

			out := page.Bytes()
			if config.Minify {
				if min, err := htmlmin.Bytes(out); err != nil {
					logger.Warn("minify failed", "path", r.URL.Path, "error", err)
				} else {
					out = min
				}
			}

			w.Header().Set("Content-Length", strconv.Itoa(len(out)))
			w.WriteHeader(cw.status)
			_, _ = w.Write(out)
		})
	}
}

func resolve(m *inject.Manager) error {
	if err := m.Resolve(); err != nil {
		return err
	}
	return m.ReportErrors()
}

// isHTML reports whether a response is HTML. Responses without a
// Content-Type are sniffed by net/http as HTML when written, so they count.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "text/html"
}

// captureWriter buffers the body and status of a response.
type captureWriter struct {
	http.ResponseWriter
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func (c *captureWriter) WriteHeader(status int) {
	if c.wroteHeader {
		return
	}
	c.wroteHeader = true
	c.status = status
}

func (c *captureWriter) Write(b []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}
	if c.Header().Get("Content-Type") == "" {
		c.Header().Set("Content-Type", http.DetectContentType(b))
	}
	return c.body.Write(b)
}
