package middleware

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/inject/pkg/inject"
)

const layout = `<html><head><!-- Marker="StyleFiles" --></head><body>%s<!-- Marker="ScriptFiles" --></body></html>`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(opts ...InjectOption) *chi.Mux {
	r := chi.NewRouter()
	r.Use(Inject(append([]InjectOption{WithLogger(quietLogger())}, opts...)...))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		m := FromContext(r.Context())
		_ = m.AddStyleFile("/site.css")
		_ = m.AddScriptFile("/home.js")
		fmt.Fprintf(w, layout, "<p>home</p>")
	})
	r.Get("/orphan", func(w http.ResponseWriter, r *http.Request) {
		m := FromContext(r.Context())
		_ = m.AddHiddenField("token", "x")
		fmt.Fprintf(w, layout, "<p>orphan</p>")
	})
	r.Get("/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"marker":"<!-- Marker=\"ScriptFiles\" -->"}`)
	})
	r.Get("/created", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		_ = FromContext(r.Context()).AddPlaceholder("done")
		io.WriteString(w, `<!-- Marker="Placeholders" -->`)
	})
	r.Get("/static", func(w http.ResponseWriter, r *http.Request) {
		_ = FromContext(r.Context()).AddScriptFile("/static.js")
		page := fmt.Sprintf(layout, "<p>static</p>")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(w, r, "static.html", time.Time{}, strings.NewReader(page))
	})
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestInjectResolvesPage(t *testing.T) {
	rec := get(t, newRouter(), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := `<html><head><link href="/site.css" type="text/css" rel="stylesheet" /></head>` +
		`<body><p>home</p><script src="/home.js" type="text/javascript"></script></body></html>`
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
	if got := rec.Header().Get("Content-Length"); got != fmt.Sprint(len(want)) {
		t.Errorf("Content-Length = %q, want %d", got, len(want))
	}
}

func TestInjectPreservesStatus(t *testing.T) {
	rec := get(t, newRouter(), "/created")

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if rec.Body.String() != "done" {
		t.Errorf("body = %q, want done", rec.Body.String())
	}
}

func TestInjectIgnoresRange(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
	}{
		{"range", map[string]string{"Range": "bytes=0-20"}},
		{"if-range", map[string]string{"Range": "bytes=5-", "If-Range": `"v1"`}},
	}
	want := `<html><head></head><body><p>static</p>` +
		`<script src="/static.js" type="text/javascript"></script></body></html>`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/static", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200; body %q", rec.Code, rec.Body.String())
			}
			if got := rec.Body.String(); got != want {
				t.Errorf("body = %q, want %q", got, want)
			}
			if got := rec.Header().Get("Content-Range"); got != "" {
				t.Errorf("Content-Range = %q, want none", got)
			}
			if got := req.Header.Get("Range"); got == "" {
				t.Error("caller's request lost its Range header")
			}
		})
	}
}

func TestInjectPassesThroughNonHTML(t *testing.T) {
	rec := get(t, newRouter(), "/json")

	if !strings.Contains(rec.Body.String(), `Marker=\"ScriptFiles\"`) {
		t.Errorf("non-HTML body was rewritten: %q", rec.Body.String())
	}
}

func TestInjectReportsUnmatchedContent(t *testing.T) {
	t.Run("error mode fails the request", func(t *testing.T) {
		h := newRouter(WithManagerConfig(inject.Config{ReportMode: inject.ReportError}))

		rec := get(t, h, "/orphan")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "E020") {
			t.Errorf("body = %q, want error code", rec.Body.String())
		}
	})

	t.Run("log mode serves the page", func(t *testing.T) {
		var logs bytes.Buffer
		h := newRouter(
			WithManagerConfig(inject.Config{ReportMode: inject.ReportLog}),
			WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		)

		rec := get(t, h, "/orphan")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(logs.String(), "HiddenFields") {
			t.Errorf("log = %q, want unmatched point", logs.String())
		}
	})
}

func TestInjectErrorHooks(t *testing.T) {
	var got error
	h := newRouter(
		WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, "custom", http.StatusTeapot)
		}),
	)
	wrapped := Inject(
		WithLogger(quietLogger()),
		func(c *InjectConfig) { c.OnError = func(err error) { got = err } },
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = FromContext(r.Context()).AddMetaTag("d", "x")
		io.WriteString(w, "<p>no points</p>")
	}))

	rec := get(t, wrapped, "/")
	if rec.Code != http.StatusInternalServerError || got == nil {
		t.Errorf("status = %d, OnError = %v", rec.Code, got)
	}

	rec = get(t, h, "/orphan")
	if rec.Code != http.StatusTeapot {
		t.Errorf("custom error handler status = %d, want 418", rec.Code)
	}
}

func TestInjectMinify(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Inject(WithMinify(true), WithLogger(quietLogger())))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_ = FromContext(r.Context()).AddMetaTag("description", "home")
		io.WriteString(w, "<html>\n  <head>\n    <!-- Marker=\"MetaTags\" -->\n  </head>\n  <body>\n    <p>hi</p>\n  </body>\n</html>\n")
	})

	rec := get(t, r, "/")
	body := rec.Body.String()
	if !strings.Contains(body, "description") {
		t.Errorf("minified body lost injected content: %q", body)
	}
	if strings.Contains(body, "\n  ") {
		t.Errorf("body was not minified: %q", body)
	}
}

func TestFromContextOutsideMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if FromContext(req.Context()) != nil {
		t.Error("FromContext() outside middleware should be nil")
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"", true},
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"TEXT/HTML", true},
		{"application/json", false},
		{"text/plain; charset=utf-8", false},
		{"application/xhtml+xml", false},
	}

	for _, tt := range tests {
		if got := isHTML(tt.contentType); got != tt.want {
			t.Errorf("isHTML(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}
