package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/inject/internal/config"
	"github.com/vango-dev/inject/internal/manifest"
	"github.com/vango-dev/inject/pkg/inject"
	"github.com/vango-dev/inject/pkg/middleware"
)

// manifestExt is the extension of the manifest that sits next to a page.
const manifestExt = ".yaml"

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pages with their injection points resolved",
		Long: `Serve the HTML files of a directory, resolving the injection
points of every page on the fly.

A page may have a manifest next to it with the same base name
(about.html and about.yaml); its entries are registered before the
page is resolved. Prometheus metrics are exposed at /metrics.

Examples:
  inject serve
  inject serve --dir public --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if dir != "" {
				cfg.Server.Dir = dir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd, cfg, flags.logger(cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from inject.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from inject.json)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory of pages (default from inject.json)")

	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	mcfg, err := cfg.ManagerConfig(logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	server := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           newServeHandler(cfg, mcfg, reg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	out := cmd.OutOrStdout()
	success(out, "Serving %s", cfg.ServerDir())
	info(out, "Pages:   http://%s/", cfg.ServerAddress())
	info(out, "Metrics: http://%s/metrics", cfg.ServerAddress())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	info(out, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newServeHandler routes /metrics to Prometheus and every other path to
// the page directory behind the tracing and inject middleware.
func newServeHandler(cfg *config.Config, mcfg inject.Config, reg *prometheus.Registry, logger *slog.Logger) http.Handler {
	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.OpenTelemetry())
		r.Use(middleware.Inject(
			middleware.WithManagerConfig(mcfg),
			middleware.WithMetrics(metrics),
			middleware.WithObserver(middleware.NewTracer()),
			middleware.WithMinify(cfg.Output.Minify),
			middleware.WithLogger(logger),
		))
		r.Handle("/*", pageHandler(cfg.ServerDir(), logger))
	})

	return r
}

// pageHandler serves files from dir. Before an HTML page is written, the
// manifest next to it, if any, is applied to the request's Manager.
func pageHandler(dir string, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))

		fi, err := os.Stat(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if fi.IsDir() {
			name = filepath.Join(name, "index.html")
		}

		if strings.HasSuffix(name, ".html") {
			if err := applySidecar(r, name); err != nil {
				logger.Error("manifest failed", "page", name, "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		http.ServeFile(w, r, name)
	})
}

func applySidecar(r *http.Request, page string) error {
	m := middleware.FromContext(r.Context())
	if m == nil {
		return nil
	}
	sidecar := strings.TrimSuffix(page, ".html") + manifestExt
	if _, err := os.Stat(sidecar); err != nil {
		return nil
	}
	man, err := manifest.Load(sidecar)
	if err != nil {
		return err
	}
	return man.Apply(m)
}
