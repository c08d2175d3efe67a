package main

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/inject/internal/errors"
	"github.com/vango-dev/inject/internal/htmlmin"
	"github.com/vango-dev/inject/internal/manifest"
	"github.com/vango-dev/inject/internal/publish"
	"github.com/vango-dev/inject/pkg/inject"
)

type resolveOptions struct {
	page     string
	manifest string
	out      string
	report   string
	minify   bool
}

func resolveCmd(flags *globalFlags) *cobra.Command {
	var opts resolveOptions

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Fill the injection points of a rendered page",
		Long: `Read a rendered page, register the content listed in a YAML
manifest, and write the page with every injection point replaced.

The output may be a file, "-" for standard output, or an S3 object
(s3://bucket/key) written with the default AWS credentials.

Examples:
  inject resolve --page dist/index.html --manifest index.yaml
  inject resolve --page dist/index.html --manifest index.yaml --out dist/index.html --minify
  inject resolve --page - --manifest index.yaml --out s3://site/index.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.page, "page", "p", "", `Rendered page to resolve ("-" for standard input)`)
	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", "", "YAML manifest of content to register")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "-", "Output file, s3://bucket/key, or - for standard output")
	cmd.Flags().StringVarP(&opts.report, "report", "r", "", "Report mode for unmatched content: none, log, error (default from inject.json)")
	cmd.Flags().BoolVar(&opts.minify, "minify", false, "Minify the resolved page (default from inject.json)")
	_ = cmd.MarkFlagRequired("page")

	return cmd
}

func runResolve(cmd *cobra.Command, flags *globalFlags, opts resolveOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stderr := cmd.ErrOrStderr()
	logger := flags.logger(stderr)

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	mcfg, err := cfg.ManagerConfig(logger)
	if err != nil {
		return err
	}
	if opts.report != "" {
		if mcfg.ReportMode, err = inject.ParseReportMode(opts.report); err != nil {
			return err
		}
	}

	page, err := readPage(cmd.InOrStdin(), opts.page)
	if err != nil {
		return err
	}

	var stats inject.ResolveStats
	mcfg.Observer = inject.ObserverFunc(func(_ context.Context, s inject.ResolveStats) {
		stats = s
	})

	var out bytes.Buffer
	m, err := inject.New(ctx, &out, mcfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if opts.manifest != "" {
		man, err := manifest.Load(opts.manifest)
		if err != nil {
			return err
		}
		if err := man.Apply(m); err != nil {
			return err
		}
		logger.Debug("manifest applied", "path", opts.manifest, "entries", man.Len())
	}

	if _, err := m.Writer().Write(page); err != nil {
		return err
	}
	if err := m.Resolve(); err != nil {
		return err
	}
	if err := m.ReportErrors(); err != nil {
		return err
	}

	result := out.Bytes()
	if opts.minify || cfg.Output.Minify {
		if result, err = htmlmin.Bytes(result); err != nil {
			return errors.New("E161").WithDetail("Minification failed").Wrap(err)
		}
	}

	sink, err := publish.Open(ctx, opts.out, publish.Options{Stdout: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	if err := sink.Publish(ctx, result); err != nil {
		return err
	}

	if sink.Location() != "stdout" {
		success(stderr, "Resolved %d of %d injection points into %s", stats.Filled, stats.Points, sink.Location())
	}
	if stats.Points == 0 {
		warn(stderr, "%s has no injection points", opts.page)
	}
	return nil
}

func readPage(stdin io.Reader, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.New("E160").WithDetail(path).Wrap(err)
	}
	return data, nil
}
