package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/inject/internal/templates"
	"github.com/vango-dev/inject/pkg/inject"
)

func initCmd() *cobra.Command {
	var (
		template string
		keyword  string
		engine   string
		minify   bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create inject.json and a sample page",
		Long: `Create an inject.json configuration in dir (default: the current
directory).

Templates:
  minimal   inject.json only
  site      inject.json, a sample page with injection points and its
            manifest (default)

Examples:
  inject init
  inject init shop --engine knockout
  inject init --template minimal`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if engine != "" {
				if _, err := inject.ParseTemplateEngine(engine); err != nil {
					return err
				}
			}

			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}

			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(abs, 0755); err != nil {
				return err
			}

			err = tmpl.Create(abs, templates.Config{
				SiteName: filepath.Base(abs),
				Keyword:  keyword,
				Engine:   strings.ToLower(engine),
				Minify:   minify,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			success(out, "Created %s site in %s", tmpl.Name, abs)
			for _, p := range tmpl.Paths() {
				info(out, "%s", p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "site", "Site template (minimal, site)")
	cmd.Flags().StringVarP(&keyword, "keyword", "k", inject.DefaultKeyword, "Injection point keyword")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "Client template engine (underscore, knockout, kendo, jquery)")
	cmd.Flags().BoolVar(&minify, "minify", false, "Minify resolved pages")

	return cmd
}
