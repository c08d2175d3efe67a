package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/inject/internal/errors"
	"github.com/vango-dev/inject/pkg/inject"
)

func markerCmd(flags *globalFlags) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "marker <kind>",
		Short: "Print the injection point for a kind",
		Long: `Print the HTML comment that marks where a kind's content is written.

The kind may be given by its short name (ScriptFiles) or its token
name (IScriptFilesKind). The marker keyword comes from inject.json.

Examples:
  inject marker ScriptFiles
  inject marker MetaTags --group Header`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := inject.ParseKind(args[0])
			if !ok {
				return errors.Newf(errors.CategoryUsage, "unknown kind %q", args[0]).
					WithSuggestion("Run 'inject kinds' to list the available kinds")
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			grammar, err := cfg.Grammar()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), grammar.Marker(kind, group))
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Named group of the collection")

	return cmd
}
