package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/inject/pkg/inject"
)

func kindsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List content kinds",
		Long: `List every content kind with its token name and whether the
configured factory can create it. Template blocks are only available
when inject.json names a template engine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			factory, err := cfg.Factory()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-16s %-22s %s\n", "KIND", "TOKEN", "STATUS")
			for _, kind := range inject.Kinds() {
				status := "registered"
				if !factory.Registered(kind) {
					status = "not registered"
				}
				fmt.Fprintf(out, "%-16s %-22s %s\n", kind, kind.TokenName(), status)
			}
			return nil
		},
	}
}
