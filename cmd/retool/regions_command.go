package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"retool/internal/report"
)

func newRegionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "Show the region table and the configured priority order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.Regions(cfg.RegionTable()))
			if order := cfg.PriorityOrder(); len(order) > 0 {
				fmt.Fprintf(out, "Priority order: %s\n", strings.Join(order, ", "))
			} else {
				fmt.Fprintln(out, "Priority order: derived from each catalog by region frequency")
			}
			if langs := cfg.LanguageAllowList(); len(langs) > 0 {
				fmt.Fprintf(out, "Languages: %s\n", strings.Join(langs, ", "))
			}
			return nil
		},
	}
}
