package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agenthands/discourse/internal/app"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the registered pages and their callback outputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := app.Bootstrap(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tPATH\tNAME\tOUTPUTS")
		for _, p := range reg.Pages() {
			outputs := ""
			for i, b := range p.Bindings {
				if i > 0 {
					outputs += ", "
				}
				outputs += b.Output.String()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Slug, p.Path, p.Name, outputs)
		}
		return w.Flush()
	},
}
