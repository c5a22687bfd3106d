package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/discourse/internal/app"
	"github.com/agenthands/discourse/internal/core/model"
	"github.com/agenthands/discourse/internal/logger"
	"github.com/agenthands/discourse/internal/pages"
	"github.com/agenthands/discourse/internal/render"
)

func createFigureCmd() *cobra.Command {
	var (
		inputs  []string
		pngPath string
	)

	cmd := &cobra.Command{
		Use:   "figure <slug> <output>",
		Short: "Run a page callback and print its figure",
		Long: `Run a figure callback of a page and print the Plotly JSON, or write a PNG.

Examples:
  # Percentile overlay as JSON
  dashctl figure polarization edge_bet_percentiles_plot

  # Bar chart as PNG
  dashctl figure insights users_barplot --png users.png

  # Pick a keyword
  dashctl figure relationships network-graph --input keyword-dropdown=vote`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInputs(inputs)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			reg, err := app.Bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			p, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}

			res, err := p.Call(cmd.Context(), pages.CallbackRequest{Output: args[1], Inputs: values, State: values})
			if err != nil {
				return err
			}
			fig, ok := res.Value.(*model.Figure)
			if !ok {
				return fmt.Errorf("%w: %s is not a figure", pages.ErrUnknownOutput, res.Output)
			}

			if pngPath != "" {
				var buf bytes.Buffer
				if err := render.PNG(fig, &buf); err != nil {
					return err
				}
				if err := os.WriteFile(pngPath, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", pngPath, err)
				}
				logger.Info("Wrote figure", "path", pngPath, "bytes", buf.Len())
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fig)
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "callback input as id=value (repeatable)")
	cmd.Flags().StringVar(&pngPath, "png", "", "write a PNG to this path instead of printing JSON")
	return cmd
}

func parseInputs(raw []string) (pages.Values, error) {
	values := pages.Values{}
	for _, kv := range raw {
		id, value, ok := strings.Cut(kv, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --input %q, want id=value", kv)
		}
		values[id] = value
	}
	return values, nil
}
