package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/printquote/internal/pricing"
	"github.com/Simplici0/printquote/internal/quote"
)

func newInverseCmd(opts *rootOptions) *cobra.Command {
	var req quote.InverseRequest

	cmd := &cobra.Command{
		Use:   "inverse",
		Short: "Suggest print settings that fit a budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := req.Input()
			if err != nil {
				return err
			}
			result := pricing.Inverse(in)

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			tw := newTable(cmd.OutOrStdout())
			row(tw, "Print time (h)", fmt.Sprintf("%g", result.PrintTime))
			row(tw, "Infill (%)", fmt.Sprintf("%g", result.Infill))
			row(tw, "Layer height (mm)", fmt.Sprintf("%g", result.LayerHeight))
			return tw.Flush()
		},
	}

	cmd.Flags().Float64Var(&req.Budget, "budget", 0, "budget available for the job")
	cmd.Flags().Float64Var(&req.TotalWeight, "total-weight", 0, "spool weight in grams")
	cmd.Flags().Float64Var(&req.FilamentGrams, "filament-grams", 0, "grams of filament the job needs")
	for _, name := range []string{"budget", "total-weight", "filament-grams"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
