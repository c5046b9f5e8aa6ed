package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/printquote/internal/pricing"
	"github.com/Simplici0/printquote/internal/quote"
)

type summaryOutput struct {
	QuoteName string          `json:"quote_name"`
	Summary   pricing.Summary `json:"summary"`
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Compute the cost summary of a quote file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			in := doc.PricingInput()
			if _, err := pricing.Summarize(in); err != nil {
				return err
			}
			result := pricing.Calculate(in)
			opts.logger.Debug("computed summary",
				zap.String("quote_name", doc.QuoteName),
				zap.Float64("estimated_total_cost", result.Summary.EstimatedTotalCost),
			)

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), summaryOutput{QuoteName: doc.QuoteName, Summary: result.Summary})
			}
			return printSummary(cmd.OutOrStdout(), doc, result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "quote file in YAML or JSON (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printSummary(w io.Writer, doc quote.Document, result pricing.Result) error {
	b, s := result.Breakdown, result.Summary

	fmt.Fprintf(w, "Quote: %s\n\n", doc.QuoteName)
	tw := newTable(w)
	row(tw, "Material", money(b.MaterialCost))
	row(tw, "Energy", money(b.EnergyCost))
	row(tw, "Machine", money(b.MachineCost))
	row(tw, "Labor", money(b.Labor))
	row(tw, "Post-processing", money(b.PostProcessing))
	row(tw, "Subtotal", money(b.Subtotal))
	row(tw, "Margin", money(b.Margin))
	row(tw, "Tax", money(b.Tax))
	row(tw, "Estimated total", money(s.EstimatedTotalCost))
	row(tw, "Grams used", money(s.GramsUsed))
	row(tw, "Grams wasted", money(s.GramsWasted))
	row(tw, "Waste", money(s.WastePercentage)+"%")
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.Suggestions) == 0 {
		_, err := fmt.Fprintln(w, "\nNo suggestions.")
		return err
	}
	fmt.Fprintln(w, "\nSuggestions:")
	for _, tip := range s.Suggestions {
		fmt.Fprintf(w, "  - %s\n", tip)
	}
	return nil
}
