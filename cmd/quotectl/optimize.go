package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/printquote/internal/pricing"
)

func newOptimizeCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Project fast, economic and balanced variants of a quote file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			opt := pricing.Optimize(doc.PricingInput())
			opts.logger.Debug("computed optimizations", zap.String("quote_name", doc.QuoteName))

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), opt)
			}
			return printOptimizations(cmd.OutOrStdout(), opt)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "quote file in YAML or JSON (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printOptimizations(w io.Writer, opt pricing.Optimizations) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "MODE\tSPEED\tLAYER\tINFILL\tSUPPORT\tTIME\tGRAMS\tWASTE%\tMATERIAL\tENERGY\tMACHINE\tTOTAL")
	for _, m := range []struct {
		name string
		mode pricing.Mode
	}{
		{"fast", opt.Fast},
		{"economic", opt.Economic},
		{"balanced", opt.Balanced},
	} {
		p, r := m.mode.NewParameters, m.mode.Results
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%s\t%s\t%s\t%s\n",
			m.name, p.Speed, p.LayerHeight, p.Infill, p.SupportWeight,
			r.PrintTime, r.GramsUsed, r.WastePercentage,
			money(r.MaterialCost), money(r.EnergyCost), money(r.MachineCost), money(r.TotalCost))
	}
	return tw.Flush()
}
