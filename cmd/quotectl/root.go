package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/printquote/internal/logging"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type rootOptions struct {
	output  string
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "quotectl",
		Short: "Price 3D print jobs",
		Long: `quotectl computes quote summaries, optimization projections and
inverse quotes without running the API server.

Examples:
  quotectl summary -f quote.yaml
  quotectl optimize -f quote.json --output json
  quotectl inverse --budget 18 --total-weight 1000 --filament-grams 250`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputText && opts.output != outputJSON {
				return fmt.Errorf("unknown output format %q (want text or json)", opts.output)
			}
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			opts.logger = logging.NewWithWriter(logging.Config{Level: level, Format: "console"}, cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "output format (text, json)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newSummaryCmd(opts),
		newOptimizeCmd(opts),
		newInverseCmd(opts),
	)
	return cmd
}
