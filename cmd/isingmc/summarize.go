package main

import (
	"fmt"

	"isingmc/domain/run"
	"isingmc/internal/errors"

	"github.com/spf13/cobra"
)

func newSummarizeCmd(a *cliApp) *cobra.Command {
	var outputMode string

	cmd := &cobra.Command{
		Use:   "summarize <samplesPath>",
		Short: "Print descriptive statistics of a magnetization series",
		Long: `Read a sample file written by run or scan and print count, mean, standard
deviation, mean |m|, extremes and quartiles of its magnetization series.

Example: isingmc summarize m.dat`,
		Args: positional("samplesPath"),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := run.ParseOutputMode(outputMode)
			if err != nil {
				return errors.ParseError("--output-mode", err)
			}

			summary, err := a.container.Summary.SummarizeFile(args[0], mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "count\t%d\n", summary.Count)
			fmt.Fprintf(out, "mean\t%g\n", summary.Mean)
			fmt.Fprintf(out, "std_dev\t%g\n", summary.StdDev)
			fmt.Fprintf(out, "mean_abs\t%g\n", summary.MeanAbs)
			fmt.Fprintf(out, "min\t%g\n", summary.Min)
			fmt.Fprintf(out, "p25\t%g\n", summary.P25)
			fmt.Fprintf(out, "median\t%g\n", summary.Median)
			fmt.Fprintf(out, "p75\t%g\n", summary.P75)
			fmt.Fprintf(out, "max\t%g\n", summary.Max)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputMode, "output-mode", string(run.OutputMagnetization), "Format the file was written in: magnetization, spins or both")
	return cmd
}
