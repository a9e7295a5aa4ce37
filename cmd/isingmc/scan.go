package main

import (
	"fmt"

	"isingmc/adapters/excel"
	"isingmc/adapters/rng"
	"isingmc/app"
	"isingmc/internal/errors"
	"isingmc/ports"

	"github.com/spf13/cobra"
)

func newScanCmd(a *cliApp) *cobra.Command {
	s := &settings{}
	var betaJs []float64
	var parallel int
	var reportPath string

	cmd := &cobra.Command{
		Use:   "scan <sweeps> <outputDir>",
		Short: "Run independent simulations for several betaJ values",
		Long: `Run one independent simulation per betaJ and write each series to
<outputDir>/m_betaJ=<value>.dat. Every run owns its own random source.
With --report, the summary of every series is also written to an Excel
workbook.

Example: isingmc scan 1000 out --betaj 0.1,0.5,1,2 --parallel 4 --report scan.xlsx`,
		Args: positional("sweeps", "outputDir"),
		RunE: func(cmd *cobra.Command, args []string) error {
			sweeps, err := parseSweeps(args[0])
			if err != nil {
				return err
			}
			if len(betaJs) == 0 {
				return errors.Usage("scan needs --betaj with at least one value")
			}

			opts, err := s.resolve(cmd, a.cfg)
			if err != nil {
				return err
			}
			base := opts.base
			base.Sweeps = sweeps

			workers := a.cfg.Scan.Parallel
			if cmd.Flags().Changed("parallel") {
				workers = parallel
			}

			rngMode, seed := opts.rngMode, opts.seed
			newSource := func(index int) (ports.RandomSource, error) {
				entrySeed := seed
				if entrySeed != 0 {
					entrySeed += uint64(index)
				}
				return rng.New(rngMode, entrySeed)
			}
			entries, err := a.container.Scan.Run(cmd.Context(), app.ScanRequest{
				BetaJs:    betaJs,
				Base:      base,
				OutputDir: args[1],
				Parallel:  workers,
				NewSource: newSource,
				RNGMode:   string(rngMode),
				Seed:      seed,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s\tbetaJ=%g\tacceptance=%.4f\tfinal_m=%g\n",
					e.Path, e.BetaJ, e.Result.AcceptanceRate(), e.Result.FinalMagnetization)
			}

			if reportPath == "" {
				return nil
			}
			rows, err := a.container.Summary.ScanReport(entries)
			if err != nil {
				return err
			}
			if err := excel.WriteScanReport(reportPath, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "report\t%s\n", reportPath)
			return nil
		},
	}

	addSimulationFlags(cmd, s)
	cmd.Flags().Float64SliceVar(&betaJs, "betaj", nil, "Comma-separated betaJ values to simulate")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "Maximum concurrent runs (env ISING_SCAN_PARALLEL)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write an .xlsx summary of every series to this path")
	return cmd
}
