package main

import (
	"isingmc/adapters/rng"
	"isingmc/internal/api"
	"isingmc/internal/container"
	"isingmc/ports"

	"github.com/spf13/cobra"
)

func newServeCmd(a *cliApp) *cobra.Command {
	s := &settings{}
	var addr, dataDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the run ledger over HTTP",
		Long: `Start an HTTP API for starting runs and browsing recorded ones.

  GET  /api/runs               list runs (?beta_j=, ?limit=, ?offset=)
  POST /api/runs               run a simulation: {"beta_j": 0.5, "sweeps": 100}
  GET  /api/runs/{id}          one run
  GET  /api/runs/{id}/summary  statistics of its magnetization series
  GET  /api/runs/{id}/report   HTML report`,
		Args: positional(),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := s.resolve(cmd, a.cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Server.Addr
			}
			if !cmd.Flags().Changed("data-dir") {
				dataDir = a.cfg.Server.DataDir
			}

			c := a.container
			rngMode := opts.rngMode
			server := api.NewServer(api.Config{
				Simulation: c.Simulation,
				Summary:    c.Summary,
				Ledger:     c.Ledger,
				NewSink:    container.FileSinks,
				NewSource: func(seed uint64) (ports.RandomSource, error) {
					return rng.New(rngMode, seed)
				},
				RNGMode:  string(rngMode),
				Defaults: opts.base,
				DataDir:  dataDir,
				Logger:   a.logger,
			})
			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	addSimulationFlags(cmd, s)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address (env ISING_HTTP_ADDR)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "runs", "Directory for sample files of runs started over HTTP (env ISING_DATA_DIR)")
	return cmd
}
