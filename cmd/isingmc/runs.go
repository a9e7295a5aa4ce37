package main

import (
	"fmt"

	"isingmc/internal/errors"
	"isingmc/ports"

	"github.com/spf13/cobra"
)

func newRunsCmd(a *cliApp) *cobra.Command {
	var limit int
	var betaJ float64

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs recorded in the run ledger",
		Long: `List recorded runs, newest first. Runs are kept in PostgreSQL when
DATABASE_URL is set; otherwise the ledger only lives for one process.`,
		Args: positional(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return errors.InvalidInput(fmt.Sprintf("--limit must be positive, got %d", limit))
			}
			filters := ports.RunFilters{Limit: limit}
			if cmd.Flags().Changed("betaj") {
				filters.BetaJ = &betaJ
			}

			records, err := a.container.Ledger.ListRuns(cmd.Context(), filters)
			if err != nil {
				return errors.DatabaseError("cannot list runs", err)
			}

			out := cmd.OutOrStdout()
			for _, r := range records {
				m := r.Manifest
				fmt.Fprintf(out, "%s\t%s\tbetaJ=%g\tN=%d\tsweeps=%d\tacceptance=%.4f\tfinal_m=%g\t%s\n",
					m.RunID, r.CompletedAt, m.Parameters.BetaJ, m.Parameters.Size, m.Parameters.Sweeps,
					r.AcceptanceRate(), r.FinalMagnetization, r.OutputPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	cmd.Flags().Float64Var(&betaJ, "betaj", 0, "Only list runs at this betaJ")
	return cmd
}
