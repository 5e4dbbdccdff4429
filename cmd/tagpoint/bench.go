package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagpoint/internal/curve"
	"tagpoint/internal/search"
)

// newBenchCmd reads its start value through the same flag > env > file
// layering as the root command.
func newBenchCmd(cfgFile *string) *cobra.Command {
	var count uint64
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time both square root backends over the same candidates and cross-check them",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			v, err := loadViper(c, *cfgFile)
			if err != nil {
				return err
			}
			cfg, err := search.LoadConfig(v)
			if err != nil {
				return err
			}
			start, err := cfg.StartX()
			if err != nil {
				return err
			}

			res, err := search.Bench(c.Context(), start, count, curve.Secp256k1(), curve.NewFieldValRoot())
			if err != nil {
				return err
			}
			w := c.OutOrStdout()
			fmt.Fprintf(w, "%-8s %10s %10s %14s\n", "backend", "count", "residues", "ns/candidate")
			for _, r := range res {
				fmt.Fprintf(w, "%-8s %10d %10d %14d\n", r.Backend, count, r.Residues, r.Elapsed.Nanoseconds()/int64(count))
			}
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().Uint64Var(&count, "count", 10000, "number of consecutive candidates")
	cmd.Flags().String(search.KeyPhrase, search.DefaultPhrase, "phrase for the start value")
	cmd.Flags().String(search.KeyStart, "", "explicit start x; overrides --phrase")
	return cmd
}
