package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCommand(s *session) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the schema if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed = seed || s.config.SeedOnInit
			if err := s.app.Init(cmd.Context(), seed); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
			if seed {
				fmt.Fprintln(cmd.OutOrStdout(), "demo data seeded")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "insert demonstration rows into empty tables")

	return cmd
}

func newSeedCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demonstration rows into empty tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.app.Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "demo data seeded")
			return nil
		},
	}
}
