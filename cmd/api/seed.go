package main

import (
	"github.com/spf13/cobra"

	"github.com/waterworks/records/internal/db"
	"github.com/waterworks/records/internal/seed"
	"github.com/waterworks/records/internal/store"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with generated demo records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		conn, err := connect(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.Migrate(ctx, conn); err != nil {
			return err
		}

		res, err := seed.Run(ctx, store.New(conn), seedOpts)
		if err != nil {
			return err
		}
		log.Info().
			Int("users", len(res.Users)).
			Int("meters", len(res.Meters)).
			Int("readings", res.Readings).
			Int("bills", res.Bills).
			Int("methods", res.Methods).
			Str("password", seed.DefaultPassword).
			Msg("seed complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedOpts.Users, "users", 10, "number of customers to generate")
	seedCmd.Flags().IntVar(&seedOpts.MetersPerUser, "meters", 1, "meters per customer")
	seedCmd.Flags().IntVar(&seedOpts.ReadingsPerMeter, "readings", 5, "consumption readings per meter")
	seedCmd.Flags().Uint64Var(&seedOpts.Seed, "seed", 0, "random seed (0 picks a random one)")
}
