package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/cli"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/seed"
)

func seedCmd() *cobra.Command {
	var (
		creatorCount int
		productCount int
		months       int
		randSeed     int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate mock reference data",
		Long: `Fills the database with generated creators, products, and sale histories
for local development. Re-running replaces nothing; sales carry fresh ids.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			generator := seed.New(seed.Options{
				Creators: creatorCount,
				Products: productCount,
				Months:   months,
				Seed:     randSeed,
			})

			creators := generator.Creators()
			products := generator.Products()
			sales := generator.Sales(creators, products)

			bar := progressbar.Default(3, "seeding")
			if err := store.SaveProducts(ctx, products); err != nil {
				return err
			}
			_ = bar.Add(1)
			if err := store.SaveCreators(ctx, creators); err != nil {
				return err
			}
			_ = bar.Add(1)
			if err := store.SaveSales(ctx, sales); err != nil {
				return err
			}
			_ = bar.Add(1)
			_ = bar.Finish()

			// New sale data makes any cached reasoning stale.
			purgeCreatorResults(creators)

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Seeded %d creators, %d products, %d sale records.",
				len(creators), len(products), len(sales))))
			return nil
		},
	}

	cmd.Flags().IntVar(&creatorCount, "creators", 20, "number of creators to generate")
	cmd.Flags().IntVar(&productCount, "products", 40, "number of products to generate")
	cmd.Flags().IntVar(&months, "months", 6, "months of sale history to spread records over")
	cmd.Flags().Int64Var(&randSeed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}
