package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/cli"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/common"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/engine"
)

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match creators and products",
	}
	cmd.AddCommand(matchProductsCmd())
	cmd.AddCommand(matchCreatorsCmd())
	return cmd
}

func matchProductsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "products <creator-id>",
		Short: "Recommend products for a creator",
		Long: `Ranks the whole product catalog for one creator. Scores come from the
reasoning service when available and from deterministic heuristics when it
is not.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			creatorID := args[0]

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			creator, err := store.GetCreator(ctx, creatorID)
			if err != nil {
				return common.NewUserError("creator not found", err)
			}

			sales, err := store.SalesByCreator(ctx, creatorID)
			if err != nil {
				return err
			}

			catalog, err := store.ListProducts(ctx)
			if err != nil {
				return err
			}

			orchestrator, err := newOrchestrator()
			if err != nil {
				return err
			}

			matches, err := orchestrator.MatchProducts(ctx, *creator, sales, catalog, limit)
			if err != nil {
				return common.NewUserError("matching failed", err)
			}

			fmt.Println(cli.RenderProductMatches(*creator, matches))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", engine.DefaultLimit, "maximum number of matches to return")
	return cmd
}

func matchCreatorsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "creators <product-id>",
		Short: "Recommend creators for a product",
		Long: `Ranks every known creator for one product. Creators with fewer than 3
sale records are skipped; they carry too little signal to score.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			productID := args[0]

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			product, err := store.GetProduct(ctx, productID)
			if err != nil {
				return common.NewUserError("product not found", err)
			}

			creators, err := store.ListCreators(ctx)
			if err != nil {
				return err
			}

			bar := progressbar.Default(int64(len(creators)), "loading sale histories")
			candidates := make([]engine.CreatorSales, 0, len(creators))
			for _, creator := range creators {
				sales, err := store.SalesByCreator(ctx, creator.ID)
				if err != nil {
					return err
				}
				candidates = append(candidates, engine.CreatorSales{Creator: creator, Sales: sales})
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			orchestrator, err := newOrchestrator()
			if err != nil {
				return err
			}

			matches, err := orchestrator.MatchCreators(ctx, *product, candidates, limit)
			if err != nil {
				return common.NewUserError("matching failed", err)
			}

			fmt.Println(cli.RenderCreatorMatches(*product, matches))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", engine.DefaultLimit, "maximum number of matches to return")
	return cmd
}
