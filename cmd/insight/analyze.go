package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/cli"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/common"
)

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <creator-id>",
		Short: "Analyze a creator's sale history",
		Long: `Aggregates a creator's sale records and asks the reasoning service for a
qualitative insight: strengths, top categories, price range, seasonal
trends, and recommendations. Requires at least 5 sale records.`,
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

			orchestrator, err := newOrchestrator()
			if err != nil {
				return err
			}

			insight, err := orchestrator.AnalyzeCreator(ctx, *creator, sales)
			if err != nil {
				return common.NewUserError("analysis failed", err)
			}

			fmt.Println(cli.RenderInsight(*creator, insight))
			return nil
		},
	}
}
