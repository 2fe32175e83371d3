package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/cli"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/common"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/export"
)

func exportCmd() *cobra.Command {
	var (
		spreadsheetID string
		limit         int
	)

	cmd := &cobra.Command{
		Use:   "export <creator-id>",
		Short: "Export a creator's product matches to Google Sheets",
		Args:  cobra.ExactArgs(1),
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

			config := export.DefaultConfig()
			config.SpreadsheetID = spreadsheetID
			config.LoadFromEnv()

			writer, err := export.NewWriter(ctx, config, slog.Default())
			if err != nil {
				return common.NewUserError("sheets export is not configured", err)
			}

			if err := writer.WriteMatchReport(ctx, *creator, matches); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Exported %d matches for %s.", len(matches), creator.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet", "", "target spreadsheet id (or GOOGLE_SHEETS_SPREADSHEET_ID)")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of matches to export")
	return cmd
}
