package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/cli"
)

func creatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "creators",
		Short: "List known creators",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			creators, err := store.ListCreators(ctx)
			if err != nil {
				return err
			}

			counts, err := store.CountSalesByCreator(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Creators (%d)", len(creators))))
			for _, creator := range creators {
				fmt.Printf("%-38s %-12s %-10s %8d followers  %5.1f%% eng  %3d sales  %s\n",
					creator.ID, creator.Name, creator.Platform,
					creator.FollowerCount, creator.EngagementRate,
					counts[creator.ID],
					cli.SubtleStyle.Render(strings.Join(creator.Categories, ",")))
			}
			return nil
		},
	}
}

func productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			products, err := store.ListProducts(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Products (%d)", len(products))))
			for _, product := range products {
				fmt.Printf("%-38s %-16s %-8s %9.0f KRW  %4.1f%% comm  %s\n",
					product.ID, product.Name, product.Category, product.Price,
					product.CommissionRate,
					cli.SubtleStyle.Render(strings.Join(product.Seasonality, ",")))
			}
			return nil
		},
	}
}
