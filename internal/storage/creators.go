package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/common"
	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

// SaveCreators upserts creators by id.
func (s *SQLiteStore) SaveCreators(ctx context.Context, creators []model.Creator) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO creators
		(id, name, platform, follower_count, engagement_rate, categories, total_sales, total_revenue)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			platform = excluded.platform,
			follower_count = excluded.follower_count,
			engagement_rate = excluded.engagement_rate,
			categories = excluded.categories,
			total_sales = excluded.total_sales,
			total_revenue = excluded.total_revenue`)
	if err != nil {
		return fmt.Errorf("failed to prepare creator upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, creator := range creators {
		if _, err := stmt.ExecContext(ctx,
			creator.ID, creator.Name, creator.Platform,
			creator.FollowerCount, creator.EngagementRate,
			strings.Join(creator.Categories, ","),
			creator.TotalSales, creator.TotalRevenue); err != nil {
			return fmt.Errorf("failed to save creator %s: %w", creator.ID, err)
		}
	}

	return tx.Commit()
}

// GetCreator loads one creator by id.
func (s *SQLiteStore) GetCreator(ctx context.Context, id string) (*model.Creator, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, platform, follower_count,
		engagement_rate, categories, total_sales, total_revenue
		FROM creators WHERE id = ?`, id)

	creator, err := scanCreator(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("creator %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load creator %s: %w", id, err)
	}
	return creator, nil
}

// ListCreators loads all creators ordered by name.
func (s *SQLiteStore) ListCreators(ctx context.Context) ([]model.Creator, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, platform, follower_count,
		engagement_rate, categories, total_sales, total_revenue
		FROM creators ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list creators: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var creators []model.Creator
	for rows.Next() {
		creator, err := scanCreator(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creator: %w", err)
		}
		creators = append(creators, *creator)
	}
	return creators, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCreator(row rowScanner) (*model.Creator, error) {
	var creator model.Creator
	var categories sql.NullString

	if err := row.Scan(&creator.ID, &creator.Name, &creator.Platform,
		&creator.FollowerCount, &creator.EngagementRate, &categories,
		&creator.TotalSales, &creator.TotalRevenue); err != nil {
		return nil, err
	}

	if categories.Valid && categories.String != "" {
		creator.Categories = strings.Split(categories.String, ",")
	}
	return &creator, nil
}
