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

// SaveProducts upserts products by id.
func (s *SQLiteStore) SaveProducts(ctx context.Context, products []model.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO products
		(id, name, category, price, seasonality, target_audience, commission_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			price = excluded.price,
			seasonality = excluded.seasonality,
			target_audience = excluded.target_audience,
			commission_rate = excluded.commission_rate`)
	if err != nil {
		return fmt.Errorf("failed to prepare product upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, product := range products {
		if _, err := stmt.ExecContext(ctx,
			product.ID, product.Name, product.Category, product.Price,
			strings.Join(product.Seasonality, ","),
			strings.Join(product.TargetAudience, ","),
			product.CommissionRate); err != nil {
			return fmt.Errorf("failed to save product %s: %w", product.ID, err)
		}
	}

	return tx.Commit()
}

// GetProduct loads one product by id.
func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, category, price,
		seasonality, target_audience, commission_rate
		FROM products WHERE id = ?`, id)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}
	return product, nil
}

// ListProducts loads the whole catalog ordered by name.
func (s *SQLiteStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, category, price,
		seasonality, target_audience, commission_rate
		FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var product model.Product
	var seasonality, audience sql.NullString

	if err := row.Scan(&product.ID, &product.Name, &product.Category, &product.Price,
		&seasonality, &audience, &product.CommissionRate); err != nil {
		return nil, err
	}

	if seasonality.Valid && seasonality.String != "" {
		product.Seasonality = strings.Split(seasonality.String, ",")
	}
	if audience.Valid && audience.String != "" {
		product.TargetAudience = strings.Split(audience.String, ",")
	}
	return &product, nil
}
