package storage

import (
	"context"
	"fmt"

	"github.com/baekenough/zvzo-creator-insight-sub000/internal/model"
)

// SaveSales inserts sale records, ignoring duplicates by id so imports can
// be re-run.
func (s *SQLiteStore) SaveSales(ctx context.Context, sales []model.SaleRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO sales
		(id, creator_id, product_id, product_name, category, date,
		 quantity, revenue, commission, click_count, conversion_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare sale insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, sale := range sales {
		if _, err := stmt.ExecContext(ctx,
			sale.ID, sale.CreatorID, sale.ProductID, sale.ProductName,
			sale.Category, sale.Date, sale.Quantity, sale.Revenue,
			sale.Commission, sale.ClickCount, sale.ConversionRate); err != nil {
			return fmt.Errorf("failed to save sale %s: %w", sale.ID, err)
		}
	}

	return tx.Commit()
}

// SalesByCreator loads a creator's sale history ordered by date.
func (s *SQLiteStore) SalesByCreator(ctx context.Context, creatorID string) ([]model.SaleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, creator_id, product_id, product_name,
		category, date, quantity, revenue, commission, click_count, conversion_rate
		FROM sales WHERE creator_id = ? ORDER BY date`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales for creator %s: %w", creatorID, err)
	}
	defer func() { _ = rows.Close() }()

	var sales []model.SaleRecord
	for rows.Next() {
		var sale model.SaleRecord
		if err := rows.Scan(&sale.ID, &sale.CreatorID, &sale.ProductID, &sale.ProductName,
			&sale.Category, &sale.Date, &sale.Quantity, &sale.Revenue,
			&sale.Commission, &sale.ClickCount, &sale.ConversionRate); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// CountSalesByCreator returns per-creator sale counts in one query; the CLI
// uses it to show eligibility without loading every history.
func (s *SQLiteStore) CountSalesByCreator(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT creator_id, COUNT(*) FROM sales GROUP BY creator_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var creatorID string
		var count int
		if err := rows.Scan(&creatorID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan sale count: %w", err)
		}
		counts[creatorID] = count
	}
	return counts, rows.Err()
}
