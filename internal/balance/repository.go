package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// Repository aggregates raw expense and split rows into paid/owed totals
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// SumPaidByUser returns the total amount of all expenses the user paid for
func (r *Repository) SumPaidByUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE payer_id = $1`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid amounts: %w", err)
	}

	return total, nil
}

// SumOwedByUser returns the total of all split rows assigned to the user,
// settled or not
func (r *Repository) SumOwedByUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expense_splits WHERE user_id = $1`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum owed amounts: %w", err)
	}

	return total, nil
}

// SumPaidByUserInGroup returns the total the user paid within one group
func (r *Repository) SumPaidByUserInGroup(ctx context.Context, userID, groupID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE payer_id = $1 AND group_id = $2`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID, groupID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid amounts: %w", err)
	}

	return total, nil
}

// SumOwedByUserInGroup returns the total of the user's splits on expenses
// within one group, settled or not
func (r *Repository) SumOwedByUserInGroup(ctx context.Context, userID, groupID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.amount), 0)
		FROM expense_splits s
		JOIN expenses e ON s.expense_id = e.id
		WHERE s.user_id = $1 AND e.group_id = $2
	`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID, groupID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum owed amounts: %w", err)
	}

	return total, nil
}
