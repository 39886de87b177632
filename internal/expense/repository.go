package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpenseWithSplits inserts an expense and all of its splits in a
// single transaction. Either every row is persisted or none is; a partially
// written expense is never observable.
func (r *Repository) CreateExpenseWithSplits(ctx context.Context, expense *Expense, splits []*Split) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	expense.ID = uuid.NewString()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO expenses (id, group_id, payer_id, title, description, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, expense.ID, expense.GroupID, expense.PayerID, expense.Title, expense.Description, expense.Amount).Scan(&expense.CreatedAt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create expense: %w", err)
	}

	for _, split := range splits {
		split.ID = uuid.NewString()
		split.ExpenseID = expense.ID
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO expense_splits (id, expense_id, user_id, amount, settled)
			VALUES ($1, $2, $3, $4, $5)
		`, split.ID, split.ExpenseID, split.UserID, split.Amount, split.Settled); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense: %w", err)
	}

	return nil
}

// GetSplitsByExpenseID retrieves all splits for an expense
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID string) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.amount, s.settled, s.settled_at, u.username
		FROM expense_splits s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY u.username
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		split := &Split{}
		if err := rows.Scan(
			&split.ID,
			&split.ExpenseID,
			&split.UserID,
			&split.Amount,
			&split.Settled,
			&split.SettledAt,
			&split.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}

	return splits, nil
}

// ListByGroupID retrieves all expenses for a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID string) ([]*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.title, e.description, e.amount, e.created_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC, e.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Title,
			&expense.Description,
			&expense.Amount,
			&expense.CreatedAt,
			&expense.PayerUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

// activityRow is an expense the user is party to, with the user's own split
// amount when one exists (the payer normally has no split row).
type activityRow struct {
	Expense   *Expense
	GroupName string
	UserSplit decimal.NullDecimal
}

// ListRecentByParticipant retrieves the newest expenses where the user is
// either the payer or a split participant. Ordering is by creation time
// descending with the ID as a deterministic tie-break.
func (r *Repository) ListRecentByParticipant(ctx context.Context, userID string, limit int) ([]*activityRow, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.title, e.description, e.amount, e.created_at,
		       u.username, g.name, s.amount
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		JOIN groups g ON e.group_id = g.id
		LEFT JOIN expense_splits s ON s.expense_id = e.id AND s.user_id = $1
		WHERE e.payer_id = $1 OR s.id IS NOT NULL
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent expenses: %w", err)
	}
	defer rows.Close()

	var result []*activityRow
	for rows.Next() {
		row := &activityRow{Expense: &Expense{}}
		if err := rows.Scan(
			&row.Expense.ID,
			&row.Expense.GroupID,
			&row.Expense.PayerID,
			&row.Expense.Title,
			&row.Expense.Description,
			&row.Expense.Amount,
			&row.Expense.CreatedAt,
			&row.Expense.PayerUsername,
			&row.GroupName,
			&row.UserSplit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recent expense: %w", err)
		}
		result = append(result, row)
	}

	return result, nil
}
