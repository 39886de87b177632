package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create appends a new settlement
func (r *Repository) Create(ctx context.Context, settlement *Settlement) error {
	query := `
		INSERT INTO settlements (id, from_user_id, to_user_id, group_id, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	settlement.ID = uuid.NewString()
	if err := r.db.QueryRowContext(ctx, query,
		settlement.ID,
		settlement.FromUserID,
		settlement.ToUserID,
		settlement.GroupID,
		settlement.Amount,
	).Scan(&settlement.CreatedAt); err != nil {
		return fmt.Errorf("failed to create settlement: %w", err)
	}

	return nil
}

// ListByGroupID retrieves all settlements of a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID string) ([]*Settlement, error) {
	query := `
		SELECT s.id, s.from_user_id, s.to_user_id, s.group_id, s.amount, s.created_at,
		       fu.username, tu.username
		FROM settlements s
		JOIN users fu ON s.from_user_id = fu.id
		JOIN users tu ON s.to_user_id = tu.id
		WHERE s.group_id = $1
		ORDER BY s.created_at DESC, s.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		settlement := &Settlement{}
		if err := rows.Scan(
			&settlement.ID,
			&settlement.FromUserID,
			&settlement.ToUserID,
			&settlement.GroupID,
			&settlement.Amount,
			&settlement.CreatedAt,
			&settlement.FromUsername,
			&settlement.ToUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}

	return settlements, nil
}
