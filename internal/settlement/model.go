package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement represents a claimed payment from one user to another, scoped
// to a group. Settlements are append-only and informational: recording one
// does not mark any split settled and does not change computed balances.
type Settlement struct {
	ID         string          `json:"id"`
	FromUserID string          `json:"from_user_id"`
	ToUserID   string          `json:"to_user_id"`
	GroupID    string          `json:"group_id"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`

	// Populated via JOIN
	FromUsername string `json:"from_username,omitempty"`
	ToUsername   string `json:"to_username,omitempty"`
}
