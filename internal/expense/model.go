package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a shared expense fronted by one group member.
// Expenses are immutable once created; there is no update or delete path.
type Expense struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	PayerID     string          `json:"payer_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// Split represents one non-payer member's portion of an expense, created
// atomically with its parent expense
type Split struct {
	ID        string          `json:"id"`
	ExpenseID string          `json:"expense_id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Settled   bool            `json:"settled"`
	SettledAt *time.Time      `json:"settled_at,omitempty"`

	// Populated via JOIN
	Username string `json:"username,omitempty"`
}

// ExpenseWithSplits combines an expense with its splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}

// ActivityItem is one entry of a user's activity feed: an expense the user
// is party to, annotated with the user's signed share of it. Positive means
// the user fronted money on this expense; negative means the user owes.
type ActivityItem struct {
	Expense   *Expense
	GroupName string
	UserShare decimal.Decimal
}
