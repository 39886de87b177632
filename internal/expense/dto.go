package expense

import "github.com/shopspring/decimal"

// CreateExpenseRequest represents the request to create an expense.
// Splits are not part of the request: they are always computed server-side
// as an even division among the group members other than the payer.
type CreateExpenseRequest struct {
	GroupID     string          `json:"group_id" validate:"required"`
	Title       string          `json:"title" validate:"required,min=1,max=255"`
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID            string           `json:"id"`
	GroupID       string           `json:"group_id"`
	PayerID       string           `json:"payer_id"`
	PayerUsername string           `json:"payer_username,omitempty"`
	Title         string           `json:"title"`
	Description   *string          `json:"description,omitempty"`
	Amount        decimal.Decimal  `json:"amount"`
	CreatedAt     string           `json:"created_at"`
	Splits        []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID        string          `json:"id"`
	ExpenseID string          `json:"expense_id"`
	UserID    string          `json:"user_id"`
	Username  string          `json:"username,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Settled   bool            `json:"settled"`
	SettledAt *string         `json:"settled_at,omitempty"`
}

// ActivityResponse represents one activity feed entry
type ActivityResponse struct {
	Expense   *ExpenseResponse `json:"expense"`
	GroupName string           `json:"group_name"`
	UserShare decimal.Decimal  `json:"user_share"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		PayerID:       e.PayerID,
		PayerUsername: e.PayerUsername,
		Title:         e.Title,
		Description:   e.Description,
		Amount:        e.Amount,
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	resp := &SplitResponse{
		ID:        s.ID,
		ExpenseID: s.ExpenseID,
		UserID:    s.UserID,
		Username:  s.Username,
		Amount:    s.Amount,
		Settled:   s.Settled,
	}
	if s.SettledAt != nil {
		settledAt := s.SettledAt.Format("2006-01-02T15:04:05Z")
		resp.SettledAt = &settledAt
	}
	return resp
}

// ToResponse converts an ActivityItem to an ActivityResponse DTO
func (a *ActivityItem) ToResponse() *ActivityResponse {
	return &ActivityResponse{
		Expense:   a.Expense.ToResponse(),
		GroupName: a.GroupName,
		UserShare: a.UserShare,
	}
}
