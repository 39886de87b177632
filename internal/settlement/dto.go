package settlement

import "github.com/shopspring/decimal"

// CreateSettlementRequest represents the request to record a settlement.
// The paying party is the authenticated caller.
type CreateSettlementRequest struct {
	ToUserID string          `json:"to_user_id" validate:"required"`
	GroupID  string          `json:"group_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID           string          `json:"id"`
	FromUserID   string          `json:"from_user_id"`
	FromUsername string          `json:"from_username,omitempty"`
	ToUserID     string          `json:"to_user_id"`
	ToUsername   string          `json:"to_username,omitempty"`
	GroupID      string          `json:"group_id"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    string          `json:"created_at"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:           s.ID,
		FromUserID:   s.FromUserID,
		FromUsername: s.FromUsername,
		ToUserID:     s.ToUserID,
		ToUsername:   s.ToUsername,
		GroupID:      s.GroupID,
		Amount:       s.Amount,
		CreatedAt:    s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
