// Package balance derives net balances from the raw expense history.
//
// A balance is never stored: every read re-aggregates the persisted rows, so
// two reads with no intervening writes always return the same figure.
// Settlements and the splits' settled flag do not enter the calculation:
// a recorded settlement leaves both parties' balances unchanged.
package balance

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service computes per-user net balances
type Service struct {
	repo *Repository
}

// NewService creates a new balance service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetUserBalance returns the user's net balance across all groups:
// total paid minus total owed. Positive means the user is owed money,
// negative means the user owes.
func (s *Service) GetUserBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	paid, err := s.repo.SumPaidByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	owed, err := s.repo.SumOwedByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	return paid.Sub(owed), nil
}

// GetGroupBalance returns the user's net balance within a single group,
// with the same sign convention as GetUserBalance.
func (s *Service) GetGroupBalance(ctx context.Context, userID, groupID string) (decimal.Decimal, error) {
	paid, err := s.repo.SumPaidByUserInGroup(ctx, userID, groupID)
	if err != nil {
		return decimal.Zero, err
	}

	owed, err := s.repo.SumOwedByUserInGroup(ctx, userID, groupID)
	if err != nil {
		return decimal.Zero, err
	}

	return paid.Sub(owed), nil
}
