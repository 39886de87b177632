package settlement

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mlarsson/splittab/internal/group"
)

// Common errors
var (
	ErrGroupNotFound     = errors.New("group not found")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrSelfSettlement    = errors.New("cannot record a settlement with yourself")
	ErrNotGroupMember    = errors.New("both parties must be members of the group")
)

// Service handles settlement business logic
type Service struct {
	repo   *Repository
	groups *group.Repository
}

// NewService creates a new settlement service
func NewService(repo *Repository, groups *group.Repository) *Service {
	return &Service{repo: repo, groups: groups}
}

// Record appends a settlement from the caller to another group member.
// The amount is not capped at the outstanding balance between the two
// parties, and recording a settlement does not change any computed balance
// or mark any split settled.
func (s *Service) Record(ctx context.Context, fromUserID string, req *CreateSettlementRequest) (*Settlement, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrNonPositiveAmount
	}
	if fromUserID == req.ToUserID {
		return nil, ErrSelfSettlement
	}

	grp, err := s.groups.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if grp == nil {
		return nil, ErrGroupNotFound
	}

	memberIDs, err := s.groups.GetMemberIDs(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	fromIsMember, toIsMember := false, false
	for _, id := range memberIDs {
		if id == fromUserID {
			fromIsMember = true
		}
		if id == req.ToUserID {
			toIsMember = true
		}
	}
	if !fromIsMember || !toIsMember {
		return nil, ErrNotGroupMember
	}

	settlement := &Settlement{
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		GroupID:    req.GroupID,
		Amount:     req.Amount,
	}
	if err := s.repo.Create(ctx, settlement); err != nil {
		return nil, err
	}

	return settlement, nil
}

// ListByGroupID retrieves a group's settlements, newest first
func (s *Service) ListByGroupID(ctx context.Context, groupID string) ([]*Settlement, error) {
	grp, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if grp == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.ListByGroupID(ctx, groupID)
}
