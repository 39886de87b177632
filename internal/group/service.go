package group

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrNameRequired        = errors.New("group name is required")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
)

// BalanceReader reports a user's net balance within a group. Satisfied by
// the balance service; kept as an interface so group summaries stay
// decoupled from the aggregation internals.
type BalanceReader interface {
	GetGroupBalance(ctx context.Context, userID, groupID string) (decimal.Decimal, error)
}

// GroupSummary is a group annotated with its member list and the requesting
// user's balance within it.
type GroupSummary struct {
	Group       *Group
	Members     []*GroupMember
	UserBalance decimal.Decimal
}

// Service handles group business logic
type Service struct {
	repo     *Repository
	balances BalanceReader
}

// NewService creates a new group service
func NewService(repo *Repository, balances BalanceReader) *Service {
	return &Service{repo: repo, balances: balances}
}

// Create creates a new group and joins the creator as its first member
func (s *Service) Create(ctx context.Context, creatorID string, req *CreateGroupRequest) (*Group, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	group, err := s.repo.Create(ctx, creatorID, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.AddMember(ctx, group.ID, creatorID); err != nil {
		return nil, err
	}

	return group, nil
}

// GetByIDWithMembers retrieves a group with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id string) (*Group, []*GroupMember, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, ErrGroupNotFound
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// ListForUser retrieves all groups the user belongs to, each annotated with
// its members and the user's net balance within that group
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*GroupSummary, error) {
	groups, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*GroupSummary, 0, len(groups))
	for _, group := range groups {
		members, err := s.repo.GetMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}

		balance, err := s.balances.GetGroupBalance(ctx, userID, group.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, &GroupSummary{
			Group:       group,
			Members:     members,
			UserBalance: balance,
		})
	}

	return summaries, nil
}

// AddMember adds a user to a group. Membership is append-only.
func (s *Service) AddMember(ctx context.Context, groupID, userID string) (*GroupMember, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	existing, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	return s.repo.AddMember(ctx, groupID, userID)
}
