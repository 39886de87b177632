package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mlarsson/splittab/internal/expense/split"
	"github.com/mlarsson/splittab/internal/group"
)

// DefaultActivityLimit is the feed size used when the caller does not ask
// for a specific one.
const DefaultActivityLimit = 10

// Common errors
var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrTitleRequired    = errors.New("expense title is required")
	ErrPayerNotMember   = errors.New("payer is not a member of the group")
	ErrSplitSumMismatch = errors.New("split amounts do not match the expense total")
)

// Service handles expense business logic
type Service struct {
	repo   *Repository
	groups *group.Repository
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, groups *group.Repository) *Service {
	return &Service{repo: repo, groups: groups}
}

// CreateExpense validates the request, computes the even splits for the
// group's members, and persists expense and splits atomically.
func (s *Service) CreateExpense(ctx context.Context, payerID string, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, split.ErrNonPositiveAmount
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

	isMember := false
	for _, id := range memberIDs {
		if id == payerID {
			isMember = true
			break
		}
	}
	if !isMember {
		return nil, ErrPayerNotMember
	}

	shares, err := split.Compute(req.Amount, payerID, memberIDs)
	if err != nil {
		return nil, err
	}

	// Guard the boundary between calculator output and persistence: shares
	// whose sum strays beyond the rounding tolerance never reach the store.
	if v := split.ValidateSum(req.Amount, shares); !v.OK {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrSplitSumMismatch, v.Expected, v.Actual)
	}

	expense := &Expense{
		GroupID:     req.GroupID,
		PayerID:     payerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Amount:      req.Amount,
	}
	splits := make([]*Split, len(shares))
	for i, share := range shares {
		splits[i] = &Split{
			UserID:  share.UserID,
			Amount:  share.Amount,
			Settled: false,
		}
	}

	if err := s.repo.CreateExpenseWithSplits(ctx, expense, splits); err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// ListByGroupID retrieves a group's expense history with splits, newest first
func (s *Service) ListByGroupID(ctx context.Context, groupID string) ([]*ExpenseWithSplits, error) {
	grp, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if grp == nil {
		return nil, ErrGroupNotFound
	}

	expenses, err := s.repo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	result := make([]*ExpenseWithSplits, len(expenses))
	for i, expense := range expenses {
		splits, err := s.repo.GetSplitsByExpenseID(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		result[i] = &ExpenseWithSplits{Expense: expense, Splits: splits}
	}

	return result, nil
}

// GetRecentActivity builds the user's activity feed: the newest expenses the
// user is party to, each annotated with the user's signed share. The payer
// sees the amount fronted (total minus any own split); everyone else sees
// the negated amount they owe.
func (s *Service) GetRecentActivity(ctx context.Context, userID string, limit int) ([]*ActivityItem, error) {
	if limit < 1 {
		limit = DefaultActivityLimit
	}

	rows, err := s.repo.ListRecentByParticipant(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*ActivityItem, len(rows))
	for i, row := range rows {
		ownSplit := decimal.Zero
		if row.UserSplit.Valid {
			ownSplit = row.UserSplit.Decimal
		}

		var share decimal.Decimal
		if row.Expense.PayerID == userID {
			share = row.Expense.Amount.Sub(ownSplit)
		} else {
			share = ownSplit.Neg()
		}

		items[i] = &ActivityItem{
			Expense:   row.Expense,
			GroupName: row.GroupName,
			UserShare: share,
		}
	}

	return items, nil
}
