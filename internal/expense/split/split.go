// Package split computes how an expense total is divided among the members
// of a group. Expenses are always divided evenly among the members other
// than the payer; the payer's own share is implicit in what remains.
package split

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientMembers = errors.New("group must have at least 2 members to split an expense")
	ErrNonPositiveAmount   = errors.New("amount must be greater than zero")
)

// MaxDriftPerShare bounds how far the sum of rounded shares may sit from the
// expense total: one cent per share. Shares are rounded independently and the
// leftover cents are not redistributed, so an expense of 100.00 across three
// recipients produces three shares of 33.33 that sum to 99.99.
var MaxDriftPerShare = decimal.New(1, -2)

// Share is the portion of an expense owed by one non-payer group member.
type Share struct {
	UserID string
	Amount decimal.Decimal
}

// Compute divides totalAmount evenly across the group members other than the
// payer: each share is round(total / (memberCount - 1), 2). Duplicate member
// IDs are ignored. The per-share rounding is independent and the remainder is
// not reconciled against the total; ValidateSum encodes the accepted drift.
func Compute(totalAmount decimal.Decimal, payerID string, memberIDs []string) ([]Share, error) {
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrNonPositiveAmount
	}

	recipients := make([]string, 0, len(memberIDs))
	seen := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		if id == payerID || seen[id] {
			continue
		}
		seen[id] = true
		recipients = append(recipients, id)
	}

	if len(recipients) == 0 {
		return nil, ErrInsufficientMembers
	}

	perShare := totalAmount.Div(decimal.NewFromInt(int64(len(recipients)))).Round(2)

	shares := make([]Share, len(recipients))
	for i, id := range recipients {
		shares[i] = Share{UserID: id, Amount: perShare}
	}

	return shares, nil
}

// SumValidation reports whether a set of shares is consistent with an
// expense total. Actual carries the summed share amounts so callers can
// surface both figures when rejecting a mismatch.
type SumValidation struct {
	OK       bool
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

// ValidateSum checks shares against the expense total, allowing rounding
// drift of at most MaxDriftPerShare per share. A larger gap means the shares
// were not produced by an even split of this total and must be rejected
// before anything is persisted.
func ValidateSum(totalAmount decimal.Decimal, shares []Share) SumValidation {
	actual := decimal.Zero
	for _, s := range shares {
		actual = actual.Add(s.Amount)
	}

	tolerance := MaxDriftPerShare.Mul(decimal.NewFromInt(int64(len(shares))))
	return SumValidation{
		OK:       totalAmount.Sub(actual).Abs().LessThanOrEqual(tolerance),
		Expected: totalAmount,
		Actual:   actual,
	}
}
