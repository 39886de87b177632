package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		payerID      string
		memberIDs    []string
		wantErr      error
		wantShare    string
		wantMembers  []string
	}{
		{
			name:        "three members split evenly",
			total:       "90.00",
			payerID:     "alice",
			memberIDs:   []string{"alice", "bob", "carol"},
			wantShare:   "45.00",
			wantMembers: []string{"bob", "carol"},
		},
		{
			name:        "four members leave a rounding drift",
			total:       "100.00",
			payerID:     "alice",
			memberIDs:   []string{"alice", "bob", "carol", "dave"},
			wantShare:   "33.33",
			wantMembers: []string{"bob", "carol", "dave"},
		},
		{
			name:        "two members",
			total:       "10.01",
			payerID:     "alice",
			memberIDs:   []string{"alice", "bob"},
			wantShare:   "10.01",
			wantMembers: []string{"bob"},
		},
		{
			name:        "duplicate member IDs are ignored",
			total:       "90.00",
			payerID:     "alice",
			memberIDs:   []string{"alice", "bob", "bob", "carol"},
			wantShare:   "45.00",
			wantMembers: []string{"bob", "carol"},
		},
		{
			name:      "single member group",
			total:     "90.00",
			payerID:   "alice",
			memberIDs: []string{"alice"},
			wantErr:   ErrInsufficientMembers,
		},
		{
			name:      "empty group",
			total:     "90.00",
			payerID:   "alice",
			memberIDs: nil,
			wantErr:   ErrInsufficientMembers,
		},
		{
			name:      "zero amount",
			total:     "0.00",
			payerID:   "alice",
			memberIDs: []string{"alice", "bob"},
			wantErr:   ErrNonPositiveAmount,
		},
		{
			name:      "negative amount",
			total:     "-5.00",
			payerID:   "alice",
			memberIDs: []string{"alice", "bob"},
			wantErr:   ErrNonPositiveAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Compute(dec(tt.total), tt.payerID, tt.memberIDs)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, shares, len(tt.wantMembers))

			want := dec(tt.wantShare)
			for i, share := range shares {
				assert.Equal(t, tt.wantMembers[i], share.UserID)
				assert.True(t, share.Amount.Equal(want),
					"share %d = %s, want %s", i, share.Amount, want)
			}
		})
	}
}

func TestComputeExcludesPayer(t *testing.T) {
	shares, err := Compute(dec("60.00"), "alice", []string{"alice", "bob", "carol"})
	require.NoError(t, err)

	for _, share := range shares {
		assert.NotEqual(t, "alice", share.UserID)
	}
}

func TestComputeRoundingDriftStaysWithinTolerance(t *testing.T) {
	// 100.00 over three recipients: 33.33 each, summing to 99.99. The one
	// cent gap is expected and must pass validation.
	shares, err := Compute(dec("100.00"), "alice", []string{"alice", "bob", "carol", "dave"})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, share := range shares {
		sum = sum.Add(share.Amount)
	}
	assert.True(t, sum.Equal(dec("99.99")), "sum = %s", sum)

	v := ValidateSum(dec("100.00"), shares)
	assert.True(t, v.OK)
}

func TestValidateSum(t *testing.T) {
	tests := []struct {
		name   string
		total  string
		shares []Share
		wantOK bool
	}{
		{
			name:  "exact sum",
			total: "90.00",
			shares: []Share{
				{UserID: "bob", Amount: dec("45.00")},
				{UserID: "carol", Amount: dec("45.00")},
			},
			wantOK: true,
		},
		{
			name:  "one cent drift per share is tolerated",
			total: "100.00",
			shares: []Share{
				{UserID: "bob", Amount: dec("33.33")},
				{UserID: "carol", Amount: dec("33.33")},
				{UserID: "dave", Amount: dec("33.33")},
			},
			wantOK: true,
		},
		{
			name:  "drift beyond tolerance is rejected",
			total: "100.00",
			shares: []Share{
				{UserID: "bob", Amount: dec("30.00")},
				{UserID: "carol", Amount: dec("30.00")},
			},
			wantOK: false,
		},
		{
			name:   "no shares against a positive total",
			total:  "10.00",
			shares: nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateSum(dec(tt.total), tt.shares)
			assert.Equal(t, tt.wantOK, v.OK)
			assert.True(t, v.Expected.Equal(dec(tt.total)))
		})
	}
}
