package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlarsson/splittab/internal/group"
)

func setupService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(NewRepository(db), group.NewRepository(db)), mock
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expectGroupLookup(mock sqlmock.Sqlmock, groupID string) {
	mock.ExpectQuery(`SELECT id, name, description, created_by, created_at\s+FROM groups`).
		WithArgs(groupID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_by", "created_at"}).
			AddRow(groupID, "Trip", nil, "alice", time.Now()))
}

func expectMemberIDs(mock sqlmock.Sqlmock, groupID string, memberIDs ...string) {
	rows := sqlmock.NewRows([]string{"user_id"})
	for _, id := range memberIDs {
		rows.AddRow(id)
	}
	mock.ExpectQuery(`SELECT user_id\s+FROM group_members`).
		WithArgs(groupID).
		WillReturnRows(rows)
}

func TestRecord(t *testing.T) {
	t.Run("records a settlement between two members", func(t *testing.T) {
		svc, mock := setupService(t)

		expectGroupLookup(mock, "group-1")
		expectMemberIDs(mock, "group-1", "alice", "bob")

		mock.ExpectQuery(`INSERT INTO settlements`).
			WithArgs(sqlmock.AnyArg(), "bob", "alice", "group-1", dec("45.00")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		settlement, err := svc.Record(context.Background(), "bob", &CreateSettlementRequest{
			ToUserID: "alice",
			GroupID:  "group-1",
			Amount:   dec("45.00"),
		})

		require.NoError(t, err)
		assert.NotEmpty(t, settlement.ID)
		assert.Equal(t, "bob", settlement.FromUserID)
		assert.Equal(t, "alice", settlement.ToUserID)
		assert.True(t, settlement.Amount.Equal(dec("45.00")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("amount above the outstanding debt is accepted", func(t *testing.T) {
		// Settlements are informational records, never capped at what is
		// actually owed.
		svc, mock := setupService(t)

		expectGroupLookup(mock, "group-1")
		expectMemberIDs(mock, "group-1", "alice", "bob")

		mock.ExpectQuery(`INSERT INTO settlements`).
			WithArgs(sqlmock.AnyArg(), "bob", "alice", "group-1", dec("1000.00")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		_, err := svc.Record(context.Background(), "bob", &CreateSettlementRequest{
			ToUserID: "alice",
			GroupID:  "group-1",
			Amount:   dec("1000.00"),
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero amount", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Record(context.Background(), "bob", &CreateSettlementRequest{
			ToUserID: "alice",
			GroupID:  "group-1",
			Amount:   dec("0"),
		})

		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	})

	t.Run("negative amount", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Record(context.Background(), "bob", &CreateSettlementRequest{
			ToUserID: "alice",
			GroupID:  "group-1",
			Amount:   dec("-5.00"),
		})

		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	})

	t.Run("self settlement", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.Record(context.Background(), "bob", &CreateSettlementRequest{
			ToUserID: "bob",
			GroupID:  "group-1",
			Amount:   dec("45.00"),
		})

		assert.ErrorIs(t, err, ErrSelfSettlement)
	})

	t.Run("unknown group", func(t *testing.T) {
		svc, mock := setupService(t)

		mock.ExpectQuery(`SELECT id, name, description, created_by, created_at\s+FROM groups`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_by", "created_at"}))

		_, err := svc.Record(context.Background(), "bob", &CreateSettlementRequest{
			ToUserID: "alice",
			GroupID:  "missing",
			Amount:   dec("45.00"),
		})

		assert.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("payer is not a member", func(t *testing.T) {
		svc, mock := setupService(t)

		expectGroupLookup(mock, "group-1")
		expectMemberIDs(mock, "group-1", "alice", "carol")

		_, err := svc.Record(context.Background(), "bob", &CreateSettlementRequest{
			ToUserID: "alice",
			GroupID:  "group-1",
			Amount:   dec("45.00"),
		})

		assert.ErrorIs(t, err, ErrNotGroupMember)
	})

	t.Run("recipient is not a member", func(t *testing.T) {
		svc, mock := setupService(t)

		expectGroupLookup(mock, "group-1")
		expectMemberIDs(mock, "group-1", "bob", "carol")

		_, err := svc.Record(context.Background(), "bob", &CreateSettlementRequest{
			ToUserID: "alice",
			GroupID:  "group-1",
			Amount:   dec("45.00"),
		})

		assert.ErrorIs(t, err, ErrNotGroupMember)
	})
}

func TestListByGroupID(t *testing.T) {
	t.Run("returns settlements newest first", func(t *testing.T) {
		svc, mock := setupService(t)

		expectGroupLookup(mock, "group-1")

		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"id", "from_user_id", "to_user_id", "group_id", "amount", "created_at",
			"username", "username",
		}).
			AddRow("s2", "carol", "alice", "group-1", "45.00", now, "carol", "alice").
			AddRow("s1", "bob", "alice", "group-1", "45.00", now.Add(-time.Hour), "bob", "alice")
		mock.ExpectQuery(`FROM settlements s`).
			WithArgs("group-1").
			WillReturnRows(rows)

		settlements, err := svc.ListByGroupID(context.Background(), "group-1")

		require.NoError(t, err)
		require.Len(t, settlements, 2)
		assert.Equal(t, "s2", settlements[0].ID)
		assert.Equal(t, "carol", settlements[0].FromUsername)
		assert.Equal(t, "s1", settlements[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown group", func(t *testing.T) {
		svc, mock := setupService(t)

		mock.ExpectQuery(`SELECT id, name, description, created_by, created_at\s+FROM groups`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_by", "created_at"}))

		_, err := svc.ListByGroupID(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrGroupNotFound)
	})
}
