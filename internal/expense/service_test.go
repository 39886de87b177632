package expense

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlarsson/splittab/internal/expense/split"
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

func TestCreateExpense(t *testing.T) {
	t.Run("splits evenly among non-payer members", func(t *testing.T) {
		svc, mock := setupService(t)

		expectGroupLookup(mock, "group-1")
		expectMemberIDs(mock, "group-1", "alice", "bob", "carol")

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO expenses`).
			WithArgs(sqlmock.AnyArg(), "group-1", "alice", "Dinner", nil, dec("90.00")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec(`INSERT INTO expense_splits`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "bob", dec("45.00"), false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO expense_splits`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "carol", dec("45.00"), false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		result, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID: "group-1",
			Title:   "Dinner",
			Amount:  dec("90.00"),
		})

		require.NoError(t, err)
		require.Len(t, result.Splits, 2)
		assert.Equal(t, "bob", result.Splits[0].UserID)
		assert.Equal(t, "carol", result.Splits[1].UserID)
		for _, s := range result.Splits {
			assert.True(t, s.Amount.Equal(dec("45.00")), "split = %s", s.Amount)
			assert.False(t, s.Settled)
			assert.Equal(t, result.Expense.ID, s.ExpenseID)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("four members round down and drift a cent", func(t *testing.T) {
		svc, mock := setupService(t)

		expectGroupLookup(mock, "group-2")
		expectMemberIDs(mock, "group-2", "alice", "bob", "carol", "dave")

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO expenses`).
			WithArgs(sqlmock.AnyArg(), "group-2", "alice", "Rental car", nil, dec("100.00")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		for _, member := range []string{"bob", "carol", "dave"} {
			mock.ExpectExec(`INSERT INTO expense_splits`).
				WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), member, dec("33.33"), false).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		result, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID: "group-2",
			Title:   "Rental car",
			Amount:  dec("100.00"),
		})

		require.NoError(t, err)
		require.Len(t, result.Splits, 3)
		sum := decimal.Zero
		for _, s := range result.Splits {
			sum = sum.Add(s.Amount)
		}
		assert.True(t, sum.Equal(dec("99.99")), "sum = %s", sum)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty title", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID: "group-1",
			Title:   "   ",
			Amount:  dec("90.00"),
		})

		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID: "group-1",
			Title:   "Dinner",
			Amount:  dec("0"),
		})

		assert.ErrorIs(t, err, split.ErrNonPositiveAmount)
	})

	t.Run("unknown group", func(t *testing.T) {
		svc, mock := setupService(t)

		mock.ExpectQuery(`SELECT id, name, description, created_by, created_at\s+FROM groups`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_by", "created_at"}))

		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID: "missing",
			Title:   "Dinner",
			Amount:  dec("90.00"),
		})

		assert.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("payer is not a member", func(t *testing.T) {
		svc, mock := setupService(t)

		expectGroupLookup(mock, "group-1")
		expectMemberIDs(mock, "group-1", "bob", "carol")

		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID: "group-1",
			Title:   "Dinner",
			Amount:  dec("90.00"),
		})

		assert.ErrorIs(t, err, ErrPayerNotMember)
	})

	t.Run("single-member group cannot split", func(t *testing.T) {
		svc, mock := setupService(t)

		expectGroupLookup(mock, "group-1")
		expectMemberIDs(mock, "group-1", "alice")

		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID: "group-1",
			Title:   "Dinner",
			Amount:  dec("90.00"),
		})

		assert.ErrorIs(t, err, split.ErrInsufficientMembers)
	})

	t.Run("split insert failure rolls the expense back", func(t *testing.T) {
		svc, mock := setupService(t)

		expectGroupLookup(mock, "group-1")
		expectMemberIDs(mock, "group-1", "alice", "bob")

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO expenses`).
			WithArgs(sqlmock.AnyArg(), "group-1", "alice", "Dinner", nil, dec("90.00")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec(`INSERT INTO expense_splits`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err := svc.CreateExpense(context.Background(), "alice", &CreateExpenseRequest{
			GroupID: "group-1",
			Title:   "Dinner",
			Amount:  dec("90.00"),
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func activityColumns() []string {
	return []string{
		"id", "group_id", "payer_id", "title", "description", "amount",
		"created_at", "username", "name", "amount",
	}
}

func TestGetRecentActivity(t *testing.T) {
	t.Run("payer sees the amount fronted, owers see a negative share", func(t *testing.T) {
		svc, mock := setupService(t)

		now := time.Now()
		rows := sqlmock.NewRows(activityColumns()).
			AddRow("e2", "group-1", "bob", "Taxi", nil, "30.00", now, "bob", "Trip", "15.00").
			AddRow("e1", "group-1", "alice", "Dinner", nil, "90.00", now.Add(-time.Hour), "alice", "Trip", nil)
		mock.ExpectQuery(`FROM expenses e`).
			WithArgs("alice", 10).
			WillReturnRows(rows)

		items, err := svc.GetRecentActivity(context.Background(), "alice", 0)

		require.NoError(t, err)
		require.Len(t, items, 2)

		// Newest first: the taxi bob paid, where alice owes her split.
		assert.Equal(t, "Taxi", items[0].Expense.Title)
		assert.True(t, items[0].UserShare.Equal(dec("-15.00")), "share = %s", items[0].UserShare)

		// The dinner alice fronted in full: no own split row.
		assert.Equal(t, "Dinner", items[1].Expense.Title)
		assert.True(t, items[1].UserShare.Equal(dec("90.00")), "share = %s", items[1].UserShare)
		assert.Equal(t, "Trip", items[1].GroupName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("payer with an own split row sees amount minus split", func(t *testing.T) {
		// The schema permits a payer-split edge case even though the
		// calculator never generates one.
		svc, mock := setupService(t)

		rows := sqlmock.NewRows(activityColumns()).
			AddRow("e1", "group-1", "alice", "Dinner", nil, "90.00", time.Now(), "alice", "Trip", "30.00")
		mock.ExpectQuery(`FROM expenses e`).
			WithArgs("alice", 10).
			WillReturnRows(rows)

		items, err := svc.GetRecentActivity(context.Background(), "alice", 0)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].UserShare.Equal(dec("60.00")), "share = %s", items[0].UserShare)
	})

	t.Run("explicit limit is passed through", func(t *testing.T) {
		svc, mock := setupService(t)

		mock.ExpectQuery(`FROM expenses e`).
			WithArgs("alice", 3).
			WillReturnRows(sqlmock.NewRows(activityColumns()))

		items, err := svc.GetRecentActivity(context.Background(), "alice", 3)

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
