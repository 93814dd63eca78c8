package ledgerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	lowID  = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	highID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	txID   = uuid.MustParse("9f1c2b1e-8c1a-4b7e-9a55-0d2f3c4b5a61")

	lockQuery    = regexp.QuoteMeta(`SELECT balance FROM users WHERE user_id = $1 FOR UPDATE`)
	entriesQuery = regexp.QuoteMeta(`INSERT INTO ledger_entries (transaction_id, user_id, delta) VALUES ($1, $2, $3), ($1, $4, $5) RETURNING entry_id, transaction_id, user_id, delta, created_at`)
	addQuery     = regexp.QuoteMeta(`UPDATE users SET balance = balance + $1 WHERE user_id = $2`)
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func runInTx(tx *pg.MockTXManager) {
	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
}

func TestRepository_Transfer(t *testing.T) {
	amount := decimal.RequireFromString("25.50")
	now := time.Now()

	tests := []struct {
		name      string
		origin    uuid.UUID
		dest      uuid.UUID
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr error
		entries   int
	}{
		{
			name:   "Locks rows in id order and writes both legs",
			origin: highID,
			dest:   lowID,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lockQuery).WithArgs(lowID).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.Zero))
				mock.ExpectQuery(lockQuery).WithArgs(highID).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.RequireFromString("100")))
				mock.ExpectQuery(entriesQuery).
					WithArgs(txID, highID, pgxmock.AnyArg(), lowID, pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows([]string{"entry_id", "transaction_id", "user_id", "delta", "created_at"}).
						AddRow(int64(1), txID, highID, amount.Neg(), now).
						AddRow(int64(2), txID, lowID, amount, now))
				mock.ExpectExec(addQuery).WithArgs(pgxmock.AnyArg(), highID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectExec(addQuery).WithArgs(pgxmock.AnyArg(), lowID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			entries: 2,
		},
		{
			name:   "Unknown user",
			origin: lowID,
			dest:   highID,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lockQuery).WithArgs(lowID).WillReturnError(pgx.ErrNoRows)
			},
			expectErr: domain.ErrNotFound,
		},
		{
			name:   "Transaction already applied",
			origin: lowID,
			dest:   highID,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lockQuery).WithArgs(lowID).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.Zero))
				mock.ExpectQuery(lockQuery).WithArgs(highID).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.Zero))
				mock.ExpectQuery(entriesQuery).
					WithArgs(txID, lowID, pgxmock.AnyArg(), highID, pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			expectErr: domain.ErrConflict,
		},
		{
			name:   "Balance update fails",
			origin: lowID,
			dest:   highID,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(lockQuery).WithArgs(lowID).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.Zero))
				mock.ExpectQuery(lockQuery).WithArgs(highID).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.Zero))
				mock.ExpectQuery(entriesQuery).
					WithArgs(txID, lowID, pgxmock.AnyArg(), highID, pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows([]string{"entry_id", "transaction_id", "user_id", "delta", "created_at"}).
						AddRow(int64(1), txID, lowID, amount.Neg(), now).
						AddRow(int64(2), txID, highID, amount, now))
				mock.ExpectExec(addQuery).WithArgs(pgxmock.AnyArg(), lowID).WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, tx := NewMock(t)
			runInTx(tx)
			tt.mockSetup(mock)

			entries, err := repo.Transfer(context.Background(), txID, tt.origin, tt.dest, amount)
			if tt.expectErr != nil {
				require.Error(t, err)
				if errors.Is(tt.expectErr, domain.ErrNotFound) || errors.Is(tt.expectErr, domain.ErrConflict) {
					assert.ErrorIs(t, err, tt.expectErr)
				}
				assert.Nil(t, entries)
			} else {
				require.NoError(t, err)
				require.Len(t, entries, tt.entries)
				assert.True(t, entries[0].Delta.Add(entries[1].Delta).IsZero(), "legs must sum to zero")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ResetBalance(t *testing.T) {
	actorID := uuid.New()
	userID := uuid.New()
	insertQuery := regexp.QuoteMeta(`INSERT INTO balance_adjustments (user_id, actor_id, previous_balance, new_balance, reason) VALUES ($1, $2, $3, 0, $4) RETURNING adjustment_id, user_id, actor_id, previous_balance, new_balance, reason, created_at`)
	resetQuery := regexp.QuoteMeta(`UPDATE users SET balance = 0 WHERE user_id = $1`)

	t.Run("Records audit row and zeroes balance", func(t *testing.T) {
		repo, mock, tx := NewMock(t)
		runInTx(tx)
		previous := decimal.RequireFromString("74.50")

		mock.ExpectQuery(lockQuery).WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(previous))
		mock.ExpectQuery(insertQuery).WithArgs(userID, actorID, pgxmock.AnyArg(), "test cleanup").
			WillReturnRows(pgxmock.NewRows([]string{"adjustment_id", "user_id", "actor_id", "previous_balance", "new_balance", "reason", "created_at"}).
				AddRow(int64(7), userID, actorID, previous, decimal.Zero, "test cleanup", time.Now()))
		mock.ExpectExec(resetQuery).WithArgs(userID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		adj, err := repo.ResetBalance(context.Background(), actorID, userID, "test cleanup")
		require.NoError(t, err)
		assert.Equal(t, int64(7), adj.ID)
		assert.True(t, adj.PreviousBalance.Equal(previous))
		assert.True(t, adj.NewBalance.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown user", func(t *testing.T) {
		repo, mock, tx := NewMock(t)
		runInTx(tx)

		mock.ExpectQuery(lockQuery).WithArgs(userID).WillReturnError(pgx.ErrNoRows)

		adj, err := repo.ResetBalance(context.Background(), actorID, userID, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, adj)
	})
}

func TestRepository_BalanceChangeSince(t *testing.T) {
	repo, mock, _ := NewMock(t)
	userID := uuid.New()
	since := time.Now().Add(-24 * time.Hour)
	query := regexp.QuoteMeta(`SELECT COALESCE(SUM(delta), 0) FROM ledger_entries WHERE user_id = $1 AND created_at >= $2`)

	mock.ExpectQuery(query).WithArgs(userID, since).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.RequireFromString("-25.50")))

	change, err := repo.BalanceChangeSince(context.Background(), userID, since)
	require.NoError(t, err)
	assert.Equal(t, "-25.5", change.String())

	mock.ExpectQuery(query).WithArgs(userID, since).WillReturnError(errors.New("database error"))
	_, err = repo.BalanceChangeSince(context.Background(), userID, since)
	assert.Error(t, err)
}
