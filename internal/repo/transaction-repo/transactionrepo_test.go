package transactionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectColumns = `SELECT transaction_id, origin_user_id, destination_user_id, origin_clabe, destination_clabe, amount, currency, description, category, request, direction, status, transaction_datetime FROM transactions`

var columns = []string{
	"transaction_id", "origin_user_id", "destination_user_id", "origin_clabe", "destination_clabe",
	"amount", "currency", "description", "category", "request", "direction", "status", "transaction_datetime",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func sampleRow(tx domain.Transaction) []any {
	return []any{
		tx.ID, tx.OriginUserID, tx.DestinationUserID, tx.OriginClabe, tx.DestinationClabe,
		tx.Amount, tx.Currency, tx.Description, tx.Category, tx.Request, tx.Direction, tx.Status, tx.CreatedAt,
	}
}

func sample() domain.Transaction {
	return domain.Transaction{
		ID:                uuid.New(),
		OriginUserID:      uuid.New(),
		DestinationUserID: uuid.New(),
		Amount:            decimal.RequireFromString("25.50"),
		Currency:          "MXN",
		Description:       "lunch",
		Category:          "food",
		Direction:         domain.DirectionOutbound,
		Status:            domain.TransactionStatusComplete,
		CreatedAt:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`INSERT INTO transactions (origin_user_id, destination_user_id, origin_clabe, destination_clabe, amount, currency, description, category, request, direction, status) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING transaction_id, transaction_datetime`)

	t.Run("Transaction saved", func(t *testing.T) {
		in := sample()
		wantID := in.ID
		in.ID = uuid.Nil

		mock.ExpectQuery(query).
			WithArgs(in.OriginUserID, in.DestinationUserID, "", "", pgxmock.AnyArg(), "MXN", "lunch", "food", false,
				domain.DirectionOutbound, domain.TransactionStatusComplete).
			WillReturnRows(pgxmock.NewRows([]string{"transaction_id", "transaction_datetime"}).AddRow(wantID, in.CreatedAt))

		out, err := repo.Create(context.Background(), &in)
		require.NoError(t, err)
		assert.Equal(t, wantID, out.ID)
	})

	t.Run("Database error", func(t *testing.T) {
		in := sample()
		mock.ExpectQuery(query).WillReturnError(errors.New("database error"))

		out, err := repo.Create(context.Background(), &in)
		assert.Error(t, err)
		assert.Nil(t, out)
	})
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	tx := sample()

	tests := []struct {
		name      string
		query     string
		find      func(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
		mockSetup func(query string)
		expectErr bool
		result    *domain.Transaction
	}{
		{
			name:  "Found",
			query: regexp.QuoteMeta(selectColumns + ` WHERE transaction_id = $1`),
			find:  repo.FindByID,
			mockSetup: func(query string) {
				mock.ExpectQuery(query).WithArgs(tx.ID).WillReturnRows(pgxmock.NewRows(columns).AddRow(sampleRow(tx)...))
			},
			result: &tx,
		},
		{
			name:  "Found and locked",
			query: regexp.QuoteMeta(selectColumns + ` WHERE transaction_id = $1 FOR UPDATE`),
			find:  repo.FindByIDForUpdate,
			mockSetup: func(query string) {
				mock.ExpectQuery(query).WithArgs(tx.ID).WillReturnRows(pgxmock.NewRows(columns).AddRow(sampleRow(tx)...))
			},
			result: &tx,
		},
		{
			name:  "Not found",
			query: regexp.QuoteMeta(selectColumns + ` WHERE transaction_id = $1`),
			find:  repo.FindByID,
			mockSetup: func(query string) {
				mock.ExpectQuery(query).WithArgs(tx.ID).WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			query: regexp.QuoteMeta(selectColumns + ` WHERE transaction_id = $1`),
			find:  repo.FindByID,
			mockSetup: func(query string) {
				mock.ExpectQuery(query).WithArgs(tx.ID).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup(tt.query)
			result, err := tt.find(context.Background(), tx.ID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)
	id := uuid.New()
	query := regexp.QuoteMeta(`UPDATE transactions SET status = $1 WHERE transaction_id = $2`)

	mock.ExpectExec(query).WithArgs(domain.TransactionStatusComplete, id).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.UpdateStatus(context.Background(), id, domain.TransactionStatusComplete))

	mock.ExpectExec(query).WithArgs(domain.TransactionStatusRejected, id).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), id, domain.TransactionStatusRejected), domain.ErrNotFound)

	mock.ExpectExec(query).WithArgs(domain.TransactionStatusRejected, id).WillReturnError(errors.New("database error"))
	assert.Error(t, repo.UpdateStatus(context.Background(), id, domain.TransactionStatusRejected))
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	first, second := sample(), sample()
	userID := first.OriginUserID
	query := regexp.QuoteMeta(selectColumns + ` WHERE origin_user_id = $1 OR destination_user_id = $1 ORDER BY transaction_datetime DESC LIMIT $2`)

	t.Run("Returns rows in order", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID, 20).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(sampleRow(first)...).AddRow(sampleRow(second)...))

		result, err := repo.FindByUserID(context.Background(), userID, 20)
		require.NoError(t, err)
		assert.Equal(t, []domain.Transaction{first, second}, result)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID, 20).WillReturnError(errors.New("database error"))

		result, err := repo.FindByUserID(context.Background(), userID, 20)
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}
