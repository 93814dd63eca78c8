package transactionrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const transactionColumns = `transaction_id, origin_user_id, destination_user_id, origin_clabe, destination_clabe,
		amount, currency, description, category, request, direction, status, transaction_datetime`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (origin_user_id, destination_user_id, origin_clabe, destination_clabe,
			amount, currency, description, category, request, direction, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING transaction_id, transaction_datetime
	`
	err := r.db.QueryRow(ctx, query,
		tx.OriginUserID, tx.DestinationUserID, tx.OriginClabe, tx.DestinationClabe,
		tx.Amount, tx.Currency, tx.Description, tx.Category, tx.Request, tx.Direction, tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) FindByID(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1
	`
	return r.findOne(ctx, query, transactionID)
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (r *Repository) FindByIDForUpdate(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1
		FOR UPDATE
	`
	return r.findOne(ctx, query, transactionID)
}

func (r *Repository) findOne(ctx context.Context, query string, transactionID uuid.UUID) (*domain.Transaction, error) {
	tx, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find transaction", zap.Stringer("transaction_id", transactionID), zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, transactionID uuid.UUID, status domain.TransactionStatus) error {
	query := `
		UPDATE transactions
		SET status = $1
		WHERE transaction_id = $2
	`
	tag, err := r.db.Exec(ctx, query, status, transactionID)
	if err != nil {
		zap.L().Error("failed to update transaction status", zap.Stringer("transaction_id", transactionID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", domain.ErrNotFound, transactionID)
	}
	return nil
}

// FindByUserID returns the transactions where userID is either party, newest first.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE origin_user_id = $1 OR destination_user_id = $1
		ORDER BY transaction_datetime DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, *tx)
	}
	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(
		&tx.ID, &tx.OriginUserID, &tx.DestinationUserID, &tx.OriginClabe, &tx.DestinationClabe,
		&tx.Amount, &tx.Currency, &tx.Description, &tx.Category, &tx.Request, &tx.Direction, &tx.Status, &tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
