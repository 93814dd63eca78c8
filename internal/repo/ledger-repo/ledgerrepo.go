package ledgerrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Transfer moves amount from origin to destination on behalf of
// transactionID. Both user rows are locked in ascending id order, two
// ledger entries summing to zero are appended and the cached balances are
// updated, all in one database transaction. A second transfer for the same
// transaction fails with domain.ErrConflict.
func (r *Repository) Transfer(ctx context.Context, transactionID, originID, destinationID uuid.UUID, amount decimal.Decimal) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		first, second := originID, destinationID
		if bytes.Compare(first[:], second[:]) > 0 {
			first, second = second, first
		}
		if _, err := r.lockBalance(ctx, first); err != nil {
			return err
		}
		if _, err := r.lockBalance(ctx, second); err != nil {
			return err
		}

		var err error
		entries, err = r.appendEntries(ctx, transactionID, originID, destinationID, amount)
		if err != nil {
			return err
		}

		if err := r.addToBalance(ctx, originID, amount.Neg()); err != nil {
			return err
		}
		return r.addToBalance(ctx, destinationID, amount)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Repository) lockBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT balance
		FROM users
		WHERE user_id = $1
		FOR UPDATE
	`
	var balance decimal.Decimal
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
		}
		zap.L().Error("failed to lock user balance", zap.Stringer("user_id", userID), zap.Error(err))
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *Repository) appendEntries(ctx context.Context, transactionID, originID, destinationID uuid.UUID, amount decimal.Decimal) ([]domain.LedgerEntry, error) {
	query := `
		INSERT INTO ledger_entries (transaction_id, user_id, delta)
		VALUES ($1, $2, $3), ($1, $4, $5)
		RETURNING entry_id, transaction_id, user_id, delta, created_at
	`
	rows, err := r.db.Query(ctx, query, transactionID, originID, amount.Neg(), destinationID, amount)
	if err != nil {
		return nil, entriesError(transactionID, err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0, 2)
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.UserID, &e.Delta, &e.CreatedAt); err != nil {
			zap.L().Error("failed to scan ledger entry", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, entriesError(transactionID, err)
	}
	return entries, nil
}

func entriesError(transactionID uuid.UUID, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		zap.L().Warn("transaction already applied to the ledger", zap.Stringer("transaction_id", transactionID))
		return fmt.Errorf("%w: transaction %s already applied to the ledger", domain.ErrConflict, transactionID)
	}
	zap.L().Error("failed to append ledger entries", zap.Stringer("transaction_id", transactionID), zap.Error(err))
	return err
}

func (r *Repository) addToBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE users
		SET balance = balance + $1
		WHERE user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, delta, userID)
	if err != nil {
		zap.L().Error("failed to update user balance", zap.Stringer("user_id", userID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	return nil
}

// ResetBalance sets the balance of userID to zero and records who did it.
func (r *Repository) ResetBalance(ctx context.Context, actorID, userID uuid.UUID, reason string) (*domain.BalanceAdjustment, error) {
	query := `
		INSERT INTO balance_adjustments (user_id, actor_id, previous_balance, new_balance, reason)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING adjustment_id, user_id, actor_id, previous_balance, new_balance, reason, created_at
	`
	var adj domain.BalanceAdjustment
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		previous, err := r.lockBalance(ctx, userID)
		if err != nil {
			return err
		}
		err = r.db.QueryRow(ctx, query, userID, actorID, previous, reason).
			Scan(&adj.ID, &adj.UserID, &adj.ActorID, &adj.PreviousBalance, &adj.NewBalance, &adj.Reason, &adj.CreatedAt)
		if err != nil {
			zap.L().Error("failed to record balance adjustment", zap.Stringer("user_id", userID), zap.Error(err))
			return err
		}
		if _, err := r.db.Exec(ctx, `UPDATE users SET balance = 0 WHERE user_id = $1`, userID); err != nil {
			zap.L().Error("failed to reset user balance", zap.Stringer("user_id", userID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

// BalanceChangeSince sums the ledger deltas of userID recorded at or after since.
func (r *Repository) BalanceChangeSince(ctx context.Context, userID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(delta), 0)
		FROM ledger_entries
		WHERE user_id = $1 AND created_at >= $2
	`
	var change decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID, since).Scan(&change); err != nil {
		zap.L().Error("failed to sum ledger entries", zap.Stringer("user_id", userID), zap.Error(err))
		return decimal.Zero, err
	}
	return change, nil
}
