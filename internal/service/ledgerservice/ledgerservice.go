package ledgerservice

import (
	"context"
	"fmt"

	"github.com/GlebRadaev/payledger/internal/changefeed"
	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/metrics"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repo interface {
	Transfer(ctx context.Context, transactionID, originID, destinationID uuid.UUID, amount decimal.Decimal) ([]domain.LedgerEntry, error)
	ResetBalance(ctx context.Context, actorID, userID uuid.UUID, reason string) (*domain.BalanceAdjustment, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type Service struct {
	repo     Repo
	userRepo UserRepo
	feed     changefeed.Publisher
}

func New(repo Repo, userRepo UserRepo, feed changefeed.Publisher) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		feed:     feed,
	}
}

// Transfer debits origin and credits destination by amount for transactionID.
// It joins the database transaction carried by ctx, if any. Balances may go negative.
func (s *Service) Transfer(ctx context.Context, transactionID, originID, destinationID uuid.UUID, amount decimal.Decimal) (err error) {
	defer func() {
		metrics.ObserveTransfer(domain.KindOf(err))
	}()

	if err = domain.ValidateAmount(amount); err != nil {
		return err
	}
	if originID == destinationID {
		return fmt.Errorf("%w: origin and destination are the same user", domain.ErrValidation)
	}

	if _, err = s.repo.Transfer(ctx, transactionID, originID, destinationID, amount); err != nil {
		zap.L().Error("balance transfer failed",
			zap.Stringer("transaction_id", transactionID),
			zap.Stringer("origin_id", originID),
			zap.Stringer("destination_id", destinationID),
			zap.Error(err))
		return domain.StorageError(err)
	}

	pg.AfterCommit(ctx, func() {
		for _, userID := range []uuid.UUID{originID, destinationID} {
			s.feed.Publish(ctx, changefeed.Change{
				Table:   changefeed.TableUsers,
				Op:      changefeed.OpUpdate,
				ID:      userID,
				UserIDs: []uuid.UUID{userID},
			})
		}
	})
	return nil
}

// ResetBalance zeroes the balance of userID outside the ledger and records
// the adjustment against actorID. Only reachable from admin routes.
func (s *Service) ResetBalance(ctx context.Context, actorID, userID uuid.UUID, reason string) (*domain.BalanceAdjustment, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, domain.StorageError(err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}

	adj, err := s.repo.ResetBalance(ctx, actorID, userID, reason)
	if err != nil {
		zap.L().Error("failed to reset balance", zap.Stringer("user_id", userID), zap.Error(err))
		return nil, domain.StorageError(err)
	}

	zap.L().Warn("balance reset",
		zap.Stringer("user_id", userID),
		zap.Stringer("actor_id", actorID),
		zap.String("previous_balance", adj.PreviousBalance.StringFixed(2)),
		zap.String("reason", reason))

	s.feed.Publish(ctx, changefeed.Change{
		Table:   changefeed.TableUsers,
		Op:      changefeed.OpUpdate,
		ID:      userID,
		UserIDs: []uuid.UUID{userID},
	})
	return adj, nil
}
