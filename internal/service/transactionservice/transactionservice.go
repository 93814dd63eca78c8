package transactionservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/GlebRadaev/payledger/internal/changefeed"
	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/metrics"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const listLimit = 100

type Repo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error)
	FindByIDForUpdate(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, transactionID uuid.UUID, status domain.TransactionStatus) error
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type Ledger interface {
	Transfer(ctx context.Context, transactionID, originID, destinationID uuid.UUID, amount decimal.Decimal) error
}

type Notifier interface {
	PutNotification(ctx context.Context, userID uuid.UUID, senderID uuid.NullUUID, text string, notificationType domain.NotificationType, metadata domain.Metadata) *domain.Notification
	ResolveRequest(ctx context.Context, userID uuid.UUID, notificationType domain.NotificationType, referenceID uuid.UUID, response domain.Response) error
}

type Service struct {
	repo      Repo
	userRepo  UserRepo
	ledger    Ledger
	notifier  Notifier
	feed      changefeed.Publisher
	txManager pg.TXManager
	currency  string
	category  string
}

func New(repo Repo, userRepo UserRepo, ledger Ledger, notifier Notifier, feed changefeed.Publisher, txManager pg.TXManager, currency, category string) *Service {
	return &Service{
		repo:      repo,
		userRepo:  userRepo,
		ledger:    ledger,
		notifier:  notifier,
		feed:      feed,
		txManager: txManager,
		currency:  currency,
		category:  category,
	}
}

// CreateRequest is a pay or request action phrased from the acting user's side.
type CreateRequest struct {
	ActorID          uuid.UUID
	CounterpartID    uuid.UUID
	ActorClabe       string
	CounterpartClabe string
	Amount           decimal.Decimal
	Currency         string
	Description      string
	Category         string
	IsRequest        bool
	Direction        domain.Direction
	Status           domain.TransactionStatus
}

func (s *Service) normalize(req *CreateRequest) error {
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return err
	}
	req.Amount = req.Amount.Round(domain.AmountScale)
	if req.ActorID == req.CounterpartID {
		return fmt.Errorf("%w: counterpart must be another user", domain.ErrValidation)
	}

	if req.Status == "" {
		req.Status = domain.TransactionStatusComplete
		if req.IsRequest {
			req.Status = domain.TransactionStatusPending
		}
	}
	switch req.Status {
	case domain.TransactionStatusPending, domain.TransactionStatusComplete:
	default:
		return fmt.Errorf("%w: transaction can't be created %s", domain.ErrValidation, req.Status)
	}
	if req.IsRequest && req.Status == domain.TransactionStatusComplete {
		return fmt.Errorf("%w: a request is created pending", domain.ErrValidation)
	}

	if req.Direction == "" {
		req.Direction = domain.DirectionOutbound
		if req.IsRequest {
			req.Direction = domain.DirectionInbound
		}
	}
	if req.Direction != domain.DirectionInbound && req.Direction != domain.DirectionOutbound {
		return fmt.Errorf("%w: unknown direction %s", domain.ErrValidation, req.Direction)
	}

	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = s.currency
	}
	if err := domain.ValidateCurrency(req.Currency); err != nil {
		return err
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		req.Category = s.category
	}
	req.ActorClabe = strings.TrimSpace(req.ActorClabe)
	req.CounterpartClabe = strings.TrimSpace(req.CounterpartClabe)
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"category", req.Category, domain.MaxCategoryLen},
		{"actor clabe", req.ActorClabe, domain.MaxClabeLen},
		{"counterpart clabe", req.CounterpartClabe, domain.MaxClabeLen},
	} {
		if err := domain.ValidateLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}

// CreateTransaction records a pay (money leaves the actor) or a request
// (money will flow from the counterpart to the actor). A transaction created
// complete moves balances in the same database transaction. A request
// notifies the counterpart once committed.
func (s *Service) CreateTransaction(ctx context.Context, req CreateRequest) (*domain.Transaction, error) {
	if err := s.normalize(&req); err != nil {
		return nil, err
	}

	actor, err := s.findUser(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, req.CounterpartID); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		OriginUserID:      req.ActorID,
		DestinationUserID: req.CounterpartID,
		OriginClabe:       req.ActorClabe,
		DestinationClabe:  req.CounterpartClabe,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Description:       req.Description,
		Category:          req.Category,
		Request:           req.IsRequest,
		Direction:         req.Direction,
		Status:            req.Status,
	}
	if req.IsRequest {
		tx.OriginUserID, tx.DestinationUserID = req.CounterpartID, req.ActorID
		tx.OriginClabe, tx.DestinationClabe = req.CounterpartClabe, req.ActorClabe
	}

	var created *domain.Transaction
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Create(ctx, tx)
		if err != nil {
			zap.L().Error("can't save transaction", zap.Error(err))
			return domain.StorageError(err)
		}
		if created.Status == domain.TransactionStatusComplete {
			return s.ledger.Transfer(ctx, created.ID, created.OriginUserID, created.DestinationUserID, created.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, created, changefeed.OpInsert)
	if created.Request {
		s.notifier.PutNotification(ctx,
			created.OriginUserID,
			uuid.NullUUID{UUID: actor.ID, Valid: true},
			fmt.Sprintf("You have a new payment request from @%s", actor.Handle),
			domain.NotificationTypePaymentRequest,
			domain.Metadata{domain.MetaTransactionID: created.ID.String()},
		)
	}

	zap.L().Info("transaction created",
		zap.Stringer("transaction_id", created.ID),
		zap.Bool("request", created.Request),
		zap.String("status", string(created.Status)))
	return created, nil
}

// TransitionStatus resolves a transaction on behalf of its payer. The row is
// locked for the duration so concurrent resolutions serialize. Repeating the
// current terminal status is a no-op; moving between terminal statuses is a conflict.
func (s *Service) TransitionStatus(ctx context.Context, actorID, transactionID uuid.UUID, status domain.TransactionStatus) (*domain.Transaction, error) {
	if !status.Terminal() {
		return nil, fmt.Errorf("%w: can't transition to %q", domain.ErrValidation, status)
	}

	var (
		tx       *domain.Transaction
		previous domain.TransactionStatus
	)
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		tx, err = s.repo.FindByIDForUpdate(ctx, transactionID)
		if err != nil {
			zap.L().Error("can't lock transaction", zap.Error(err))
			return domain.StorageError(err)
		}
		if tx == nil {
			return fmt.Errorf("%w: transaction %s", domain.ErrNotFound, transactionID)
		}
		if tx.OriginUserID != actorID {
			return fmt.Errorf("%w: only the payer resolves a transaction", domain.ErrForbidden)
		}

		previous = tx.Status
		if previous == status {
			return nil
		}
		if previous.Terminal() {
			return fmt.Errorf("%w: transaction is already %s", domain.ErrConflict, previous)
		}

		if err := s.repo.UpdateStatus(ctx, transactionID, status); err != nil {
			zap.L().Error("can't update transaction status", zap.Error(err))
			return domain.StorageError(err)
		}
		tx.Status = status
		if status == domain.TransactionStatusComplete {
			if err := s.ledger.Transfer(ctx, tx.ID, tx.OriginUserID, tx.DestinationUserID, tx.Amount); err != nil {
				return err
			}
		}
		if !tx.Request {
			return nil
		}
		// the payer's payment_request notification is answered by this transition
		response := domain.ResponseReject
		if status == domain.TransactionStatusComplete {
			response = domain.ResponseAccept
		}
		return s.notifier.ResolveRequest(ctx, tx.OriginUserID, domain.NotificationTypePaymentRequest, tx.ID, response)
	})
	if err != nil {
		return nil, err
	}

	if previous != status {
		pg.AfterCommit(ctx, func() {
			metrics.ObserveTransition(string(previous), string(status))
			s.publish(ctx, tx, changefeed.OpUpdate)
		})
		zap.L().Info("transaction status changed",
			zap.Stringer("transaction_id", transactionID),
			zap.String("from", string(previous)),
			zap.String("to", string(status)))
	}
	tx.Direction = tx.DirectionFor(actorID)
	return tx, nil
}

// GetTransaction returns a transaction visible to userID.
func (s *Service) GetTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*domain.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, transactionID)
	}
	if tx.OriginUserID != userID && tx.DestinationUserID != userID {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, transactionID)
	}
	tx.Direction = tx.DirectionFor(userID)
	return tx, nil
}

// ListTransactions returns the transactions of userID, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	txs, err := s.repo.FindByUserID(ctx, userID, listLimit)
	if err != nil {
		zap.L().Error("failed to list transactions", zap.Error(err))
		return nil, domain.StorageError(err)
	}
	for i := range txs {
		txs[i].Direction = txs[i].DirectionFor(userID)
	}
	return txs, nil
}

func (s *Service) findUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, domain.StorageError(err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	return user, nil
}

func (s *Service) publish(ctx context.Context, tx *domain.Transaction, op string) {
	s.feed.Publish(ctx, changefeed.Change{
		Table:   changefeed.TableTransactions,
		Op:      op,
		ID:      tx.ID,
		UserIDs: []uuid.UUID{tx.OriginUserID, tx.DestinationUserID},
	})
}
