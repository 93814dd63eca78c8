package dashboardservice

import (
	"context"
	"fmt"
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	recentLimit       = 10
	notificationLimit = 20
	changeWindow      = 24 * time.Hour
)

type UserRepo interface {
	FindByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type LedgerRepo interface {
	BalanceChangeSince(ctx context.Context, userID uuid.UUID, since time.Time) (decimal.Decimal, error)
}

type TransactionRepo interface {
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error)
}

type NotificationRepo interface {
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type FriendRepo interface {
	FindFriends(ctx context.Context, userID uuid.UUID) ([]domain.Friend, error)
}

type Dashboard struct {
	UserID             uuid.UUID             `json:"user_id"`
	Handle             string                `json:"handle"`
	Name               string                `json:"name"`
	Balance            decimal.Decimal       `json:"balance"`
	BalanceChange24h   decimal.Decimal       `json:"balance_change_24h"`
	UnreadCount        int                   `json:"unread_count"`
	Notifications      []domain.Notification `json:"notifications"`
	RecentTransactions []domain.Transaction  `json:"recent_transactions"`
	Friends            []domain.Friend       `json:"friends"`
}

type Service struct {
	users         UserRepo
	ledger        LedgerRepo
	transactions  TransactionRepo
	notifications NotificationRepo
	friends       FriendRepo
	now           func() time.Time
}

func New(users UserRepo, ledger LedgerRepo, transactions TransactionRepo, notifications NotificationRepo, friends FriendRepo) *Service {
	return &Service{
		users:         users,
		ledger:        ledger,
		transactions:  transactions,
		notifications: notifications,
		friends:       friends,
		now:           time.Now,
	}
}

// GetDashboard assembles the home view of userID, querying every part concurrently.
func (s *Service) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	d := &Dashboard{UserID: userID}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return domain.StorageError(err)
		}
		if user == nil {
			return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
		}
		d.Handle, d.Name, d.Balance = user.Handle, user.Name, user.Balance
		return nil
	})
	g.Go(func() error {
		change, err := s.ledger.BalanceChangeSince(ctx, userID, s.now().Add(-changeWindow))
		if err != nil {
			return domain.StorageError(err)
		}
		d.BalanceChange24h = change
		return nil
	})
	g.Go(func() error {
		count, err := s.notifications.CountUnread(ctx, userID)
		if err != nil {
			return domain.StorageError(err)
		}
		d.UnreadCount = count
		return nil
	})
	g.Go(func() error {
		notifications, err := s.notifications.FindByUserID(ctx, userID, notificationLimit)
		if err != nil {
			return domain.StorageError(err)
		}
		d.Notifications = notifications
		return nil
	})
	g.Go(func() error {
		txs, err := s.transactions.FindByUserID(ctx, userID, recentLimit)
		if err != nil {
			return domain.StorageError(err)
		}
		for i := range txs {
			txs[i].Direction = txs[i].DirectionFor(userID)
		}
		d.RecentTransactions = txs
		return nil
	})
	g.Go(func() error {
		friends, err := s.friends.FindFriends(ctx, userID)
		if err != nil {
			return domain.StorageError(err)
		}
		d.Friends = friends
		return nil
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("failed to build dashboard", zap.Stringer("user_id", userID), zap.Error(err))
		return nil, err
	}
	return d, nil
}
