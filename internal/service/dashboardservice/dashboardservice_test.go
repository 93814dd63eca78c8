package dashboardservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

type mocks struct {
	users         *MockUserRepo
	ledger        *MockLedgerRepo
	transactions  *MockTransactionRepo
	notifications *MockNotificationRepo
	friends       *MockFriendRepo
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		users:         NewMockUserRepo(ctrl),
		ledger:        NewMockLedgerRepo(ctrl),
		transactions:  NewMockTransactionRepo(ctrl),
		notifications: NewMockNotificationRepo(ctrl),
		friends:       NewMockFriendRepo(ctrl),
	}
	service := New(m.users, m.ledger, m.transactions, m.notifications, m.friends)
	service.now = func() time.Time { return fixedNow }
	return service, m
}

func TestGetDashboard(t *testing.T) {
	service, m := NewMock(t)
	userID, other := uuid.New(), uuid.New()
	balance := decimal.RequireFromString("74.50")
	change := decimal.RequireFromString("-25.50")
	notifications := []domain.Notification{{ID: uuid.New(), UserID: userID}}
	friends := []domain.Friend{{UserID: other, Handle: "beto"}}

	m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&domain.User{ID: userID, Handle: "ana", Name: "Ana", Balance: balance}, nil)
	m.ledger.EXPECT().BalanceChangeSince(gomock.Any(), userID, fixedNow.Add(-24*time.Hour)).Return(change, nil)
	m.notifications.EXPECT().CountUnread(gomock.Any(), userID).Return(1, nil)
	m.notifications.EXPECT().FindByUserID(gomock.Any(), userID, notificationLimit).Return(notifications, nil)
	m.transactions.EXPECT().FindByUserID(gomock.Any(), userID, recentLimit).Return([]domain.Transaction{
		{OriginUserID: userID, DestinationUserID: other},
	}, nil)
	m.friends.EXPECT().FindFriends(gomock.Any(), userID).Return(friends, nil)

	d, err := service.GetDashboard(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "ana", d.Handle)
	assert.True(t, balance.Equal(d.Balance))
	assert.True(t, change.Equal(d.BalanceChange24h))
	assert.Equal(t, 1, d.UnreadCount)
	assert.Equal(t, notifications, d.Notifications)
	assert.Equal(t, friends, d.Friends)
	require.Len(t, d.RecentTransactions, 1)
	assert.Equal(t, domain.DirectionOutbound, d.RecentTransactions[0].Direction)
}

func TestGetDashboard_Errors(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		user          *domain.User
		userErr       error
		friendsErr    error
		expectedError error
	}{
		{name: "Unknown user", expectedError: domain.ErrNotFound},
		{name: "Friends query fails", user: &domain.User{ID: userID}, friendsErr: errors.New("database error"), expectedError: domain.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			m.users.EXPECT().FindByID(gomock.Any(), userID).Return(tt.user, tt.userErr)
			m.ledger.EXPECT().BalanceChangeSince(gomock.Any(), userID, gomock.Any()).Return(decimal.Zero, nil).AnyTimes()
			m.notifications.EXPECT().CountUnread(gomock.Any(), userID).Return(0, nil).AnyTimes()
			m.notifications.EXPECT().FindByUserID(gomock.Any(), userID, gomock.Any()).Return(nil, nil).AnyTimes()
			m.transactions.EXPECT().FindByUserID(gomock.Any(), userID, gomock.Any()).Return(nil, nil).AnyTimes()
			m.friends.EXPECT().FindFriends(gomock.Any(), userID).Return(nil, tt.friendsErr).AnyTimes()

			d, err := service.GetDashboard(context.Background(), userID)
			assert.ErrorIs(t, err, tt.expectedError)
			assert.Nil(t, d)
		})
	}
}
