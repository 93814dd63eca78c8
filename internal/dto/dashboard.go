package dto

import (
	"github.com/GlebRadaev/payledger/internal/service/dashboardservice"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DashboardResponseDTO struct {
	UserID             uuid.UUID                 `json:"user_id"`
	Handle             string                    `json:"handle" example:"ana"`
	Name               string                    `json:"name" example:"Ana Lopez"`
	Balance            decimal.Decimal           `json:"balance" swaggertype:"string" example:"74.50"`
	BalanceChange24h   decimal.Decimal           `json:"balance_change_24h" swaggertype:"string" example:"-25.50"`
	UnreadCount        int                       `json:"unread_count" example:"2"`
	Notifications      []NotificationResponseDTO `json:"notifications"`
	RecentTransactions []TransactionResponseDTO  `json:"recent_transactions"`
	Friends            []FriendResponseDTO       `json:"friends"`
}

func NewDashboardResponse(d *dashboardservice.Dashboard) DashboardResponseDTO {
	return DashboardResponseDTO{
		UserID:             d.UserID,
		Handle:             d.Handle,
		Name:               d.Name,
		Balance:            d.Balance,
		BalanceChange24h:   d.BalanceChange24h,
		UnreadCount:        d.UnreadCount,
		Notifications:      NewNotificationsResponse(d.Notifications),
		RecentTransactions: NewTransactionsResponse(d.RecentTransactions),
		Friends:            NewFriendsResponse(d.Friends),
	}
}
