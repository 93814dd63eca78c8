package service

import (
	"github.com/GlebRadaev/payledger/internal/changefeed"
	"github.com/GlebRadaev/payledger/internal/config"
	"github.com/GlebRadaev/payledger/internal/handlers/admin"
	"github.com/GlebRadaev/payledger/internal/handlers/auth"
	"github.com/GlebRadaev/payledger/internal/handlers/dashboard"
	"github.com/GlebRadaev/payledger/internal/handlers/friends"
	"github.com/GlebRadaev/payledger/internal/handlers/notifications"
	"github.com/GlebRadaev/payledger/internal/handlers/transactions"
	"github.com/GlebRadaev/payledger/internal/repo"

	pkgauth "github.com/GlebRadaev/payledger/pkg/auth"

	authservice "github.com/GlebRadaev/payledger/internal/service/authservice"
	dashboardservice "github.com/GlebRadaev/payledger/internal/service/dashboardservice"
	friendservice "github.com/GlebRadaev/payledger/internal/service/friendservice"
	ledgerservice "github.com/GlebRadaev/payledger/internal/service/ledgerservice"
	notificationservice "github.com/GlebRadaev/payledger/internal/service/notificationservice"
	responseservice "github.com/GlebRadaev/payledger/internal/service/responseservice"
	transactionservice "github.com/GlebRadaev/payledger/internal/service/transactionservice"
)

type Services struct {
	AuthService         auth.Service
	TransactionService  transactions.Service
	FriendService       friends.Service
	NotificationService notifications.Service
	ResponseService     notifications.Responder
	DashboardService    dashboard.Service
	LedgerService       admin.Service
}

func New(repo *repo.Repositories, feed changefeed.Publisher, jwtService pkgauth.JWTServiceInterface, cfg *config.Config) *Services {
	ledgerService := ledgerservice.New(repo.LedgerRepo, repo.UserRepo, feed)
	notificationService := notificationservice.New(repo.NotificationRepo, feed)
	transactionService := transactionservice.New(
		repo.TransactionRepo, repo.UserRepo, ledgerService, notificationService,
		feed, repo.TXManager, cfg.Currency, cfg.DefaultCategory,
	)
	friendService := friendservice.New(repo.FriendRepo, repo.UserRepo, notificationService, feed, repo.TXManager)
	responseService := responseservice.New(repo.NotificationRepo, transactionService, friendService, feed, repo.TXManager)
	dashboardService := dashboardservice.New(repo.UserRepo, repo.LedgerRepo, repo.TransactionRepo, repo.NotificationRepo, repo.FriendRepo)
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, jwtService, cfg.TokenTTL)

	return &Services{
		AuthService:         authService,
		TransactionService:  transactionService,
		FriendService:       friendService,
		NotificationService: notificationService,
		ResponseService:     responseService,
		DashboardService:    dashboardService,
		LedgerService:       ledgerService,
	}
}
