package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/payledger/docs"
	adminhandlers "github.com/GlebRadaev/payledger/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/payledger/internal/handlers/auth"
	changeshandlers "github.com/GlebRadaev/payledger/internal/handlers/changes"
	dashboardhandlers "github.com/GlebRadaev/payledger/internal/handlers/dashboard"
	friendshandlers "github.com/GlebRadaev/payledger/internal/handlers/friends"
	notificationshandlers "github.com/GlebRadaev/payledger/internal/handlers/notifications"
	transactionshandlers "github.com/GlebRadaev/payledger/internal/handlers/transactions"
	"github.com/GlebRadaev/payledger/internal/domain"
	"github.com/GlebRadaev/payledger/internal/metrics"
	"github.com/GlebRadaev/payledger/internal/service"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type DashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type TransactionHandler interface {
	CreateTransaction(w http.ResponseWriter, r *http.Request)
	ListTransactions(w http.ResponseWriter, r *http.Request)
	GetTransaction(w http.ResponseWriter, r *http.Request)
	TransitionStatus(w http.ResponseWriter, r *http.Request)
}

type FriendHandler interface {
	SendFriendRequest(w http.ResponseWriter, r *http.Request)
	AcceptFriendRequest(w http.ResponseWriter, r *http.Request)
	RejectFriendRequest(w http.ResponseWriter, r *http.Request)
	ListFriends(w http.ResponseWriter, r *http.Request)
}

type NotificationHandler interface {
	ListNotifications(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	RespondToRequest(w http.ResponseWriter, r *http.Request)
}

type ChangesHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ResetBalance(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler         AuthHandler
	DashboardHandler    DashboardHandler
	TransactionHandler  TransactionHandler
	FriendHandler       FriendHandler
	NotificationHandler NotificationHandler
	ChangesHandler      ChangesHandler
	AdminHandler        AdminHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, feed changeshandlers.Feed, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:         authhandlers.New(s.AuthService),
		DashboardHandler:    dashboardhandlers.New(s.DashboardService),
		TransactionHandler:  transactionshandlers.New(s.TransactionService),
		FriendHandler:       friendshandlers.New(s.FriendService),
		NotificationHandler: notificationshandlers.New(s.NotificationService, s.ResponseService),
		ChangesHandler:      changeshandlers.New(feed),
		AdminHandler:        adminhandlers.New(s.LedgerService),
		jwtService:          jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", h.AuthHandler.Register)
		r.Post("/user/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.jwtService))

			r.Get("/user/dashboard", h.DashboardHandler.GetDashboard)
			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", h.TransactionHandler.CreateTransaction)
				r.Get("/", h.TransactionHandler.ListTransactions)
				r.Get("/{id}", h.TransactionHandler.GetTransaction)
				r.Patch("/{id}/status", h.TransactionHandler.TransitionStatus)
			})
			r.Route("/friends", func(r chi.Router) {
				r.Get("/", h.FriendHandler.ListFriends)
				r.Post("/requests", h.FriendHandler.SendFriendRequest)
				r.Post("/requests/{id}/accept", h.FriendHandler.AcceptFriendRequest)
				r.Post("/requests/{id}/reject", h.FriendHandler.RejectFriendRequest)
			})
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.NotificationHandler.ListNotifications)
				r.Post("/{id}/read", h.NotificationHandler.MarkAsRead)
				r.Post("/{id}/respond", h.NotificationHandler.RespondToRequest)
			})
			r.Get("/changes", h.ChangesHandler.Stream)

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireRole(domain.RoleAdmin))
				r.Post("/users/{id}/balance/reset", h.AdminHandler.ResetBalance)
			})
		})
	})

	return r
}
