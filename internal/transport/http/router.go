package http

import (
	"net/http"

	"github.com/bankass/awards-api/internal/application/broadcast"
	"github.com/bankass/awards-api/internal/application/candidate"
	"github.com/bankass/awards-api/internal/application/category"
	exportapp "github.com/bankass/awards-api/internal/application/export"
	"github.com/bankass/awards-api/internal/application/notification"
	"github.com/bankass/awards-api/internal/application/session"
	"github.com/bankass/awards-api/internal/application/user"
	"github.com/bankass/awards-api/internal/application/verification"
	"github.com/bankass/awards-api/internal/application/voting"
	"github.com/bankass/awards-api/internal/config"
	"github.com/bankass/awards-api/internal/domain"
	"github.com/bankass/awards-api/internal/transport/http/handler"
	appmiddleware "github.com/bankass/awards-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second with a burst of 10 on the sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:         deps.UserRepo,
		SessionRepo:      deps.SessionRepo,
		RegistrationRepo: deps.RegistrationRepo,
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		SessionRepo:     deps.SessionRepo,
		UserRepo:        deps.UserRepo,
		JWTProvider:     deps.JWTProvider,
		RefreshTokenDur: cfg.RefreshTokenTTL,
	})
	verificationSvc := verification.NewService(verification.ServiceDeps{
		VerificationRepo: deps.VerificationRepo,
		UserRepo:         deps.UserRepo,
		Sessions:         deps.PendingSessions,
		Mailer:           deps.Mailer,
		Production:       cfg.IsProduction(),
	})
	votingSvc := voting.NewService(voting.ServiceDeps{
		VoteRepo:      deps.VoteRepo,
		CategoryRepo:  deps.CategoryRepo,
		CandidateRepo: deps.CandidateRepo,
		UserRepo:      deps.UserRepo,
		ConfigRepo:    deps.VotingConfigRepo,
	})
	categorySvc := category.NewService(category.ServiceDeps{CategoryRepo: deps.CategoryRepo})
	candidateSvc := candidate.NewService(candidate.ServiceDeps{
		CandidateRepo: deps.CandidateRepo,
		CategoryRepo:  deps.CategoryRepo,
		MediaStore:    deps.S3Store,
	})
	notifSvc := notification.NewService(notification.ServiceDeps{NotificationRepo: deps.NotificationRepo})
	broadcastSvc := broadcast.NewService(broadcast.ServiceDeps{
		MessageRepo:      deps.AdminMessageRepo,
		NotificationRepo: deps.NotificationRepo,
		UserRepo:         deps.UserRepo,
		SMSSender:        deps.SMSSender,
	})
	exportSvc := exportapp.NewService(exportapp.ServiceDeps{
		UserRepo:         deps.UserRepo,
		CategoryRepo:     deps.CategoryRepo,
		CandidateRepo:    deps.CandidateRepo,
		VoteRepo:         deps.VoteRepo,
		NotificationRepo: deps.NotificationRepo,
		MessageRepo:      deps.AdminMessageRepo,
		ConfigRepo:       deps.VotingConfigRepo,
	})

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	verificationH := handler.NewVerificationHandler(verificationSvc, deps.UserRepo)
	categoryH := handler.NewCategoryHandler(categorySvc)
	candidateH := handler.NewCandidateHandler(candidateSvc)
	voteH := handler.NewVoteHandler(votingSvc)
	configH := handler.NewVotingConfigHandler(votingSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	broadcastH := handler.NewBroadcastHandler(broadcastSvc)
	exportH := handler.NewExportHandler(exportSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/users", userH.Register)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.Post("/sessions/refresh", sessionH.Refresh)
		r.With(sensitiveRL.Limit).Post("/send-verification", verificationH.SendCode)
		r.With(sensitiveRL.Limit).Post("/verify-code", verificationH.VerifyCode)
		r.Get("/pending-verification", verificationH.GetPendingSession)
		r.Delete("/pending-verification", verificationH.DeletePendingSession)
		r.Get("/categories", categoryH.List)
		r.Get("/categories/{id}", categoryH.Get)
		r.Get("/candidates", candidateH.List)
		r.Get("/candidates/{id}", candidateH.Get)
		r.Get("/candidates/{id}/media", candidateH.GetMedia)
		r.Get("/voting-config", configH.Get)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			r.Get("/users/{id}", userH.Get)
			r.Put("/users/{id}", userH.Update)
			r.Post("/users/change-password", userH.ChangePassword)

			r.Post("/votes", voteH.Cast)
			r.Get("/votes", voteH.ListMine)

			r.Get("/notifications", notifH.List)
			r.Put("/notifications/{id}", notifH.MarkAsRead)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleSuperAdmin))

				r.Get("/users", userH.List)
				r.Delete("/users/{id}", userH.Delete)

				r.Post("/categories", categoryH.Create)
				r.Put("/categories/{id}", categoryH.Update)
				r.Delete("/categories/{id}", categoryH.Delete)

				r.Post("/candidates", candidateH.Create)
				r.Put("/candidates/{id}", candidateH.Update)
				r.Delete("/candidates/{id}", candidateH.Delete)
				r.Post("/candidates/{id}/media", candidateH.UploadMedia)

				r.Get("/votes/results", voteH.Results)
				r.Put("/voting-config", configH.Set)

				r.Post("/broadcasts", broadcastH.Send)
				r.Get("/broadcasts", broadcastH.List)
				r.Delete("/broadcasts/{id}", broadcastH.Delete)

				r.Get("/export", exportH.Download)
			})
		})
	})

	return r
}
