package http

import (
	"net/http"

	"tracker-backend/internal/handlers"
	"tracker-backend/internal/middleware"
	"tracker-backend/internal/models"
	"tracker-backend/internal/notify"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	jobHandler *handlers.JobHandler,
	bankAccountHandler *handlers.BankAccountHandler,
	documentHandler *handlers.DocumentHandler,
	todoHandler *handlers.TodoHandler,
	trackingHandler *handlers.TrackingHandler,
	settingsHandler *handlers.CompanySettingsHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	hub *notify.Hub,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Public routes - authentication
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/login/totp", authHandler.LoginTOTP).Methods("POST")

	// Public routes - client-facing tracking (no auth, masked data)
	r.HandleFunc("/tracking/{code}", trackingHandler.Track).Methods("GET")

	// Operational endpoints
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Session routes
	sessionAPI := r.PathPrefix("/auth").Subrouter()
	sessionAPI.Use(authMiddleware.Authenticate)
	sessionAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	sessionAPI.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	sessionAPI.HandleFunc("/totp/setup", authHandler.SetupTOTP).Methods("POST")
	sessionAPI.HandleFunc("/totp/enable", authHandler.VerifyTOTP).Methods("POST")
	sessionAPI.HandleFunc("/totp/disable", authHandler.DisableTOTP).Methods("POST")

	// Jobs
	jobsAPI := r.PathPrefix("/jobs").Subrouter()
	jobsAPI.Use(authMiddleware.Authenticate)
	jobsAPI.HandleFunc("", jobHandler.List).Methods("GET")
	jobsAPI.HandleFunc("", jobHandler.Create).Methods("POST")
	jobsAPI.HandleFunc("/options", jobHandler.Options).Methods("GET")
	jobsAPI.HandleFunc("/{id}", jobHandler.Get).Methods("GET")
	jobsAPI.HandleFunc("/{id}", jobHandler.Update).Methods("PUT")
	jobsAPI.HandleFunc("/{id}", jobHandler.Delete).Methods("DELETE")
	jobsAPI.HandleFunc("/{id}/history", jobHandler.ListHistory).Methods("GET")
	jobsAPI.HandleFunc("/{id}/history", jobHandler.AppendHistory).Methods("POST")

	// Bank accounts
	accountsAPI := r.PathPrefix("/bank-accounts").Subrouter()
	accountsAPI.Use(authMiddleware.Authenticate)
	accountsAPI.HandleFunc("", bankAccountHandler.List).Methods("GET")
	accountsAPI.HandleFunc("", bankAccountHandler.Create).Methods("POST")
	accountsAPI.HandleFunc("/{id}", bankAccountHandler.Get).Methods("GET")
	accountsAPI.HandleFunc("/{id}", bankAccountHandler.Update).Methods("PUT")
	accountsAPI.HandleFunc("/{id}", bankAccountHandler.Delete).Methods("DELETE")

	// Documents (invoices and receipts)
	documentsAPI := r.PathPrefix("/documents").Subrouter()
	documentsAPI.Use(authMiddleware.Authenticate)
	documentsAPI.HandleFunc("", documentHandler.List).Methods("GET")
	documentsAPI.HandleFunc("", documentHandler.Create).Methods("POST")
	documentsAPI.HandleFunc("/{id}", documentHandler.Get).Methods("GET")
	documentsAPI.HandleFunc("/{id}", documentHandler.Update).Methods("PUT")
	documentsAPI.HandleFunc("/{id}", documentHandler.Delete).Methods("DELETE")
	documentsAPI.HandleFunc("/{id}/pdf", documentHandler.DownloadPDF).Methods("GET")

	// Todos (scoped to the authenticated user)
	todosAPI := r.PathPrefix("/todos").Subrouter()
	todosAPI.Use(authMiddleware.Authenticate)
	todosAPI.HandleFunc("", todoHandler.List).Methods("GET")
	todosAPI.HandleFunc("", todoHandler.Create).Methods("POST")
	todosAPI.HandleFunc("/jobs", todoHandler.JobOptions).Methods("GET")
	todosAPI.HandleFunc("/{id}", todoHandler.Get).Methods("GET")
	todosAPI.HandleFunc("/{id}", todoHandler.Update).Methods("PUT")
	todosAPI.HandleFunc("/{id}", todoHandler.Delete).Methods("DELETE")

	// Company settings
	settingsAPI := r.PathPrefix("/company-settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", settingsHandler.Get).Methods("GET")
	settingsAPI.HandleFunc("", settingsHandler.Save).Methods("POST")
	settingsAPI.HandleFunc("", settingsHandler.Save).Methods("PUT")

	// User management. Destructive actions are super_admin only.
	adminAPI := r.PathPrefix("/admin/users").Subrouter()
	adminAPI.Use(authMiddleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin))
	adminAPI.HandleFunc("", userHandler.List).Methods("GET")
	adminAPI.HandleFunc("", userHandler.Create).Methods("POST")
	adminAPI.HandleFunc("/{id}", userHandler.Update).Methods("PUT")
	adminAPI.HandleFunc("/{id}", authMiddleware.RequireRole(models.RoleSuperAdmin)(http.HandlerFunc(userHandler.Delete)).ServeHTTP).Methods("DELETE")
	adminAPI.HandleFunc("/{id}/toggle-status", authMiddleware.RequireRole(models.RoleSuperAdmin)(http.HandlerFunc(userHandler.ToggleStatus)).ServeHTTP).Methods("PATCH")

	// Live job events for dashboards
	r.Handle("/ws/events", authMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		notify.ServeWS(hub, w, r)
	}))).Methods("GET")

	return r
}
