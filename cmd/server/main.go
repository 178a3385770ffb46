package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"tracker-backend/internal/auth"
	"tracker-backend/internal/cache"
	"tracker-backend/internal/config"
	"tracker-backend/internal/database"
	"tracker-backend/internal/db"
	"tracker-backend/internal/handlers"
	"tracker-backend/internal/health"
	apphttp "tracker-backend/internal/http"
	"tracker-backend/internal/middleware"
	"tracker-backend/internal/monitoring"
	"tracker-backend/internal/notify"
	"tracker-backend/internal/repositories"
	"tracker-backend/internal/services"
	"tracker-backend/internal/storage"
	"tracker-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional: a failed connection degrades to direct DB reads.
	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, caching disabled: %v", err)
	} else {
		log.Println("[Cache] Redis connected")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	cancel()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	jobRepo := repositories.NewJobRepository(pool)
	historyRepo := repositories.NewJobHistoryRepository(pool)
	bankAccountRepo := repositories.NewBankAccountRepository(pool)
	settingsRepo := repositories.NewCompanySettingsRepository(pool)
	documentRepo := repositories.NewDocumentRepository(pool)
	todoRepo := repositories.NewTodoRepository(pool)

	jwtManager := auth.NewJWTManager(cfg)

	archive, err := storage.NewArchiveStore(cfg)
	if err != nil {
		log.Printf("[Archive] object storage disabled: %v", err)
	} else if archive != nil {
		log.Println("[Archive] document archiving enabled")
	}

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	totpService := services.NewTOTPService(userRepo)
	jobService := services.NewJobService(jobRepo, historyRepo)
	bankAccountService := services.NewBankAccountService(bankAccountRepo)
	settingsService := services.NewCompanySettingsService(settingsRepo)
	documentService := services.NewDocumentService(documentRepo, jobRepo)
	todoService := services.NewTodoService(todoRepo)
	trackingService := services.NewTrackingService(jobRepo, historyRepo)
	pdfService := services.NewPDFService(documentRepo, settingsRepo, archive)

	// Live event hub for dashboards
	hub := notify.NewHub()
	go hub.Run()

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, totpService, jwtManager, cfg)
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService, hub)
	bankAccountHandler := handlers.NewBankAccountHandler(bankAccountService)
	documentHandler := handlers.NewDocumentHandler(documentService, pdfService)
	todoHandler := handlers.NewTodoHandler(todoService, jobService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	settingsHandler := handlers.NewCompanySettingsHandler(settingsService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := apphttp.NewRouter(
		authHandler,
		userHandler,
		jobHandler,
		bankAccountHandler,
		documentHandler,
		todoHandler,
		trackingHandler,
		settingsHandler,
		healthHandler,
		authMiddleware,
		hub,
	)

	// Internal monitoring server on its own port
	monitoringServer := monitoring.NewMonitoringServer(pool, cfg.Monitoring.Port)
	go monitoringServer.Start()

	corsHandler := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(corsHandler(router))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s (env: %s)", addr, cfg.Server.Env)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
