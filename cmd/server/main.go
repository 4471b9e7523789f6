package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/dalilcare/provider-directory/internal/auth"
	"github.com/dalilcare/provider-directory/internal/cache"
	"github.com/dalilcare/provider-directory/internal/config"
	"github.com/dalilcare/provider-directory/internal/database"
	"github.com/dalilcare/provider-directory/internal/handlers"
	"github.com/dalilcare/provider-directory/internal/middleware"
	"github.com/dalilcare/provider-directory/internal/models"
	"github.com/dalilcare/provider-directory/internal/repository"
	"github.com/dalilcare/provider-directory/internal/services"
	"github.com/dalilcare/provider-directory/internal/storage"
	"github.com/dalilcare/provider-directory/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting provider directory")

	// Connect to database
	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}

	if err := database.Connect(dbConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Initialize cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis cache initialized")
	} else {
		cacheImpl = cache.NewMemoryCache()
		log.Info().Msg("Memory cache initialized")
	}
	defer cacheImpl.Close()

	// Initialize document storage
	var documents storage.Store
	if cfg.Storage.Type == "s3" {
		documents, err = storage.NewS3Store(context.Background(), cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Endpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
		}
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("S3 storage initialized")
	} else {
		documents = storage.NewMemoryStore()
		log.Info().Msg("Memory storage initialized")
	}
	defer documents.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	providerRepo := repository.NewProviderRepository()
	claimRepo := repository.NewClaimRepository()
	verificationRepo := repository.NewVerificationRepository()
	favoriteRepo := repository.NewFavoriteRepository()
	apptRepo := repository.NewAppointmentRepository()
	adRepo := repository.NewAdRepository()
	auditRepo := repository.NewAuditRepository()

	// Initialize services
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	accountService := services.NewAccountService(userRepo, issuer)
	directoryService := services.NewDirectoryService(providerRepo, claimRepo, verificationRepo, favoriteRepo, auditRepo, documents, cacheImpl)
	searchService := services.NewSearchService(providerRepo, cacheImpl, cfg.Cache.TTL)
	appointmentService := services.NewAppointmentService(apptRepo, providerRepo)
	adService := services.NewAdService(adRepo, providerRepo, auditRepo)
	importService := services.NewImportService(providerRepo, auditRepo, cacheImpl)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(accountService)
	searchHandler := handlers.NewSearchHandler(searchService)
	providerHandler := handlers.NewProviderHandler(directoryService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	favoriteHandler := handlers.NewFavoriteHandler(directoryService)
	adHandler := handlers.NewAdHandler(adService)
	adminHandler := handlers.NewAdminHandler(directoryService, adService, importService, auditRepo)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/search", searchHandler.Search)
		r.Get("/providers", providerHandler.List)
		r.Get("/providers/{id}", providerHandler.Get)
		r.Get("/ads", adHandler.ListPublic)

		// Authenticated surface
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(issuer))

			r.Post("/appointments", appointmentHandler.Book)
			r.Get("/appointments", appointmentHandler.ListMine)
			r.Post("/appointments/{id}/confirm", appointmentHandler.Confirm)
			r.Post("/appointments/{id}/cancel", appointmentHandler.Cancel)
			r.Post("/appointments/{id}/complete", appointmentHandler.Complete)

			r.Get("/favorites", favoriteHandler.List)
			r.Put("/favorites/{providerID}", favoriteHandler.Add)
			r.Delete("/favorites/{providerID}", favoriteHandler.Remove)

			// Provider-role surface
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleProvider))

				r.Post("/providers", providerHandler.Register)
				r.Get("/providers/mine", providerHandler.ListMine)
				r.Put("/providers/{id}", providerHandler.Update)
				r.Post("/providers/{id}/claim", providerHandler.Claim)
				r.Post("/providers/{id}/verification", providerHandler.SubmitVerification)
				r.Get("/providers/{id}/appointments", appointmentHandler.ListForProvider)
				r.Post("/ads", adHandler.Create)
			})

			// Admin surface
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))

				r.Post("/import", adminHandler.Import)
				r.Get("/claims", adminHandler.ListClaims)
				r.Post("/claims/{id}/approve", adminHandler.ApproveClaim)
				r.Post("/claims/{id}/reject", adminHandler.RejectClaim)
				r.Get("/verifications", adminHandler.ListVerifications)
				r.Post("/verifications/{id}/approve", adminHandler.ApproveVerification)
				r.Post("/verifications/{id}/reject", adminHandler.RejectVerification)
				r.Get("/ads/pending", adminHandler.ListPendingAds)
				r.Post("/ads/{id}/approve", adminHandler.ApproveAd)
				r.Post("/ads/{id}/reject", adminHandler.RejectAd)
				r.Get("/audit", adminHandler.AuditTrail)
			})
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
