// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/aimedica/go-diagnosis/internal/config"
	"github.com/aimedica/go-diagnosis/internal/domain"
	"github.com/aimedica/go-diagnosis/internal/handlers"
	"github.com/aimedica/go-diagnosis/internal/middleware"
	"github.com/aimedica/go-diagnosis/internal/ratelimit"
	"github.com/aimedica/go-diagnosis/internal/repository/patient"
	"github.com/aimedica/go-diagnosis/internal/repository/record"
	"github.com/aimedica/go-diagnosis/internal/services"
	"github.com/aimedica/go-diagnosis/internal/services/imagestore"
	"github.com/aimedica/go-diagnosis/internal/services/provider"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// buildProviders selects the configured authentication variant for text
// completions. Vision always runs through the bearer variant; the
// signed gateway has no vision endpoint.
func buildProviders(cfg *config.Config, logger services.Logger) (provider.TextCompleter, provider.VisionCompleter, error) {
	bearerCfg := provider.DefaultConfig()
	bearerCfg.APIKey = cfg.LLMAPIKey
	bearerCfg.BaseURL = cfg.LLMBaseURL
	bearerCfg.Model = cfg.LLMModel
	bearerCfg.VisionModel = cfg.VisionModel
	bearerCfg.Timeout = cfg.ProviderTimeout

	if cfg.ProviderKind == config.ProviderSigned {
		signedCfg := provider.DefaultConfig()
		signedCfg.APIKey = cfg.SignedAPIKey
		signedCfg.APISecret = cfg.SignedAPISecret
		signedCfg.BaseURL = cfg.SignedBaseURL
		signedCfg.Model = cfg.SignedModel
		signedCfg.Timeout = cfg.ProviderTimeout

		text, err := provider.NewSignedProvider(signedCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		var vision provider.VisionCompleter
		if cfg.LLMAPIKey != "" {
			bearer, err := provider.NewBearerProvider(bearerCfg, logger)
			if err != nil {
				return nil, nil, err
			}
			vision = bearer
		}
		return text, vision, nil
	}

	bearer, err := provider.NewBearerProvider(bearerCfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return bearer, bearer, nil
}

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := services.NewLoggerWithLevel("go-diagnosis", level)

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if err := db.AutoMigrate(&domain.Patient{}, &domain.DiagnosisRecord{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	patientRepo := patient.NewPatientRepository(db)
	recordRepo := record.NewRecordRepository(db)

	// --- Providers & Stores ---
	text, vision, err := buildProviders(cfg, logger)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize inference provider: %v", err)
	}
	store, err := imagestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize image store: %v", err)
	}

	// --- Services ---
	diagnosisService, err := services.NewDiagnosisService(patientRepo, recordRepo, text, vision, store, logger)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize diagnosis service: %v", err)
	}
	dashboardService, err := services.NewDashboardService(patientRepo, recordRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize dashboard service: %v", err)
	}

	// --- Handlers ---
	diagnosisHandler := handlers.NewDiagnosisHandler(diagnosisService)
	skinHandler := handlers.NewSkinAnalysisHandler(diagnosisService, store)
	recordHandler := handlers.NewRecordHandler(recordRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic(logger))
	r.Use(middleware.Logging(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// The provider-bound endpoints are slow and metered upstream, so
	// they sit behind a per-client throttle.
	limiter := ratelimit.NewLimiter(ratelimit.DefaultInferenceConfig())
	defer limiter.Close()
	inference := api.NewRoute().Subrouter()
	inference.Use(middleware.RateLimit(limiter, logger))
	inference.HandleFunc("/diagnosis/ai", diagnosisHandler.Diagnose).Methods("POST")
	inference.HandleFunc("/diagnosis/chat", diagnosisHandler.Chat).Methods("POST")
	inference.HandleFunc("/skin-analysis/analyze", skinHandler.Analyze).Methods("POST")

	api.HandleFunc("/diagnosis/records", recordHandler.List).Methods("GET")
	api.HandleFunc("/diagnosis/records/{id:[0-9]+}", recordHandler.Get).Methods("GET")
	api.HandleFunc("/diagnosis/records/{id:[0-9]+}/confirm", recordHandler.Confirm).Methods("PUT")
	api.HandleFunc("/diagnosis/records/{id:[0-9]+}/complete", recordHandler.Complete).Methods("PUT")
	api.HandleFunc("/skin-analysis/upload", skinHandler.Upload).Methods("POST")
	api.HandleFunc("/dashboard/statistics", dashboardHandler.Statistics).Methods("GET")
	api.HandleFunc("/dashboard/disease-distribution", dashboardHandler.DiseaseDistribution).Methods("GET")
	api.HandleFunc("/dashboard/trend", dashboardHandler.DiagnosisTrend).Methods("GET")
	api.HandleFunc("/dashboard/recent", dashboardHandler.RecentRecords).Methods("GET")

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "provider", cfg.ProviderKind)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}
