package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/mentracare-backend/internal/config"
	"github.com/AnshRaj112/mentracare-backend/internal/database"
	"github.com/AnshRaj112/mentracare-backend/internal/handlers"
	"github.com/AnshRaj112/mentracare-backend/internal/logging"
	"github.com/AnshRaj112/mentracare-backend/internal/metrics"
	"github.com/AnshRaj112/mentracare-backend/internal/middleware"
	"github.com/AnshRaj112/mentracare-backend/internal/routes"
	"github.com/AnshRaj112/mentracare-backend/internal/services"
	"github.com/AnshRaj112/mentracare-backend/internal/store"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	// Load configuration
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.IsProduction())
	if envErr != nil {
		log.Info("No .env file found")
	}

	ctx := context.Background()

	// Connect to MongoDB. The API still starts without it: /test reports the
	// database as disconnected and data endpoints answer 503.
	var st store.Store
	log.WithField("uri", database.MaskURI(cfg.MongoURI)).Info("Connecting to MongoDB...")
	client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.DatabaseName, cfg.MongoTimeout, log)
	if err != nil {
		log.WithError(err).Warn("⚠️  MongoDB unavailable, starting without storage")
	} else {
		defer database.Disconnect(client)
		mongoStore := store.NewMongoStore(db)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			log.WithError(err).Warn("⚠️  failed to ensure MongoDB indexes")
		} else {
			log.Info("✅ MongoDB indexes ensured")
		}
		st = mongoStore
	}

	// Connect to Redis (optional)
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		log.Info("Connecting to Redis...")
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURI, log)
		if err != nil {
			log.WithError(err).Warn("⚠️  Redis unavailable, shared rate limiting disabled")
			redisClient = nil
		} else {
			defer database.DisconnectRedis(redisClient)
		}
	}

	svc := services.NewWellnessService(st, log)
	h := handlers.New(svc, log)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → per-IP rate limit.
	if cfg.IsProduction() {
		limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		defer limiter.Stop()
		for _, mw := range middleware.ProductionSecurity(limiter) {
			r.Use(mw)
		}
		log.Info("✅ Production security enabled (security headers, per-IP rate limiting)")
	}
	if redisClient != nil {
		r.Use(middleware.RedisRateLimit(redisClient, middleware.RateLimitMaxRequests, middleware.RateLimitWindow, log))
		log.Info("✅ Redis rate limiting enabled")
	}

	// Liveness (no store access)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	// Setup routes
	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("🚀 %s running on :%s", services.ServiceName, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
