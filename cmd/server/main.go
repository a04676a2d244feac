package main

import (
	"context"   // context package is needed for Redis operations
	"errors"    // For server shutdown errors
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM
	"time"      // Shutdown timeout

	"event_marketplace/internal/api"     // Custom package for API handlers
	"event_marketplace/internal/config"  // Custom package for configuration
	"event_marketplace/internal/db"      // Custom package for the snapshot database
	"event_marketplace/internal/events"  // Custom package for event publishing
	"event_marketplace/internal/service" // Custom package for marketplace operations
	"event_marketplace/internal/session" // Custom package for sessions
	"event_marketplace/internal/store"   // Custom package for the shared state

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// setupLogger applies the configured level and format
func setupLogger(cfg config.Log) {
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	setupLogger(cfg.Log)
	ctx := context.Background()

	// Connect to the database and make sure the snapshot table exists
	gdb, err := db.Open(cfg.DB.Options())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Load the whole state into memory
	st := store.New(db.NewSnapshotGateway(gdb))
	if err := st.Load(ctx); err != nil {
		logrus.Fatalf("failed to load state: %v", err)
	}

	// Sessions live in Redis when configured, otherwise in memory
	var sessions session.Store = session.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr, // Redis server address
			Password: cfg.Redis.Pass, // Redis password
			DB:       cfg.Redis.DB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient)
	} else {
		logrus.Warn("REDIS_ADDR not set, keeping sessions in memory")
	}

	// Events go to RabbitMQ when configured
	var publisher events.Publisher = events.Nop{}
	if cfg.AMQP.URL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer amqpPub.Close()
		publisher = amqpPub
	}

	svc := service.New(st, publisher, cfg.Seed.VendorDefaultPassword)
	if err := svc.Identity.EnsureAdmin(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword); err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(api.Deps{
		Services:       svc,
		Sessions:       sessions,
		Cookie:         api.CookieOptions{Secret: cfg.JWTSecret, Secure: cfg.IsProd},
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{Addr: ":" + cfg.AppPort, Handler: r}
	go func() {
		logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Wait for an interrupt and drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}
	logrus.Info("Server stopped")
}
