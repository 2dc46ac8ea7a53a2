package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"neuroscan_backend/internal/api"        // Custom package for API handlers
	"neuroscan_backend/internal/config"     // Custom package for configuration
	"neuroscan_backend/internal/db"         // Custom package for database access
	"neuroscan_backend/internal/middleware" // Custom package for middleware
	"neuroscan_backend/internal/notify"     // Custom package for email notifications
	"neuroscan_backend/internal/service"    // Custom package for the result workflow
	"neuroscan_backend/internal/store"      // Custom package for persistence

	"github.com/gin-contrib/cors"  // CORS middleware for Gin
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	conn, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire stores, notifier and the result workflow
	users := store.NewUserStore(conn)     // Identity store
	results := store.NewResultStore(conn) // Result store
	notifier := notify.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.PortalURL)
	workflow := service.NewResultService(users, results, notifier)

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Cross-origin access is restricted to the single known front-end origin
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.CORSOrigin},                            // Front-end origin only
		AllowMethods: []string{"GET", "POST", "OPTIONS"},                  // Allowed methods
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"}, // Allowed headers
	}))

	// User routes
	userGroup := r.Group("/user")
	userGroup.POST("/create", api.RegisterHandler(users))            // Registration endpoint
	userGroup.POST("/login", api.LoginHandler(users, cfg.JWTSecret)) // Login endpoint

	// Result routes (protected by JWT)
	resultGroup := r.Group("/result")
	resultGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret)) // Protect result routes with JWT middleware
	// Recording results and reading the doctor-scoped listing require the DOCTOR role
	resultGroup.POST("/save", middleware.DoctorOnlyMiddleware(conn), api.SaveResultHandler(workflow, redisClient))
	resultGroup.GET("/doctor/:username", middleware.DoctorOnlyMiddleware(conn), api.DoctorResultsHandler(workflow, redisClient))
	resultGroup.GET("/patient/:username", api.PatientResultsHandler(workflow, redisClient)) // Patient listing endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
