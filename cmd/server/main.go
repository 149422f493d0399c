package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entrenador/gym-platform/internal/api"
	"entrenador/gym-platform/internal/cache"
	"entrenador/gym-platform/internal/catalog"
	"entrenador/gym-platform/internal/config"
	"entrenador/gym-platform/internal/repository/mongo"
	"entrenador/gym-platform/internal/service"
	"entrenador/gym-platform/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Gym Platform API
// @version 1.0
// @description API for gym membership management: plans, enrollments, documents, progress tracking and the exercise catalog.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Gym Platform Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongo.EnsureEnrollmentIndexes(ctx, appDB.Collection("enrollments"))
		mongo.EnsureDocumentIndexes(ctx, appDB.Collection("documents"))
		mongo.EnsureMediaIndexes(ctx, appDB.Collection("media"))
		mongo.EnsureProgressIndexes(ctx, appDB.Collection("progress"))
		mongo.EnsureCommentIndexes(ctx, appDB.Collection("trainer_comments"))
		mongo.EnsureFavoriteIndexes(ctx, appDB.Collection("favorite_exercises"), appDB.Collection("exercise_logs"))
		mongo.EnsureUserVideoIndexes(ctx, appDB.Collection("user_videos"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Catalog Cache ---
	// A missing Redis degrades catalog requests to uncached, nothing else.
	var catalogCache *cache.Cache
	if cfg.Redis.URI != "" {
		catalogCache, err = cache.Connect(cfg.Redis.URI)
		if err != nil {
			log.Printf("ERROR: Could not connect to Redis, catalog responses will not be cached: %v", err)
			catalogCache = nil
		} else {
			defer catalogCache.Close()
			log.Println("Redis connection established.")
		}
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	enrollmentRepo := mongo.NewMongoEnrollmentRepository(appDB)
	documentRepo := mongo.NewMongoDocumentRepository(appDB)
	mediaRepo := mongo.NewMongoMediaRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)
	commentRepo := mongo.NewMongoCommentRepository(appDB)
	favoriteRepo := mongo.NewMongoFavoriteRepository(appDB)
	videoRepo := mongo.NewMongoUserVideoRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	planService := service.NewPlanService(planRepo)
	adminService := service.NewAdminService(userRepo, planRepo, enrollmentRepo, documentRepo, mediaRepo, progressRepo, commentRepo, favoriteRepo, videoRepo, fileStorage)
	clientService := service.NewClientService(userRepo, planRepo, enrollmentRepo, documentRepo, mediaRepo, progressRepo, commentRepo, videoRepo, fileStorage)
	catalogService := service.NewCatalogService(catalog.NewClient(cfg.Catalog.BaseURL), catalogCache, cfg.Catalog.CacheTTL)
	favoriteService := service.NewFavoriteService(favoriteRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, adminService, clientService, planService, catalogService, favoriteService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
