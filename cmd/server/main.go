package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	storage_go "github.com/supabase-community/storage-go"

	"estate-cms-backend/internal/auth"
	"estate-cms-backend/internal/config"
	"estate-cms-backend/internal/database"
	"estate-cms-backend/internal/handlers"
	"estate-cms-backend/internal/logger"
	"estate-cms-backend/internal/middleware"
	"estate-cms-backend/internal/models"
	"estate-cms-backend/internal/services"
	"estate-cms-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}
	logger.Init(cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := database.NewClient(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := seedAdmin(ctx, dbClient, cfg); err != nil {
		logger.Warn("admin bootstrap failed", "error", err)
	}

	api := storage_go.NewClient(
		strings.TrimSuffix(cfg.SupabaseURL, "/")+"/storage/v1",
		cfg.SupabaseServiceKey, nil)
	storeClient := storage.NewClient(api, cfg.SupabaseURL, cfg.SupabaseStorageBucket)
	media := services.NewMediaCoordinator(storage.NewUploader(storeClient))

	router := setupRouter(cfg, dbClient, media)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	// Let pending background media cleanups drain before disconnecting.
	media.Shutdown(shutdownCtx)
	if err := dbClient.Close(shutdownCtx); err != nil {
		logger.Error("database disconnect failed", "error", err)
	}
}

func setupRouter(cfg *config.Config, dbClient *database.Client, media *services.MediaCoordinator) *gin.Engine {
	router := gin.Default()

	router.GET("/health", handlers.HealthHandler)

	authHandler := handlers.NewAuthHandler(dbClient, cfg)
	projectsHandler := handlers.NewProjectsHandler(dbClient, media)
	servicesHandler := handlers.NewServicesHandler(dbClient, media)
	teamHandler := handlers.NewTeamHandler(dbClient, media)
	coursesHandler := handlers.NewCoursesHandler(dbClient, media)
	testimonialsHandler := handlers.NewTestimonialsHandler(dbClient)
	leadsHandler := handlers.NewLeadsHandler(dbClient)

	api := router.Group("/api/v1")

	// Public surface
	api.POST("/auth/login", authHandler.Login)
	api.GET("/projects", projectsHandler.List)
	api.GET("/projects/:id", projectsHandler.Get)
	api.GET("/services", servicesHandler.List)
	api.GET("/team", teamHandler.List)
	api.GET("/courses", coursesHandler.List)
	api.GET("/testimonials", testimonialsHandler.List)
	api.POST("/leads", leadsHandler.Create)

	// Admin surface
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(cfg))

	admin.POST("/projects", projectsHandler.Create)
	admin.PUT("/projects/:id", projectsHandler.Update)
	admin.DELETE("/projects/:id", projectsHandler.Delete)
	admin.PATCH("/projects/:id/visibility", projectsHandler.SetVisibility)

	admin.POST("/services", servicesHandler.Create)
	admin.PUT("/services/:id", servicesHandler.Update)
	admin.DELETE("/services/:id", servicesHandler.Delete)
	admin.PATCH("/services/:id/visibility", servicesHandler.SetVisibility)

	admin.POST("/team", teamHandler.Create)
	admin.PUT("/team/:id", teamHandler.Update)
	admin.DELETE("/team/:id", teamHandler.Delete)
	admin.PATCH("/team/:id/visibility", teamHandler.SetVisibility)

	admin.POST("/courses", coursesHandler.Create)
	admin.PUT("/courses/:id", coursesHandler.Update)
	admin.DELETE("/courses/:id", coursesHandler.Delete)
	admin.PATCH("/courses/:id/visibility", coursesHandler.SetVisibility)

	admin.POST("/testimonials", testimonialsHandler.Create)
	admin.PUT("/testimonials/:id", testimonialsHandler.Update)
	admin.DELETE("/testimonials/:id", testimonialsHandler.Delete)
	admin.PATCH("/testimonials/:id/visibility", testimonialsHandler.SetVisibility)

	admin.GET("/leads", leadsHandler.List)
	admin.PATCH("/leads/:id/status", leadsHandler.SetStatus)

	return router
}

// seedAdmin creates the first admin account from the environment when
// the users collection is empty.
func seedAdmin(ctx context.Context, dbClient *database.Client, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	count, err := dbClient.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	_, err = dbClient.CreateUser(ctx, &models.User{
		Email:        strings.ToLower(cfg.AdminEmail),
		PasswordHash: hash,
		Role:         "admin",
	})
	if err == nil {
		logger.Info("admin account created", "email", cfg.AdminEmail)
	}
	return err
}
