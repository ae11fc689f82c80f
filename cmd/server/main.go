package main

import (
	"log"
	"net/http"

	_ "skybox/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"skybox/internal/auth"
	"skybox/internal/cache"
	"skybox/internal/config"
	"skybox/internal/db"
	"skybox/internal/fileservice"
	"skybox/internal/handler"
	"skybox/internal/model"
	"skybox/internal/provision"
	"skybox/internal/repository"
	"skybox/internal/router"
	"skybox/internal/service"
)

// @title Skybox API
// @version 1.0
// @description Authentication and file-storage proxy backend with JWT bearer tokens.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize auth components
	tokenService, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		log.Fatalf("token service init: %v", err)
	}
	loginThrottle := auth.NewLoginThrottle(cacheClient, cfg.LoginMaxAttempts, cfg.LoginWindow)

	// Initialize repositories and external clients
	userRepo := repository.NewUserRepository(gormDB)
	bucketClient := provision.NewClient(cfg.ProvisionerURL, cfg.ProvisionTimeout)
	fileClient := fileservice.NewClient(cfg.FileServiceURL)

	// Initialize services
	accountService := service.NewAccountService(userRepo, bucketClient, tokenService, loginThrottle, cfg.TokenTTL)
	sessionService := service.NewSessionService(userRepo, tokenService)
	fileService := service.NewFileService(fileClient, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountService)
	fileHandler := handler.NewFileHandler(fileService)

	// Register routes
	router.Register(e, tokenService, sessionService, authHandler, fileHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
