package main

import (
	"log"

	_ "taller_web/docs"
	"taller_web/internal/adapter/http/handlers"
	"taller_web/internal/adapter/http/routes"
	"taller_web/internal/adapter/persistence/repository"
	"taller_web/internal/config"
	"taller_web/internal/infrastructure/backend"
	"taller_web/internal/infrastructure/database"
	"taller_web/internal/logger"
	"taller_web/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Taller Web API
// @version         1.0
// @description     Fachada web del taller: sesiones, órdenes de servicio y selectores de catálogo.

// @host localhost:8080

// @BasePath  /api

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ddb := database.ConnectDynamoDB()
	sessionRepo := repository.NewSessionDynamoRepository(ddb, cfg.Session.Table)

	gateway := backend.NewClient(cfg.Backend.BaseURL, sessionRepo, zlog)

	sessionUC := usecase.NewSessionUseCase(sessionRepo, gateway, cfg.Session.Secret, cfg.Session.TTL)
	orderUC := usecase.NewOrderUseCase(gateway)
	pickerUC := usecase.NewPickerUseCase(gateway)
	workshopUC := usecase.NewWorkshopUseCase(gateway)

	cookieName := cfg.Session.CookieName
	h := routes.Handlers{
		Sessions: sessionUC,
		Auth:     handlers.NewAuthHandler(sessionUC, orderUC, pickerUC, cfg.Session),
		Orders:   handlers.NewOrderHandler(orderUC, cookieName),
		Catalog:  handlers.NewCatalogHandler(pickerUC, cookieName),
		Workshop: handlers.NewWorkshopHandler(workshopUC, cookieName),
		Pages:    handlers.NewPagesHandler(orderUC, cookieName),
	}

	if err := routes.Run(*cfg, zlog, h); err != nil {
		zlog.Fatal("Server stopped", zap.Error(err))
	}
}
