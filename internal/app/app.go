package app

import (
	"context"
	"fmt"
	"os"

	apphttp "github.com/miyannishar/eco-logic-backend/internal/http"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/platform/mongodb"
	"github.com/miyannishar/eco-logic-backend/internal/store"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Mongo    *mongodb.Service
	Clients  Clients
	Store    store.ReportStore
	Services Services
	Server   *apphttp.Server
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	mongo, err := mongodb.NewService(ctx, log, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init mongodb: %w", err)
	}

	clientset, err := wireClients(log, cfg)
	if err != nil {
		mongo.Close(ctx)
		log.Sync()
		return nil, err
	}

	reportStore, err := store.NewReportStore(log, mongo.Database())
	if err != nil {
		mongo.Close(ctx)
		log.Sync()
		return nil, fmt.Errorf("init report store: %w", err)
	}

	serviceset := wireServices(log, cfg, clientset, reportStore)
	handlerset := wireHandlers(log, serviceset, reportStore)
	server := wireServer(log, handlerset)

	return &App{
		Log:      log,
		Cfg:      cfg,
		Mongo:    mongo,
		Clients:  clientset,
		Store:    reportStore,
		Services: serviceset,
		Server:   server,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(":" + a.Cfg.Port)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Mongo != nil {
		a.Mongo.Close(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
