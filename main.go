package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/swaggo/swag"

	"pin_share_backend/config"
	"pin_share_backend/db"
	_ "pin_share_backend/docs"
	"pin_share_backend/handlers"
	"pin_share_backend/logger"
	"pin_share_backend/scheduler"
	"pin_share_backend/services"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	if err := db.InitMySQLWithConfig(cfg); err != nil {
		logger.Error("init MySQL failed", "error", err)
		os.Exit(1)
	}
	logger.Info("MySQL connected",
		"max_open_conns", cfg.DB.MaxOpenConns,
		"max_idle_conns", cfg.DB.MaxIdleConns,
		"conn_max_lifetime", cfg.DB.ConnMaxLifetime)

	ledger := services.NewInterestLedger(cfg, services.SQLInterestStore{}, services.SQLInteractionSink{})
	defer ledger.Close()

	pageMeta := services.NewPageMetaFetcher(time.Duration(cfg.Fetcher.PageTimeoutSec) * time.Second)
	ocr := services.NewOCRClient(cfg)

	svc := &handlers.Services{
		Pins:   services.NewPinService(cfg, services.SQLContentStore{}, ledger, services.SQLSavedSearchStore{}, pageMeta, ocr),
		Rec:    services.NewRecommender(cfg, services.SQLContentStore{}, ledger, services.SQLSavedSearchStore{}),
		Ledger: ledger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	handlers.RegisterRoutes(r, cfg, svc)

	scheduler.Start(cfg)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", serverAddr)
	logger.Info("swagger docs available", "url", fmt.Sprintf("http://%s/swagger/index.html", serverAddr))
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port), r))
}
