package main

import (
	"log"
	"net/http"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ferreirogomes/quinhao/config"
	"github.com/ferreirogomes/quinhao/handlers"
	"github.com/ferreirogomes/quinhao/ledger"
	"github.com/ferreirogomes/quinhao/listener"
	"github.com/ferreirogomes/quinhao/registry"
	"github.com/ferreirogomes/quinhao/services"
	"github.com/ferreirogomes/quinhao/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	db, err := storage.NewDB(cfg.DatabaseURL, cfg.MigrationsDir)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	reg := registry.New()
	ledgers := ledger.NewTable()
	if err := services.Rehydrate(db, reg, ledgers, logger); err != nil {
		logger.Fatal("rehydrating state", zap.Error(err))
	}

	bus := EventBus.New()

	catalogService := services.NewCatalogService(db, reg, logger)
	fracService := services.NewFractionalizationService(db, reg, ledgers, bus, logger)
	tradingService := services.NewTradingService(reg, ledgers, bus, logger)

	projector := listener.New(bus, ledgers, db, logger)
	if err := projector.Start(); err != nil {
		logger.Fatal("starting event listener", zap.Error(err))
	}
	defer projector.Stop()

	router := handlers.NewRouter(
		handlers.NewCollectionHandler(catalogService),
		handlers.NewAssetHandler(catalogService, fracService),
		handlers.NewLedgerHandler(tradingService, db),
	)

	logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
