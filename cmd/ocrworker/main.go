package main

import (
	"DocKeeper/internal/config"
	"DocKeeper/internal/crypto"
	"DocKeeper/internal/ocr"
	"DocKeeper/internal/repo"
	"DocKeeper/internal/service"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Интервал опроса пустой очереди.
const idleDelay = 5 * time.Second

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	store := repo.NewStore(gormDB)

	key, err := crypto.KeyFromHex(cfg.FileKeyHex)
	if err != nil {
		sugar.Fatalw("invalid FILE_KEY_HEX", "error", err)
	}
	vault, err := crypto.NewVault(cfg.StorageDir, key)
	if err != nil {
		sugar.Fatalw("failed to open storage vault", "error", err)
	}

	extractor := ocr.New(cfg.OCRLang)
	pipeline := service.NewOCRService(store, extractor, vault, cfg.OCRMaxAttempts, sugar)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sugar.Infow("ocr worker started", "lang", cfg.OCRLang, "max_attempts", cfg.OCRMaxAttempts)

	for {
		processed, err := pipeline.ProcessNext(ctx)
		if err != nil {
			sugar.Errorw("ocr worker iteration failed", "error", err)
		}
		if !processed {
			select {
			case <-ctx.Done():
				sugar.Infow("ocr worker stopped")
				return
			case <-time.After(idleDelay):
			}
		}
	}
}
