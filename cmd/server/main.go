package main

import (
	"DocKeeper/internal/config"
	"DocKeeper/internal/crypto"
	"DocKeeper/internal/handlers"
	"DocKeeper/internal/middleware"
	"DocKeeper/internal/repo"
	"DocKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

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

	delivery := &service.LogDelivery{Logger: sugar}

	accessService := service.NewAccessService(store)
	storageService := service.NewStorageService(store)
	userService := service.NewUserService(store.Users)
	fileService := service.NewFileService(store, accessService, storageService, vault, sugar)
	transferService := service.NewTransferService(store, accessService, delivery, sugar)
	requestService := service.NewRequestService(store, delivery, sugar)
	notificationService := service.NewNotificationService(store)
	adminService := service.NewAdminService(store)

	h := handlers.NewHandler(
		userService,
		fileService,
		transferService,
		requestService,
		storageService,
		notificationService,
		adminService,
		sugar,
		cfg,
	)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"StorageDir", cfg.StorageDir,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
