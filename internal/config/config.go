package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// File storage settings
	StorageDir    string `env:"STORAGE_DIR"`
	FileKeyHex    string `env:"FILE_KEY_HEX"` // AES-256 ключ шифрования файлов (hex, 64 символа)
	BlobMaxSizeMB int    `env:"BLOB_MAX_SIZE_MB"`

	// OCR worker settings
	OCRLang        string `env:"OCR_LANG"`
	OCRMaxAttempts int    `env:"OCR_MAX_ATTEMPTS"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the DocKeeper server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS")
	flag.StringVar(&cfg.StorageDir, "storage-dir", cfg.StorageDir, "каталог хранения зашифрованных файлов")
	flag.StringVar(&cfg.FileKeyHex, "file-key", cfg.FileKeyHex, "hex-ключ AES-256 для шифрования файлов")
	flag.StringVar(&cfg.OCRLang, "ocr-lang", cfg.OCRLang, "язык Tesseract для OCR")
	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = "storage"
	}
	if cfg.BlobMaxSizeMB <= 0 {
		cfg.BlobMaxSizeMB = 32
	}
	if cfg.OCRLang == "" {
		cfg.OCRLang = "eng"
	}
	if cfg.OCRMaxAttempts <= 0 {
		cfg.OCRMaxAttempts = 3
	}

	return cfg
}
