package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/tabular-insights/backend/internal/api"
	"github.com/tabular-insights/backend/internal/config"
	"github.com/tabular-insights/backend/internal/ingest"
	"github.com/tabular-insights/backend/internal/llm"
	"github.com/tabular-insights/backend/internal/report"
	"github.com/tabular-insights/backend/internal/tablestore"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Resolve config next to the executable
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	configPath := filepath.Join(filepath.Dir(exePath), "insight-server.yaml")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Pipeline wiring
	store := tablestore.NewMemoryStore()
	registry := report.NewRegistry()
	loader := ingest.NewLoader(store, logger)
	client := llm.NewChatClient(llm.Options{
		BaseURL:   cfg.Model.BaseURL,
		APIKey:    cfg.Model.APIKey,
		Model:     cfg.Model.Name,
		MaxTokens: cfg.Model.MaxTokens,
		Timeout:   time.Duration(cfg.Model.TimeoutSeconds) * time.Second,
	}, logger)
	generator := report.NewGenerator(loader, client, cfg.Processing.MaxRows, cfg.Processing.SampleRows, logger)

	// Background eviction for stored tables and report entries
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Storage.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		ttl := time.Duration(cfg.Storage.TableTTLMinutes) * time.Minute
		for range ticker.C {
			if n := store.CleanupExpired(ttl); n > 0 {
				logger.Info("evicted expired tables", zap.Int("count", n))
			}
			if n := registry.CleanupExpired(ttl); n > 0 {
				logger.Info("evicted expired reports", zap.Int("count", n))
			}
		}
	}()

	h := api.NewHandler(loader, store, generator, registry, logger)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Server.EnableRequestLogging {
				return true
			}
			return strings.HasSuffix(c.Request().URL.Path, "/health")
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	api.RegisterRoutes(e, h)

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	logger.Info("starting tabular insights server",
		zap.String("version", Version),
		zap.String("buildTime", BuildTime),
		zap.String("listen", cfg.GetServerAddr()),
		zap.String("config", configPath),
		zap.String("model", cfg.Model.Name))

	e.Logger.Fatal(e.StartServer(s))
}
