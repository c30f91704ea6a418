package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MithunXcpu/value-calculator/internal/config"
	"github.com/MithunXcpu/value-calculator/internal/discovery"
	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	generate_excel "github.com/MithunXcpu/value-calculator/internal/service/generate-excel"
	"github.com/MithunXcpu/value-calculator/internal/service/report"
	"github.com/MithunXcpu/value-calculator/internal/storage/mysql"
	"github.com/MithunXcpu/value-calculator/internal/storage/postgres"
	"github.com/MithunXcpu/value-calculator/internal/templates"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// repository is what main needs from either storage driver.
type repository interface {
	calculator.Repository
	EnsureSchema(ctx context.Context) error
	Close() error
}

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env, cfg.Log.ErrorFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		log.Error("failed to open db", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error("failed to prepare schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalog, err := templates.LoadCatalog(cfg.TemplatesPath)
	if err != nil {
		log.Error("failed to load templates", slog.String("path", cfg.TemplatesPath), slog.String("error", err.Error()))
		os.Exit(1)
	}

	var completer discovery.Completer
	if cfg.LLM.APIKey != "" {
		gemini, err := discovery.NewGeminiCompleter(ctx, cfg.LLM)
		if err != nil {
			log.Warn("LLM unavailable, using benchmark templates", slog.String("error", err.Error()))
		} else {
			completer = gemini
		}
	}
	generator := discovery.NewGenerator(cfg.LLM, completer)

	calcService := calculator.New(log, repo, catalog, cfg.Engine)

	svc := services{
		calculators: calcService,
		excel:       generate_excel.NewGenerateService(calcService),
		reports:     report.New(calcService),
		scraper:     discovery.NewScraper(cfg.Discovery),
		generator:   generator,
	}

	log.Info("server started",
		slog.String("address", cfg.Address),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("discovery_mode", string(generator.Mode())),
		slog.Int("templates", len(catalog.List())),
	)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, svc),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: writeTimeout(cfg),
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", slog.String("error", err.Error()))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed start server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}

func openStorage(ctx context.Context, cfg config.Storage) (repository, error) {
	switch cfg.Driver {
	case "postgres":
		s, err := postgres.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "mysql":
		s, err := mysql.New(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// writeTimeout leaves the discovery endpoints room for a model round trip.
func writeTimeout(cfg *config.Config) time.Duration {
	t := cfg.HTTPServer.Timeout
	if llm := cfg.LLM.Timeout + cfg.Discovery.ScrapeTimeout; llm > t {
		t = llm
	}
	return t
}

type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	if h.coreHandler.Enabled(ctx, r.Level) {
		err = h.coreHandler.Handle(ctx, r)
		if err != nil {
			return err
		}
	}

	// errors also go to the error file
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		_ = h.errorHandler.Handle(ctx, r.Clone())
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env, errorFile string) *slog.Logger {
	var level slog.Level = slog.LevelDebug
	switch env {
	case envProd:
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case envLocal, envProd:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	if errorFile == "" {
		return slog.New(coreHandler)
	}

	file, err := os.OpenFile(errorFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("Cannot open error log file", "error", err)
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: errorHandler,
	})
}
