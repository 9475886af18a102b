// Scaffolder - poem tutoring server
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

	"github.com/ashureev/scaffolder/internal/agent"
	"github.com/ashureev/scaffolder/internal/api"
	"github.com/ashureev/scaffolder/internal/catalog"
	"github.com/ashureev/scaffolder/internal/competency"
	"github.com/ashureev/scaffolder/internal/config"
	"github.com/ashureev/scaffolder/internal/dictionary"
	"github.com/ashureev/scaffolder/internal/llm"
	"github.com/ashureev/scaffolder/internal/middleware"
	"github.com/ashureev/scaffolder/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "scaffolder",
	Short:         "Poem tutoring backend",
	Long:          `Serves the poem catalog, reader profiles, dictionary lookups and the tutoring personas over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, poemsCmd, profileCmd)
}

func main() {
	setLogger(slog.LevelInfo)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func setLogger(level slog.Level) {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	setLogger(cfg.LogLevel)

	slog.Info("Starting server", "port", cfg.Port, "provider", cfg.LLM.Provider)

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()
	slog.Info("Database connected", "path", cfg.DBPath)

	poems, err := catalog.Load(cfg.PoemDataPath)
	if err != nil {
		return fmt.Errorf("load poem catalog: %w", err)
	}

	table, err := loadCompetencyTable(cfg.CompetencyTablePath)
	if err != nil {
		return err
	}

	client, err := newLLMRegistry(cfg.LLM).Open(cmd.Context(), cfg.LLM.Provider)
	if err != nil {
		return fmt.Errorf("initialize llm: %w", err)
	}
	slog.Info("LLM client ready", "provider", cfg.LLM.Provider)

	var dictOpts []dictionary.Option
	if cfg.Dictionary.CacheAddr != "" {
		cache, err := dictionary.NewRedisCache(cmd.Context(), dictionary.RedisConfig{
			Addr:     cfg.Dictionary.CacheAddr,
			Password: cfg.Dictionary.CachePassword,
			DB:       cfg.Dictionary.CacheDB,
			TTL:      cfg.Dictionary.CacheTTL,
		})
		if err != nil {
			slog.Warn("Dictionary cache unavailable, continuing without it", "addr", cfg.Dictionary.CacheAddr, "error", err)
		} else {
			defer cache.Close()
			dictOpts = append(dictOpts, dictionary.WithCache(cache))
			slog.Info("Dictionary cache connected", "addr", cfg.Dictionary.CacheAddr, "ttl", cfg.Dictionary.CacheTTL)
		}
	}
	dict := dictionary.New(dictionary.Config{
		BaseURL: cfg.Dictionary.BaseURL,
		APIKey:  cfg.Dictionary.APIKey,
		Limit:   cfg.Dictionary.Limit,
	}, dictOpts...)
	if cfg.Dictionary.APIKey == "" {
		slog.Warn("DICTIONARY_API_KEY not set, dictionary lookups will return no results")
	}

	// Initialize handlers.
	handler := api.NewHandler(repo, poems, agent.NewService(client, table), dict)
	healthHandler := api.NewHealthHandler(repo, poems)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	healthHandler.RegisterHealth(r)
	handler.RegisterRoutes(r)

	// A critique makes two sequential model calls.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2*cfg.LLM.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server stopped successfully")
	return nil
}

func loadCompetencyTable(path string) (*competency.Table, error) {
	if path == "" {
		return competency.Default()
	}
	table, err := competency.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load competency table %s: %w", path, err)
	}
	slog.Info("Competency table loaded", "path", path)
	return table, nil
}

func newLLMRegistry(cfg config.LLMConfig) *llm.Registry {
	reg := llm.NewRegistry()
	reg.Register(config.ProviderOpenAI, func(context.Context) (llm.Client, error) {
		c, err := llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
	reg.Register(config.ProviderGemini, func(ctx context.Context) (llm.Client, error) {
		c, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
	return reg
}
