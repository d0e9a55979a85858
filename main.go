package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/margadarshak/margadarshak-api/internal/auth"
	"github.com/margadarshak/margadarshak-api/internal/chat"
	"github.com/margadarshak/margadarshak-api/internal/college"
	"github.com/margadarshak/margadarshak-api/internal/config"
	"github.com/margadarshak/margadarshak-api/internal/fallback"
	"github.com/margadarshak/margadarshak-api/internal/logger"
	"github.com/margadarshak/margadarshak-api/internal/profile"
	"github.com/margadarshak/margadarshak-api/internal/provider"
	"github.com/margadarshak/margadarshak-api/internal/server"
	"github.com/margadarshak/margadarshak-api/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	profiles, err := openProfileStore(cfg)
	if err != nil {
		return err
	}
	defer profiles.Close()

	resolver := chat.NewResolver(buildTiers(cfg, log), log)
	st := resolver.Status()
	log.Info().
		Bool("has_gemini", st.Gemini).
		Bool("has_huggingface", st.HuggingFace).
		Strs("models", st.Models).
		Str("profile_store", cfg.ProfileStore).
		Bool("auth", cfg.AuthEnabled()).
		Msg("chat tiers configured")

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(server.Deps{
		Resolver:    resolver,
		Profiles:    profile.NewService(profiles, log),
		Colleges:    college.NewClient(cfg.CollegeAPIURL, cfg.CollegeAPITimeout, log),
		Auth:        auth.NewVerifier(cfg.AuthJWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildTiers only wires a provider whose credential is present.
func buildTiers(cfg *config.Config, log zerolog.Logger) chat.Tiers {
	tiers := chat.Tiers{Table: fallback.Default()}

	if gem, err := provider.NewGeminiProvider(provider.GeminiConfig{
		APIKey:        cfg.GeminiAPIKey,
		BaseURL:       cfg.GeminiBaseURL,
		Models:        cfg.GeminiModels,
		Timeout:       cfg.GeminiTimeout,
		HistoryWindow: cfg.HistoryWindow,
	}, log); err == nil {
		tiers.Primary = gem
	}

	if hf, err := provider.NewHuggingFaceProvider(provider.HuggingFaceConfig{
		APIKey:  cfg.HuggingFaceAPIKey,
		BaseURL: cfg.HuggingFaceBaseURL,
		Model:   cfg.HuggingFaceModel,
		Timeout: cfg.HuggingFaceTimeout,
	}, log); err == nil {
		tiers.Secondary = hf
	}

	return tiers
}

func openProfileStore(cfg *config.Config) (store.ProfileStore, error) {
	if cfg.ProfileStore == config.StoreSQLite {
		return store.OpenSQLite(cfg.ProfileDBPath)
	}
	return store.NewMemoryStore(), nil
}
