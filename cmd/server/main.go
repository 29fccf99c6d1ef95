package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/DevanshiArora1/learnlink/internal/adapters"
	router "github.com/DevanshiArora1/learnlink/internal/adapters/http"
	"github.com/DevanshiArora1/learnlink/internal/app"
	"github.com/DevanshiArora1/learnlink/internal/config"
	"github.com/DevanshiArora1/learnlink/internal/realtime"
	"github.com/DevanshiArora1/learnlink/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Mode == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	db := client.Database(cfg.MongoDB)

	users := store.NewMongoUsers(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	groups := app.NewGroupService(store.NewMongoGroups(db))
	resources := app.NewResourceService(store.NewMongoResources(db))
	auth := app.NewAuthService(users, cfg.JWTSecret)

	broadcaster := realtime.NewBroadcaster()
	limiter := realtime.NewRateLimiter(cfg.MsgRateLimit, cfg.MsgRateWindow)
	chat := adapters.NewChatWSController(cfg, auth, broadcaster, limiter)

	r := router.SetupRouter(ctx, cfg, router.Services{
		Auth:      auth,
		Groups:    groups,
		Resources: resources,
		Chat:      chat,
	})
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("LearnLink server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
