package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/diegoclair/status-update-bot/internal/checkpoint"
	"github.com/diegoclair/status-update-bot/internal/config"
	"github.com/diegoclair/status-update-bot/internal/database"
	"github.com/diegoclair/status-update-bot/internal/directory"
	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/service"
	"github.com/diegoclair/status-update-bot/internal/handlers"
	"github.com/diegoclair/status-update-bot/internal/logger"
	"github.com/diegoclair/status-update-bot/internal/scheduler"
	slackclient "github.com/diegoclair/status-update-bot/internal/slack"
	"github.com/diegoclair/status-update-bot/migrator/sqlite"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", os.Stderr)
		bootLog.Fatal().Err(err).Msg("Invalid configuration")
	}

	log := logger.New(cfg.LogLevel, os.Stdout)
	if envErr != nil {
		log.Warn().Msg(".env file not found")
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("Running migrations...")
	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Migrations completed successfully")

	dm := database.NewInstance(db)

	chat := slackclient.New(slack.New(cfg.SlackBotToken), nil)
	members := directory.New(nil, cfg.RootURL)
	store := newCheckpointStore(cfg, dm, log)

	instance := service.NewInstance(cfg, dm, chat, members, store, logger.Component(log, "service"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := scheduler.New(logger.Component(log, "scheduler"), cfg.Location, nil, instance.Tasks()...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule tasks")
	}
	sched.Start(ctx)
	defer sched.Stop()

	handler := handlers.New(instance.StatusUpdate, cfg.Location, cfg.SlackSigningSecret, logger.Component(log, "handlers"))

	mux := http.NewServeMux()
	mux.HandleFunc("/slack/commands", handler.HandleSlashCommand)
	mux.HandleFunc("/health", handler.HandleHealth)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down server")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("timezone", cfg.Location.String()).
		Str("run_at", cfg.Bot.RunAt).
		Strs("channels", cfg.Bot.GroupChannels).
		Msg("Server starting")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Failed to start server")
		return
	}
	log.Info().Msg("Shutting down")
}

func newCheckpointStore(cfg *config.Config, dm contract.DataManager, log zerolog.Logger) contract.CheckpointStore {
	if cfg.CheckpointDriver == config.CheckpointDriverSqlite {
		log.Info().Str("database", cfg.DatabasePath).Msg("Storing checkpoints in sqlite")
		return database.NewCheckpointStore(dm, cfg.Bot.GroupChannels)
	}

	log.Info().Str("file", cfg.CheckpointFile).Msg("Storing checkpoints in file")
	return checkpoint.NewFileStore(cfg.CheckpointFile, len(cfg.Bot.GroupChannels))
}
