package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/quoridorlive/quoridor-backend/internal/config"
	"github.com/quoridorlive/quoridor-backend/internal/repository"
	"github.com/quoridorlive/quoridor-backend/internal/repository/storage"
	"github.com/quoridorlive/quoridor-backend/internal/service"
	"github.com/quoridorlive/quoridor-backend/internal/usecase"
	"github.com/quoridorlive/quoridor-backend/transport/rest"
	"github.com/quoridorlive/quoridor-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	// The match archive is optional: with no redis host configured the
	// server runs purely in memory and finished matches are not recorded.
	var archive usecase.ArchiveRepository

	if redisAddr := conf.Redis.GetRedisAddr(); redisAddr != "" {
		redisStorage, err := storage.New(ctx, redisAddr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if closeErr := redisStorage.Close(); closeErr != nil {
				log.Error("could not close redis storage", "error", closeErr)
			}
		}()

		archive = repository.NewArchiveRepository(redisStorage.Connection)
	} else {
		log.Info("No redis address configured, match archiving disabled")
	}

	gameService := service.NewGameService(logger, conf.Clock)
	botService := service.NewBotService()
	sessionManager := usecase.NewSessionManager(logger, gameService, botService, archive)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, sessionManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	var err error
	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
