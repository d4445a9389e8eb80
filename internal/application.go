package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rocketscienceinc/connectfour-relay/internal/config"
	"github.com/rocketscienceinc/connectfour-relay/internal/pkg"
	"github.com/rocketscienceinc/connectfour-relay/internal/repository"
	"github.com/rocketscienceinc/connectfour-relay/internal/repository/storage"
	"github.com/rocketscienceinc/connectfour-relay/internal/usecase"
	"github.com/rocketscienceinc/connectfour-relay/transport/rest"
	"github.com/rocketscienceinc/connectfour-relay/transport/websocket"
)

const shutdownTimeout = 5 * time.Second

// RunApp - runs the application.
func RunApp(logger *zap.Logger, conf *config.Config) error {
	log := logger.With(zap.String("component", "app"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	sessions, closeSessions, err := newSessionRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeSessions(); err != nil {
			log.Error("could not close session storage", zap.Error(err))
		}
	}()

	gen := pkg.NewGenerator()
	hub := websocket.NewHub(logger)
	gameManager := usecase.NewGameManager(logger, hub, gen, sessions)

	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx, gameManager)
		close(hubDone)
	}()

	wsServer := websocket.NewServer(logger, hub, gen, websocket.Options{
		AllowedOrigins: []string{conf.AllowedOrigin},
		SendBuffer:     conf.WebSocket.SendBuffer,
		MaxMessageSize: conf.WebSocket.MaxMessageSize,
	})

	router := rest.NewRouter(wsServer, rest.CORSOptions{
		AllowedOrigins: []string{conf.AllowedOrigin},
		AllowedMethods: conf.AllowedMethods,
	})
	srv := rest.NewServer(conf.SocketPort, router)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", conf.SocketPort), zap.String("sessionStore", conf.SessionStore))
		if httpErr := srv.ListenAndServe(); httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		cancel()
		<-hubDone
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("could not shut down HTTP server", zap.Error(err))
	}

	<-hubDone

	return nil
}

// newSessionRepository picks the session backend named in the config.
func newSessionRepository(ctx context.Context, conf *config.Config) (repository.SessionRepository, func() error, error) {
	if conf.SessionStore != config.SessionStoreRedis {
		return repository.NewMemorySessionRepository(), func() error { return nil }, nil
	}

	client, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewRedisSessionRepository(client), client.Close, nil
}
