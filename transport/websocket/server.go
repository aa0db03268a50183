package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/quoridorlive/quoridor-backend/internal/usecase"
)

// Server upgrades HTTP connections to WebSocket and hands every inbound
// message to the session manager through the hub's event loop.
type Server struct {
	logger  *slog.Logger
	manager *usecase.SessionManager
	hub     *Hub

	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, manager *usecase.SessionManager) *Server {
	server := &Server{
		logger:  logger.With("component", "ws-server"),
		manager: manager,
		hub:     newHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}

	server.hub.onMessage = server.dispatch
	server.hub.onDisconnect = manager.HandleDisconnect
	manager.SetBroadcaster(server.hub)

	return server
}

// Start runs the hub loop and the WebSocket endpoint until the context is
// canceled or the listener fails.
func (that *Server) Start(ctx context.Context, port string) error {
	go that.hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS upgrades the connection and starts the client's pumps.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		conn: conn,
		hub:  that.hub,
		send: make(chan Message, sendBufferSize),
	}

	that.hub.register <- client

	go client.writePump(that.logger)
	go client.readPump(that.logger)
}
