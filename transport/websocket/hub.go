package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/quoridorlive/quoridor-backend/internal/entity"
)

// envelope pairs an inbound message with the client that sent it.
type envelope struct {
	client  *Client
	message Message
}

// Hub tracks connected clients and funnels every inbound message through
// one goroutine, so intents are processed one at a time in arrival order.
// Broadcasts may come from other goroutines (the clock timeout path), so
// the client set has its own lock.
type Hub struct {
	logger *slog.Logger

	register   chan *Client
	unregister chan *Client
	incoming   chan envelope

	clientsMutex sync.RWMutex
	clients      map[*Client]bool

	onMessage    func(client *Client, message Message)
	onDisconnect func(identity string)
}

func newHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger.With("component", "ws-hub"),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan envelope),
		clients:    make(map[*Client]bool),
	}
}

// Run is the hub's event loop. It exits when the context is canceled.
func (that *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-that.register:
			that.clientsMutex.Lock()
			that.clients[client] = true
			that.clientsMutex.Unlock()

			that.sendTo(client, actionConnect, ConnectPayload{ID: client.id})
			that.logger.Info("client connected", "clientID", client.id)

		case client := <-that.unregister:
			that.clientsMutex.Lock()
			if _, ok := that.clients[client]; ok {
				delete(that.clients, client)
				close(client.send)
			}
			that.clientsMutex.Unlock()

			that.onDisconnect(client.id)
			that.logger.Info("client disconnected", "clientID", client.id)

		case env := <-that.incoming:
			that.onMessage(env.client, env.message)

		case <-ctx.Done():
			return
		}
	}
}

// sendTo queues one message for a single client, dropping it if the
// client's queue is full.
func (that *Hub) sendTo(client *Client, action string, payload any) {
	message, err := newMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to build message", "action", action, "error", err)
		return
	}

	select {
	case client.send <- message:
	default:
		that.logger.Warn("dropping message for slow client", "clientID", client.id, "action", action)
	}
}

// broadcastAll queues one message for every connected client.
func (that *Hub) broadcastAll(action string, payload any) {
	message, err := newMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to build message", "action", action, "error", err)
		return
	}

	that.clientsMutex.RLock()
	defer that.clientsMutex.RUnlock()

	for client := range that.clients {
		select {
		case client.send <- message:
		default:
			that.logger.Warn("dropping broadcast for slow client", "clientID", client.id, "action", action)
		}
	}
}

// The hub is the coordinator's broadcaster: every accepted transition is
// emitted to all connected parties as an authoritative snapshot.

func (that *Hub) LobbyUpdate(session *entity.Session) {
	that.broadcastAll(actionLobbyUpdate, session)
}

func (that *Hub) GameStart(started bool) {
	that.broadcastAll(actionGameStart, started)
}

func (that *Hub) InitState(game *entity.Game) {
	that.broadcastAll(actionInitState, game)
}

func (that *Hub) UpdateState(game *entity.Game) {
	that.broadcastAll(actionUpdateState, game)
}
