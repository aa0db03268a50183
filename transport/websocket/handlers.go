package websocket

import (
	"encoding/json"
)

const (
	actionConnect      = "connect"
	actionLobbyRequest = "lobby:request"
	actionLobbyUpdate  = "lobby:update"
	actionRoleSelect   = "role:select"
	actionReadyToggle  = "ready:toggle"
	actionGameStart    = "game:start"
	actionInitState    = "game:init"
	actionUpdateState  = "game:state"
	actionGameAction   = "game:action"
	actionGameResign   = "game:resign"
	actionGameReset    = "game:reset"
	actionGameBot      = "game:bot"
)

// dispatch routes one inbound message. Malformed payloads and rejected
// intents are logged and otherwise dropped: the client learns the outcome
// from the broadcast state, never from an error reply.
func (that *Server) dispatch(client *Client, msg Message) {
	switch msg.Action {
	case actionLobbyRequest:
		that.handleLobbyRequest(client)
	case actionRoleSelect:
		that.handleRoleSelect(client, msg)
	case actionReadyToggle:
		that.handleReadyToggle(client, msg)
	case actionGameAction:
		that.handleGameAction(client, msg)
	case actionGameResign:
		that.handleGameResign(client)
	case actionGameReset:
		that.handleGameReset(client)
	case actionGameBot:
		that.handleGameBot(client)
	default:
		that.logger.Warn("unknown action", "action", msg.Action, "clientID", client.id)
	}
}

// handleLobbyRequest replies to the requesting client only, so a newcomer
// can catch up without disturbing the room.
func (that *Server) handleLobbyRequest(client *Client) {
	session, game := that.manager.HandleLobbyRequest()

	that.hub.sendTo(client, actionLobbyUpdate, session)

	if session.Started {
		that.hub.sendTo(client, actionGameStart, true)
		that.hub.sendTo(client, actionInitState, game)
	}
}

func (that *Server) handleRoleSelect(client *Client, msg Message) {
	log := that.logger.With("method", "handleRoleSelect", "clientID", client.id)

	var payload RolePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Warn("malformed payload", "error", err)
		return
	}

	if err := that.manager.HandleSelectRole(client.id, payload.Role); err != nil {
		log.Info("role select rejected", "role", payload.Role, "error", err)
	}
}

func (that *Server) handleReadyToggle(client *Client, msg Message) {
	log := that.logger.With("method", "handleReadyToggle", "clientID", client.id)

	var payload RolePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Warn("malformed payload", "error", err)
		return
	}

	if err := that.manager.HandleToggleReady(client.id, payload.Role); err != nil {
		log.Info("ready toggle rejected", "role", payload.Role, "error", err)
	}
}

func (that *Server) handleGameAction(client *Client, msg Message) {
	log := that.logger.With("method", "handleGameAction", "clientID", client.id)

	var payload ActionPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Warn("malformed payload", "error", err)
		return
	}

	switch {
	case payload.Move != nil:
		if err := that.manager.HandleMove(client.id, *payload.Move); err != nil {
			log.Info("move rejected", "target", *payload.Move, "error", err)
		}
	case payload.Wall != nil:
		if err := that.manager.HandleWall(client.id, *payload.Wall); err != nil {
			log.Info("wall rejected", "wall", *payload.Wall, "error", err)
		}
	default:
		log.Warn("action carries neither move nor wall")
	}
}

func (that *Server) handleGameResign(client *Client) {
	log := that.logger.With("method", "handleGameResign", "clientID", client.id)

	if err := that.manager.HandleResign(client.id); err != nil {
		log.Info("resign rejected", "error", err)
	}
}

func (that *Server) handleGameReset(client *Client) {
	log := that.logger.With("method", "handleGameReset", "clientID", client.id)

	if err := that.manager.HandleReset(client.id); err != nil {
		log.Info("reset rejected", "error", err)
	}
}

func (that *Server) handleGameBot(client *Client) {
	log := that.logger.With("method", "handleGameBot", "clientID", client.id)

	if err := that.manager.HandleBotGame(client.id); err != nil {
		log.Info("bot game rejected", "error", err)
	}
}
