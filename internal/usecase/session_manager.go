package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quoridorlive/quoridor-backend/internal/entity"
	"github.com/quoridorlive/quoridor-backend/internal/quoridor"
	"github.com/quoridorlive/quoridor-backend/internal/service"
)

const archiveTimeout = 5 * time.Second

// Broadcaster pushes authoritative snapshots to every connected client.
// The transport implements it; the coordinator never talks to sockets.
type Broadcaster interface {
	LobbyUpdate(session *entity.Session)
	GameStart(started bool)
	InitState(game *entity.Game)
	UpdateState(game *entity.Game)
}

type ArchiveRepository interface {
	Save(ctx context.Context, summary *entity.MatchSummary) error
}

// SessionManager is the entry point for every client-originated intent. It
// reduces intents against the authoritative records through the game
// service, emits the resulting snapshots, drives the per-match clock, and
// plays the bot seat when one is in the game.
//
// Handle methods are called from the transport's single event goroutine;
// only the clock ticker runs beside them, and it shares the game service's
// mutex.
type SessionManager struct {
	logger      *slog.Logger
	gameService service.GameService
	botService  service.BotService
	archive     ArchiveRepository
	broadcaster Broadcaster

	clockMu   sync.Mutex
	clockStop chan struct{}

	botIdentity string
	botRole     int
}

// NewSessionManager wires the coordinator. The archive may be nil, which
// disables match archiving.
func NewSessionManager(logger *slog.Logger, gameService service.GameService, botService service.BotService, archive ArchiveRepository) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session-manager"),
		gameService: gameService,
		botService:  botService,
		archive:     archive,
	}
}

// SetBroadcaster attaches the transport; must be called before any intent
// is handled.
func (that *SessionManager) SetBroadcaster(broadcaster Broadcaster) {
	that.broadcaster = broadcaster
}

// HandleLobbyRequest returns the snapshots a late joiner needs to catch up.
func (that *SessionManager) HandleLobbyRequest() (*entity.Session, *entity.Game) {
	return that.gameService.Session(), that.gameService.Game()
}

func (that *SessionManager) HandleSelectRole(identity string, role int) error {
	if err := that.gameService.SelectRole(identity, role); err != nil {
		return err
	}

	that.broadcaster.LobbyUpdate(that.gameService.Session())

	return nil
}

func (that *SessionManager) HandleToggleReady(identity string, role int) error {
	started, err := that.gameService.ToggleReady(identity, role)
	if err != nil {
		return err
	}

	that.broadcaster.LobbyUpdate(that.gameService.Session())

	if started {
		that.broadcaster.GameStart(true)
		that.broadcaster.InitState(that.gameService.Game())
		that.startClock()
	}

	return nil
}

// HandleBotGame seats a bot opposite the caller and starts the match.
func (that *SessionManager) HandleBotGame(identity string) error {
	botIdentity := "bot:" + uuid.NewString()

	humanRole, err := that.gameService.StartWithBot(identity, botIdentity)
	if err != nil {
		return err
	}

	that.botIdentity = botIdentity
	that.botRole = quoridor.Opponent(humanRole)

	that.broadcaster.LobbyUpdate(that.gameService.Session())
	that.broadcaster.GameStart(true)
	that.broadcaster.InitState(that.gameService.Game())
	that.startClock()

	that.maybeBotTurn()

	return nil
}

// HandleMove applies a move intent for the caller's seat.
func (that *SessionManager) HandleMove(identity string, target quoridor.Point) error {
	game, err := that.gameService.Move(identity, target)
	if err != nil {
		return err
	}

	that.afterAccepted(game)

	return nil
}

// HandleWall applies a wall-placement intent for the caller's seat.
func (that *SessionManager) HandleWall(identity string, wall quoridor.Wall) error {
	game, err := that.gameService.PlaceWall(identity, wall)
	if err != nil {
		return err
	}

	that.afterAccepted(game)

	return nil
}

func (that *SessionManager) afterAccepted(game *entity.Game) {
	that.broadcaster.UpdateState(game)

	if game.IsFinished() {
		that.concludeMatch()
		return
	}

	that.maybeBotTurn()
}

func (that *SessionManager) HandleResign(identity string) error {
	game, err := that.gameService.Resign(identity)
	if err != nil {
		return err
	}

	that.broadcaster.UpdateState(game)
	that.concludeMatch()

	return nil
}

// HandleReset returns the lobby to a fresh state; only seat-holders may
// trigger it.
func (that *SessionManager) HandleReset(identity string) error {
	game, err := that.gameService.Reset(identity)
	if err != nil {
		return err
	}

	that.stopClock()
	that.dismissBot()

	that.broadcaster.GameStart(false)
	that.broadcaster.UpdateState(game)
	that.broadcaster.LobbyUpdate(that.gameService.Session())

	return nil
}

// HandleDisconnect is delivered by the transport when a connection drops.
// Spectators just disappear; a seat-holder forfeits any live match.
func (that *SessionManager) HandleDisconnect(identity string) {
	role, concluded := that.gameService.Disconnect(identity)
	if role == quoridor.RoleNone {
		return
	}

	if concluded != nil {
		that.broadcaster.UpdateState(concluded)
		that.concludeMatch()
	}

	that.dismissBot()

	that.broadcaster.GameStart(false)
	that.broadcaster.LobbyUpdate(that.gameService.Session())
}

// maybeBotTurn lets the bot answer when the turn passed to its seat.
func (that *SessionManager) maybeBotTurn() {
	if that.botIdentity == "" {
		return
	}

	game := that.gameService.Game()
	if !game.IsOngoing() || game.Turn != that.botRole {
		return
	}

	move, wall, err := that.botService.ChooseAction(game, that.botRole)
	if err != nil {
		that.logger.Error("bot has no action", "error", err)
		return
	}

	var next *entity.Game
	if wall != nil {
		next, err = that.gameService.PlaceWall(that.botIdentity, *wall)
	} else {
		next, err = that.gameService.Move(that.botIdentity, *move)
	}

	if err != nil {
		that.logger.Error("bot action rejected", "error", err)
		return
	}

	that.broadcaster.UpdateState(next)

	if next.IsFinished() {
		that.concludeMatch()
	}
}

// dismissBot vacates the bot seat, if any.
func (that *SessionManager) dismissBot() {
	if that.botIdentity == "" {
		return
	}

	that.gameService.Disconnect(that.botIdentity)
	that.botIdentity = ""
	that.botRole = quoridor.RoleNone
}

// concludeMatch runs on every conclusion path: the clock goroutine is torn
// down and the summary is archived.
func (that *SessionManager) concludeMatch() {
	that.stopClock()

	summary := that.gameService.Summary()
	if summary == nil || that.archive == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		if err := that.archive.Save(ctx, summary); err != nil {
			that.logger.Error("failed to archive match", "error", err)
		}
	}()
}

// startClock replaces any running ticker with a fresh one for the new
// match.
func (that *SessionManager) startClock() {
	that.stopClock()

	that.clockMu.Lock()
	stop := make(chan struct{})
	that.clockStop = stop
	that.clockMu.Unlock()

	go that.runClock(stop)
}

func (that *SessionManager) stopClock() {
	that.clockMu.Lock()
	defer that.clockMu.Unlock()

	if that.clockStop != nil {
		close(that.clockStop)
		that.clockStop = nil
	}
}

// runClock decrements the turn-holder's clock once a second until the
// match concludes or the ticker is stopped. Each tick goes through the
// game service's mutex, so it is serialized with client actions.
func (that *SessionManager) runClock(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			game, concluded := that.gameService.Tick()
			if game == nil {
				continue
			}

			if concluded {
				that.broadcaster.UpdateState(game)
				that.concludeMatch()
				return
			}
		}
	}
}
