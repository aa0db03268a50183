package service

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quoridorlive/quoridor-backend/internal/apperror"
	"github.com/quoridorlive/quoridor-backend/internal/config"
	"github.com/quoridorlive/quoridor-backend/internal/entity"
	"github.com/quoridorlive/quoridor-backend/internal/quoridor"
)

// GameService owns the single lobby's session and match records. Every
// method takes the one mutex, so client actions and clock ticks are applied
// one at a time in arrival order; callers only ever see cloned records.
type GameService interface {
	Session() *entity.Session
	Game() *entity.Game
	RoleOf(identity string) int

	SelectRole(identity string, role int) error
	ToggleReady(identity string, role int) (started bool, err error)
	StartWithBot(identity, botIdentity string) (humanRole int, err error)

	Move(identity string, target quoridor.Point) (*entity.Game, error)
	PlaceWall(identity string, wall quoridor.Wall) (*entity.Game, error)
	Resign(identity string) (*entity.Game, error)
	Reset(identity string) (*entity.Game, error)
	Disconnect(identity string) (vacated int, concluded *entity.Game)

	Tick() (game *entity.Game, concluded bool)
	Summary() *entity.MatchSummary
}

type gameService struct {
	logger *slog.Logger
	clock  config.Clock

	mu        sync.Mutex
	session   *entity.Session
	game      *entity.Game
	actions   int
	startedAt time.Time
}

func NewGameService(logger *slog.Logger, clock config.Clock) GameService {
	return &gameService{
		logger:  logger.With("component", "game-service"),
		clock:   clock,
		session: entity.NewSession(),
		game:    entity.NewGame(clock.Initial),
	}
}

func (that *gameService) Session() *entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session.Clone()
}

func (that *gameService) Game() *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Clone()
}

func (that *gameService) RoleOf(identity string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session.RoleOf(identity)
}

func (that *gameService) SelectRole(identity string, role int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.session.SelectRole(identity, role); err != nil {
		return fmt.Errorf("failed to select role: %w", err)
	}

	return nil
}

// ToggleReady flips the seat's readiness flag. The instant both seats are
// bound and ready it resets the match record to the initial layout and
// marks the session started; the returned flag reports that edge.
func (that *gameService) ToggleReady(identity string, role int) (bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.session.ToggleReady(identity, role); err != nil {
		return false, fmt.Errorf("failed to toggle ready: %w", err)
	}

	if that.session.Started || !that.session.BothReady() {
		return false, nil
	}

	that.game = entity.NewGame(that.clock.Initial)
	that.game.Start()
	that.session.Started = true
	that.actions = 0
	that.startedAt = time.Now()

	that.logger.Info("match started",
		"p1", that.session.Roles[quoridor.RoleP1],
		"p2", that.session.Roles[quoridor.RoleP2],
	)

	return true, nil
}

// StartWithBot seats the bot identity opposite the caller and starts the
// match immediately, skipping the readiness handshake. The caller keeps
// their seat if they already hold one.
func (that *gameService) StartWithBot(identity, botIdentity string) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session.Started {
		return quoridor.RoleNone, apperror.ErrMatchInProgress
	}

	role := that.session.RoleOf(identity)
	if role == quoridor.RoleNone {
		role = quoridor.RoleP1
		if that.session.Roles[role] != "" {
			role = quoridor.RoleP2
		}

		if err := that.session.SelectRole(identity, role); err != nil {
			return quoridor.RoleNone, fmt.Errorf("failed to seat player: %w", err)
		}
	}

	botRole := quoridor.Opponent(role)
	if err := that.session.SelectRole(botIdentity, botRole); err != nil {
		return quoridor.RoleNone, fmt.Errorf("failed to seat bot: %w", err)
	}

	that.session.Ready[role] = true
	that.session.Ready[botRole] = true
	that.session.Started = true

	that.game = entity.NewGame(that.clock.Initial)
	that.game.Start()
	that.actions = 0
	that.startedAt = time.Now()

	that.logger.Info("bot match started", "humanRole", role)

	return role, nil
}

func (that *gameService) Move(identity string, target quoridor.Point) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	role := that.session.RoleOf(identity)
	if role == quoridor.RoleNone {
		return nil, apperror.ErrNotSeated
	}

	if err := that.game.MoveTo(role, target); err != nil {
		return nil, fmt.Errorf("failed to move: %w", err)
	}

	that.afterAction(role)

	return that.game.Clone(), nil
}

func (that *gameService) PlaceWall(identity string, wall quoridor.Wall) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	role := that.session.RoleOf(identity)
	if role == quoridor.RoleNone {
		return nil, apperror.ErrNotSeated
	}

	if err := that.game.PlaceWall(role, wall); err != nil {
		return nil, fmt.Errorf("failed to place wall: %w", err)
	}

	that.afterAction(role)

	return that.game.Clone(), nil
}

// afterAction credits the Fischer increment to the role that just acted and
// counts the action. Clocks are server-owned; the increment caps at the
// ceiling.
func (that *gameService) afterAction(role int) {
	that.game.CreditTime(role, that.clock.Increment, that.clock.Ceiling)
	that.actions++
}

func (that *gameService) Resign(identity string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	role := that.session.RoleOf(identity)
	if role == quoridor.RoleNone {
		return nil, apperror.ErrNotSeated
	}

	if err := that.game.Resign(role); err != nil {
		return nil, fmt.Errorf("failed to resign: %w", err)
	}

	that.logger.Info("player resigned", "role", role)

	return that.game.Clone(), nil
}

// Reset re-zeroes the match record and clears readiness; seats stay bound.
// Only a seat-holder may trigger it.
func (that *gameService) Reset(identity string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session.RoleOf(identity) == quoridor.RoleNone {
		return nil, apperror.ErrNotSeated
	}

	that.game = entity.NewGame(that.clock.Initial)
	that.session.ClearReadiness()

	that.logger.Info("match reset")

	return that.game.Clone(), nil
}

// Disconnect vacates any seat the identity held. A live match cannot
// continue with one participant, so it is forfeited to the remaining
// player and the session flips to not-started.
func (that *gameService) Disconnect(identity string) (int, *entity.Game) {
	that.mu.Lock()
	defer that.mu.Unlock()

	role := that.session.Vacate(identity)
	if role == quoridor.RoleNone {
		return quoridor.RoleNone, nil
	}

	var concluded *entity.Game
	if that.game.IsOngoing() {
		that.game.ConcludeDisconnect(role)
		concluded = that.game.Clone()
	}

	that.session.ClearReadiness()
	that.logger.Info("seat vacated by disconnect", "role", role)

	return role, concluded
}

// Tick runs one clock second against whichever role holds the turn. It is
// serialized against client actions by the same mutex, so "clock hits zero"
// and "winning move arrives" can never interleave.
func (that *gameService) Tick() (*entity.Game, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.game.IsOngoing() {
		return nil, false
	}

	loser := that.game.Turn
	if that.game.TickTime(loser) > 0 {
		return that.game.Clone(), false
	}

	that.game.ConcludeTimeout(loser)
	that.logger.Info("flag fell", "role", loser)

	return that.game.Clone(), true
}

// Summary builds the archive record for a finished match; nil while the
// match is still running.
func (that *gameService) Summary() *entity.MatchSummary {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.game.IsFinished() {
		return nil
	}

	return &entity.MatchSummary{
		Winner:      that.game.Winner,
		Reason:      that.game.WinReason,
		Actions:     that.actions,
		WallsPlaced: len(that.game.Walls),
		Duration:    int(time.Since(that.startedAt).Seconds()),
		FinishedAt:  time.Now().UTC(),
	}
}
