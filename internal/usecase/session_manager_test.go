package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoridorlive/quoridor-backend/internal/config"
	"github.com/quoridorlive/quoridor-backend/internal/entity"
	"github.com/quoridorlive/quoridor-backend/internal/quoridor"
	"github.com/quoridorlive/quoridor-backend/internal/service"
)

// recordingBroadcaster captures every snapshot the coordinator emits. The
// clock goroutine may broadcast too, so access goes through a mutex.
type recordingBroadcaster struct {
	mu      sync.Mutex
	lobbies []*entity.Session
	starts  []bool
	inits   []*entity.Game
	updates []*entity.Game
}

func (that *recordingBroadcaster) LobbyUpdate(session *entity.Session) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.lobbies = append(that.lobbies, session)
}

func (that *recordingBroadcaster) GameStart(started bool) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.starts = append(that.starts, started)
}

func (that *recordingBroadcaster) InitState(game *entity.Game) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.inits = append(that.inits, game)
}

func (that *recordingBroadcaster) UpdateState(game *entity.Game) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.updates = append(that.updates, game)
}

func (that *recordingBroadcaster) lastUpdate() *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.updates) == 0 {
		return nil
	}

	return that.updates[len(that.updates)-1]
}

func (that *recordingBroadcaster) updateCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.updates)
}

// recordingArchive signals on saved so tests can wait for the async write.
type recordingArchive struct {
	mu    sync.Mutex
	items []*entity.MatchSummary
	saved chan struct{}
}

func newRecordingArchive() *recordingArchive {
	return &recordingArchive{saved: make(chan struct{}, 4)}
}

func (that *recordingArchive) Save(_ context.Context, summary *entity.MatchSummary) error {
	that.mu.Lock()
	that.items = append(that.items, summary)
	that.mu.Unlock()

	that.saved <- struct{}{}

	return nil
}

func (that *recordingArchive) waitForSave(t *testing.T) *entity.MatchSummary {
	t.Helper()

	select {
	case <-that.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("archive save never happened")
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.items[len(that.items)-1]
}

func newTestManager(t *testing.T) (*SessionManager, *recordingBroadcaster, *recordingArchive) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := config.Clock{Initial: 60, Ceiling: 90, Increment: 6}

	gameService := service.NewGameService(logger, clock)
	archive := newRecordingArchive()

	manager := NewSessionManager(logger, gameService, service.NewBotService(), archive)

	broadcaster := &recordingBroadcaster{}
	manager.SetBroadcaster(broadcaster)

	return manager, broadcaster, archive
}

// startMatch runs the full lobby cycle: two seats, two readiness toggles.
func startMatch(t *testing.T, manager *SessionManager) {
	t.Helper()

	require.NoError(t, manager.HandleSelectRole("alice", quoridor.RoleP1))
	require.NoError(t, manager.HandleSelectRole("bob", quoridor.RoleP2))
	require.NoError(t, manager.HandleToggleReady("alice", quoridor.RoleP1))
	require.NoError(t, manager.HandleToggleReady("bob", quoridor.RoleP2))
}

func TestSessionManager_LobbyCycle(t *testing.T) {
	// Given
	manager, broadcaster, _ := newTestManager(t)
	defer manager.stopClock()

	// When: the full handshake plays out
	startMatch(t, manager)

	// Then: every step broadcast the lobby, and the start edge emitted
	// exactly one game:start plus the initial record
	assert.Len(t, broadcaster.lobbies, 4)
	require.Equal(t, []bool{true}, broadcaster.starts)
	require.Len(t, broadcaster.inits, 1)
	assert.True(t, broadcaster.inits[0].IsOngoing())

	// And: a late joiner can catch up from the snapshots
	session, game := manager.HandleLobbyRequest()
	assert.True(t, session.Started)
	assert.True(t, game.IsOngoing())
}

func TestSessionManager_ActionFlow(t *testing.T) {
	// Given
	manager, broadcaster, archive := newTestManager(t)
	startMatch(t, manager)

	// When: the turn holder steps forward
	require.NoError(t, manager.HandleMove("alice", quoridor.Point{X: 4, Y: 1}))

	// Then: one authoritative snapshot goes out
	require.Equal(t, 1, broadcaster.updateCount())
	assert.Equal(t, quoridor.Point{X: 4, Y: 1}, broadcaster.lastUpdate().P1.Position())

	// When: the opponent answers with a wall
	require.NoError(t, manager.HandleWall("bob", quoridor.Wall{X: 4, Y: 4, Orientation: quoridor.Horizontal}))

	// Then
	require.Equal(t, 2, broadcaster.updateCount())
	assert.Len(t, broadcaster.lastUpdate().Walls, 1)

	// When: alice resigns
	require.NoError(t, manager.HandleResign("alice"))

	// Then: the finished record is broadcast and archived
	assert.True(t, broadcaster.lastUpdate().IsFinished())

	summary := archive.waitForSave(t)
	assert.Equal(t, quoridor.RoleP2, summary.Winner)
	assert.Equal(t, entity.ReasonResignation, summary.Reason)
	assert.Equal(t, 2, summary.Actions)
}

func TestSessionManager_RejectedIntentEmitsNothing(t *testing.T) {
	// Given
	manager, broadcaster, _ := newTestManager(t)
	startMatch(t, manager)
	defer func() { require.NoError(t, manager.HandleReset("alice")) }()

	before := broadcaster.updateCount()

	// When: an out-of-turn move and an unreachable target arrive
	err := manager.HandleMove("bob", quoridor.Point{X: 4, Y: 7})
	require.Error(t, err)

	err = manager.HandleMove("alice", quoridor.Point{X: 0, Y: 8})
	require.Error(t, err)

	// Then: the room never hears about either
	assert.Equal(t, before, broadcaster.updateCount())
}

func TestSessionManager_Reset(t *testing.T) {
	// Given: a running match
	manager, broadcaster, _ := newTestManager(t)
	startMatch(t, manager)
	require.NoError(t, manager.HandleMove("alice", quoridor.Point{X: 4, Y: 1}))

	// When
	require.NoError(t, manager.HandleReset("bob"))

	// Then: the room is told the game is over and shown the fresh board
	require.NotEmpty(t, broadcaster.starts)
	assert.False(t, broadcaster.starts[len(broadcaster.starts)-1])
	assert.True(t, broadcaster.lastUpdate().IsWaiting())

	lastLobby := broadcaster.lobbies[len(broadcaster.lobbies)-1]
	assert.False(t, lastLobby.Started)
	assert.Equal(t, "alice", lastLobby.Roles[quoridor.RoleP1])
}

func TestSessionManager_Disconnect(t *testing.T) {
	t.Run("Seat holder dropping forfeits and archives", func(t *testing.T) {
		// Given
		manager, broadcaster, archive := newTestManager(t)
		startMatch(t, manager)

		// When
		manager.HandleDisconnect("bob")

		// Then: the remaining player wins by disconnect
		last := broadcaster.lastUpdate()
		require.NotNil(t, last)
		assert.Equal(t, quoridor.RoleP1, last.Winner)
		assert.Equal(t, entity.ReasonDisconnect, last.WinReason)

		summary := archive.waitForSave(t)
		assert.Equal(t, entity.ReasonDisconnect, summary.Reason)
	})

	t.Run("Spectator dropping is invisible", func(t *testing.T) {
		// Given
		manager, broadcaster, _ := newTestManager(t)
		startMatch(t, manager)
		defer func() { require.NoError(t, manager.HandleReset("alice")) }()

		before := broadcaster.updateCount()

		// When
		manager.HandleDisconnect("mallory")

		// Then
		assert.Equal(t, before, broadcaster.updateCount())
	})
}

func TestSessionManager_BotGame(t *testing.T) {
	// Given
	manager, broadcaster, _ := newTestManager(t)

	// When: a solo player asks for a bot opponent
	require.NoError(t, manager.HandleBotGame("alice"))
	defer func() { require.NoError(t, manager.HandleReset("alice")) }()

	// Then: the match starts immediately with the bot seated opposite
	require.Equal(t, []bool{true}, broadcaster.starts)
	require.Len(t, broadcaster.inits, 1)

	session, _ := manager.HandleLobbyRequest()
	assert.Equal(t, "alice", session.Roles[quoridor.RoleP1])
	assert.Contains(t, session.Roles[quoridor.RoleP2], "bot:")

	// When: the human moves
	require.NoError(t, manager.HandleMove("alice", quoridor.Point{X: 4, Y: 1}))

	// Then: the bot answers within the same dispatch and the turn comes back
	require.Equal(t, 2, broadcaster.updateCount())
	assert.Equal(t, quoridor.RoleP1, broadcaster.lastUpdate().Turn)
}
