package entity

import (
	"github.com/quoridorlive/quoridor-backend/internal/apperror"
	"github.com/quoridorlive/quoridor-backend/internal/quoridor"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	ReasonGoal        = "goal"
	ReasonTimeout     = "timeout"
	ReasonResignation = "resignation"
	ReasonDisconnect  = "disconnect"

	StartingWalls = 10
)

// Player is one side of the match record: pawn position, walls left to
// place, and clock seconds remaining.
type Player struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Walls int `json:"wallCount"`
	Time  int `json:"time"`
}

func (that *Player) Position() quoridor.Point {
	return quoridor.Point{X: that.X, Y: that.Y}
}

// LastMove marks the cell a player moved away from, for client highlighting.
type LastMove struct {
	Role  int `json:"role"`
	FromX int `json:"fromX"`
	FromY int `json:"fromY"`
}

// Game is the authoritative match record. All mutation goes through its
// methods, which consult the quoridor rule engine and reject anything
// illegal without touching state.
type Game struct {
	P1        *Player         `json:"p1"`
	P2        *Player         `json:"p2"`
	Turn      int             `json:"turn"`
	Walls     []quoridor.Wall `json:"walls"`
	Winner    int             `json:"winner,omitempty"`
	WinReason string          `json:"winReason,omitempty"`
	LastMove  *LastMove       `json:"lastMove,omitempty"`
	LastWall  *quoridor.Wall  `json:"lastWall,omitempty"`
	Status    string          `json:"status"`
}

// NewGame returns the initial layout: both pawns centered on their back
// rows, ten walls each, the given clock seconds, player 1 to move.
func NewGame(clockSeconds int) *Game {
	return &Game{
		P1:     &Player{X: 4, Y: 0, Walls: StartingWalls, Time: clockSeconds},
		P2:     &Player{X: 4, Y: 8, Walls: StartingWalls, Time: clockSeconds},
		Turn:   quoridor.RoleP1,
		Walls:  []quoridor.Wall{},
		Status: StatusWaiting,
	}
}

// Start flips a waiting match to ongoing.
func (that *Game) Start() {
	if that.IsWaiting() {
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

// Player returns the record for the given role.
func (that *Game) Player(role int) *Player {
	if role == quoridor.RoleP1 {
		return that.P1
	}
	return that.P2
}

// confirmTurn checks the match is live and it is the given role's turn.
func (that *Game) confirmTurn(role int) error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.Turn != role:
		return apperror.ErrNotYourTurn
	}

	return nil
}

// MoveTo moves the role's pawn to target. It records the cell moved away
// from, clears the wall highlight, detects a goal-row win, and otherwise
// passes the turn.
func (that *Game) MoveTo(role int, target quoridor.Point) error {
	if err := that.confirmTurn(role); err != nil {
		return err
	}

	mover := that.Player(role)
	opponent := that.Player(quoridor.Opponent(role))

	if !quoridor.IsMoveLegal(mover.Position(), opponent.Position(), target, that.Walls) {
		return apperror.ErrIllegalMove
	}

	that.LastMove = &LastMove{Role: role, FromX: mover.X, FromY: mover.Y}
	that.LastWall = nil
	mover.X, mover.Y = target.X, target.Y

	if target.Y == quoridor.GoalRow(role) {
		that.conclude(role, ReasonGoal)
		return nil
	}

	that.Turn = quoridor.Opponent(role)

	return nil
}

// PlaceWall appends the wall to the sequence, spends one of the role's
// walls, records the wall highlight, and passes the turn. The move
// highlight survives a wall turn.
func (that *Game) PlaceWall(role int, wall quoridor.Wall) error {
	if err := that.confirmTurn(role); err != nil {
		return err
	}

	mover := that.Player(role)
	if mover.Walls <= 0 {
		return apperror.ErrNoWallsLeft
	}

	if !quoridor.CanPlaceWall(wall, that.Walls, that.P1.Position(), that.P2.Position()) {
		return apperror.ErrIllegalWall
	}

	that.Walls = append(that.Walls, wall)
	mover.Walls--
	that.LastWall = &wall
	that.Turn = quoridor.Opponent(role)

	return nil
}

// Resign concludes the match in favor of the other role.
func (that *Game) Resign(role int) error {
	if !that.IsOngoing() {
		return apperror.ErrGameFinished
	}

	that.conclude(quoridor.Opponent(role), ReasonResignation)

	return nil
}

// ConcludeTimeout clamps the loser's clock to zero and awards the win to
// the other role.
func (that *Game) ConcludeTimeout(loser int) {
	that.Player(loser).Time = 0
	that.conclude(quoridor.Opponent(loser), ReasonTimeout)
}

// ConcludeDisconnect forfeits the match for the role that dropped.
func (that *Game) ConcludeDisconnect(leaver int) {
	that.conclude(quoridor.Opponent(leaver), ReasonDisconnect)
}

func (that *Game) conclude(winner int, reason string) {
	that.Winner = winner
	that.WinReason = reason
	that.Status = StatusFinished
	that.Turn = 0
}

// CreditTime adds the post-move increment to a role's clock, capped at the
// ceiling. Clocks are server-owned and never taken from a client payload.
func (that *Game) CreditTime(role, delta, ceiling int) {
	player := that.Player(role)

	player.Time += delta
	if player.Time > ceiling {
		player.Time = ceiling
	}
}

// TickTime takes one second off a role's clock, clamping at zero, and
// returns the seconds remaining.
func (that *Game) TickTime(role int) int {
	player := that.Player(role)

	if player.Time > 0 {
		player.Time--
	}

	return player.Time
}

// Clone returns a deep copy safe to hand to another goroutine.
func (that *Game) Clone() *Game {
	clone := *that

	p1, p2 := *that.P1, *that.P2
	clone.P1, clone.P2 = &p1, &p2

	clone.Walls = make([]quoridor.Wall, len(that.Walls))
	copy(clone.Walls, that.Walls)

	if that.LastMove != nil {
		lastMove := *that.LastMove
		clone.LastMove = &lastMove
	}

	if that.LastWall != nil {
		lastWall := *that.LastWall
		clone.LastWall = &lastWall
	}

	return &clone
}
