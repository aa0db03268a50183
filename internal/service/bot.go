package service

import (
	"errors"
	"math/rand"

	"github.com/quoridorlive/quoridor-backend/internal/entity"
	"github.com/quoridorlive/quoridor-backend/internal/quoridor"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// wallChancePercent is how often the bot considers a wall before walking.
const wallChancePercent = 30

// BotService picks the next action for a bot-held seat. It goes through the
// same rule engine as human submissions, so it can never produce an action
// the coordinator would reject.
type BotService interface {
	ChooseAction(game *entity.Game, role int) (move *quoridor.Point, wall *quoridor.Wall, err error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

func (that *botService) ChooseAction(game *entity.Game, role int) (*quoridor.Point, *quoridor.Wall, error) {
	me := game.Player(role)
	opponent := game.Player(quoridor.Opponent(role))

	if me.Walls > 0 && rand.Intn(100) < wallChancePercent { //nolint:gosec // it's ok
		if wall, ok := that.blockingWall(game, role); ok {
			return nil, &wall, nil
		}
	}

	if move, ok := that.bestStep(me.Position(), opponent.Position(), role, game.Walls); ok {
		return &move, nil, nil
	}

	return nil, nil, ErrNoAvailableMoves
}

// bestStep picks the legal destination that leaves the shortest remaining
// path to the goal row, breaking ties at random.
func (that *botService) bestStep(me, opponent quoridor.Point, role int, walls []quoridor.Wall) (quoridor.Point, bool) {
	moves := quoridor.LegalMoves(me, opponent, walls)
	if len(moves) == 0 {
		return quoridor.Point{}, false
	}

	goal := quoridor.GoalRow(role)

	best := -1
	var candidates []quoridor.Point
	for _, move := range moves {
		length := quoridor.ShortestPathLength(move, goal, walls)
		if length < 0 {
			continue
		}

		switch {
		case best < 0 || length < best:
			best = length
			candidates = []quoridor.Point{move}
		case length == best:
			candidates = append(candidates, move)
		}
	}

	if len(candidates) == 0 {
		// every destination is a dead pocket; any legal move will do
		candidates = moves
	}

	return candidates[rand.Intn(len(candidates))], true //nolint:gosec // it's ok
}

// blockingWall looks for a legal wall near the opponent's pawn that
// lengthens their path more than it lengthens ours.
func (that *botService) blockingWall(game *entity.Game, role int) (quoridor.Wall, bool) {
	opponentRole := quoridor.Opponent(role)
	me := game.Player(role).Position()
	opponent := game.Player(opponentRole).Position()

	myLength := quoridor.ShortestPathLength(me, quoridor.GoalRow(role), game.Walls)
	opponentLength := quoridor.ShortestPathLength(opponent, quoridor.GoalRow(opponentRole), game.Walls)

	var best quoridor.Wall
	bestGain := 0

	for dy := -1; dy <= 0; dy++ {
		for dx := -1; dx <= 0; dx++ {
			for _, orientation := range []quoridor.Orientation{quoridor.Horizontal, quoridor.Vertical} {
				wall := quoridor.Wall{X: opponent.X + dx, Y: opponent.Y + dy, Orientation: orientation}
				if !quoridor.CanPlaceWall(wall, game.Walls, game.P1.Position(), game.P2.Position()) {
					continue
				}

				next := append(append([]quoridor.Wall{}, game.Walls...), wall)

				gain := quoridor.ShortestPathLength(opponent, quoridor.GoalRow(opponentRole), next) - opponentLength
				cost := quoridor.ShortestPathLength(me, quoridor.GoalRow(role), next) - myLength

				if gain > cost && gain > bestGain {
					best = wall
					bestGain = gain
				}
			}
		}
	}

	return best, bestGain > 0
}
