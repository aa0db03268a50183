package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrMatchInProgress  = errors.New("match is already in progress")
	ErrNotYourTurn      = errors.New("it's not your turn")

	ErrIllegalMove = errors.New("illegal move")
	ErrIllegalWall = errors.New("illegal wall placement")
	ErrNoWallsLeft = errors.New("no walls remaining")

	ErrUnknownRole = errors.New("unknown role")
	ErrRoleTaken   = errors.New("role is taken by another player")
	ErrNotYourRole = errors.New("role is not held by you")
	ErrNotSeated   = errors.New("identity holds no seat")
)
