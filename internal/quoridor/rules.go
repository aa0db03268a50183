package quoridor

// WallsConflict reports whether two walls cannot coexist on the board.
// Three cases are illegal: the exact same slot and orientation, two aligned
// walls whose two-cell segments physically overlap (offset by one along the
// non-fixed axis), and a horizontal/vertical pair anchored at the same slot,
// which always cross.
func WallsConflict(a, b Wall) bool {
	if a.X == b.X && a.Y == b.Y {
		return true
	}

	if a.Orientation != b.Orientation {
		return false
	}

	if a.Orientation == Horizontal {
		return a.Y == b.Y && abs(a.X-b.X) == 1
	}

	return a.X == b.X && abs(a.Y-b.Y) == 1
}

// conflictsAny reports whether w conflicts with any already placed wall.
func conflictsAny(w Wall, walls []Wall) bool {
	for _, placed := range walls {
		if WallsConflict(w, placed) {
			return true
		}
	}
	return false
}

// CanStep reports whether a pawn may step from one cell to an orthogonally
// adjacent cell, i.e. the target is on the board, exactly one unit away, and
// no wall blocks the shared edge.
func CanStep(from, to Point, walls []Wall) bool {
	if !to.OnBoard() {
		return false
	}

	dx, dy := to.X-from.X, to.Y-from.Y
	if abs(dx)+abs(dy) != 1 {
		return false
	}

	for _, w := range walls {
		if blocksStep(w, from, dx, dy) {
			return false
		}
	}

	return true
}

// blocksStep reports whether wall w blocks a one-cell step from `from` in
// direction (dx,dy). A horizontal wall at slot (x,y) covers the edges below
// cells (x,y+1) and (x+1,y+1); a vertical wall at (x,y) covers the edges left
// of cells (x+1,y) and (x+1,y+1).
func blocksStep(w Wall, from Point, dx, dy int) bool {
	switch {
	case dy == -1:
		return w.Orientation == Horizontal && w.Y == from.Y-1 && (w.X == from.X || w.X == from.X-1)
	case dy == 1:
		return w.Orientation == Horizontal && w.Y == from.Y && (w.X == from.X || w.X == from.X-1)
	case dx == -1:
		return w.Orientation == Vertical && w.X == from.X-1 && (w.Y == from.Y || w.Y == from.Y-1)
	case dx == 1:
		return w.Orientation == Vertical && w.X == from.X && (w.Y == from.Y || w.Y == from.Y-1)
	}

	return false
}

// IsMoveLegal decides whether the mover's pawn may move to target given the
// opponent's pawn and the placed walls. Rules are tried in priority order and
// the first match wins:
//
//  1. a plain step to a free adjacent cell;
//  2. a straight jump over an adjacent opponent to the cell directly behind;
//  3. a diagonal side-step next to the opponent, allowed only when the
//     straight jump landing is off-board or walled off.
func IsMoveLegal(mover, opponent, target Point, walls []Wall) bool {
	if CanStep(mover, target, walls) && target != opponent {
		return true
	}

	if !CanStep(mover, opponent, walls) {
		return false
	}

	landing := Point{X: opponent.X*2 - mover.X, Y: opponent.Y*2 - mover.Y}
	if CanStep(opponent, landing, walls) {
		return target == landing
	}

	// The jump landing is unavailable, so the side-step next to the opponent
	// becomes legal instead.
	dx, dy := target.X-mover.X, target.Y-mover.Y
	return abs(dx) == 1 && abs(dy) == 1 && CanStep(opponent, target, walls)
}

// LegalMoves enumerates every destination the mover may reach this turn.
// It delegates to IsMoveLegal so previews and commit-time validation can
// never drift apart.
func LegalMoves(mover, opponent Point, walls []Wall) []Point {
	var moves []Point

	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}

			target := Point{X: mover.X + dx, Y: mover.Y + dy}
			if IsMoveLegal(mover, opponent, target, walls) {
				moves = append(moves, target)
			}
		}
	}

	return moves
}

// CanPlaceWall reports whether the wall may be placed: the slot is in the
// grid, it conflicts with no existing wall, and with the wall inserted both
// players still have a path to their goal rows.
func CanPlaceWall(w Wall, walls []Wall, p1, p2 Point) bool {
	if !w.InGrid() {
		return false
	}

	if w.Orientation != Horizontal && w.Orientation != Vertical {
		return false
	}

	if conflictsAny(w, walls) {
		return false
	}

	next := make([]Wall, 0, len(walls)+1)
	next = append(next, walls...)
	next = append(next, w)

	return HasPath(p1, GoalRow(RoleP1), next) && HasPath(p2, GoalRow(RoleP2), next)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
