package quoridor

var stepDirections = [4]Point{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// HasPath reports whether the pawn at start can reach any cell on goalRow
// using unblocked orthogonal steps. This is the connectivity check behind
// every wall placement.
func HasPath(start Point, goalRow int, walls []Wall) bool {
	return ShortestPathLength(start, goalRow, walls) >= 0
}

// ShortestPathLength returns the number of steps on the shortest path from
// start to goalRow, or -1 when no path exists. Breadth-first search over the
// 81 board cells with CanStep as the edge predicate.
func ShortestPathLength(start Point, goalRow int, walls []Wall) int {
	if !start.OnBoard() {
		return -1
	}

	if start.Y == goalRow {
		return 0
	}

	var visited [BoardSize][BoardSize]bool
	visited[start.Y][start.X] = true

	type node struct {
		at    Point
		depth int
	}

	frontier := make([]node, 0, BoardSize*BoardSize)
	frontier = append(frontier, node{at: start})

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		for _, dir := range stepDirections {
			next := Point{X: current.at.X + dir.X, Y: current.at.Y + dir.Y}
			if !next.OnBoard() || visited[next.Y][next.X] {
				continue
			}

			if !CanStep(current.at, next, walls) {
				continue
			}

			if next.Y == goalRow {
				return current.depth + 1
			}

			visited[next.Y][next.X] = true
			frontier = append(frontier, node{at: next, depth: current.depth + 1})
		}
	}

	return -1
}
