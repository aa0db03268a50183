package quoridor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPath(t *testing.T) {
	t.Run("Empty board", func(t *testing.T) {
		// Given: both pawns on their back rows with no walls
		assert.True(t, HasPath(Point{X: 4, Y: 0}, GoalRow(RoleP1), nil))
		assert.True(t, HasPath(Point{X: 4, Y: 8}, GoalRow(RoleP2), nil))
	})

	t.Run("Already on the goal row", func(t *testing.T) {
		// Given: a pawn standing on its goal row
		assert.True(t, HasPath(Point{X: 0, Y: 8}, 8, nil))
	})

	t.Run("Path winds around a wall line", func(t *testing.T) {
		// Given: a row of walls spanning all but the rightmost column
		walls := []Wall{
			{X: 0, Y: 4, Orientation: Horizontal},
			{X: 2, Y: 4, Orientation: Horizontal},
			{X: 4, Y: 4, Orientation: Horizontal},
			{X: 6, Y: 4, Orientation: Horizontal},
		}

		// Then: the single gap at x=8 keeps the board connected
		assert.True(t, HasPath(Point{X: 0, Y: 0}, 8, walls))
	})

	t.Run("Fully sealed row", func(t *testing.T) {
		// Given: a wall line across columns 1..8 with the column 0 bypass
		// closed off by a small pocket
		walls := sealedRow()

		// Then: nothing below the line reaches row 8
		assert.False(t, HasPath(Point{X: 4, Y: 0}, 8, walls))
		assert.False(t, HasPath(Point{X: 8, Y: 3}, 8, walls))
	})

	t.Run("Recomputation is stable", func(t *testing.T) {
		// Given: an arbitrary wall set
		walls := []Wall{
			{X: 1, Y: 1, Orientation: Vertical},
			{X: 3, Y: 5, Orientation: Horizontal},
			{X: 6, Y: 2, Orientation: Vertical},
		}
		start := Point{X: 4, Y: 0}

		// When: the same query runs twice
		first := HasPath(start, 8, walls)
		second := HasPath(start, 8, walls)

		// Then: the answers are identical
		require.Equal(t, first, second)
		assert.True(t, first)
	})
}

func TestShortestPathLength(t *testing.T) {
	t.Run("Straight run", func(t *testing.T) {
		// Given: an empty board
		// Then: the distance is the row difference
		assert.Equal(t, 8, ShortestPathLength(Point{X: 4, Y: 0}, 8, nil))
		assert.Equal(t, 0, ShortestPathLength(Point{X: 4, Y: 8}, 8, nil))
	})

	t.Run("Detour adds steps", func(t *testing.T) {
		// Given: a wall directly in front of the pawn
		walls := []Wall{{X: 4, Y: 0, Orientation: Horizontal}}

		// Then: the pawn pays one extra step going around
		assert.Equal(t, 9, ShortestPathLength(Point{X: 4, Y: 0}, 8, walls))
	})

	t.Run("No path", func(t *testing.T) {
		// Given: a sealed row
		walls := sealedRow()

		// Then: the search reports failure instead of looping
		assert.Equal(t, -1, ShortestPathLength(Point{X: 4, Y: 0}, 8, walls))
	})
}

// sealedRow builds a wall set that cuts the board in two: horizontal walls
// cover columns 1..8 on the y=4/5 boundary, and the only remaining crossing
// through column 0 dead-ends in a two-cell pocket.
func sealedRow() []Wall {
	return []Wall{
		{X: 1, Y: 4, Orientation: Horizontal},
		{X: 3, Y: 4, Orientation: Horizontal},
		{X: 5, Y: 4, Orientation: Horizontal},
		{X: 7, Y: 4, Orientation: Horizontal},
		{X: 0, Y: 5, Orientation: Horizontal},
		{X: 0, Y: 4, Orientation: Vertical},
	}
}
