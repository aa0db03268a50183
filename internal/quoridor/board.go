package quoridor

// BoardSize is the number of cells along each edge of the board.
const BoardSize = 9

// WallGridSize is the number of wall anchor slots along each axis.
// A wall anchors between four cells, so there is one slot less than cells.
const WallGridSize = BoardSize - 1

const (
	// RoleNone means no role; used for the empty winner field and seat vacation.
	RoleNone = 0
	RoleP1   = 1
	RoleP2   = 2
)

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Orientation tells which way a wall lies. A horizontal wall blocks movement
// along the y axis, a vertical wall blocks movement along the x axis.
type Orientation string

// Point is a cell on the 9x9 board, x and y in [0,8].
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Wall is a two-cell-long wall anchored at slot (x,y), x and y in [0,7].
type Wall struct {
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Orientation Orientation `json:"orientation"`
}

// OnBoard reports whether the point is a valid board cell.
func (that Point) OnBoard() bool {
	return that.X >= 0 && that.X < BoardSize && that.Y >= 0 && that.Y < BoardSize
}

// InGrid reports whether the wall anchor is a valid slot.
func (that Wall) InGrid() bool {
	return that.X >= 0 && that.X < WallGridSize && that.Y >= 0 && that.Y < WallGridSize
}

// GoalRow returns the row a role must reach to win: row 8 for player 1,
// row 0 for player 2.
func GoalRow(role int) int {
	if role == RoleP1 {
		return BoardSize - 1
	}
	return 0
}

// Opponent returns the other playable role.
func Opponent(role int) int {
	if role == RoleP1 {
		return RoleP2
	}
	return RoleP1
}
