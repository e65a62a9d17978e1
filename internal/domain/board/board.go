package board

import (
	"fmt"
	"strings"

	errs "gomoku3/internal/errors"
)

const (
	MinSize = 2
	MaxSize = 25
)

// Point indexes Board cells. Pass shares index 0 with the corner border cell,
// which can never hold a stone.
type Point int

const Pass Point = 0

// Board is a square grid stored as a padded one-dimensional array:
//
//	row 0 and row size+1 are border, column 0 of every row is border.
//	index = row*(size+1) + col, with row and col counted from 1.
//
// Neighbours are a fixed offset away and the padding stops every scan at the
// edge without bounds checks.
type Board struct {
	size          int
	ns            int
	cells         []Color
	currentPlayer Color
}

func New(size int) (*Board, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: board size %d out of range [%d, %d]",
			errs.ErrInvalidConfig, size, MinSize, MaxSize)
	}
	b := &Board{}
	b.Reset(size)
	return b, nil
}

// Reset clears the board to an empty position of the given size with Black to play.
func (b *Board) Reset(size int) {
	b.size = size
	b.ns = size + 1
	b.cells = make([]Color, (size+2)*b.ns+1)
	for i := range b.cells {
		b.cells[i] = Border
	}
	for row := 1; row <= size; row++ {
		start := row * b.ns
		for col := 1; col <= size; col++ {
			b.cells[start+col] = Empty
		}
	}
	b.currentPlayer = Black
}

func (b *Board) Size() int {
	return b.size
}

// MaxPoint is the exclusive upper bound of every point index, border included.
func (b *Board) MaxPoint() int {
	return len(b.cells)
}

func (b *Board) CurrentPlayer() Color {
	return b.currentPlayer
}

func (b *Board) SetCurrentPlayer(c Color) {
	b.currentPlayer = c
}

// Copy returns a deep clone that can be mutated independently.
func (b *Board) Copy() *Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:          b.size,
		ns:            b.ns,
		cells:         cells,
		currentPlayer: b.currentPlayer,
	}
}

func (b *Board) Get(p Point) Color {
	if p < 0 || int(p) >= len(b.cells) {
		return Border
	}
	return b.cells[p]
}

// Pt converts 1-based row and column into a point.
func (b *Board) Pt(row, col int) Point {
	return Point(row*b.ns + col)
}

// Coord is the inverse of Pt.
func (b *Board) Coord(p Point) (row, col int) {
	return int(p) / b.ns, int(p) % b.ns
}

func (b *Board) OnBoard(p Point) bool {
	return b.Get(p) != Border
}

// IsLegal reports whether c may place a stone on p. Stones never get captured,
// so the only rule is that the point is an empty on-board cell.
func (b *Board) IsLegal(p Point, c Color) bool {
	if c != Black && c != White {
		return false
	}
	return b.Get(p) == Empty
}

// Play places a stone for c (or passes) and hands the turn to the opponent.
func (b *Board) Play(p Point, c Color) error {
	if c != Black && c != White {
		return fmt.Errorf("%w: cannot play color %s", errs.ErrIllegalMove, c)
	}
	if p != Pass {
		if !b.IsLegal(p, c) {
			return fmt.Errorf("%w: %s at %s", errs.ErrIllegalMove, c, b.FormatPoint(p))
		}
		b.cells[p] = c
	}
	b.currentPlayer = Opponent(c)
	return nil
}

func (b *Board) EmptyPoints() []Point {
	points := make([]Point, 0, b.size*b.size)
	for p := range b.cells {
		if b.cells[p] == Empty {
			points = append(points, Point(p))
		}
	}
	return points
}

func (b *Board) Neighbors(p Point) [4]Point {
	return [4]Point{p - Point(b.ns), p - 1, p + 1, p + Point(b.ns)}
}

// ConnectedComponent returns every point reachable from p through cells of
// the same state as p, p included.
func (b *Board) ConnectedComponent(p Point) []Point {
	color := b.Get(p)
	if color == Border {
		return nil
	}
	seen := make([]bool, len(b.cells))
	seen[p] = true
	component := []Point{p}
	for i := 0; i < len(component); i++ {
		for _, nb := range b.Neighbors(component[i]) {
			if !seen[nb] && b.cells[nb] == color {
				seen[nb] = true
				component = append(component, nb)
			}
		}
	}
	return component
}

func (b *Board) FindNeighborOfColor(p Point, c Color) bool {
	for _, nb := range b.Neighbors(p) {
		if b.Get(nb) == c {
			return true
		}
	}
	return false
}

// String renders the position with the top row first, as GTP showboard does.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for col := 1; col <= b.size; col++ {
		sb.WriteByte(' ')
		sb.WriteByte(columnLetters[col-1])
	}
	sb.WriteByte('\n')
	for row := b.size; row >= 1; row-- {
		fmt.Fprintf(&sb, "%2d", row)
		for col := 1; col <= b.size; col++ {
			sb.WriteByte(' ')
			switch b.cells[b.Pt(row, col)] {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		if row > 1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
