package board

import (
	"fmt"
	"strconv"
	"strings"

	errs "gomoku3/internal/errors"
)

// GTP column labels skip the letter I.
const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// FormatPoint renders p as a GTP vertex such as "C4", or "Pass".
func (b *Board) FormatPoint(p Point) string {
	if p == Pass {
		return "Pass"
	}
	row, col := b.Coord(p)
	if row < 1 || row > b.size || col < 1 || col > b.size {
		return fmt.Sprintf("Point(%d)", int(p))
	}
	return fmt.Sprintf("%c%d", columnLetters[col-1], row)
}

// ParsePoint reads a GTP vertex. "pass" is accepted in any case.
func (b *Board) ParsePoint(s string) (Point, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "PASS" {
		return Pass, nil
	}
	if len(s) < 2 {
		return Pass, fmt.Errorf("%w: %q", errs.ErrBadCoordinate, s)
	}
	col := strings.IndexByte(columnLetters, s[0]) + 1
	row, err := strconv.Atoi(s[1:])
	if err != nil || col < 1 || col > b.size || row < 1 || row > b.size {
		return Pass, fmt.Errorf("%w: %q on a %dx%d board", errs.ErrBadCoordinate, s, b.size, b.size)
	}
	return b.Pt(row, col), nil
}
