package board

import (
	"fmt"
	"strings"

	errs "gomoku3/internal/errors"
)

type Color int8

const (
	Empty Color = iota
	Black
	White
	Border
)

// Opponent returns the other player's color. Empty and Border map to themselves.
func Opponent(c Color) Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return c
}

func (c Color) String() string {
	switch c {
	case Empty:
		return "e"
	case Black:
		return "b"
	case White:
		return "w"
	case Border:
		return "border"
	}
	return fmt.Sprintf("Color(%d)", int8(c))
}

// ParseColor accepts the GTP spellings "b", "black", "w", "white".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return Empty, fmt.Errorf("%w: unknown color %q", errs.ErrBadCoordinate, s)
}
