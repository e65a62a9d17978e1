package board

const WinLength = 5

func (b *Board) directions() [4]Point {
	return [4]Point{1, Point(b.ns), Point(b.ns + 1), Point(b.ns - 1)}
}

// countDirection counts consecutive c stones starting next to p and walking by step.
// Border cells stop the walk.
func (b *Board) countDirection(p Point, c Color, step Point) (int, Point) {
	count := 0
	q := p + step
	for b.Get(q) == c {
		count++
		q += step
	}
	return count, q
}

// IsWinningMove reports whether a stone of c on the empty point p would complete
// a line of at least WinLength stones.
func (b *Board) IsWinningMove(p Point, c Color) bool {
	if !b.IsLegal(p, c) {
		return false
	}
	for _, d := range b.directions() {
		fwd, _ := b.countDirection(p, c, d)
		back, _ := b.countDirection(p, c, -d)
		if 1+fwd+back >= WinLength {
			return true
		}
	}
	return false
}

// IsOpenFourMove reports whether a stone of c on p would create exactly four
// in a row with an empty cell on both ends.
func (b *Board) IsOpenFourMove(p Point, c Color) bool {
	if !b.IsLegal(p, c) {
		return false
	}
	for _, d := range b.directions() {
		fwd, fwdEnd := b.countDirection(p, c, d)
		back, backEnd := b.countDirection(p, c, -d)
		if 1+fwd+back == WinLength-1 && b.Get(fwdEnd) == Empty && b.Get(backEnd) == Empty {
			return true
		}
	}
	return false
}
