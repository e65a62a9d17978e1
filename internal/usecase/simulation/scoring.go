package simulation

import (
	"strconv"

	"gomoku3/internal/domain/board"
)

// Score counts area from Black's point of view: stones on the board plus empty
// regions that touch only one color, minus komi.
func Score(b *board.Board, komi float64) float64 {
	score := -komi
	counted := make([]bool, b.MaxPoint())
	for p := board.Point(0); int(p) < b.MaxPoint(); p++ {
		color := b.Get(p)
		if color == board.Border || counted[p] {
			continue
		}
		switch color {
		case board.Black:
			score++
		case board.White:
			score--
		default:
			region := b.ConnectedComponent(p)
			blackFlag, whiteFlag := false, false
			for _, q := range region {
				counted[q] = true
				if blackFlag && whiteFlag {
					continue
				}
				if !blackFlag && b.FindNeighborOfColor(q, board.Black) {
					blackFlag = true
				}
				if !whiteFlag && b.FindNeighborOfColor(q, board.White) {
					whiteFlag = true
				}
			}
			if blackFlag && !whiteFlag {
				score += float64(len(region))
			}
			if whiteFlag && !blackFlag {
				score -= float64(len(region))
			}
		}
	}
	return score
}

// Winner returns Black or White, or Empty when the score is exactly zero.
func Winner(b *board.Board, komi float64) board.Color {
	score := Score(b, komi)
	switch {
	case score > 0:
		return board.Black
	case score < 0:
		return board.White
	}
	return board.Empty
}

// FormatScore renders a score the way GTP final_score does: "B+2.5", "W+0.5" or "0".
func FormatScore(score float64) string {
	switch {
	case score > 0:
		return "B+" + strconv.FormatFloat(score, 'f', -1, 64)
	case score < 0:
		return "W+" + strconv.FormatFloat(-score, 'f', -1, 64)
	}
	return "0"
}
