package simulation

import (
	"fmt"
	"sort"
	"strings"

	"gomoku3/internal/domain/board"
	errs "gomoku3/internal/errors"
)

// Select returns the candidate with the most wins; the earliest one wins ties.
func Select(t Tally) (board.Point, error) {
	if len(t.Candidates) == 0 || len(t.Wins) != len(t.Candidates) {
		return board.Pass, errs.ErrNoMove
	}
	best := 0
	for i := 1; i < len(t.Wins); i++ {
		if t.Wins[i] > t.Wins[best] {
			best = i
		}
	}
	return t.Candidates[best], nil
}

type WinRate struct {
	Move string  `json:"move"`
	Rate float64 `json:"rate"`
}

// Ranking orders candidates by win rate, highest first. Equal rates keep
// candidate order.
func Ranking(b *board.Board, t Tally) []WinRate {
	ranking := make([]WinRate, len(t.Candidates))
	for i, p := range t.Candidates {
		ranking[i] = WinRate{Move: b.FormatPoint(p), Rate: t.Rate(i)}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Rate > ranking[j].Rate
	})
	return ranking
}

func FormatRanking(ranking []WinRate) string {
	parts := make([]string, len(ranking))
	for i, r := range ranking {
		parts[i] = fmt.Sprintf("(%s, %.2f)", r.Move, r.Rate)
	}
	return "win rates: [" + strings.Join(parts, ", ") + "]"
}
