package simulation

import (
	"fmt"
	"math/rand"

	"gomoku3/internal/domain/board"
	errs "gomoku3/internal/errors"
)

// Outcome of one simulated game.
type Outcome struct {
	Winner board.Color // Empty on a draw
	Plies  int
	Passed bool // ended by two consecutive passes rather than the limit
}

type Playout struct {
	policy Policy
	komi   float64
	limit  int
}

func NewPlayout(policy Policy, komi float64, limit int) *Playout {
	return &Playout{policy: policy, komi: komi, limit: limit}
}

// Run plays b to the end with color to move first and scores the result.
// b is mutated: callers hand in a private copy.
func (p *Playout) Run(b *board.Board, color board.Color, rng *rand.Rand) (Outcome, error) {
	toPlay := color
	passes := 0
	plies := 0
	for plies < p.limit {
		move := p.policy.Generate(b, toPlay, rng)
		if err := b.Play(move, toPlay); err != nil {
			return Outcome{}, fmt.Errorf("playout ply %d: %w", plies, err)
		}
		plies++
		next := board.Opponent(toPlay)
		if b.CurrentPlayer() != next {
			return Outcome{}, fmt.Errorf("%w: %s to move after %s played", errs.ErrWrongTurn, b.CurrentPlayer(), toPlay)
		}
		toPlay = next

		if move == board.Pass {
			passes++
		} else {
			passes = 0
		}
		if passes >= 2 {
			break
		}
	}
	return Outcome{
		Winner: Winner(b, p.komi),
		Plies:  plies,
		Passed: passes >= 2,
	}, nil
}
