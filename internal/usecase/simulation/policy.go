package simulation

import (
	"fmt"
	"math/rand"

	"gomoku3/internal/domain/board"
	errs "gomoku3/internal/errors"
)

// Policy picks the move played at one ply of a playout.
type Policy interface {
	Generate(b *board.Board, color board.Color, rng *rand.Rand) board.Point
}

func NewPolicy(name string) (Policy, error) {
	switch name {
	case PolicyRandom:
		return RandomPolicy{}, nil
	case PolicyRuleBased:
		return NewRuleBasedPolicy(), nil
	}
	return nil, fmt.Errorf("%w: unknown simulation policy %q", errs.ErrInvalidConfig, name)
}

// LegalMoves lists the empty points color may play on, in point order.
func LegalMoves(b *board.Board, color board.Color) []board.Point {
	empty := b.EmptyPoints()
	moves := empty[:0]
	for _, p := range empty {
		if b.IsLegal(p, color) {
			moves = append(moves, p)
		}
	}
	return moves
}

type RandomPolicy struct{}

// Generate returns a uniformly random legal move, or Pass when there is none.
func (RandomPolicy) Generate(b *board.Board, color board.Color, rng *rand.Rand) board.Point {
	return pick(LegalMoves(b, color), rng)
}

func pick(moves []board.Point, rng *rand.Rand) board.Point {
	if len(moves) == 0 {
		return board.Pass
	}
	return moves[rng.Intn(len(moves))]
}

type MoveType int

const (
	MoveWin MoveType = iota
	MoveBlockWin
	MoveOpenFour
	MoveBlockOpenFour
	MoveRandom
)

func (t MoveType) String() string {
	switch t {
	case MoveWin:
		return "Win"
	case MoveBlockWin:
		return "BlockWin"
	case MoveOpenFour:
		return "OpenFour"
	case MoveBlockOpenFour:
		return "BlockOpenFour"
	case MoveRandom:
		return "Random"
	}
	return fmt.Sprintf("MoveType(%d)", int(t))
}

// Step proposes candidate moves of one category; an empty result hands over
// to the next step of the cascade.
type Step struct {
	Type    MoveType
	Propose func(b *board.Board, color board.Color) []board.Point
}

type RuleBasedPolicy struct {
	steps []Step
}

func NewRuleBasedPolicy() RuleBasedPolicy {
	return RuleBasedPolicy{steps: []Step{
		{Type: MoveWin, Propose: winningMoves},
		{Type: MoveBlockWin, Propose: func(b *board.Board, color board.Color) []board.Point {
			return blockingMoves(b, color, winningMoves)
		}},
		{Type: MoveOpenFour, Propose: openFourMoves},
		{Type: MoveBlockOpenFour, Propose: func(b *board.Board, color board.Color) []board.Point {
			return blockingMoves(b, color, openFourMoves)
		}},
		{Type: MoveRandom, Propose: LegalMoves},
	}}
}

// Moves runs the cascade and returns the first non-empty category.
// MoveRandom with no moves means color can only pass.
func (r RuleBasedPolicy) Moves(b *board.Board, color board.Color) (MoveType, []board.Point) {
	for _, step := range r.steps {
		if moves := step.Propose(b, color); len(moves) > 0 {
			return step.Type, moves
		}
	}
	return MoveRandom, nil
}

func (r RuleBasedPolicy) Generate(b *board.Board, color board.Color, rng *rand.Rand) board.Point {
	_, moves := r.Moves(b, color)
	return pick(moves, rng)
}

func winningMoves(b *board.Board, color board.Color) []board.Point {
	return filterEmpty(b, func(p board.Point) bool { return b.IsWinningMove(p, color) })
}

func openFourMoves(b *board.Board, color board.Color) []board.Point {
	return filterEmpty(b, func(p board.Point) bool { return b.IsOpenFourMove(p, color) })
}

// blockingMoves occupies the points where the opponent would score with propose.
// Only points that are also legal for color are kept.
func blockingMoves(b *board.Board, color board.Color, propose func(*board.Board, board.Color) []board.Point) []board.Point {
	threats := propose(b, board.Opponent(color))
	moves := threats[:0]
	for _, p := range threats {
		if b.IsLegal(p, color) {
			moves = append(moves, p)
		}
	}
	return moves
}

func filterEmpty(b *board.Board, keep func(board.Point) bool) []board.Point {
	var moves []board.Point
	for _, p := range b.EmptyPoints() {
		if keep(p) {
			moves = append(moves, p)
		}
	}
	return moves
}
