package simulation

import (
	"errors"
	"math/rand"
	"testing"

	"gomoku3/internal/domain/board"
	errs "gomoku3/internal/errors"
)

type passPolicy struct{}

func (passPolicy) Generate(*board.Board, board.Color, *rand.Rand) board.Point {
	return board.Pass
}

type fixedPolicy struct{ p board.Point }

func (f fixedPolicy) Generate(*board.Board, board.Color, *rand.Rand) board.Point {
	return f.p
}

func TestPlayoutStopsAtLimit(t *testing.T) {
	b := newBoard(t, 7)
	playout := NewPlayout(RandomPolicy{}, 6.5, 3)
	outcome, err := playout.Run(b, board.White, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Plies != 3 || outcome.Passed {
		t.Fatalf("expected forced stop after 3 plies, got %+v", outcome)
	}
	if got := len(b.EmptyPoints()); got != 49-3 {
		t.Fatalf("expected 3 stones on the board, %d empty", got)
	}
	// white, black, white played: black is next
	if b.CurrentPlayer() != board.Black {
		t.Fatalf("turn ownership lost: %s to move", b.CurrentPlayer())
	}
}

func TestPlayoutEndsOnTwoPasses(t *testing.T) {
	b := newBoard(t, 7)
	outcome, err := NewPlayout(passPolicy{}, 6.5, 1000).Run(b, board.Black, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Plies != 2 || !outcome.Passed {
		t.Fatalf("expected two passes to end the game, got %+v", outcome)
	}
	if outcome.Winner != board.White {
		t.Fatalf("empty board with komi goes to white, got %s", outcome.Winner)
	}
}

func TestRandomPlayoutFillsSmallBoard(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := newBoard(t, 3)
		outcome, err := NewPlayout(RandomPolicy{}, 0.5, 1000).Run(b, board.Black, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		if outcome.Plies != 9+2 || !outcome.Passed {
			t.Fatalf("seed %d: expected 9 stones then two passes, got %+v", seed, outcome)
		}
		// black moves first on an odd board and owns one more stone
		if outcome.Winner != board.Black {
			t.Fatalf("seed %d: expected black to win 5-4 with komi 0.5, got %s", seed, outcome.Winner)
		}
	}
}

func TestPlayoutResultIsAlwaysAColor(t *testing.T) {
	for limit := 1; limit <= 60; limit += 7 {
		b := newBoard(t, 7)
		outcome, err := NewPlayout(NewRuleBasedPolicy(), 6.5, limit).Run(b, board.Black, rand.New(rand.NewSource(int64(limit))))
		if err != nil {
			t.Fatal(err)
		}
		if outcome.Plies > limit {
			t.Fatalf("limit %d exceeded: %d plies", limit, outcome.Plies)
		}
		switch outcome.Winner {
		case board.Black, board.White, board.Empty:
		default:
			t.Fatalf("unexpected winner %s", outcome.Winner)
		}
	}
}

func TestPlayoutAbortsOnIllegalMove(t *testing.T) {
	b := newBoard(t, 5)
	occupied := b.Pt(3, 3)
	place(t, b, board.Black, [2]int{3, 3})
	_, err := NewPlayout(fixedPolicy{occupied}, 6.5, 10).Run(b, board.White, rand.New(rand.NewSource(1)))
	if !errors.Is(err, errs.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
}
