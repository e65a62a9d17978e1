package simulation

import (
	"errors"
	"math/rand"
	"testing"

	"gomoku3/internal/domain/board"
	errs "gomoku3/internal/errors"
)

func TestNewPolicy(t *testing.T) {
	if _, err := NewPolicy(PolicyRandom); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPolicy(PolicyRuleBased); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPolicy("greedy"); !errors.Is(err, errs.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRandomPolicyPassesOnFullBoard(t *testing.T) {
	b := newBoard(t, 2)
	place(t, b, board.Black, [2]int{1, 1}, [2]int{2, 2})
	place(t, b, board.White, [2]int{1, 2}, [2]int{2, 1})
	if got := (RandomPolicy{}).Generate(b, board.Black, rand.New(rand.NewSource(1))); got != board.Pass {
		t.Fatalf("expected pass, got %s", b.FormatPoint(got))
	}
}

func TestRuleBasedCascadeOrder(t *testing.T) {
	tests := []struct {
		name     string
		black    [][2]int
		white    [][2]int
		wantType MoveType
		want     [][2]int
	}{
		{
			name:     "win beats block",
			black:    [][2]int{{1, 1}, {1, 2}, {1, 3}, {1, 4}},
			white:    [][2]int{{7, 1}, {7, 2}, {7, 3}, {7, 4}},
			wantType: MoveWin,
			want:     [][2]int{{1, 5}},
		},
		{
			name:     "block opponent five",
			black:    [][2]int{{4, 4}},
			white:    [][2]int{{7, 1}, {7, 2}, {7, 3}, {7, 4}},
			wantType: MoveBlockWin,
			want:     [][2]int{{7, 5}},
		},
		{
			name:     "make open four",
			black:    [][2]int{{4, 2}, {4, 3}, {4, 4}},
			white:    [][2]int{{1, 1}},
			wantType: MoveOpenFour,
			want:     [][2]int{{4, 5}},
		},
		{
			name:     "block open four",
			black:    [][2]int{{1, 7}},
			white:    [][2]int{{3, 3}, {4, 3}, {5, 3}},
			wantType: MoveBlockOpenFour,
			want:     [][2]int{{2, 3}, {6, 3}},
		},
	}
	policy := NewRuleBasedPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, 7)
			place(t, b, board.Black, tt.black...)
			place(t, b, board.White, tt.white...)
			gotType, moves := policy.Moves(b, board.Black)
			if gotType != tt.wantType {
				t.Fatalf("move type %s, want %s", gotType, tt.wantType)
			}
			if len(moves) != len(tt.want) {
				t.Fatalf("moves %v, want %v", moves, tt.want)
			}
			for i, rc := range tt.want {
				if moves[i] != b.Pt(rc[0], rc[1]) {
					t.Fatalf("move %d is %s, want %s", i, b.FormatPoint(moves[i]), b.FormatPoint(b.Pt(rc[0], rc[1])))
				}
			}
		})
	}
}

func TestRuleBasedFallsBackToRandom(t *testing.T) {
	b := newBoard(t, 7)
	moveType, moves := NewRuleBasedPolicy().Moves(b, board.White)
	if moveType != MoveRandom || len(moves) != 49 {
		t.Fatalf("expected 49 random moves, got %s with %d", moveType, len(moves))
	}
	if MoveBlockOpenFour.String() != "BlockOpenFour" {
		t.Fatalf("unexpected label %s", MoveBlockOpenFour)
	}
}

func TestRuleBasedPlayoutPlaysWinningMoveFirst(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		b := newBoard(t, 7)
		place(t, b, board.White, [2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4}, [2]int{2, 5})
		_, err := NewPlayout(NewRuleBasedPolicy(), 6.5, 1).Run(b, board.White, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		first, second := b.Get(b.Pt(2, 1)), b.Get(b.Pt(2, 6))
		if first != board.White && second != board.White {
			t.Fatalf("seed %d: the first playout move must complete the five", seed)
		}
	}
}
