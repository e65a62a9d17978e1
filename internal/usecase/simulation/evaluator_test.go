package simulation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"gomoku3/internal/domain/board"
	errs "gomoku3/internal/errors"
)

func testConfig(playouts int, seed int64) Config {
	cfg := DefaultConfig()
	cfg.Playouts = playouts
	cfg.Seed = seed
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero playouts", func(c *Config) { c.Playouts = 0 }},
		{"negative playouts", func(c *Config) { c.Playouts = -3 }},
		{"zero limit", func(c *Config) { c.Limit = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"unknown policy", func(c *Config) { c.Policy = "minimax" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := NewPlayer(cfg, zap.NewNop().Sugar()); !errors.Is(err, errs.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}

func TestEvaluateCandidatesAndBounds(t *testing.T) {
	b := newBoard(t, 5)
	place(t, b, board.Black, [2]int{3, 3})
	before := b.String()

	e, err := NewEvaluator(testConfig(7, 11), zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	tally, err := e.Evaluate(context.Background(), b, board.White)
	if err != nil {
		t.Fatal(err)
	}
	if len(tally.Candidates) != 24+1 {
		t.Fatalf("expected 24 points plus pass, got %d", len(tally.Candidates))
	}
	if tally.Candidates[len(tally.Candidates)-1] != board.Pass {
		t.Fatalf("pass must be the last candidate")
	}
	for i, w := range tally.Wins {
		if w < 0 || w > tally.Playouts {
			t.Fatalf("candidate %s has %d wins out of %d", b.FormatPoint(tally.Candidates[i]), w, tally.Playouts)
		}
	}
	if b.String() != before {
		t.Fatalf("evaluation mutated the input board")
	}
}

func TestEvaluateIsDeterministicForSeed(t *testing.T) {
	b := newBoard(t, 5)
	run := func(workers int) Tally {
		cfg := testConfig(5, 99)
		cfg.Workers = workers
		e, err := NewEvaluator(cfg, zap.NewNop().Sugar())
		if err != nil {
			t.Fatal(err)
		}
		tally, err := e.Evaluate(context.Background(), b, board.Black)
		if err != nil {
			t.Fatal(err)
		}
		return tally
	}
	sequential := run(1)
	parallel := run(8)
	for i := range sequential.Wins {
		if sequential.Wins[i] != parallel.Wins[i] {
			t.Fatalf("candidate %d: %d wins sequentially, %d in parallel", i, sequential.Wins[i], parallel.Wins[i])
		}
	}
	first, _ := Select(sequential)
	second, _ := Select(parallel)
	if first != second {
		t.Fatalf("same seed selected %s and %s", b.FormatPoint(first), b.FormatPoint(second))
	}
}

func TestEvaluateRejectsNonPlayerColor(t *testing.T) {
	e, err := NewEvaluator(testConfig(1, 1), zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Evaluate(context.Background(), newBoard(t, 3), board.Empty); !errors.Is(err, errs.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
}

func TestEvaluateStopsOnCancelledContext(t *testing.T) {
	e, err := NewEvaluator(testConfig(3, 1), zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Evaluate(ctx, newBoard(t, 3), board.Black); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGetMoveOnEmptySevenBySeven(t *testing.T) {
	b := newBoard(t, 7)
	player, err := NewPlayer(testConfig(1, 42), zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	analysis, err := player.Analyze(context.Background(), b, board.Black)
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Move != board.Pass && b.Get(analysis.Move) != board.Empty {
		t.Fatalf("selected %d which is not an empty point", analysis.Move)
	}
	found := false
	for _, c := range analysis.Tally.Candidates {
		if c == analysis.Move {
			found = true
		}
	}
	if !found {
		t.Fatalf("move %s is not a candidate", b.FormatPoint(analysis.Move))
	}
	if len(analysis.Ranking) != 50 || !strings.HasPrefix(FormatRanking(analysis.Ranking), "win rates: [") {
		t.Fatalf("unexpected ranking %v", analysis.Ranking)
	}

	again, err := player.GetMove(context.Background(), b, board.Black)
	if err != nil {
		t.Fatal(err)
	}
	if again != analysis.Move {
		t.Fatalf("same seed chose %s then %s", b.FormatPoint(analysis.Move), b.FormatPoint(again))
	}
}

func TestGetMoveOnFullBoardPasses(t *testing.T) {
	b := newBoard(t, 2)
	place(t, b, board.Black, [2]int{1, 1}, [2]int{2, 2})
	place(t, b, board.White, [2]int{1, 2}, [2]int{2, 1})
	player, err := NewPlayer(testConfig(2, 3), zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	move, err := player.GetMove(context.Background(), b, board.White)
	if err != nil {
		t.Fatal(err)
	}
	if move != board.Pass {
		t.Fatalf("only pass is available, got %s", b.FormatPoint(move))
	}
}
