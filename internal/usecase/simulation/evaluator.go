package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gomoku3/internal/domain/board"
	errs "gomoku3/internal/errors"
)

// Tally holds the wins of every candidate, index-aligned with Candidates.
type Tally struct {
	Candidates []board.Point
	Wins       []int
	Playouts   int
}

func (t Tally) Rate(i int) float64 {
	if t.Playouts == 0 {
		return 0
	}
	return float64(t.Wins[i]) / float64(t.Playouts)
}

type Evaluator struct {
	cfg     Config
	playout *Playout
	log     *zap.SugaredLogger
}

func NewEvaluator(cfg Config, log *zap.SugaredLogger) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := NewPolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Evaluator{
		cfg:     cfg,
		playout: NewPlayout(policy, cfg.Komi, cfg.Limit),
		log:     log,
	}, nil
}

// Candidates lists the legal moves of color followed by Pass.
func (e *Evaluator) Candidates(b *board.Board, color board.Color) []board.Point {
	return append(LegalMoves(b, color), board.Pass)
}

// Evaluate runs the configured number of playouts after every candidate and
// counts how many of them color wins. b is left untouched.
func (e *Evaluator) Evaluate(ctx context.Context, b *board.Board, color board.Color) (Tally, error) {
	if color != board.Black && color != board.White {
		return Tally{}, fmt.Errorf("%w: cannot evaluate for %s", errs.ErrIllegalMove, color)
	}
	candidates := e.Candidates(b, color)
	if len(candidates) == 0 {
		return Tally{}, errs.ErrNoMove
	}
	tally := Tally{
		Candidates: candidates,
		Wins:       make([]int, len(candidates)),
		Playouts:   e.cfg.Playouts,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.workers())
	for i, move := range candidates {
		i, move := i, move
		// one generator per candidate keeps results independent of scheduling
		rng := rand.New(rand.NewSource(e.cfg.Seed + int64(i)))
		g.Go(func() error {
			wins, err := e.simulateMove(ctx, b, move, color, rng)
			if err != nil {
				return fmt.Errorf("candidate %s: %w", b.FormatPoint(move), err)
			}
			tally.Wins[i] = wins
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, err
	}
	return tally, nil
}

func (e *Evaluator) simulateMove(ctx context.Context, b *board.Board, move board.Point, color board.Color, rng *rand.Rand) (int, error) {
	wins := 0
	for n := 0; n < e.cfg.Playouts; n++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		winner, err := e.simulate(b, move, color, rng)
		if err != nil {
			return 0, err
		}
		if winner == color {
			wins++
		}
	}
	return wins, nil
}

func (e *Evaluator) simulate(b *board.Board, move board.Point, color board.Color, rng *rand.Rand) (board.Color, error) {
	cboard := b.Copy()
	if err := cboard.Play(move, color); err != nil {
		return board.Empty, err
	}
	outcome, err := e.playout.Run(cboard, board.Opponent(color), rng)
	if err != nil {
		return board.Empty, err
	}
	return outcome.Winner, nil
}
