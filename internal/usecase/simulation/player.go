package simulation

import (
	"context"

	"go.uber.org/zap"

	"gomoku3/internal/domain/board"
)

// Analysis is everything one move decision produced.
type Analysis struct {
	Move    board.Point
	Tally   Tally
	Ranking []WinRate
}

// Player chooses moves by one-ply simulation.
type Player struct {
	cfg       Config
	evaluator *Evaluator
	log       *zap.SugaredLogger
}

func NewPlayer(cfg Config, log *zap.SugaredLogger) (*Player, error) {
	evaluator, err := NewEvaluator(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Player{cfg: cfg, evaluator: evaluator, log: log}, nil
}

func (p *Player) Config() Config {
	return p.cfg
}

// GetMove returns the chosen move for color, or errors.ErrNoMove.
func (p *Player) GetMove(ctx context.Context, b *board.Board, color board.Color) (board.Point, error) {
	analysis, err := p.Analyze(ctx, b, color)
	if err != nil {
		return board.Pass, err
	}
	return analysis.Move, nil
}

func (p *Player) Analyze(ctx context.Context, b *board.Board, color board.Color) (Analysis, error) {
	tally, err := p.evaluator.Evaluate(ctx, b, color)
	if err != nil {
		return Analysis{}, err
	}
	move, err := Select(tally)
	if err != nil {
		return Analysis{}, err
	}
	ranking := Ranking(b, tally)
	p.log.Debugw("move selected",
		"color", color.String(),
		"move", b.FormatPoint(move),
		"candidates", len(tally.Candidates),
		"playouts", tally.Playouts,
		"ranking", FormatRanking(ranking),
	)
	return Analysis{Move: move, Tally: tally, Ranking: ranking}, nil
}
