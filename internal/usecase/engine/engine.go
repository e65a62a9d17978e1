package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gomoku3/internal/domain/board"
	"gomoku3/internal/domain/game"
	errs "gomoku3/internal/errors"
	"gomoku3/internal/usecase/simulation"
	engineRPC "gomoku3/microservices/proto"
)

// MoveGenerator answers "what would the engine play here".
type MoveGenerator interface {
	GenerateMove(ctx context.Context, b *board.Board, color board.Color) (game.BotResponse, error)
}

const bestTenSize = 10

// Local runs the simulation player in-process.
type Local struct {
	player *simulation.Player
}

func NewLocal(player *simulation.Player) *Local {
	return &Local{player: player}
}

func (l *Local) GenerateMove(ctx context.Context, b *board.Board, color board.Color) (game.BotResponse, error) {
	analysis, err := l.player.Analyze(ctx, b, color)
	if err != nil {
		return game.BotResponse{}, err
	}
	return BotResponseFromAnalysis(b, color, analysis), nil
}

func BotResponseFromAnalysis(b *board.Board, color board.Color, analysis simulation.Analysis) game.BotResponse {
	botMove := b.FormatPoint(analysis.Move)
	best := analysis.Ranking
	if len(best) > bestTenSize {
		best = best[:bestTenSize]
	}
	bestTen := make([]game.MoveWinRate, len(best))
	for i, r := range best {
		bestTen[i] = game.MoveWinRate{Move: r.Move, Rate: r.Rate}
	}
	winProb := 0.0
	for i, p := range analysis.Tally.Candidates {
		if p == analysis.Move {
			winProb = analysis.Tally.Rate(i)
			break
		}
	}
	return game.BotResponse{
		BotMove: botMove,
		Color:   color.String(),
		Diagnostics: game.Diagnostics{
			BestTen:  bestTen,
			BotMove:  botMove,
			Playouts: analysis.Tally.Playouts,
			WinProb:  winProb,
		},
		RequestID: uuid.New().String(),
	}
}

// Remote asks the engine microservice over gRPC.
type Remote struct {
	client engineRPC.EngineServiceClient
}

func NewRemote(client engineRPC.EngineServiceClient) *Remote {
	return &Remote{client: client}
}

func (r *Remote) GenerateMove(ctx context.Context, b *board.Board, color board.Color) (game.BotResponse, error) {
	request := game.GenerateMoveRequest{
		BoardSize: b.Size(),
		Moves:     Stones(b),
		Color:     color.String(),
	}
	in, err := ConvertRequestToRPC(request)
	if err != nil {
		return game.BotResponse{}, err
	}
	out, err := r.client.GenerateMove(ctx, in)
	if err != nil {
		switch status.Code(err) {
		case codes.FailedPrecondition:
			return game.BotResponse{}, fmt.Errorf("engine rpc: %w", errs.ErrNoMove)
		case codes.InvalidArgument:
			return game.BotResponse{}, fmt.Errorf("engine rpc: %w: %s", errs.ErrIllegalMove, status.Convert(err).Message())
		}
		return game.BotResponse{}, fmt.Errorf("engine rpc: %w", err)
	}
	return ConvertRPCToResponse(out), nil
}

// Stones lists the stones of b as moves that rebuild the position when replayed.
func Stones(b *board.Board) []game.Move {
	var moves []game.Move
	for p := board.Point(0); int(p) < b.MaxPoint(); p++ {
		if c := b.Get(p); c == board.Black || c == board.White {
			moves = append(moves, game.Move{Color: c.String(), Coordinates: b.FormatPoint(p)})
		}
	}
	return moves
}

// Replay plays moves on a fresh board of the given size. Turn order is not
// enforced, so setup stones may be given in any order.
func Replay(size int, moves []game.Move) (*board.Board, error) {
	b, err := board.New(size)
	if err != nil {
		return nil, err
	}
	for i, m := range moves {
		color, err := board.ParseColor(m.Color)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		p, err := b.ParsePoint(m.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if err := b.Play(p, color); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return b, nil
}
