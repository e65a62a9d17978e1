package engine

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"gomoku3/internal/domain/board"
	"gomoku3/internal/domain/game"
	errs "gomoku3/internal/errors"
	"gomoku3/internal/usecase/simulation"
)

func TestReplayAndStones(t *testing.T) {
	moves := []game.Move{
		{Color: "b", Coordinates: "D4"},
		{Color: "w", Coordinates: "C3"},
		{Color: "b", Coordinates: "pass"},
		{Color: "w", Coordinates: "A7"},
	}
	b, err := Replay(7, moves)
	if err != nil {
		t.Fatal(err)
	}
	if b.Get(b.Pt(4, 4)) != board.Black || b.Get(b.Pt(3, 3)) != board.White || b.Get(b.Pt(7, 1)) != board.White {
		t.Fatalf("stones not placed:\n%s", b)
	}
	if b.CurrentPlayer() != board.Black {
		t.Fatalf("black is next after four moves")
	}

	again, err := Replay(7, Stones(b))
	if err != nil {
		t.Fatal(err)
	}
	if again.String() != b.String() {
		t.Fatalf("stones do not rebuild the position:\n%s\n%s", again, b)
	}
}

func TestReplayRejectsBadMoves(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		moves []game.Move
		want  error
	}{
		{"bad size", 1, nil, errs.ErrInvalidConfig},
		{"bad color", 7, []game.Move{{Color: "x", Coordinates: "A1"}}, errs.ErrBadCoordinate},
		{"off board", 7, []game.Move{{Color: "b", Coordinates: "H1"}}, errs.ErrBadCoordinate},
		{"occupied", 7, []game.Move{{Color: "b", Coordinates: "A1"}, {Color: "w", Coordinates: "A1"}}, errs.ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Replay(tt.size, tt.moves); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLocalGenerateMove(t *testing.T) {
	cfg := simulation.DefaultConfig()
	cfg.Playouts = 3
	cfg.Seed = 8
	player, err := simulation.NewPlayer(cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	b, err := board.New(7)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := NewLocal(player).GenerateMove(context.Background(), b, board.Black)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Diagnostics.BestTen) != 10 {
		t.Fatalf("expected ten ranked moves, got %d", len(resp.Diagnostics.BestTen))
	}
	if resp.BotMove != resp.Diagnostics.BotMove || resp.Color != "b" {
		t.Fatalf("inconsistent response %+v", resp)
	}
	if resp.Diagnostics.WinProb < 0 || resp.Diagnostics.WinProb > 1 {
		t.Fatalf("win probability out of range: %v", resp.Diagnostics.WinProb)
	}
	if resp.Diagnostics.WinProb != resp.Diagnostics.BestTen[0].Rate {
		t.Fatalf("chosen move must have the best rate: %v vs %v", resp.Diagnostics.WinProb, resp.Diagnostics.BestTen[0].Rate)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	request := game.GenerateMoveRequest{
		BoardSize: 9,
		Color:     "w",
		Moves:     []game.Move{{Color: "b", Coordinates: "E5"}},
	}
	in, err := ConvertRequestToRPC(request)
	if err != nil {
		t.Fatal(err)
	}
	got := ConvertRPCToRequest(in)
	if got.BoardSize != 9 || got.Color != "w" || len(got.Moves) != 1 || got.Moves[0] != request.Moves[0] {
		t.Fatalf("request changed in transit: %+v", got)
	}

	response := game.BotResponse{
		BotMove:   "C3",
		Color:     "w",
		RequestID: "id",
		Diagnostics: game.Diagnostics{
			BotMove:  "C3",
			Playouts: 10,
			WinProb:  0.7,
			BestTen:  []game.MoveWinRate{{Move: "C3", Rate: 0.7}},
		},
	}
	out, err := ConvertResponseToRPC(response)
	if err != nil {
		t.Fatal(err)
	}
	back := ConvertRPCToResponse(out)
	if back.BotMove != "C3" || back.Diagnostics.Playouts != 10 || back.Diagnostics.BestTen[0] != response.Diagnostics.BestTen[0] {
		t.Fatalf("response changed in transit: %+v", back)
	}
}
