// Command analyze replays a position, runs the engine on it and writes the
// ranking as a PDF report.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"gomoku3/internal/bootstrap"
	"gomoku3/internal/domain/board"
	"gomoku3/internal/domain/game"
	"gomoku3/internal/report"
	engineUC "gomoku3/internal/usecase/engine"
	"gomoku3/internal/usecase/simulation"
)

func main() {
	flags := pflag.NewFlagSet("gomoku3-analyze", pflag.ExitOnError)
	moves := flags.StringSlice("moves", nil, `moves to replay, e.g. "b D4,w C3"`)
	toPlay := flags.String("color", "", "side to analyze (default: side to move)")
	output := flags.StringP("output", "o", "analysis.pdf", "report file")
	bootstrap.EngineFlags(flags)
	_ = flags.Parse(os.Args[1:])

	cfg, err := bootstrap.Setup("", flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		os.Exit(2)
	}
	logger := bootstrap.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	played, err := parseMoves(*moves)
	if err != nil {
		logger.Fatalw("bad --moves", "error", err)
	}
	b, err := engineUC.Replay(cfg.BoardSize, played)
	if err != nil {
		logger.Fatalw("failed to replay moves", "error", err)
	}
	color := b.CurrentPlayer()
	if *toPlay != "" {
		if color, err = board.ParseColor(*toPlay); err != nil {
			logger.Fatalw("bad --color", "error", err)
		}
		b.SetCurrentPlayer(color)
	}

	player, err := simulation.NewPlayer(cfg.Engine(), logger)
	if err != nil {
		logger.Fatalw("Failed to create simulation player", "error", err)
	}
	analysis, err := engineUC.NewLocal(player).GenerateMove(context.Background(), b, color)
	if err != nil {
		logger.Fatalw("analysis failed", "error", err)
	}

	err = report.WriteFile(*output, report.Report{
		Title:    fmt.Sprintf("Analysis for %s on %dx%d", strings.ToUpper(color.String()), b.Size(), b.Size()),
		Board:    b,
		Analysis: analysis,
		Moves:    played,
	})
	if err != nil {
		logger.Fatalw("failed to write report", "error", err)
	}
	fmt.Printf("best move %s (win rate %.2f), report written to %s\n",
		analysis.BotMove, analysis.Diagnostics.WinProb, *output)
}

// parseMoves reads "color vertex" pairs.
func parseMoves(raw []string) ([]game.Move, error) {
	moves := make([]game.Move, 0, len(raw))
	for _, m := range raw {
		fields := strings.Fields(m)
		if len(fields) != 2 {
			return nil, fmt.Errorf("want \"color vertex\", got %q", m)
		}
		moves = append(moves, game.Move{Color: fields[0], Coordinates: fields[1]})
	}
	return moves, nil
}
