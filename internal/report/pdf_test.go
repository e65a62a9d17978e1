package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gomoku3/internal/domain/board"
	"gomoku3/internal/domain/game"
)

func sampleReport(t *testing.T) Report {
	t.Helper()
	b, err := board.New(7)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Play(b.Pt(4, 4), board.Black); err != nil {
		t.Fatal(err)
	}
	if err := b.Play(b.Pt(3, 3), board.White); err != nil {
		t.Fatal(err)
	}
	return Report{
		Title: "analysis",
		Board: b,
		Analysis: game.BotResponse{
			BotMove: "E5",
			Color:   "b",
			Diagnostics: game.Diagnostics{
				BotMove:  "E5",
				Playouts: 10,
				WinProb:  0.8,
				BestTen:  []game.MoveWinRate{{Move: "E5", Rate: 0.8}, {Move: "C4", Rate: 0.6}},
			},
		},
		Moves: []game.Move{{Color: "b", Coordinates: "D4"}, {Color: "w", Coordinates: "C3"}},
	}
}

func TestWriteProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(t)); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := WriteFile(path, sampleReport(t)); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatalf("empty report file")
	}
}
