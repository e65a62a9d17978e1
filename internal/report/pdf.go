// Package report renders a position and the engine's win-rate ranking as a
// one-page PDF.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"gomoku3/internal/domain/board"
	"gomoku3/internal/domain/game"
)

const (
	boardWidth = 120.0
	marginLeft = 20.0
	marginTop  = 30.0
	maxRows    = 20
)

type Report struct {
	Title    string
	Board    *board.Board
	Analysis game.BotResponse
	Moves    []game.Move
	Result   string
}

// Write renders r as PDF into w.
func Write(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, r.Title)
	pdf.Ln(10)

	drawBoard(pdf, r.Board)
	drawSummary(pdf, r)
	drawRanking(pdf, r.Analysis.Diagnostics.BestTen)

	if pdf.Err() {
		return fmt.Errorf("render report: %w", pdf.Error())
	}
	return pdf.Output(w)
}

// WriteFile renders r into the file at path.
func WriteFile(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func drawBoard(pdf *gofpdf.Fpdf, b *board.Board) {
	size := b.Size()
	step := boardWidth / float64(size)
	x0 := marginLeft + step/2
	y0 := marginTop + step/2
	last := float64(size-1) * step

	pdf.SetFillColor(222, 184, 135)
	pdf.Rect(marginLeft, marginTop, boardWidth, boardWidth, "F")
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	for i := 0; i < size; i++ {
		offset := float64(i) * step
		pdf.Line(x0, y0+offset, x0+last, y0+offset)
		pdf.Line(x0+offset, y0, x0+offset, y0+last)
	}

	pdf.SetFont("Helvetica", "", 8)
	for i := 0; i < size; i++ {
		offset := float64(i) * step
		label := b.FormatPoint(b.Pt(1, i+1))[:1]
		pdf.Text(x0+offset-1, marginTop-2, label)
		pdf.Text(marginLeft-6, y0+offset+1, fmt.Sprint(size-i))
	}

	radius := step * 0.45
	for row := 1; row <= size; row++ {
		for col := 1; col <= size; col++ {
			c := b.Get(b.Pt(row, col))
			if c != board.Black && c != board.White {
				continue
			}
			x := x0 + float64(col-1)*step
			y := y0 + float64(size-row)*step
			if c == board.Black {
				pdf.SetFillColor(0, 0, 0)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.Circle(x, y, radius, "FD")
		}
	}
	pdf.SetY(marginTop + boardWidth + 8)
}

func drawSummary(pdf *gofpdf.Fpdf, r Report) {
	pdf.SetFont("Helvetica", "", 11)
	d := r.Analysis.Diagnostics
	if r.Analysis.BotMove != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Engine move for %s: %s (win rate %.2f, %d playouts per move)",
			strings.ToUpper(r.Analysis.Color), r.Analysis.BotMove, d.WinProb, d.Playouts))
		pdf.Ln(6)
	}
	if r.Result != "" {
		pdf.Cell(0, 6, "Result: "+r.Result)
		pdf.Ln(6)
	}
	if len(r.Moves) > 0 {
		moves := make([]string, len(r.Moves))
		for i, m := range r.Moves {
			moves[i] = strings.ToUpper(m.Color) + " " + m.Coordinates
		}
		pdf.MultiCell(0, 5, "Moves: "+strings.Join(moves, ", "), "", "L", false)
	}
	pdf.Ln(4)
}

func drawRanking(pdf *gofpdf.Fpdf, ranking []game.MoveWinRate) {
	if len(ranking) == 0 {
		return
	}
	if len(ranking) > maxRows {
		ranking = ranking[:maxRows]
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(15, 6, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 6, "Move", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 6, "Win rate", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i, r := range ranking {
		pdf.CellFormat(15, 6, fmt.Sprint(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, r.Move, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", r.Rate), "1", 1, "C", false, 0, "")
	}
}
