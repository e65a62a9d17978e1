// Package gtp speaks the Go Text Protocol on a pair of streams so the engine
// can be driven by GUIs and match runners.
package gtp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gomoku3/internal/domain/board"
	errs "gomoku3/internal/errors"
	"gomoku3/internal/usecase/simulation"
)

const (
	engineName    = "Gomoku3"
	engineVersion = "1.0"
)

type handlerFunc func(ctx context.Context, args []string) (string, error)

// Connection owns the board of one GTP session.
type Connection struct {
	player *simulation.Player
	policy simulation.RuleBasedPolicy
	board  *board.Board
	komi   float64
	in     io.Reader
	out    io.Writer
	stderr io.Writer
	log    *zap.SugaredLogger

	commands map[string]handlerFunc
	quit     bool
}

func NewConnection(player *simulation.Player, size int, in io.Reader, out, stderr io.Writer, log *zap.SugaredLogger) (*Connection, error) {
	b, err := board.New(size)
	if err != nil {
		return nil, err
	}
	c := &Connection{
		player: player,
		policy: simulation.NewRuleBasedPolicy(),
		board:  b,
		komi:   player.Config().Komi,
		in:     in,
		out:    out,
		stderr: stderr,
		log:    log,
	}
	c.commands = map[string]handlerFunc{
		"protocol_version": c.protocolVersion,
		"name":             c.name,
		"version":          c.version,
		"known_command":    c.knownCommand,
		"list_commands":    c.listCommands,
		"quit":             c.quitCmd,
		"boardsize":        c.boardsize,
		"clear_board":      c.clearBoard,
		"komi":             c.komiCmd,
		"play":             c.play,
		"genmove":          c.genmove,
		"showboard":        c.showboard,
		"legal_moves":      c.legalMoves,
		"policy_moves":     c.policyMoves,
		"final_score":      c.finalScore,
	}
	return c, nil
}

// Board returns the current position.
func (c *Connection) Board() *board.Board {
	return c.board
}

// Run reads commands until quit, end of input or ctx is done.
func (c *Connection) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		response, ok := c.Execute(ctx, scanner.Text())
		if !ok {
			continue
		}
		if _, err := io.WriteString(c.out, response); err != nil {
			return err
		}
		if c.quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs one command line and returns the formatted response. ok is
// false for blank and comment-only lines, which get no response.
func (c *Connection) Execute(ctx context.Context, line string) (response string, ok bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}

	id := ""
	if _, err := strconv.Atoi(fields[0]); err == nil {
		id, fields = fields[0], fields[1:]
		if len(fields) == 0 {
			return failure(id, "missing command"), true
		}
	}

	name := strings.ToLower(fields[0])
	handler, known := c.commands[name]
	if !known {
		return failure(id, "unknown command"), true
	}
	result, err := handler(ctx, fields[1:])
	if err != nil {
		c.log.Debugw("gtp command failed", "command", name, "error", err)
		return failure(id, err.Error()), true
	}
	return success(id, result), true
}

func success(id, result string) string {
	return "=" + id + " " + result + "\n\n"
}

func failure(id, msg string) string {
	return "?" + id + " " + msg + "\n\n"
}

func (c *Connection) protocolVersion(context.Context, []string) (string, error) {
	return "2", nil
}

func (c *Connection) name(context.Context, []string) (string, error) {
	return engineName, nil
}

func (c *Connection) version(context.Context, []string) (string, error) {
	return engineVersion, nil
}

func (c *Connection) knownCommand(_ context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	_, known := c.commands[strings.ToLower(args[0])]
	return strconv.FormatBool(known), nil
}

func (c *Connection) listCommands(context.Context, []string) (string, error) {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "\n"), nil
}

func (c *Connection) quitCmd(context.Context, []string) (string, error) {
	c.quit = true
	return "", nil
}

func (c *Connection) boardsize(_ context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil || size < board.MinSize || size > board.MaxSize {
		return "", errors.New("unacceptable size")
	}
	c.board.Reset(size)
	return "", nil
}

func (c *Connection) clearBoard(context.Context, []string) (string, error) {
	c.board.Reset(c.board.Size())
	return "", nil
}

// komiCmd accepts only the komi the engine scores with.
func (c *Connection) komiCmd(_ context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	komi, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", errors.New("syntax error")
	}
	if komi != c.komi {
		return "", fmt.Errorf("komi is fixed at %v", c.komi)
	}
	return "", nil
}

func (c *Connection) play(_ context.Context, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("syntax error")
	}
	color, err := board.ParseColor(args[0])
	if err != nil {
		return "", errors.New("invalid color")
	}
	p, err := c.board.ParsePoint(args[1])
	if err != nil {
		return "", errors.New("invalid coordinate")
	}
	if err := c.board.Play(p, color); err != nil {
		return "", errors.New("illegal move")
	}
	return "", nil
}

// genmove plays the engine's choice for the given color and reports the
// ranking on stderr.
func (c *Connection) genmove(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	color, err := board.ParseColor(args[0])
	if err != nil {
		return "", errors.New("invalid color")
	}
	c.board.SetCurrentPlayer(color)
	analysis, err := c.player.Analyze(ctx, c.board, color)
	if errors.Is(err, errs.ErrNoMove) {
		return "resign", nil
	}
	if err != nil {
		return "", err
	}
	fmt.Fprintln(c.stderr, simulation.FormatRanking(analysis.Ranking))

	if err := c.board.Play(analysis.Move, color); err != nil {
		return "", err
	}
	return c.vertex(analysis.Move), nil
}

func (c *Connection) showboard(context.Context, []string) (string, error) {
	return "\n" + strings.TrimRight(c.board.String(), "\n"), nil
}

func (c *Connection) legalMoves(context.Context, []string) (string, error) {
	moves := simulation.LegalMoves(c.board, c.board.CurrentPlayer())
	return c.vertices(moves), nil
}

// policyMoves shows what the rule-based playout policy would consider for the
// side to move: the rule that fired followed by its moves.
func (c *Connection) policyMoves(context.Context, []string) (string, error) {
	moveType, moves := c.policy.Moves(c.board, c.board.CurrentPlayer())
	if len(moves) == 0 {
		return "", nil
	}
	return moveType.String() + " " + c.vertices(moves), nil
}

func (c *Connection) finalScore(context.Context, []string) (string, error) {
	return simulation.FormatScore(simulation.Score(c.board, c.komi)), nil
}

func (c *Connection) vertex(p board.Point) string {
	if p == board.Pass {
		return "pass"
	}
	return c.board.FormatPoint(p)
}

func (c *Connection) vertices(moves []board.Point) string {
	out := make([]string, len(moves))
	for i, p := range moves {
		out[i] = c.vertex(p)
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}
