package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"gomoku3/internal/domain/board"
	"gomoku3/internal/domain/game"
	"gomoku3/internal/domain/sgf"
	errs "gomoku3/internal/errors"
	engineUC "gomoku3/internal/usecase/engine"
	"gomoku3/internal/usecase/simulation"
)

type GameStore interface {
	GenerateGameKey(ctx context.Context) string
	PutGame(ctx context.Context, gameData game.Game) error
	GetGameByKey(ctx context.Context, gameKey string) (game.Game, error)
	UpdateGame(ctx context.Context, gameData game.Game) error
	SaveSGF(ctx context.Context, gameKey string, sgfText string) error
	LoadSGF(ctx context.Context, gameKey string) (string, error)
}

type GameUseCase struct {
	store       GameStore
	engine      engineUC.MoveGenerator
	komi        float64
	defaultSize int
	log         *zap.SugaredLogger

	activeGamesMu sync.Mutex
	activeGames   map[string]*sync.Mutex
}

func NewGameUseCase(store GameStore, engine engineUC.MoveGenerator, komi float64, defaultSize int, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{
		store:       store,
		engine:      engine,
		komi:        komi,
		defaultSize: defaultSize,
		log:         log,
		activeGames: make(map[string]*sync.Mutex),
	}
}

// lockGame serializes load-validate-save cycles on one game key.
func (g *GameUseCase) lockGame(gameKey string) func() {
	g.activeGamesMu.Lock()
	mu, ok := g.activeGames[gameKey]
	if !ok {
		mu = &sync.Mutex{}
		g.activeGames[gameKey] = mu
	}
	g.activeGamesMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// CreateGame stores a new game and its SGF header. When the engine plays
// black it answers immediately, so the returned game already has one move.
func (g *GameUseCase) CreateGame(ctx context.Context, request game.CreateGameRequest) (game.Game, error) {
	size := request.BoardSize
	if size == 0 {
		size = g.defaultSize
	}
	if size < board.MinSize || size > board.MaxSize {
		return game.Game{}, fmt.Errorf("%w: board size %d", errs.ErrInvalidConfig, size)
	}
	engineColor := ""
	if request.EngineColor != "" {
		c, err := board.ParseColor(request.EngineColor)
		if err != nil {
			return game.Game{}, err
		}
		engineColor = c.String()
	}

	newGame := game.Game{
		GameKey:     g.store.GenerateGameKey(ctx),
		CreatedAt:   time.Now(),
		Status:      game.StatusActive,
		BoardSize:   size,
		Komi:        g.komi,
		Moves:       []game.Move{},
		WhoIsNext:   board.Black.String(),
		EngineColor: engineColor,
		PlayerBlack: request.PlayerBlack,
		PlayerWhite: request.PlayerWhite,
	}
	if err := g.store.PutGame(ctx, newGame); err != nil {
		return game.Game{}, err
	}

	header := g.PrepareSgfFile(newGame)
	newGame.Sgf = sgf.Serialize(&header)
	if err := g.store.SaveSGF(ctx, newGame.GameKey, newGame.Sgf); err != nil {
		return game.Game{}, err
	}
	g.log.Infow("game created", "game_key", newGame.GameKey, "size", size, "engine", engineColor)

	if newGame.EngineColor == newGame.WhoIsNext {
		if _, err := g.engineTurn(ctx, &newGame, nil); err != nil {
			return game.Game{}, err
		}
		if err := g.save(ctx, newGame); err != nil {
			return game.Game{}, err
		}
	}
	return newGame, nil
}

// GetGame loads a game together with its SGF text. A missing SGF record is
// rebuilt from the move list; any other storage failure is returned.
func (g *GameUseCase) GetGame(ctx context.Context, gameKey string) (game.Game, error) {
	play, err := g.store.GetGameByKey(ctx, gameKey)
	if err != nil {
		return game.Game{}, err
	}
	sgfText, err := g.store.LoadSGF(ctx, gameKey)
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		g.log.Warnw("sgf not found, rebuilding from moves", "game_key", gameKey)
		if sgfText, err = g.rebuildSgf(play); err != nil {
			return game.Game{}, err
		}
	case err != nil:
		return game.Game{}, fmt.Errorf("load sgf of %s: %w", gameKey, err)
	}
	play.Sgf = sgfText
	return play, nil
}

func (g *GameUseCase) rebuildSgf(play game.Game) (string, error) {
	header := g.PrepareSgfFile(play)
	text := sgf.Serialize(&header)
	b, err := board.New(play.BoardSize)
	if err != nil {
		return "", fmt.Errorf("%w: rebuild sgf of %s: %v", errs.ErrInternal, play.GameKey, err)
	}
	for _, m := range play.Moves {
		p, err := b.ParsePoint(m.Coordinates)
		if err != nil {
			return "", fmt.Errorf("%w: rebuild sgf of %s: %v", errs.ErrInternal, play.GameKey, err)
		}
		text = sgf.AppendMove(text, strings.ToUpper(m.Color), sgfPoint(b, p))
	}
	if play.Result != "" {
		text = sgf.SetResult(text, play.Result)
	}
	return text, nil
}

// Board rebuilds the position of a game from its move list.
func (g *GameUseCase) Board(play game.Game) (*board.Board, error) {
	b, err := engineUC.Replay(play.BoardSize, play.Moves)
	if err != nil {
		return nil, fmt.Errorf("%w: replay of %s: %v", errs.ErrInternal, play.GameKey, err)
	}
	next, err := board.ParseColor(play.WhoIsNext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}
	b.SetCurrentPlayer(next)
	return b, nil
}

// PlayMove applies a player's move. If the game continues and the engine owns
// the next turn, the engine's reply is played as well.
func (g *GameUseCase) PlayMove(ctx context.Context, gameKey string, move game.Move) (game.GameStateResponse, error) {
	unlock := g.lockGame(gameKey)
	defer unlock()

	play, err := g.GetGame(ctx, gameKey)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if play.Status == game.StatusCompleted {
		return game.GameStateResponse{}, errs.ErrGameFinished
	}
	color, err := board.ParseColor(move.Color)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if color.String() != play.WhoIsNext {
		return game.GameStateResponse{}, fmt.Errorf("%w: %s to play", errs.ErrWrongTurn, play.WhoIsNext)
	}
	b, err := g.Board(play)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	p, err := b.ParsePoint(move.Coordinates)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if err := b.Play(p, color); err != nil {
		return game.GameStateResponse{}, err
	}

	played := game.Move{Color: color.String(), Coordinates: b.FormatPoint(p)}
	g.record(&play, b, played, p)

	var engineMove *game.BotResponse
	if play.Status == game.StatusActive && play.EngineColor == play.WhoIsNext {
		engineMove, err = g.engineTurn(ctx, &play, b)
		if err != nil {
			return game.GameStateResponse{}, err
		}
	}
	if err := g.save(ctx, play); err != nil {
		return game.GameStateResponse{}, err
	}
	return stateResponse(play, played, engineMove), nil
}

// GenMove lets the engine play the side that is to move.
func (g *GameUseCase) GenMove(ctx context.Context, gameKey string) (game.GameStateResponse, error) {
	unlock := g.lockGame(gameKey)
	defer unlock()

	play, err := g.GetGame(ctx, gameKey)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if play.Status == game.StatusCompleted {
		return game.GameStateResponse{}, errs.ErrGameFinished
	}
	engineMove, err := g.engineTurn(ctx, &play, nil)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if err := g.save(ctx, play); err != nil {
		return game.GameStateResponse{}, err
	}
	played := game.Move{Color: engineMove.Color, Coordinates: engineMove.BotMove}
	return stateResponse(play, played, engineMove), nil
}

// Analyze runs the engine on the current position without playing the move.
func (g *GameUseCase) Analyze(ctx context.Context, gameKey string) (game.Game, game.BotResponse, error) {
	play, err := g.GetGame(ctx, gameKey)
	if err != nil {
		return game.Game{}, game.BotResponse{}, err
	}
	b, err := g.Board(play)
	if err != nil {
		return game.Game{}, game.BotResponse{}, err
	}
	resp, err := g.engine.GenerateMove(ctx, b, b.CurrentPlayer())
	if err != nil {
		return game.Game{}, game.BotResponse{}, err
	}
	return play, resp, nil
}

// engineTurn asks the engine for the side to move and records its answer.
// b is rebuilt from the move list when nil.
func (g *GameUseCase) engineTurn(ctx context.Context, play *game.Game, b *board.Board) (*game.BotResponse, error) {
	var err error
	if b == nil {
		if b, err = g.Board(*play); err != nil {
			return nil, err
		}
	}
	color := b.CurrentPlayer()
	resp, err := g.engine.GenerateMove(ctx, b, color)
	if err != nil {
		return nil, err
	}
	p, err := b.ParsePoint(resp.BotMove)
	if err != nil {
		return nil, fmt.Errorf("%w: engine answered %q: %v", errs.ErrInternal, resp.BotMove, err)
	}
	if err := b.Play(p, color); err != nil {
		return nil, fmt.Errorf("%w: engine answered %q: %v", errs.ErrInternal, resp.BotMove, err)
	}
	g.record(play, b, game.Move{Color: color.String(), Coordinates: resp.BotMove}, p)
	g.log.Infow("engine move", "game_key", play.GameKey, "move", resp.BotMove, "winprob", resp.Diagnostics.WinProb)
	return &resp, nil
}

// record appends a move already played on b. Two consecutive passes finish
// the game and the result is scored on b.
func (g *GameUseCase) record(play *game.Game, b *board.Board, move game.Move, p board.Point) {
	play.Moves = append(play.Moves, move)
	play.WhoIsNext = b.CurrentPlayer().String()

	play.Sgf = sgf.AppendMove(play.Sgf, strings.ToUpper(move.Color), sgfPoint(b, p))

	if !endsWithTwoPasses(play.Moves) {
		return
	}
	now := time.Now()
	play.Score = simulation.Score(b, play.Komi)
	play.Result = simulation.FormatScore(play.Score)
	play.Status = game.StatusCompleted
	play.FinishedAt = &now
	play.Sgf = sgf.SetResult(play.Sgf, play.Result)
	g.log.Infow("game finished", "game_key", play.GameKey, "result", play.Result)
}

func (g *GameUseCase) save(ctx context.Context, play game.Game) error {
	if err := g.store.UpdateGame(ctx, play); err != nil {
		return err
	}
	return g.store.SaveSGF(ctx, play.GameKey, play.Sgf)
}

// sgfPoint renders p in SGF letters; a pass is the empty value.
func sgfPoint(b *board.Board, p board.Point) string {
	if p == board.Pass {
		return ""
	}
	row, col := b.Coord(p)
	return sgf.Coordinates(row, col, b.Size())
}

func endsWithTwoPasses(moves []game.Move) bool {
	n := len(moves)
	if n < 2 {
		return false
	}
	return isPass(moves[n-1]) && isPass(moves[n-2])
}

func isPass(m game.Move) bool {
	return strings.EqualFold(m.Coordinates, "pass")
}

func stateResponse(play game.Game, move game.Move, engineMove *game.BotResponse) game.GameStateResponse {
	return game.GameStateResponse{
		Move:       move,
		EngineMove: engineMove,
		Status:     play.Status,
		WhoIsNext:  play.WhoIsNext,
		Result:     play.Result,
		SGF:        play.Sgf,
	}
}

func (g *GameUseCase) PrepareSgfFile(gameData game.Game) sgf.SGF {
	return sgf.SGF{
		Root: &sgf.GameTree{
			Nodes: []sgf.Node{
				{
					Properties: map[string][]string{
						"FF": {"4"},
						"GM": {"4"},
						"SZ": {strconv.Itoa(gameData.BoardSize)},
						"PB": {playerName(gameData.PlayerBlack, gameData.EngineColor == "b")},
						"PW": {playerName(gameData.PlayerWhite, gameData.EngineColor == "w")},
						"DT": {gameData.CreatedAt.Format("2006-01-02")},
						"RE": {""},
						"KM": {strconv.FormatFloat(gameData.Komi, 'f', 1, 64)},
						"RU": {"Area"},
						"C":  {"gomoku3 game " + gameData.GameKey},
					},
				},
			},
		},
	}
}

func playerName(name string, engine bool) string {
	if name != "" {
		return name
	}
	if engine {
		return "gomoku3"
	}
	return "human"
}
