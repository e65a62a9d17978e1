package game

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gomoku3/internal/domain/board"
	"gomoku3/internal/domain/game"
	"gomoku3/internal/httpresponse"
	"gomoku3/internal/report"
	engineUC "gomoku3/internal/usecase/engine"
	gameuc "gomoku3/internal/usecase/game"
	"gomoku3/internal/utils"
)

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	engine engineUC.MoveGenerator
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase, engine engineUC.MoveGenerator) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: gameUC,
		engine: engine,
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Post("/genmove", g.HandleGenerateMove)
	r.Route("/games", func(r chi.Router) {
		r.Post("/", g.HandleNewGame)
		r.Get("/{key}", g.HandleGetGame)
		r.Post("/{key}/move", g.HandlePlayMove)
		r.Post("/{key}/genmove", g.HandleGenMove)
		r.Get("/{key}/report", g.HandleReport)
		r.Get("/{key}/ws", g.HandleWebSocket)
	})
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var request game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &request); err != nil {
		g.log.Errorw("JSON decode error", "error", err)
		httpresponse.WriteError(w, err)
		return
	}

	created, err := g.gameUC.CreateGame(r.Context(), request)
	if err != nil {
		g.fail(w, "create game", err)
		return
	}
	g.log.Info("New Game Created with key: " + created.GameKey)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, created)
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	found, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		g.fail(w, "get game", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, found)
}

func (g *GameHandler) HandlePlayMove(w http.ResponseWriter, r *http.Request) {
	var move game.Move
	if err := utils.DecodeJSONRequest(r, &move); err != nil {
		g.log.Errorw("JSON decode error", "error", err)
		httpresponse.WriteError(w, err)
		return
	}

	state, err := g.gameUC.PlayMove(r.Context(), chi.URLParam(r, "key"), move)
	if err != nil {
		g.fail(w, "play move", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleGenMove(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.GenMove(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		g.fail(w, "generate move", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

// HandleReport answers with a PDF of the current position and the engine's
// ranking for the side to move.
func (g *GameHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	play, analysis, err := g.gameUC.Analyze(r.Context(), key)
	if err != nil {
		g.fail(w, "analyze game", err)
		return
	}
	b, err := g.gameUC.Board(play)
	if err != nil {
		g.fail(w, "replay game", err)
		return
	}

	var buf bytes.Buffer
	err = report.Write(&buf, report.Report{
		Title:    "Game " + key,
		Board:    b,
		Analysis: analysis,
		Moves:    play.Moves,
		Result:   play.Result,
	})
	if err != nil {
		g.fail(w, "render report", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+key+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// HandleGenerateMove is stateless: the request carries the whole position.
func (g *GameHandler) HandleGenerateMove(w http.ResponseWriter, r *http.Request) {
	var request game.GenerateMoveRequest
	if err := utils.DecodeJSONRequest(r, &request); err != nil {
		g.log.Errorw("JSON decode error", "error", err)
		httpresponse.WriteError(w, err)
		return
	}
	color, err := board.ParseColor(request.Color)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	b, err := engineUC.Replay(request.BoardSize, request.Moves)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	b.SetCurrentPlayer(color)

	resp, err := g.engine.GenerateMove(r.Context(), b, color)
	if err != nil {
		g.fail(w, "generate move", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleWebSocket sends the current game state, then answers every move read
// from the socket with the resulting state, including the engine's reply.
func (g *GameHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")
	play, err := g.gameUC.GetGame(ctx, key)
	if err != nil {
		g.fail(w, "get game", err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorw("upgrade error", "error", err)
		return
	}
	defer conn.Close()

	initial := game.GameStateResponse{
		Status:    play.Status,
		WhoIsNext: play.WhoIsNext,
		Result:    play.Result,
		SGF:       play.Sgf,
	}
	if err := conn.WriteJSON(initial); err != nil {
		g.log.Errorw("write error", "game_key", key, "error", err)
		return
	}

	for {
		var move game.Move
		if err := conn.ReadJSON(&move); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Errorw("read error", "game_key", key, "error", err)
			}
			return
		}
		g.log.Infow("move received", "game_key", key, "move", move)

		state, err := g.gameUC.PlayMove(ctx, key, move)
		if err != nil {
			g.log.Warnw("move rejected", "game_key", key, "error", err)
			if err := conn.WriteJSON(httpresponse.ErrorResponse{ErrorDescription: err.Error()}); err != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(state); err != nil {
			g.log.Errorw("write error", "game_key", key, "error", err)
			return
		}
	}
}

func (g *GameHandler) fail(w http.ResponseWriter, op string, err error) {
	if httpresponse.StatusOf(err) == http.StatusInternalServerError {
		g.log.Errorw(op+" failed", "error", err)
	} else {
		g.log.Infow(op+" rejected", "error", err)
	}
	httpresponse.WriteError(w, err)
}
