package game

import (
	"time"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

type Game struct {
	GameKey     string     `json:"game_key" bson:"game_key"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
	Status      string     `json:"status" bson:"status"`
	BoardSize   int        `json:"board_size" bson:"board_size"`
	Komi        float64    `json:"komi" bson:"komi"`
	Moves       []Move     `json:"moves" bson:"moves"`
	WhoIsNext   string     `json:"who_is_next" bson:"who_is_next"`
	EngineColor string     `json:"engine_color,omitempty" bson:"engine_color,omitempty"`
	PlayerBlack string     `json:"player_black" bson:"player_black"`
	PlayerWhite string     `json:"player_white" bson:"player_white"`
	Result      string     `json:"result,omitempty" bson:"result,omitempty"`
	Score       float64    `json:"score" bson:"score"`
	Sgf         string     `json:"sgf,omitempty" bson:"-"`
}

type CreateGameRequest struct {
	BoardSize   int    `json:"board_size"`
	EngineColor string `json:"engine_color"`
	PlayerBlack string `json:"player_black"`
	PlayerWhite string `json:"player_white"`
}

type GameStateResponse struct {
	Move       Move         `json:"move"`
	EngineMove *BotResponse `json:"engine_move,omitempty"`
	Status     string       `json:"status"`
	WhoIsNext  string       `json:"who_is_next"`
	Result     string       `json:"result,omitempty"`
	SGF        string       `json:"sgf"`
}
