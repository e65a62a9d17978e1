package game

type Move struct {
	Color       string `json:"color" bson:"color"`
	Coordinates string `json:"coordinates" bson:"coordinates"`
}

type MoveWinRate struct {
	Move string  `json:"move"`
	Rate float64 `json:"rate"`
}

type Diagnostics struct {
	BestTen  []MoveWinRate `json:"best_ten"`
	BotMove  string        `json:"bot_move"`
	Playouts int           `json:"playouts"`
	WinProb  float64       `json:"winprob"`
}

type BotResponse struct {
	BotMove     string      `json:"bot_move"`
	Color       string      `json:"color"`
	Diagnostics Diagnostics `json:"diagnostics"`
	RequestID   string      `json:"request_id"`
}

type GenerateMoveRequest struct {
	BoardSize int    `json:"board_size"`
	Moves     []Move `json:"moves"`
	Color     string `json:"color"`
}
