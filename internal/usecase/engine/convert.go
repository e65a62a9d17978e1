package engine

import (
	"google.golang.org/protobuf/types/known/structpb"

	"gomoku3/internal/domain/game"
)

func ConvertRequestToRPC(request game.GenerateMoveRequest) (*structpb.Struct, error) {
	moves := make([]interface{}, 0, len(request.Moves))
	for _, m := range request.Moves {
		moves = append(moves, map[string]interface{}{
			"color":       m.Color,
			"coordinates": m.Coordinates,
		})
	}
	return structpb.NewStruct(map[string]interface{}{
		"board_size": request.BoardSize,
		"color":      request.Color,
		"moves":      moves,
	})
}

func ConvertRPCToRequest(in *structpb.Struct) game.GenerateMoveRequest {
	fields := in.GetFields()
	request := game.GenerateMoveRequest{
		BoardSize: int(fields["board_size"].GetNumberValue()),
		Color:     fields["color"].GetStringValue(),
	}
	for _, v := range fields["moves"].GetListValue().GetValues() {
		m := v.GetStructValue().GetFields()
		request.Moves = append(request.Moves, game.Move{
			Color:       m["color"].GetStringValue(),
			Coordinates: m["coordinates"].GetStringValue(),
		})
	}
	return request
}

func ConvertResponseToRPC(response game.BotResponse) (*structpb.Struct, error) {
	bestTen := make([]interface{}, 0, len(response.Diagnostics.BestTen))
	for _, r := range response.Diagnostics.BestTen {
		bestTen = append(bestTen, map[string]interface{}{
			"move": r.Move,
			"rate": r.Rate,
		})
	}
	return structpb.NewStruct(map[string]interface{}{
		"bot_move":   response.BotMove,
		"color":      response.Color,
		"request_id": response.RequestID,
		"playouts":   response.Diagnostics.Playouts,
		"winprob":    response.Diagnostics.WinProb,
		"best_ten":   bestTen,
	})
}

func ConvertRPCToResponse(out *structpb.Struct) game.BotResponse {
	fields := out.GetFields()
	response := game.BotResponse{
		BotMove:   fields["bot_move"].GetStringValue(),
		Color:     fields["color"].GetStringValue(),
		RequestID: fields["request_id"].GetStringValue(),
		Diagnostics: game.Diagnostics{
			BotMove:  fields["bot_move"].GetStringValue(),
			Playouts: int(fields["playouts"].GetNumberValue()),
			WinProb:  fields["winprob"].GetNumberValue(),
		},
	}
	for _, v := range fields["best_ten"].GetListValue().GetValues() {
		r := v.GetStructValue().GetFields()
		response.Diagnostics.BestTen = append(response.Diagnostics.BestTen, game.MoveWinRate{
			Move: r["move"].GetStringValue(),
			Rate: r["rate"].GetNumberValue(),
		})
	}
	return response
}
