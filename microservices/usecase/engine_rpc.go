package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"gomoku3/internal/domain/board"
	errs "gomoku3/internal/errors"
	engineUC "gomoku3/internal/usecase/engine"
	engineRPC "gomoku3/microservices/proto"
)

type EngineUseCase struct {
	engine engineUC.MoveGenerator
	log    *zap.SugaredLogger
	engineRPC.UnimplementedEngineServiceServer
}

func NewEngineUseCase(engine engineUC.MoveGenerator, log *zap.SugaredLogger) *EngineUseCase {
	return &EngineUseCase{
		engine: engine,
		log:    log,
	}
}

func (e *EngineUseCase) GenerateMove(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	// RPC struct -> domain request
	request := engineUC.ConvertRPCToRequest(in)

	color, err := board.ParseColor(request.Color)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	b, err := engineUC.Replay(request.BoardSize, request.Moves)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	b.SetCurrentPlayer(color)

	botResponse, err := e.engine.GenerateMove(ctx, b, color)
	if err != nil {
		if errors.Is(err, errs.ErrNoMove) {
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		}
		e.log.Errorf("generate move failed: %v", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	e.log.Infow("move generated", "request_id", botResponse.RequestID, "move", botResponse.BotMove, "color", botResponse.Color)

	return engineUC.ConvertResponseToRPC(botResponse)
}
