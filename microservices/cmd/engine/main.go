package main

import (
	"net"

	"google.golang.org/grpc"

	"gomoku3/internal/bootstrap"
	engineUC "gomoku3/internal/usecase/engine"
	"gomoku3/internal/usecase/simulation"
	engineRPC "gomoku3/microservices/proto"
	"gomoku3/microservices/usecase"
)

func main() {
	cfg, err := bootstrap.Setup(".env", nil)
	if err != nil {
		panic("failed to setup configuration: " + err.Error())
	}
	logger := bootstrap.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	player, err := simulation.NewPlayer(cfg.Engine(), logger)
	if err != nil {
		logger.Fatalw("Failed to create simulation player", "error", err)
	}

	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		logger.Fatalw("cant listen port", "error", err)
	}

	server := grpc.NewServer()
	engineRPC.RegisterEngineServiceServer(server, usecase.NewEngineUseCase(engineUC.NewLocal(player), logger))
	logger.Infof("starting engine server at %s (sim=%d, simrule=%s)", cfg.GrpcPort, cfg.Sim, cfg.SimRule)
	if err := server.Serve(lis); err != nil {
		logger.Fatalw("engine server stopped", "error", err)
	}
}
