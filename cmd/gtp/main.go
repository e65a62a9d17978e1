package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"gomoku3/internal/bootstrap"
	"gomoku3/internal/delivery/gtp"
	"gomoku3/internal/usecase/simulation"
)

func main() {
	flags := pflag.NewFlagSet("gomoku3-gtp", pflag.ExitOnError)
	cfgPath := flags.String("config", "", "optional env config file")
	bootstrap.EngineFlags(flags)
	_ = flags.Parse(os.Args[1:])

	cfg, err := bootstrap.Setup(*cfgPath, flags)
	if err != nil {
		os.Stderr.WriteString("gomoku3: " + err.Error() + "\n")
		os.Exit(2)
	}
	// stderr carries the win-rate lines, so logs stay at warn unless asked for
	if cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}
	logger := bootstrap.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	player, err := simulation.NewPlayer(cfg.Engine(), logger)
	if err != nil {
		logger.Fatalw("Failed to create simulation player", "error", err)
	}
	conn, err := gtp.NewConnection(player, cfg.BoardSize, os.Stdin, os.Stdout, os.Stderr, logger)
	if err != nil {
		logger.Fatalw("Failed to start gtp", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := conn.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatalw("gtp session failed", "error", err)
	}
}
