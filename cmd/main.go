package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"gomoku3/internal/adapters"
	"gomoku3/internal/bootstrap"
	gameDelivery "gomoku3/internal/delivery/game"
	ownMiddleware "gomoku3/internal/middleware"
	repo "gomoku3/internal/repository"
	engineUC "gomoku3/internal/usecase/engine"
	gameUC "gomoku3/internal/usecase/game"
	"gomoku3/internal/usecase/simulation"
	engineRPC "gomoku3/microservices/proto"
)

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	flags := pflag.NewFlagSet("gomoku3", pflag.ExitOnError)
	cfgPath := flags.String("config", ".env", "path to the env config file")
	bootstrap.EngineFlags(flags)
	_ = flags.Parse(os.Args[1:])

	cfg, err := bootstrap.Setup(*cfgPath, flags)
	if err != nil {
		panic("failed to setup configuration: " + err.Error())
	}
	logger := bootstrap.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.mongoAdapter.Close(context.Background())
	defer databaseAdapters.redisAdapter.Close(context.Background())

	engine, closeEngine := initEngine(logger, cfg)
	defer closeEngine()

	store := repo.NewGameRepository(logger, databaseAdapters.redisAdapter.GetClient(), databaseAdapters.mongoAdapter.Database)
	games := gameUC.NewGameUseCase(store, engine, cfg.Komi, cfg.BoardSize, logger)
	handler := gameDelivery.NewGameHandler(logger, games, engine)

	r := chi.NewRouter()
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	handler.Routes(r)

	server := &http.Server{Addr: cfg.ServerPort, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("Failed to start server", "error", err)
	}
}

// initEngine dials the engine service when ENGINE_GRPC_ADDR is set and
// otherwise runs the simulations in process.
func initEngine(log *zap.SugaredLogger, cfg *bootstrap.Config) (engineUC.MoveGenerator, func()) {
	if cfg.EngineGrpcAddr != "" {
		conn, err := grpc.NewClient(cfg.EngineGrpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			log.Fatalw("Failed to dial grpc", "addr", cfg.EngineGrpcAddr, "error", err)
		}
		log.Infow("using remote engine", "addr", cfg.EngineGrpcAddr)
		return engineUC.NewRemote(engineRPC.NewEngineServiceClient(conn)), func() { conn.Close() }
	}
	player, err := simulation.NewPlayer(cfg.Engine(), log)
	if err != nil {
		log.Fatalw("Failed to create simulation player", "error", err)
	}
	log.Infow("using local engine", "sim", cfg.Sim, "simrule", cfg.SimRule)
	return engineUC.NewLocal(player), func() {}
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatalw("Failed to initialize MongoDB", "error", err)
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatalw("Failed to initialize Redis", "error", err)
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
