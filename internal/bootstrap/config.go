package bootstrap

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gomoku3/internal/domain/board"
	errs "gomoku3/internal/errors"
	"gomoku3/internal/usecase/simulation"
)

type Config struct {
	ServerPort     string  `mapstructure:"SERVER_PORT"`
	GrpcPort       string  `mapstructure:"GRPC_PORT"`
	EngineGrpcAddr string  `mapstructure:"ENGINE_GRPC_ADDR"`
	RedisUrl       string  `mapstructure:"REDIS_URL"`
	MongoUri       string  `mapstructure:"MONGO_URI"`
	MongoDatabase  string  `mapstructure:"MONGO_DATABASE"`
	IsLocalCors    bool    `mapstructure:"LOCAL_CORS"`
	LogLevel       string  `mapstructure:"LOG_LEVEL"`
	Sim            int     `mapstructure:"SIM"`
	SimRule        string  `mapstructure:"SIM_RULE"`
	BoardSize      int     `mapstructure:"BOARD_SIZE"`
	Komi           float64 `mapstructure:"KOMI"`
	PlayoutLimit   int     `mapstructure:"PLAYOUT_LIMIT"`
	Seed           int64   `mapstructure:"SEED"`
	Workers        int     `mapstructure:"WORKERS"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"sim":     "SIM",
	"simrule": "SIM_RULE",
	"size":    "BOARD_SIZE",
	"komi":    "KOMI",
	"limit":   "PLAYOUT_LIMIT",
	"seed":    "SEED",
	"workers": "WORKERS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", ":8080")
	v.SetDefault("GRPC_PORT", ":8082")
	v.SetDefault("ENGINE_GRPC_ADDR", "")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "gomoku3")
	v.SetDefault("LOCAL_CORS", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SIM", 10)
	v.SetDefault("SIM_RULE", simulation.PolicyRandom)
	v.SetDefault("BOARD_SIZE", 7)
	v.SetDefault("KOMI", 6.5)
	v.SetDefault("PLAYOUT_LIMIT", 1000)
	v.SetDefault("SEED", 0)
	v.SetDefault("WORKERS", 0)
}

// EngineFlags registers the engine flags. Values given on the command
// line override the config file and the environment.
func EngineFlags(flags *pflag.FlagSet) {
	flags.Int("sim", 10, "number of simulations per move, so total playouts=sim*legal_moves")
	flags.String("simrule", simulation.PolicyRandom, "type of simulation policy: random or rulebased")
	flags.Int("size", 7, "board size")
	flags.Float64("komi", 6.5, "komi")
	flags.Int("limit", 1000, "maximum number of moves in one playout")
	flags.Int64("seed", 0, "random seed, 0 picks one from the clock")
	flags.Int("workers", 0, "candidate moves simulated in parallel, 0 uses all CPUs")
}

// Setup reads cfgPath if it exists, then the environment, then flags (may be nil).
func Setup(cfgPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if cfgPath != "" && fileExists(cfgPath) {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.BoardSize < board.MinSize || c.BoardSize > board.MaxSize {
		return fmt.Errorf("%w: BOARD_SIZE %d out of range [%d, %d]",
			errs.ErrInvalidConfig, c.BoardSize, board.MinSize, board.MaxSize)
	}
	return c.Engine().Validate()
}

// Engine derives the immutable simulation settings.
func (c Config) Engine() simulation.Config {
	return simulation.Config{
		Playouts: c.Sim,
		Policy:   c.SimRule,
		Limit:    c.PlayoutLimit,
		Komi:     c.Komi,
		Seed:     c.Seed,
		Workers:  c.Workers,
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
