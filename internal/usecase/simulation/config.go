package simulation

import (
	"fmt"
	"runtime"

	errs "gomoku3/internal/errors"
)

const (
	PolicyRandom    = "random"
	PolicyRuleBased = "rulebased"
)

// Config is fixed for the lifetime of a Player.
type Config struct {
	Playouts int     // playouts per candidate move
	Policy   string  // PolicyRandom or PolicyRuleBased
	Limit    int     // maximum plies per playout
	Komi     float64 // added to White's score
	Seed     int64   // 0 draws a seed from the clock
	Workers  int     // candidates evaluated concurrently, 0 means GOMAXPROCS
}

func DefaultConfig() Config {
	return Config{
		Playouts: 10,
		Policy:   PolicyRandom,
		Limit:    1000,
		Komi:     6.5,
	}
}

func (c Config) Validate() error {
	if c.Playouts <= 0 {
		return fmt.Errorf("%w: playouts per move must be positive, got %d", errs.ErrInvalidConfig, c.Playouts)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("%w: playout move limit must be positive, got %d", errs.ErrInvalidConfig, c.Limit)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", errs.ErrInvalidConfig, c.Workers)
	}
	if c.Policy != PolicyRandom && c.Policy != PolicyRuleBased {
		return fmt.Errorf("%w: unknown simulation policy %q", errs.ErrInvalidConfig, c.Policy)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
