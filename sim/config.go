package sim

import "fmt"

const (
	DefaultLevel = "arena.yaml"
	DefaultTPS   = 60
)

// Config carries the resolved process settings a Game is built from.
type Config struct {
	Level string
	Seed  int64
	TPS   int
	// Script overrides the hook script named by prefabs/hooks.yaml.
	Script string
	// NoScripts runs without designer hooks.
	NoScripts bool
}

func DefaultConfig() Config {
	return Config{Level: DefaultLevel, Seed: 1, TPS: DefaultTPS}
}

// DT is the fixed step length.
func (c Config) DT() float64 {
	if c.TPS <= 0 {
		return 1.0 / DefaultTPS
	}
	return 1.0 / float64(c.TPS)
}

func (c Config) Validate() error {
	if c.Level == "" {
		return fmt.Errorf("sim: no level")
	}
	if c.TPS < 0 || c.TPS > 1000 {
		return fmt.Errorf("sim: tps %d out of range", c.TPS)
	}
	return nil
}
