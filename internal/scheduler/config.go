package scheduler

import "time"

// Config controls the overdue sweep loop.
type Config struct {
	PollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		PollInterval: 1 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultConfig().PollInterval
	}
	return c
}
