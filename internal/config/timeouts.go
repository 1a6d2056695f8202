package config

import (
	"fmt"
	"time"
)

// GetShutdownTimeout parses server.shutdown_timeout.
func (c *Config) GetShutdownTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("server.shutdown_timeout: %w", err)
	}
	return d, nil
}
