package galaxy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openmined/libsync/internal/utils"
)

var (
	ErrNoServerURL = errors.New("galaxy: server url missing")
	ErrNoAPIKey    = errors.New("galaxy: api key missing")
)

// Config is the configuration for the Galaxy client
type Config struct {
	BaseURL string        // BaseURL is required, e.g. http://127.0.0.1:8080/galaxy/
	APIKey  string        // APIKey is required
	Timeout time.Duration // Timeout is optional, zero means no limit
	Retries int           // Retries for read requests, negative disables
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrNoServerURL
	}

	if _, err := utils.NormalizeServerURL(c.BaseURL); err != nil {
		return fmt.Errorf("galaxy: %w", err)
	}

	if strings.TrimSpace(c.APIKey) == "" {
		return ErrNoAPIKey
	}

	return nil
}
