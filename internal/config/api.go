package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/film-catalog/pkg/middleware"
)

const EnvAPIBasePath = "API_BASE_PATH"

// APIConfig configures the mounted API module.
type APIConfig struct {
	BasePath string                `toml:"base_path"`
	CORS     middleware.CORSConfig `toml:"cors"`
}

func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 {
		return fmt.Errorf("base_path must be a single segment such as /api, got %q", c.BasePath)
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
}
