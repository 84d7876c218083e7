package storage

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// Config holds filesystem blob storage settings.
type Config struct {
	// BasePath is the directory that holds stored blobs. Default: "uploads".
	BasePath string `toml:"base_path"`

	// MaxUploadSize bounds multipart request bodies, in human units ("10MB").
	MaxUploadSize string `toml:"max_upload_size"`

	maxUploadBytes int64
}

// Env names the environment variables that override Config fields.
type Env struct {
	BasePath      string
	MaxUploadSize string
}

// MaxUploadSizeBytes returns the parsed upload limit. Valid after Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadBytes
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	if c.BasePath == "" {
		c.BasePath = "uploads"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}

	if env != nil {
		if v := os.Getenv(env.BasePath); env.BasePath != "" && v != "" {
			c.BasePath = v
		}
		if v := os.Getenv(env.MaxUploadSize); env.MaxUploadSize != "" && v != "" {
			c.MaxUploadSize = v
		}
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadBytes = size

	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}
