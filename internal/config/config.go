// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage groups the filesystem and database paths.
type Storage struct {
	UploadsDir   string `yaml:"uploads_dir"`
	ThumbsDir    string `yaml:"thumbs_dir"`
	DatabasePath string `yaml:"database"`
}

// Config represents the root configuration file structure.
type Config struct {
	// BaseURL is the public URL the service is reachable at; it prefixes
	// the photo URLs embedded in the feed.
	BaseURL string  `yaml:"base_url"`
	Storage Storage `yaml:"storage"`

	// FeedLimit caps the recent-locations listing (not the GeoJSON feed).
	FeedLimit int `yaml:"feed_limit"`

	MaxUploadMB   int64 `yaml:"max_upload_mb"`
	ThumbnailSize int   `yaml:"thumbnail_size"`
}

// Load reads and parses the YAML configuration file from the specified
// path. A missing file yields pure defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8080"
	}
	if c.Storage.UploadsDir == "" {
		c.Storage.UploadsDir = "data/uploads"
	}
	if c.Storage.ThumbsDir == "" {
		c.Storage.ThumbsDir = "data/thumbs"
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "data/photomap.db"
	}
	if c.FeedLimit <= 0 {
		c.FeedLimit = 20
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 12
	}
	if c.ThumbnailSize <= 0 {
		c.ThumbnailSize = 512
	}
}
