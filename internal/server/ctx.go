package server

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"

	"photomap/assets"
	"photomap/internal/config"
	"photomap/internal/exif"
	"photomap/internal/store"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Store     *store.Store
	Tags      exif.TagReader
	IndexHTML []byte
}

// NewServerContext initializes the context: storage directories are
// created and the embedded index page is minified once up front.
func NewServerContext(cfg *config.Config, st *store.Store, tags exif.TagReader) (*ServerContext, error) {
	for _, dir := range []string{cfg.Storage.UploadsDir, cfg.Storage.ThumbsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	m := minify.New()
	m.AddFunc("text/html", html.Minify)

	index, err := m.Bytes("text/html", assets.Index)
	if err != nil {
		log.Warn().Err(err).Msg("Index page minification failed, serving raw asset")
		index = assets.Index
	}

	log.Info().
		Str("uploads_dir", cfg.Storage.UploadsDir).
		Str("thumbs_dir", cfg.Storage.ThumbsDir).
		Int("index_bytes", len(index)).
		Msg("Server context initialized")

	return &ServerContext{
		Config:    cfg,
		Store:     st,
		Tags:      tags,
		IndexHTML: index,
	}, nil
}
