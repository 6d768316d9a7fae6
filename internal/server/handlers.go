// Package server handles HTTP requests and middleware.
package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"photomap/internal/exif"
	"photomap/internal/geo"
	"photomap/internal/media"
	"photomap/internal/store"
)

// uploadedPhoto is the upload response payload. Coordinates stay nil
// when the photo carried no usable GPS tags; has_location is derived
// from their presence.
type uploadedPhoto struct {
	OriginalName string   `json:"original_name"`
	MimeType     string   `json:"mime_type"`
	Size         int64    `json:"size"`
	URL          string   `json:"url"`
	CapturedAt   *string  `json:"captured_at"`
	CameraMake   *string  `json:"camera_make"`
	CameraModel  *string  `json:"camera_model"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	HasLocation  bool     `json:"has_location"`
}

// Routes assembles the chi router for the service.
func (s *ServerContext) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)

	r.Get("/", s.HandleIndex)
	r.Post("/photos", s.HandleUpload)
	r.Get("/api/photos", s.HandleLocations)
	r.Patch("/photos/{id}", s.HandleUpdate)
	r.Delete("/photos/{id}", s.HandleDelete)
	r.Get("/umap/photos.geojson", s.HandleGeoJSON)

	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(s.Config.Storage.UploadsDir))))
	r.Handle("/thumbs/*", http.StripPrefix("/thumbs/",
		http.FileServer(http.Dir(s.Config.Storage.ThumbsDir))))

	return r
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleUpload stores an uploaded photo, extracts its capture metadata
// and persists a location record when both coordinates were derivable.
func (s *ServerContext) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxUploadMB<<20)

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please choose a photo to upload.")
		return
	}
	defer func() { _ = file.Close() }()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "The upload could not be read.")
		return
	}

	mimeType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(mimeType, "image/") {
		writeError(w, http.StatusUnprocessableEntity, "The upload must be a valid image file.")
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		s.internalError(w, err, "Failed to rewind upload")
		return
	}

	storedName := randomName() + strings.ToLower(filepath.Ext(header.Filename))
	storedPath := filepath.Join(s.Config.Storage.UploadsDir, storedName)

	if err := saveUpload(file, storedPath); err != nil {
		s.internalError(w, err, "Failed to store upload")
		return
	}

	thumbPath := filepath.Join(s.Config.Storage.ThumbsDir, storedName+".webp")
	if err := media.Thumbnail(storedPath, thumbPath, s.Config.ThumbnailSize); err != nil {
		// Thumbnails are best-effort, the upload itself stands.
		log.Warn().Err(err).Str("file", storedName).Msg("Thumbnail generation failed")
	}

	meta := exif.Extract(storedPath, s.Tags)

	photo := uploadedPhoto{
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         header.Size,
		URL:          s.Config.BaseURL + "/uploads/" + storedName,
		CapturedAt:   meta.CapturedAt,
		CameraMake:   meta.CameraMake,
		CameraModel:  meta.CameraModel,
		Latitude:     meta.Latitude,
		Longitude:    meta.Longitude,
		HasLocation:  meta.HasLocation(),
	}

	if photo.HasLocation {
		loc := store.Location{
			OriginalName: photo.OriginalName,
			MimeType:     photo.MimeType,
			Size:         photo.Size,
			URL:          photo.URL,
			CapturedAt:   stringValue(meta.CapturedAt),
			CameraMake:   stringValue(meta.CameraMake),
			CameraModel:  stringValue(meta.CameraModel),
			Latitude:     *meta.Latitude,
			Longitude:    *meta.Longitude,
		}
		if err := s.Store.Insert(&loc); err != nil {
			s.internalError(w, err, "Failed to persist location")
			return
		}

		log.Info().
			Str("name", loc.OriginalName).
			Float64("lat", loc.Latitude).
			Float64("lon", loc.Longitude).
			Msg("Photo location saved")
	}

	locations, err := s.Store.List(s.Config.FeedLimit)
	if err != nil {
		s.internalError(w, err, "Failed to list locations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"photo":     photo,
		"locations": locations,
	})
}

// HandleLocations serves the recent locations listing.
func (s *ServerContext) HandleLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.Store.List(s.Config.FeedLimit)
	if err != nil {
		s.internalError(w, err, "Failed to list locations")
		return
	}

	writeJSON(w, http.StatusOK, locations)
}

// HandleUpdate applies a manual correction to a saved location. This is
// the only path where coordinate bounds are enforced.
func (s *ServerContext) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := locationID(w, r)
	if !ok {
		return
	}

	var update store.LocationUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := update.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.Store.Update(id, &update); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Location not found.")
			return
		}
		s.internalError(w, err, "Failed to update location")
		return
	}

	loc, err := s.Store.Get(id)
	if err != nil {
		s.internalError(w, err, "Failed to reload location")
		return
	}

	writeJSON(w, http.StatusOK, loc)
}

// HandleDelete removes a saved location.
func (s *ServerContext) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := locationID(w, r)
	if !ok {
		return
	}

	if err := s.Store.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Location not found.")
			return
		}
		s.internalError(w, err, "Failed to delete location")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGeoJSON serves every saved location as a FeatureCollection,
// newest first, with an open cross-origin header so external mapping
// tools can consume the feed directly.
func (s *ServerContext) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	locations, err := s.Store.All()
	if err != nil {
		s.internalError(w, err, "Failed to load locations")
		return
	}

	fc := geo.NewFeatureCollection()
	for i := range locations {
		fc.Features = append(fc.Features, locations[i].Feature())
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_ = json.NewEncoder(w).Encode(fc)
}

func locationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Location not found.")
		return 0, false
	}
	return id, true
}

func saveUpload(src io.Reader, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

func randomName() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *ServerContext) internalError(w http.ResponseWriter, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, "Internal server error.")
}
