// Package store persists photo locations and renders them as GeoJSON
// features.
package store

import (
	"fmt"
	"strings"
	"time"

	"photomap/internal/geo"
)

const maxFieldLen = 255

// Location is a persisted photo with a usable capture position.
type Location struct {
	ID           int64     `json:"id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	CapturedAt   string    `json:"captured_at,omitempty"`
	CameraMake   string    `json:"camera_make,omitempty"`
	CameraModel  string    `json:"camera_model,omitempty"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`
}

// Feature renders the location as a GeoJSON Feature. Coordinate order
// is longitude first, per the GeoJSON spec, the inverse of the record's
// natural (lat, lon) order.
func (l *Location) Feature() geo.Feature {
	return geo.Feature{
		Type: "Feature",
		Geometry: geo.Geometry{
			Type:        "Point",
			Coordinates: []float64{l.Longitude, l.Latitude},
		},
		Properties: map[string]any{
			"name":         l.OriginalName,
			"description":  l.description(),
			"photo_url":    l.URL,
			"captured_at":  l.CapturedAt,
			"camera_make":  l.CameraMake,
			"camera_model": l.CameraModel,
		},
	}
}

// description builds the popup markup shown by mapping tools. Field
// values are interpolated as-is; the feed treats stored fields as
// trusted, escaping is the consumer's concern.
func (l *Location) description() string {
	parts := []string{
		fmt.Sprintf(`<img src="%s" alt="Photo" />`, l.URL),
	}

	if l.CapturedAt != "" {
		parts = append(parts, "<strong>Captured:</strong> "+l.CapturedAt)
	}

	camera := strings.TrimSpace(l.CameraMake + " " + l.CameraModel)
	if camera != "" {
		parts = append(parts, "<strong>Camera:</strong> "+camera)
	}

	return strings.Join(parts, "<br />")
}

// LocationUpdate is the manual correction payload for a saved location.
// This is the only point where coordinate bounds are enforced;
// extraction deliberately passes malformed camera data through.
type LocationUpdate struct {
	OriginalName string   `json:"original_name"`
	CapturedAt   string   `json:"captured_at"`
	CameraMake   string   `json:"camera_make"`
	CameraModel  string   `json:"camera_model"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// Validate checks the payload and returns an error naming the first
// offending field.
func (u *LocationUpdate) Validate() error {
	if strings.TrimSpace(u.OriginalName) == "" {
		return fmt.Errorf("original_name is required")
	}
	if len(u.OriginalName) > maxFieldLen {
		return fmt.Errorf("original_name must be at most %d characters", maxFieldLen)
	}
	if len(u.CapturedAt) > maxFieldLen {
		return fmt.Errorf("captured_at must be at most %d characters", maxFieldLen)
	}
	if len(u.CameraMake) > maxFieldLen {
		return fmt.Errorf("camera_make must be at most %d characters", maxFieldLen)
	}
	if len(u.CameraModel) > maxFieldLen {
		return fmt.Errorf("camera_model must be at most %d characters", maxFieldLen)
	}
	if u.Latitude == nil {
		return fmt.Errorf("latitude is required")
	}
	if *u.Latitude < -90 || *u.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if u.Longitude == nil {
		return fmt.Errorf("longitude is required")
	}
	if *u.Longitude < -180 || *u.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}
