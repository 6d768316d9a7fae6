package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func testLocation(name string) *Location {
	return &Location{
		OriginalName: name,
		MimeType:     "image/jpeg",
		Size:         1024,
		URL:          "http://localhost/uploads/" + name,
		CapturedAt:   "2024:06:01 12:30:00",
		CameraMake:   "Canon",
		CameraModel:  "EOS R6",
		Latitude:     52.52,
		Longitude:    13.405,
	}
}

func TestInsertAndGet(t *testing.T) {
	s := testStore(t)

	l := testLocation("a.jpg")
	if err := s.Insert(l); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if l.ID == 0 {
		t.Fatal("Insert did not assign an ID")
	}
	if l.CreatedAt.IsZero() {
		t.Fatal("Insert did not assign CreatedAt")
	}

	got, err := s.Get(l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.OriginalName != "a.jpg" || got.Latitude != 52.52 || got.Longitude != 13.405 {
		t.Errorf("Get = %+v", got)
	}
	if got.CapturedAt != l.CapturedAt || got.CameraMake != "Canon" || got.CameraModel != "EOS R6" {
		t.Errorf("descriptive fields did not round-trip: %+v", got)
	}
}

func TestInsertNullableFields(t *testing.T) {
	s := testStore(t)

	l := testLocation("bare.jpg")
	l.CapturedAt, l.CameraMake, l.CameraModel = "", "", ""
	if err := s.Insert(l); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.Get(l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CapturedAt != "" || got.CameraMake != "" || got.CameraModel != "" {
		t.Errorf("NULL fields should scan as empty strings: %+v", got)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := testStore(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"old.jpg", "mid.jpg", "new.jpg"} {
		l := testLocation(name)
		l.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.Insert(l); err != nil {
			t.Fatalf("Insert %s: %v", name, err)
		}
	}

	locations, err := s.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("List(2) returned %d rows", len(locations))
	}
	if locations[0].OriginalName != "new.jpg" || locations[1].OriginalName != "mid.jpg" {
		t.Errorf("order = %s, %s; want newest first", locations[0].OriginalName, locations[1].OriginalName)
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 3 || all[2].OriginalName != "old.jpg" {
		t.Errorf("All() = %d rows, last = %s", len(all), all[len(all)-1].OriginalName)
	}
}

func TestUpdate(t *testing.T) {
	s := testStore(t)

	l := testLocation("a.jpg")
	if err := s.Insert(l); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	lat, lon := 48.8566, 2.3522
	update := &LocationUpdate{
		OriginalName: "paris.jpg",
		CapturedAt:   "2024:07:14 10:00:00",
		Latitude:     &lat,
		Longitude:    &lon,
	}
	if err := s.Update(l.ID, update); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Get(l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.OriginalName != "paris.jpg" || got.Latitude != lat || got.Longitude != lon {
		t.Errorf("update not applied: %+v", got)
	}
	if got.CameraMake != "" {
		t.Errorf("camera_make = %q, want cleared by empty update field", got.CameraMake)
	}

	if err := s.Update(9999, update); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)

	l := testLocation("a.jpg")
	if err := s.Insert(l); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := s.Delete(l.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(l.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) = %v, want ErrNotFound", err)
	}
	if err := s.Delete(l.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(deleted) = %v, want ErrNotFound", err)
	}
}
