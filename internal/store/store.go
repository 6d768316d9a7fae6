package store

import (
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a location id does not exist.
var ErrNotFound = errors.New("location not found")

const schema = `
CREATE TABLE IF NOT EXISTS photo_locations (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	original_name TEXT NOT NULL,
	mime_type     TEXT NOT NULL,
	size          INTEGER NOT NULL,
	url           TEXT NOT NULL,
	captured_at   TEXT,
	camera_make   TEXT,
	camera_model  TEXT,
	latitude      REAL NOT NULL,
	longitude     REAL NOT NULL,
	created_at    TEXT NOT NULL
);
`

// Store wraps the SQLite database holding photo locations.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and
// applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert saves a new location and fills in its ID and CreatedAt.
func (s *Store) Insert(l *Location) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.Exec(`
		INSERT INTO photo_locations
			(original_name, mime_type, size, url, captured_at, camera_make, camera_model, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.OriginalName, l.MimeType, l.Size, l.URL,
		nullable(l.CapturedAt), nullable(l.CameraMake), nullable(l.CameraModel),
		l.Latitude, l.Longitude, l.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	l.ID, err = res.LastInsertId()
	return err
}

const selectColumns = `
	SELECT id, original_name, mime_type, size, url,
	       captured_at, camera_make, camera_model,
	       latitude, longitude, created_at
	FROM photo_locations`

// List returns at most limit locations, newest first. A non-positive
// limit returns everything.
func (s *Store) List(limit int) ([]Location, error) {
	query := selectColumns + " ORDER BY created_at DESC, id DESC"

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	locations := []Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

// All returns every stored location, newest first.
func (s *Store) All() ([]Location, error) {
	return s.List(0)
}

// Get returns one location by id, or ErrNotFound.
func (s *Store) Get(id int64) (*Location, error) {
	row := s.db.QueryRow(selectColumns+" WHERE id = ?", id)

	l, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &l, nil
}

// Update applies a validated manual edit to an existing location.
func (s *Store) Update(id int64, u *LocationUpdate) error {
	res, err := s.db.Exec(`
		UPDATE photo_locations
		SET original_name = ?, captured_at = ?, camera_make = ?, camera_model = ?,
		    latitude = ?, longitude = ?
		WHERE id = ?`,
		u.OriginalName,
		nullable(u.CapturedAt), nullable(u.CameraMake), nullable(u.CameraModel),
		*u.Latitude, *u.Longitude, id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a location by id.
func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec("DELETE FROM photo_locations WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLocation(row scanner) (Location, error) {
	var l Location
	var capturedAt, cameraMake, cameraModel sql.NullString
	var createdAt string

	err := row.Scan(
		&l.ID, &l.OriginalName, &l.MimeType, &l.Size, &l.URL,
		&capturedAt, &cameraMake, &cameraModel,
		&l.Latitude, &l.Longitude, &createdAt,
	)
	if err != nil {
		return Location{}, err
	}

	l.CapturedAt = capturedAt.String
	l.CameraMake = cameraMake.String
	l.CameraModel = cameraModel.String

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		l.CreatedAt = t
	}

	return l, nil
}

// nullable maps empty strings to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
