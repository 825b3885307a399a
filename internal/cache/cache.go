package cache

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/raphi011/weather/internal/storage"
	"github.com/raphi011/weather/internal/weather"
)

// DefaultFile is the cache path used when none is configured.
const DefaultFile = "data.json"

// ErrNotPersistable is returned by Save for documents that carry an error
// marker or were never stamped.
var ErrNotPersistable = errors.New("document is not persistable")

// Store reads and writes the cache file.
type Store struct {
	path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the cached document. A missing, unreadable or malformed file,
// or one without a fetched_on stamp, yields (nil, false).
func (s *Store) Load() (*weather.Document, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	doc, err := weather.Decode(data)
	if err != nil || doc.FetchedOn.IsZero() {
		return nil, false
	}
	return doc, true
}

// Save replaces the cache file with doc.
func (s *Store) Save(doc *weather.Document) error {
	if doc == nil || !doc.Error.IsZero() || doc.FetchedOn.IsZero() {
		return ErrNotPersistable
	}
	return storage.SaveJSON(s.path, doc)
}

// Clear removes the cache file. A missing file is not an error.
func (s *Store) Clear() error {
	return storage.Remove(s.path)
}

// NameMatches reports whether city is a case-insensitive substring of the
// cached location name.
func NameMatches(doc *weather.Document, city string) bool {
	return strings.Contains(strings.ToLower(doc.Location.Name), strings.ToLower(city))
}

// IsFresh reports whether doc was fetched on now's calendar day.
func IsFresh(doc *weather.Document, now time.Time) bool {
	return doc.FetchedOn.SameDay(now)
}

// NoStoredError reports whether doc carries no provider error marker.
func NoStoredError(doc *weather.Document) bool {
	return doc.Error.IsZero()
}

// IsHit reports whether doc can answer a query for city at time now.
func IsHit(doc *weather.Document, city string, now time.Time) bool {
	return doc != nil && NameMatches(doc, city) && IsFresh(doc, now) && NoStoredError(doc)
}
