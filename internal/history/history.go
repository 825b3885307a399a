// Package history tracks recently looked-up cities.
// The list feeds shell completion for `weather forecast`.
package history

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/weather/internal/storage"
)

// maxEntries caps the number of remembered cities
const maxEntries = 50

// Entry is one remembered city
type Entry struct {
	City        string    `json:"city"`
	AccessCount int       `json:"access_count"`
	LastAccess  time.Time `json:"last_access"`
}

// History stores recently looked-up cities, most recent first
type History struct {
	Entries []Entry `json:"entries"`
}

// Load reads the history from path. A missing file yields an empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		return nil, fmt.Errorf("load history: %w", err)
	}
	return &h, nil
}

// Save writes the history to path atomically
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

// Find returns the entry for city (case-insensitive), or nil
func (h *History) Find(city string) *Entry {
	for i := range h.Entries {
		if strings.EqualFold(h.Entries[i].City, city) {
			return &h.Entries[i]
		}
	}
	return nil
}

// Record marks city as accessed at now, evicting the oldest entry when
// the list is full.
func (h *History) Record(city string, now time.Time) {
	if e := h.Find(city); e != nil {
		e.City = city
		e.AccessCount++
		e.LastAccess = now
	} else {
		h.Entries = append(h.Entries, Entry{City: city, AccessCount: 1, LastAccess: now})
	}

	slices.SortStableFunc(h.Entries, func(a, b Entry) int {
		return b.LastAccess.Compare(a.LastAccess)
	})
	if len(h.Entries) > maxEntries {
		h.Entries = h.Entries[:maxEntries]
	}
}

// Cities returns the remembered city names, most recent first
func (h *History) Cities() []string {
	cities := make([]string, len(h.Entries))
	for i, e := range h.Entries {
		cities[i] = e.City
	}
	return cities
}

// Match ranks the remembered cities against a partially typed name.
// An empty pattern returns every city in recency order.
func (h *History) Match(pattern string) []string {
	cities := h.Cities()
	if pattern == "" {
		return cities
	}

	matches := fuzzy.Find(pattern, cities)
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = m.Str
	}
	return result
}

// RecordAccess loads the history at path, records city and saves it back.
// A corrupted file is replaced.
func RecordAccess(city, path string, now time.Time) error {
	h, err := Load(path)
	if err != nil {
		h = &History{}
	}
	h.Record(city, now)
	return h.Save(path)
}
