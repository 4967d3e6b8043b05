// Package playlist holds the ordered track collection shown as the playlist
// table. The Store is the single owner of the track sequence; readers get
// copies and learn about mutations through Observe.
//
// A Store is not safe for concurrent use. It is driven from the UI goroutine.
package playlist

import (
	"errors"
	"fmt"
	"strings"
)

// NotFound is returned by FindByTitle when no row matches.
const NotFound = -1

// ErrRowOutOfRange is returned when a row index does not name a track.
var ErrRowOutOfRange = errors.New("row out of range")

// ChangeKind identifies a structural change to the store.
type ChangeKind int

const (
	// RowsInserted: rows First..Last were appended.
	RowsInserted ChangeKind = iota
	// RowsChanged: the records in rows First..Last were replaced.
	RowsChanged
	// ModelReset: the whole content was discarded.
	ModelReset
	// LayoutChanged: rows were reordered; Permutation maps old row to new row.
	LayoutChanged
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case RowsInserted:
		return "RowsInserted"
	case RowsChanged:
		return "RowsChanged"
	case ModelReset:
		return "ModelReset"
	case LayoutChanged:
		return "LayoutChanged"
	default:
		return "Unknown"
	}
}

// Change describes one committed mutation.
type Change struct {
	Kind        ChangeKind
	First       int
	Last        int
	Permutation []int
}

// Observer receives changes after they are committed.
type Observer func(Change)

type observerEntry struct {
	id int
	fn Observer
}

// Store is the ordered, mutable playlist exposed as a four-column table.
type Store struct {
	tracks    []Track
	labels    Labels
	observers []observerEntry
	nextID    int
}

// NewStore creates an empty store with English headers.
func NewStore() *Store {
	return &Store{
		tracks: make([]Track, 0),
		labels: EnglishLabels,
	}
}

// SetLabels changes the column headers.
func (s *Store) SetLabels(l Labels) {
	s.labels = l
}

// AddTrack appends one track.
func (s *Store) AddTrack(t Track) {
	s.AddTracks(t)
}

// AddTracks appends tracks in order with a single RowsInserted notification.
func (s *Store) AddTracks(tracks ...Track) {
	if len(tracks) == 0 {
		return
	}
	first := len(s.tracks)
	s.tracks = append(s.tracks, tracks...)
	s.notify(Change{Kind: RowsInserted, First: first, Last: len(s.tracks) - 1})
}

// Clear removes all tracks with a single ModelReset notification.
func (s *Store) Clear() {
	s.tracks = s.tracks[:0]
	s.notify(Change{Kind: ModelReset, First: -1, Last: -1})
}

// Replace swaps the record at row.
func (s *Store) Replace(row int, t Track) error {
	if !s.validRow(row) {
		return fmt.Errorf("replace row %d: %w", row, ErrRowOutOfRange)
	}
	s.tracks[row] = t
	s.notify(Change{Kind: RowsChanged, First: row, Last: row})
	return nil
}

// RowCount returns the number of tracks.
func (s *Store) RowCount() int {
	return len(s.tracks)
}

// ColumnCount returns the number of table columns.
func (s *Store) ColumnCount() int {
	return ColumnCount
}

// CellValue returns the display text of a cell, or "" when row or column
// is out of range.
func (s *Store) CellValue(row int, col Column) string {
	if !s.validRow(row) {
		return ""
	}
	t := s.tracks[row]
	switch col {
	case ColumnTitle:
		return t.Title
	case ColumnArtist:
		return t.Artist
	case ColumnAlbum:
		return t.Album
	case ColumnDuration:
		return t.FormattedDuration()
	default:
		return ""
	}
}

// ColumnHeader returns the header label of col, or "" when out of range.
func (s *Store) ColumnHeader(col Column) string {
	if !col.Valid() {
		return ""
	}
	return s.labels[col]
}

// TrackAt returns a copy of the track at row.
func (s *Store) TrackAt(row int) (Track, error) {
	if !s.validRow(row) {
		return Track{}, fmt.Errorf("track at row %d: %w", row, ErrRowOutOfRange)
	}
	return s.tracks[row], nil
}

// FindByTitle returns the lowest row whose title equals title ignoring case,
// or NotFound.
func (s *Store) FindByTitle(title string) int {
	for i, t := range s.tracks {
		if strings.EqualFold(t.Title, title) {
			return i
		}
	}
	return NotFound
}

// Tracks returns a copy of all tracks.
func (s *Store) Tracks() []Track {
	result := make([]Track, len(s.tracks))
	copy(result, s.tracks)
	return result
}

// Observe registers fn for change notifications and returns a function that
// removes it.
func (s *Store) Observe(fn Observer) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) validRow(row int) bool {
	return row >= 0 && row < len(s.tracks)
}

// notify delivers c to a snapshot of observers, so observers may cancel
// themselves or mutate the store from inside the callback.
func (s *Store) notify(c Change) {
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	for _, o := range observers {
		o.fn(c)
	}
}
