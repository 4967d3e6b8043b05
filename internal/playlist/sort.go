package playlist

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder is the direction of a column sort.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// String returns the order name.
func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite order.
func (o SortOrder) Flip() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// Sort reorders rows by column. Text columns compare with case-insensitive
// locale collation, the duration column numerically. Equal rows keep their
// relative order. An invalid column is a no-op.
func (s *Store) Sort(col Column, order SortOrder) {
	if !col.Valid() || len(s.tracks) == 0 {
		return
	}

	coll := collate.New(s.collationTag(), collate.IgnoreCase)
	compare := func(a, b Track) int {
		switch col {
		case ColumnArtist:
			return coll.CompareString(a.Artist, b.Artist)
		case ColumnAlbum:
			return coll.CompareString(a.Album, b.Album)
		case ColumnDuration:
			return cmp.Compare(a.Duration, b.Duration)
		default:
			return coll.CompareString(a.Title, b.Title)
		}
	}

	rows := lo.Range(len(s.tracks))
	slices.SortStableFunc(rows, func(i, j int) int {
		c := compare(s.tracks[i], s.tracks[j])
		if order == Descending {
			return -c
		}
		return c
	})

	sorted := make([]Track, len(s.tracks))
	perm := make([]int, len(s.tracks))
	for newRow, oldRow := range rows {
		sorted[newRow] = s.tracks[oldRow]
		perm[oldRow] = newRow
	}
	s.tracks = sorted
	s.notify(Change{Kind: LayoutChanged, First: 0, Last: len(sorted) - 1, Permutation: perm})
}

func (s *Store) collationTag() language.Tag {
	if s.labels == GermanLabels {
		return language.German
	}
	return language.English
}
