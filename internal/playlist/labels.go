package playlist

import "strings"

// Column identifies a playlist table column.
type Column int

const (
	ColumnTitle Column = iota
	ColumnArtist
	ColumnAlbum
	ColumnDuration
)

// ColumnCount is the fixed number of columns exposed by the store.
const ColumnCount = 4

// Valid reports whether c is one of the four table columns.
func (c Column) Valid() bool {
	return c >= ColumnTitle && c <= ColumnDuration
}

// Labels holds the header text of each column.
type Labels [ColumnCount]string

var (
	// EnglishLabels are the default headers.
	EnglishLabels = Labels{"Title", "Artist", "Album", "Duration"}
	// GermanLabels are used when the language is set to "de".
	GermanLabels = Labels{"Titel", "Künstler", "Album", "Dauer"}
)

// LabelsFor returns the headers for a language code. Unknown codes get English.
func LabelsFor(lang string) Labels {
	switch lang {
	case "de":
		return GermanLabels
	default:
		return EnglishLabels
	}
}

// ParseColumn maps a column name (either language, case-insensitive) to a Column.
func ParseColumn(name string) (Column, bool) {
	for _, labels := range []Labels{EnglishLabels, GermanLabels} {
		for i, l := range labels {
			if strings.EqualFold(l, name) {
				return Column(i), true
			}
		}
	}
	return 0, false
}
