// Package playlisttable shows the playlist store as a bubbles table.
//
// The table keeps its own copy of the cell text and patches it from store
// change notifications: inserted and changed rows are re-read, reorders
// permute the cached rows and resets drop them.
package playlisttable

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/waveplay/internal/icons"
	"github.com/llehouerou/waveplay/internal/playlist"
	"github.com/llehouerou/waveplay/internal/ui"
	"github.com/llehouerou/waveplay/internal/ui/styles"
)

const (
	markerWidth   = 2
	durationWidth = 8
	cellPadding   = 2 // table cell style pads one column on each side
)

// Model binds a table to a store. Create it with New; it is not safe to copy.
type Model struct {
	ui.Base
	store     *playlist.Store
	table     table.Model
	rows      [][playlist.ColumnCount]string
	current   int
	sorted    bool
	sortCol   playlist.Column
	sortOrder playlist.SortOrder
	unobserve func()
}

// New creates a table over store and starts following its changes.
func New(store *playlist.Store) *Model {
	st := styles.T().S()
	ts := table.DefaultStyles()
	ts.Header = st.TableHeader.Padding(0, 1)
	ts.Cell = lipgloss.NewStyle().Padding(0, 1)
	ts.Selected = st.Cursor.Bold(true)

	m := &Model{
		store:   store,
		current: -1,
		table: table.New(
			table.WithFocused(true),
			table.WithStyles(ts),
		),
	}
	for row := range store.RowCount() {
		m.rows = append(m.rows, m.readRow(row))
	}
	m.unobserve = store.Observe(m.apply)
	m.refresh()
	return m
}

// Close stops following the store.
func (m *Model) Close() {
	if m.unobserve != nil {
		m.unobserve()
		m.unobserve = nil
	}
}

func (m *Model) readRow(row int) [playlist.ColumnCount]string {
	var cells [playlist.ColumnCount]string
	for col := range playlist.ColumnCount {
		cells[col] = m.store.CellValue(row, playlist.Column(col))
	}
	return cells
}

func (m *Model) apply(ch playlist.Change) {
	switch ch.Kind {
	case playlist.RowsInserted:
		for row := ch.First; row <= ch.Last; row++ {
			m.rows = append(m.rows, m.readRow(row))
		}
		m.sorted = false
	case playlist.RowsChanged:
		for row := ch.First; row <= ch.Last && row < len(m.rows); row++ {
			m.rows[row] = m.readRow(row)
		}
	case playlist.ModelReset:
		m.rows = nil
		m.current = -1
		m.sorted = false
	case playlist.LayoutChanged:
		next := make([][playlist.ColumnCount]string, len(m.rows))
		for oldRow, newRow := range ch.Permutation {
			next[newRow] = m.rows[oldRow]
		}
		m.rows = next
		if c := m.table.Cursor(); c >= 0 && c < len(ch.Permutation) {
			m.table.SetCursor(ch.Permutation[c])
		}
	}
	m.refresh()
}

func (m *Model) refresh() {
	rows := make([]table.Row, len(m.rows))
	for i, cells := range m.rows {
		marker := ""
		if i == m.current {
			marker = icons.Current()
		}
		rows[i] = table.Row{marker, cells[0], cells[1], cells[2], cells[3]}
	}
	m.table.SetColumns(m.columns())
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c < 0 || c >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m *Model) columns() []table.Column {
	avail := max(m.Width()-markerWidth-durationWidth-cellPadding*(playlist.ColumnCount+1), 3)
	titleW := avail * 45 / 100
	artistW := avail * 30 / 100
	albumW := avail - titleW - artistW

	widths := [playlist.ColumnCount]int{titleW, artistW, albumW, durationWidth}
	cols := []table.Column{{Title: "", Width: markerWidth}}
	for c := range playlist.ColumnCount {
		col := playlist.Column(c)
		cols = append(cols, table.Column{Title: m.header(col), Width: widths[c]})
	}
	return cols
}

func (m *Model) header(col playlist.Column) string {
	h := m.store.ColumnHeader(col)
	if m.sorted && m.sortCol == col {
		if m.sortOrder == playlist.Descending {
			return h + " ▼"
		}
		return h + " ▲"
	}
	return h
}

// SetSize sets the table dimensions including the header.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.table.SetWidth(width)
	m.table.SetHeight(max(height, 2))
	m.refresh()
}

// SetCurrent marks row as the playing row; -1 clears the marker.
func (m *Model) SetCurrent(row int) {
	if row == m.current {
		return
	}
	m.current = row
	m.refresh()
}

// Current returns the marked row.
func (m *Model) Current() int { return m.current }

// Sort orders the store by col. Sorting the same column again flips the
// order. It returns the order applied.
func (m *Model) Sort(col playlist.Column) playlist.SortOrder {
	order := playlist.Ascending
	if m.sorted && m.sortCol == col {
		order = m.sortOrder.Flip()
	}
	m.store.Sort(col, order)
	if m.store.RowCount() > 0 && col.Valid() {
		m.sorted, m.sortCol, m.sortOrder = true, col, order
		m.refresh()
	}
	return order
}

// Selected returns the row under the cursor, or -1 when the table is empty.
func (m *Model) Selected() int {
	if len(m.rows) == 0 {
		return -1
	}
	return min(max(m.table.Cursor(), 0), len(m.rows)-1)
}

// Select moves the cursor to row.
func (m *Model) Select(row int) {
	if row >= 0 && row < len(m.rows) {
		m.table.SetCursor(row)
	}
}

func (m *Model) MoveUp()     { m.table.MoveUp(1) }
func (m *Model) MoveDown()   { m.table.MoveDown(1) }
func (m *Model) GotoTop()    { m.table.GotoTop() }
func (m *Model) GotoBottom() { m.table.GotoBottom() }

// Len returns the number of rows shown.
func (m *Model) Len() int { return len(m.rows) }

// Row returns the cached cells of row.
func (m *Model) Row(row int) ([playlist.ColumnCount]string, bool) {
	if row < 0 || row >= len(m.rows) {
		return [playlist.ColumnCount]string{}, false
	}
	return m.rows[row], true
}

// View renders the table.
func (m *Model) View() string {
	return m.table.View()
}
