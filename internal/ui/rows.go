package ui

import (
	"strings"

	"github.com/nhle/checkit/internal/theme"
)

// Row is one line of a list view. Header rows are section titles and
// cannot be selected.
type Row struct {
	ID     string
	Text   string
	Header bool
}

// Cursor tracks the selected row of a list view.
type Cursor struct {
	Index int
}

// Reset places the cursor on the row with id, or the nearest selectable
// row to its old position.
func (c *Cursor) Reset(rows []Row, id string) {
	if id != "" {
		for i, r := range rows {
			if !r.Header && r.ID == id {
				c.Index = i
				return
			}
		}
	}
	if c.Index >= len(rows) {
		c.Index = len(rows) - 1
	}
	if c.Index < 0 {
		c.Index = 0
	}
	if len(rows) > 0 && rows[c.Index].Header {
		c.Move(rows, 1)
		if rows[c.Index].Header {
			c.Move(rows, -1)
		}
	}
}

// Move steps delta selectable rows, staying put at either end.
func (c *Cursor) Move(rows []Row, delta int) {
	i := c.Index
	for {
		i += delta
		if i < 0 || i >= len(rows) {
			return
		}
		if !rows[i].Header {
			c.Index = i
			return
		}
	}
}

// Selected returns the id under the cursor, or "".
func (c Cursor) Selected(rows []Row) string {
	if c.Index < 0 || c.Index >= len(rows) || rows[c.Index].Header {
		return ""
	}
	return rows[c.Index].ID
}

// RenderRows draws the window of rows that keeps the cursor visible.
func RenderRows(th *theme.Theme, rows []Row, cursor Cursor, height int) string {
	if height <= 0 {
		height = len(rows)
	}
	start := 0
	if cursor.Index >= height {
		start = cursor.Index - height + 1
	}
	end := min(start+height, len(rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		r := rows[i]
		switch {
		case r.Header:
			b.WriteString(th.Section.Render(r.Text))
		case i == cursor.Index:
			b.WriteString(th.SelectedItem.Render(r.Text))
		default:
			b.WriteString(th.ListItem.Render(r.Text))
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
