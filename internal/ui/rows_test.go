package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorSkipsHeaders(t *testing.T) {
	rows := []Row{
		{Text: "Work", Header: true},
		{ID: "a", Text: "a"},
		{Text: "Completed", Header: true},
		{ID: "b", Text: "b"},
	}

	var c Cursor
	c.Reset(rows, "")
	assert.Equal(t, "a", c.Selected(rows))

	c.Move(rows, 1)
	assert.Equal(t, "b", c.Selected(rows))
	c.Move(rows, 1)
	assert.Equal(t, "b", c.Selected(rows))
	c.Move(rows, -1)
	assert.Equal(t, "a", c.Selected(rows))
	c.Move(rows, -1)
	assert.Equal(t, "a", c.Selected(rows))

	c.Reset(rows, "b")
	assert.Equal(t, 3, c.Index)
}

func TestCursorResetClamps(t *testing.T) {
	rows := []Row{{ID: "a"}, {ID: "b"}}
	c := Cursor{Index: 5}
	c.Reset(rows, "gone")
	assert.Equal(t, "b", c.Selected(rows))

	c.Reset(nil, "")
	assert.Equal(t, "", c.Selected(nil))
}
