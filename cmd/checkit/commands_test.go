package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/viewmodel"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func TestPrintTodos(t *testing.T) {
	work := "c1"
	todos := []model.Todo{
		{ID: "a", Title: "Buy milk", CreatedAt: base},
		{ID: "b", Title: "Call dentist", Completed: true, CreatedAt: base.Add(time.Minute)},
		{ID: "c", Title: "Write report", CategoryID: &work, CreatedAt: base.Add(2 * time.Minute)},
	}
	cats := []model.Category{{ID: work, Name: "Work"}}

	var buf bytes.Buffer
	printTodos(&buf, todos, cats, viewmodel.SortNewest)

	assert.Equal(t, `[ ] Write report (Work)
[ ] Buy milk

Completed Tasks (1)
[x] Call dentist

2 active, 1 completed
`, buf.String())
}

func TestPrintChecklistFiltersByLabel(t *testing.T) {
	qty := "2"
	items := []model.ChecklistItem{
		{ID: "a", Title: "Milk", Category: "dairy", Quantity: &qty, CreatedAt: base},
		{ID: "b", Title: "Bread", Category: "bakery", CreatedAt: base.Add(time.Minute)},
		{ID: "c", Title: "Cheese", Category: "dairy", Completed: true, CreatedAt: base.Add(2 * time.Minute)},
	}

	var buf bytes.Buffer
	printChecklist(&buf, items, "dairy")
	assert.Equal(t, "dairy (2)\n  [ ] Milk x2\n  [x] Cheese\n", buf.String())

	buf.Reset()
	printChecklist(&buf, items, viewmodel.AllLabel)
	assert.Contains(t, buf.String(), "bakery (1)\n")
	assert.Contains(t, buf.String(), "dairy (2)\n")
}
