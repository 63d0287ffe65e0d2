package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/checkit/internal/model"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

const (
	todoColumns      = "id, title, completed, category_id, user_id, created_at, updated_at"
	checklistColumns = "id, title, quantity, category, completed, notes, user_id, created_at, updated_at"
	categoryColumns  = "id, name, color, icon, user_id, created_at, updated_at"
	userColumns      = "id, email, password_hash, created_at"
)

// now returns the timestamp stamped on inserted and updated rows.
var now = func() time.Time { return time.Now().UTC() }

// assignment is one "column = value" pair of an UPDATE statement.
type assignment struct {
	column string
	value  interface{}
}

// setClause renders assignments with the driver's placeholder style and
// returns the clause plus its args. Placeholders are numbered from start.
func setClause(as []assignment, placeholder func(n int) string, start int) (string, []interface{}) {
	parts := make([]string, len(as))
	args := make([]interface{}, len(as))
	for i, a := range as {
		parts[i] = fmt.Sprintf("%s = %s", a.column, placeholder(start+i))
		args[i] = a.value
	}
	return strings.Join(parts, ", "), args
}

func todoAssignments(p model.TodoPatch) []assignment {
	var as []assignment
	if p.Title != nil {
		as = append(as, assignment{"title", *p.Title})
	}
	if p.Completed != nil {
		as = append(as, assignment{"completed", *p.Completed})
	}
	if p.CategoryID != nil {
		as = append(as, assignment{"category_id", nullableString(p.CategoryID)})
	}
	return as
}

func checklistAssignments(p model.ChecklistItemPatch) []assignment {
	var as []assignment
	if p.Title != nil {
		as = append(as, assignment{"title", *p.Title})
	}
	if p.Quantity != nil {
		as = append(as, assignment{"quantity", nullableString(p.Quantity)})
	}
	if p.Category != nil {
		as = append(as, assignment{"category", *p.Category})
	}
	if p.Notes != nil {
		as = append(as, assignment{"notes", nullableString(p.Notes)})
	}
	if p.Completed != nil {
		as = append(as, assignment{"completed", *p.Completed})
	}
	return as
}

func categoryAssignments(p model.CategoryPatch) []assignment {
	var as []assignment
	if p.Name != nil {
		as = append(as, assignment{"name", *p.Name})
	}
	if p.Color != nil {
		as = append(as, assignment{"color", *p.Color})
	}
	if p.Icon != nil {
		as = append(as, assignment{"icon", nullableString(p.Icon)})
	}
	return as
}

// nullableString maps a nil or empty pointer to SQL NULL.
func nullableString(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
