// Package viewmodel turns hook items into the shapes the views render.
// Every function is pure and returns new slices.
package viewmodel

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nhle/checkit/internal/model"
)

// SortKey selects an ordering for Sort.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortTitleAsc  SortKey = "title_asc"
	SortTitleDesc SortKey = "title_desc"
)

// SortKeys lists every key in menu order.
var SortKeys = []SortKey{SortNewest, SortOldest, SortTitleAsc, SortTitleDesc}

// Label is the human-readable name of the key.
func (k SortKey) Label() string {
	switch k {
	case SortOldest:
		return "Oldest first"
	case SortTitleAsc:
		return "Title A-Z"
	case SortTitleDesc:
		return "Title Z-A"
	default:
		return "Newest first"
	}
}

// Next cycles to the following key.
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)
	return SortKeys[(i+1)%len(SortKeys)]
}

// ParseSortKey accepts the config spelling of a key. "" means SortNewest.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNewest, nil
	}
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(SortKeys, key) {
		return SortNewest, fmt.Errorf("unknown sort key %q", s)
	}
	return key, nil
}

// Sort returns items ordered by key. Equal items keep their relative order.
func Sort[T model.Entity](items []T, key SortKey) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}

	var cmp func(a, b T) int
	switch key {
	case SortOldest:
		cmp = func(a, b T) int { return a.GetCreatedAt().Compare(b.GetCreatedAt()) }
	case SortTitleAsc:
		cmp = func(a, b T) int { return compareTitles(a, b) }
	case SortTitleDesc:
		cmp = func(a, b T) int { return compareTitles(b, a) }
	default:
		cmp = func(a, b T) int { return b.GetCreatedAt().Compare(a.GetCreatedAt()) }
	}

	slices.SortStableFunc(out, cmp)
	return out
}

func compareTitles[T model.Entity](a, b T) int {
	return strings.Compare(strings.ToLower(a.GetTitle()), strings.ToLower(b.GetTitle()))
}
