package viewmodel

import "github.com/nhle/checkit/internal/model"

// Partition splits items into incomplete and completed, keeping order.
func Partition[T model.Completable](items []T) (active, completed []T) {
	active, completed = []T{}, []T{}
	for _, it := range items {
		if it.IsCompleted() {
			completed = append(completed, it)
		} else {
			active = append(active, it)
		}
	}
	return active, completed
}

// DisplayOrder lists incomplete items newest first, then completed items
// oldest first.
func DisplayOrder[T model.Completable](items []T) (active, completed []T) {
	active, completed = Partition(items)
	return Sort(active, SortNewest), Sort(completed, SortOldest)
}

// Counts summarizes completion across a list.
type Counts struct {
	Total     int
	Completed int
	Active    int
}

// Summary counts items by completion.
func Summary[T model.Completable](items []T) Counts {
	var c Counts
	for _, it := range items {
		c.Total++
		if it.IsCompleted() {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}
