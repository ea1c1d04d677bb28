// Package sorting orders directory entries. Directories always come before
// files; the key and direction only order entries within those partitions.
package sorting

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/filetug/foldertug/pkg/files"
	"golang.org/x/text/cases"
)

// Key is the field entries are sorted by.
type Key int

const (
	ByName Key = iota
	BySize
	ByExtension
)

func (k Key) String() string {
	switch k {
	case ByName:
		return "name"
	case BySize:
		return "size"
	case ByExtension:
		return "extension"
	default:
		return fmt.Sprintf("Key(%d)", int(k))
	}
}

// ParseKey accepts the String() form of a Key, case-insensitively.
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(s) {
	case "name":
		return ByName, nil
	case "size":
		return BySize, nil
	case "extension", "ext":
		return ByExtension, nil
	}
	return ByName, fmt.Errorf("unknown sort key %q", s)
}

// Direction is ascending or descending.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort direction %q", s)
}

// State is the active sort.
type State struct {
	Key       Key
	Direction Direction
}

// DefaultState sorts by name, ascending.
func DefaultState() State {
	return State{Key: ByName, Direction: Ascending}
}

func (s State) String() string {
	return s.Key.String() + " " + s.Direction.String()
}

// CompareFold compares two strings ignoring case.
func CompareFold(a, b string) int {
	folder := cases.Fold()
	return strings.Compare(folder.String(a), folder.String(b))
}

// Compare orders a before b (negative), after b (positive) or as equal (0).
func Compare(a, b *files.Entry, s State) int {
	if aDir, bDir := a.IsDir(), b.IsDir(); aDir != bDir {
		if aDir {
			return -1
		}
		return 1
	}
	c := compareKey(a, b, s.Key)
	if s.Direction == Descending {
		return -c
	}
	return c
}

func compareKey(a, b *files.Entry, key Key) int {
	switch key {
	case BySize:
		return cmp.Compare(a.Size().SortValue(), b.Size().SortValue())
	case ByExtension:
		if a.IsDir() && b.IsDir() {
			return CompareFold(a.Name(), b.Name())
		}
		if c := CompareFold(a.Ext(), b.Ext()); c != 0 {
			return c
		}
		return CompareFold(a.Name(), b.Name())
	default:
		return CompareFold(a.Name(), b.Name())
	}
}

// Sort returns entries ordered by s. The input slice is left untouched.
func Sort(entries []*files.Entry, s State) []*files.Entry {
	return MergeSort(entries, func(a, b *files.Entry) int {
		return Compare(a, b, s)
	})
}

// MergeSort is a stable top-down merge sort returning a new slice.
func MergeSort[T any](items []T, compare func(a, b T) int) []T {
	result := make([]T, len(items))
	copy(result, items)
	if len(result) < 2 {
		return result
	}
	buf := make([]T, len(result))
	mergeSort(result, buf, compare)
	return result
}

func mergeSort[T any](items, buf []T, compare func(a, b T) int) {
	if len(items) < 2 {
		return
	}
	mid := len(items) / 2
	mergeSort(items[:mid], buf[:mid], compare)
	mergeSort(items[mid:], buf[mid:], compare)

	copy(buf, items)
	left, right := buf[:mid], buf[mid:len(items)]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		// Take from the left on ties.
		if compare(right[j], left[i]) < 0 {
			items[k] = right[j]
			j++
		} else {
			items[k] = left[i]
			i++
		}
		k++
	}
	k += copy(items[k:], left[i:])
	copy(items[k:], right[j:])
}
