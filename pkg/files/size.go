package files

import "strconv"

// SizeState tells how far a size cell has been resolved.
type SizeState int

const (
	SizePending SizeState = iota
	SizeComputed
	// SizeEstimated marks the fallback returned when a folder walk timed out
	// or summed to zero.
	SizeEstimated
	SizeUnknown
)

func (s SizeState) String() string {
	switch s {
	case SizePending:
		return "pending"
	case SizeComputed:
		return "computed"
	case SizeEstimated:
		return "estimated"
	case SizeUnknown:
		return "unknown"
	default:
		return "SizeState(" + strconv.Itoa(int(s)) + ")"
	}
}

type Size struct {
	State SizeState
	Bytes int64
}

func PendingSize() Size {
	return Size{State: SizePending}
}

func ComputedSize(n int64) Size {
	return Size{State: SizeComputed, Bytes: n}
}

func EstimatedSize(n int64) Size {
	return Size{State: SizeEstimated, Bytes: n}
}

func UnknownSize() Size {
	return Size{State: SizeUnknown, Bytes: -1}
}

// SortValue is the number the size sorter compares.
// Pending sorts as 0 and unknown as -1.
func (s Size) SortValue() int64 {
	switch s.State {
	case SizePending:
		return 0
	case SizeUnknown:
		return -1
	default:
		return s.Bytes
	}
}

func (s Size) IsResolved() bool {
	return s.State != SizePending
}
