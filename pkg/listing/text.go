package listing

import (
	"strconv"

	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/fsutils"
	"github.com/filetug/foldertug/pkg/grouping"
)

const (
	CalculatingText = "Calculating..."
	UnknownText     = "Unknown"
)

// SizeText renders a size cell for display.
func SizeText(size files.Size) string {
	switch size.State {
	case files.SizePending:
		return CalculatingText
	case files.SizeUnknown:
		return UnknownText
	case files.SizeEstimated:
		return fsutils.GetApproxSizeShortText(size.Bytes)
	default:
		return fsutils.GetSizeShortText(size.Bytes)
	}
}

// GroupText is the "N files" caption of a group tile.
func GroupText(g *grouping.Group) string {
	if g.Count() == 1 {
		return "1 file"
	}
	return strconv.Itoa(g.Count()) + " files"
}
