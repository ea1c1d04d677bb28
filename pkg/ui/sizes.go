package ui

import (
	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/grouping"
	"github.com/filetug/foldertug/pkg/listing"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	kb = int64(1024)
	mb = kb * 1024
	gb = mb * 1024
	tb = gb * 1024
)

// sizeColor grades sizes by magnitude.
func sizeColor(size int64, defaultColor tcell.Color) tcell.Color {
	switch {
	case size >= tb:
		return tcell.ColorOrangeRed
	case size >= gb:
		return tcell.ColorYellow
	case size >= mb:
		return tcell.ColorLightGreen
	case size >= kb:
		return Style.TableHeaderColor
	case size > 0:
		return defaultColor
	default:
		return tcell.ColorGray
	}
}

// newSizeCell creates a right-aligned size cell colored by magnitude.
// Estimates are dimmed and unknown sizes carry a warning marker.
func newSizeCell(size files.Size, defaultColor tcell.Color) *tview.TableCell {
	text := listing.SizeText(size)
	cell := tview.NewTableCell("  " + text + " ").SetAlign(tview.AlignRight)
	switch size.State {
	case files.SizePending:
		cell.SetTextColor(tcell.ColorDarkGray)
	case files.SizeUnknown:
		cell.SetText("  ⚠ " + text + " ")
		cell.SetTextColor(tcell.ColorOrange)
	case files.SizeEstimated:
		cell.SetTextColor(sizeColor(size.Bytes, defaultColor))
		cell.SetAttributes(tcell.AttrDim)
	default:
		cell.SetTextColor(sizeColor(size.Bytes, defaultColor))
	}
	return cell
}

func newGroupSizeCell(g *grouping.Group) *tview.TableCell {
	cell := newSizeCell(files.ComputedSize(g.TotalSize()), Style.GroupColor)
	cell.SetText("  " + listing.GroupText(g) + ", " + listing.SizeText(files.ComputedSize(g.TotalSize())) + " ")
	return cell
}
