package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuItem is a clickable hint in the bottom bar. The first hotkey is
// highlighted in the title and names the click region.
type MenuItem struct {
	Title   string
	HotKeys []string
	Action  func()
}

type bottom struct {
	*tview.TextView
	items []MenuItem
}

func newBottom(items []MenuItem) *bottom {
	b := &bottom{
		items: items,
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetRegions(true).
			SetTextColor(tcell.ColorSlateGray),
	}
	b.SetHighlightedFunc(b.highlighted)
	b.SetText(renderMenuItems(items))
	return b
}

func renderMenuItems(menuItems []MenuItem) string {
	const separator = "┊"
	titles := make([]string, 0, len(menuItems))
	for _, mi := range menuItems {
		title := mi.Title
		for _, key := range mi.HotKeys {
			hotkeyText := fmt.Sprintf("[%s]%s[-]", Style.HotkeyColor, key)
			title = strings.Replace(title, key, hotkeyText, 1)
		}
		titles = append(titles, fmt.Sprintf(`["%s"]%s[""]`, mi.HotKeys[0], title))
	}
	return strings.Join(titles, separator)
}

func (b *bottom) highlighted(added, _, _ []string) {
	if len(added) == 0 {
		return
	}
	region := added[0]
	for _, mi := range b.items {
		if mi.HotKeys[0] == region && mi.Action != nil {
			mi.Action()
			return
		}
	}
}
