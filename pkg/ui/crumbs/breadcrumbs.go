// Package crumbs provides a one-line breadcrumbs bar for tview.
package crumbs

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const defaultSeparator = " > "

var defaultColor = tcell.ColorLightSkyBlue

// Breadcrumbs draws its items left to right. The first item is the home
// crumb and survives Clear.
type Breadcrumbs struct {
	*tview.Box
	items             []*Breadcrumb
	separator         string
	selectedColor     tcell.Color
	selectedItemIndex int
	nextFocusTarget   tview.Primitive
	onError           func(error)
}

func NewBreadcrumbs(home *Breadcrumb, options ...Option) *Breadcrumbs {
	bc := &Breadcrumbs{
		Box:           tview.NewBox(),
		separator:     defaultSeparator,
		selectedColor: tcell.ColorYellow,
	}
	if home != nil {
		bc.items = append(bc.items, home)
	}
	for _, o := range options {
		o(bc)
	}
	return bc
}

func (bc *Breadcrumbs) Push(item *Breadcrumb) {
	bc.items = append(bc.items, item)
	bc.selectedItemIndex = len(bc.items) - 1
}

// Clear removes everything but the home crumb.
func (bc *Breadcrumbs) Clear() {
	if len(bc.items) > 1 {
		bc.items = bc.items[:1]
	}
	bc.selectedItemIndex = len(bc.items) - 1
}

func (bc *Breadcrumbs) Items() []*Breadcrumb {
	return bc.items
}

// Titles returns the titles of all items in order.
func (bc *Breadcrumbs) Titles() []string {
	titles := make([]string, len(bc.items))
	for i, item := range bc.items {
		titles[i] = item.Title
	}
	return titles
}

func (bc *Breadcrumbs) SelectedIndex() int {
	return bc.selectedItemIndex
}

func (bc *Breadcrumbs) IsLastItemSelected() bool {
	return bc.selectedItemIndex == len(bc.items)-1
}

func (bc *Breadcrumbs) GoHome() error {
	if len(bc.items) == 0 {
		return nil
	}
	return bc.items[0].Activate()
}

func (bc *Breadcrumbs) SetNextFocusTarget(p tview.Primitive) {
	bc.nextFocusTarget = p
}

// Focus selects the parent of the current location so Enter goes up a level.
func (bc *Breadcrumbs) Focus(delegate func(p tview.Primitive)) {
	if bc.selectedItemIndex < 0 || bc.selectedItemIndex >= len(bc.items)-1 {
		bc.selectedItemIndex = max(len(bc.items)-2, 0)
	}
	bc.Box.Focus(delegate)
}

func (bc *Breadcrumbs) Blur() {
	bc.selectedItemIndex = len(bc.items) - 1
	bc.Box.Blur()
}

type span struct {
	start, width int
}

// layout returns the horizontal span of each visible item, relative to the
// inner rect. Items that do not fit are omitted.
func (bc *Breadcrumbs) layout(maxWidth int) []span {
	spans := make([]span, 0, len(bc.items))
	cursor := 0
	sepWidth := tview.TaggedStringWidth(bc.separator)
	for i, item := range bc.items {
		if cursor >= maxWidth {
			break
		}
		w := tview.TaggedStringWidth(tview.Escape(item.Title))
		spans = append(spans, span{start: cursor, width: min(w, maxWidth-cursor)})
		cursor += w
		if i < len(bc.items)-1 {
			cursor += sepWidth
		}
	}
	return spans
}

func (bc *Breadcrumbs) Draw(screen tcell.Screen) {
	bc.Box.DrawForSubclass(screen, bc)
	x, y, width, height := bc.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	focused := bc.HasFocus()
	spans := bc.layout(width)
	for i, s := range spans {
		item := bc.items[i]
		color := item.Color
		if color == tcell.ColorDefault {
			color = defaultColor
		}
		if i == len(bc.items)-1 {
			color = tcell.ColorWhite
		}
		if focused && i == bc.selectedItemIndex {
			color = bc.selectedColor
		}
		tview.Print(screen, tview.Escape(item.Title), x+s.start, y, s.width, tview.AlignLeft, color)
		if i < len(bc.items)-1 {
			sepStart := s.start + s.width
			if sepStart < width {
				tview.Print(screen, bc.separator, x+sepStart, y, width-sepStart, tview.AlignLeft, tcell.ColorGray)
			}
		}
	}
}

func (bc *Breadcrumbs) trigger(i int) {
	if i < 0 || i >= len(bc.items) {
		return
	}
	if !bc.items[i].Clickable() {
		return
	}
	if err := bc.items[i].Activate(); err != nil && bc.onError != nil {
		bc.onError(err)
	}
}

func (bc *Breadcrumbs) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return bc.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if len(bc.items) == 0 {
			return
		}
		switch event.Key() {
		case tcell.KeyLeft:
			if bc.selectedItemIndex > 0 {
				bc.selectedItemIndex--
			}
		case tcell.KeyRight:
			if bc.selectedItemIndex < len(bc.items)-1 {
				bc.selectedItemIndex++
			}
		case tcell.KeyHome:
			bc.selectedItemIndex = 0
		case tcell.KeyEnd:
			bc.selectedItemIndex = len(bc.items) - 1
		case tcell.KeyEnter:
			bc.trigger(bc.selectedItemIndex)
		case tcell.KeyTab, tcell.KeyDown, tcell.KeyEscape:
			if bc.nextFocusTarget != nil && setFocus != nil {
				setFocus(bc.nextFocusTarget)
			}
		default:
		}
	})
}

func (bc *Breadcrumbs) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return bc.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		if action != tview.MouseLeftClick && action != tview.MouseLeftDown {
			return false, nil
		}
		mx, my := event.Position()
		if !bc.InInnerRect(mx, my) {
			return false, nil
		}
		if setFocus != nil {
			setFocus(bc)
		}
		x, _, width, _ := bc.GetInnerRect()
		for i, s := range bc.layout(width) {
			if mx-x >= s.start && mx-x < s.start+s.width {
				bc.selectedItemIndex = i
				if action == tview.MouseLeftClick {
					bc.trigger(i)
				}
				break
			}
		}
		return true, nil
	})
}
