package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/filetug/foldertug/pkg/browser"
	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/listing"
	"github.com/filetug/foldertug/pkg/sorting"
	"github.com/filetug/foldertug/pkg/ui/crumbs"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const mainScreenTitle = "Main Screen"

const (
	pageMain  = "main"
	pageAdd   = "add"
	pageAlert = "alert"
)

// Screen shows the browser's listing as a table under a breadcrumbs bar.
type Screen struct {
	app     *tview.Application
	browser *browser.Browser

	pages  *tview.Pages
	crumbs *crumbs.Breadcrumbs
	table  *tview.Table
	status *tview.TextView
	bottom *bottom

	items       []listing.Item
	message     string
	lastGroup   string
	unsubscribe func()
}

func NewScreen(app *tview.Application, b *browser.Browser) *Screen {
	s := &Screen{app: app, browser: b}

	s.crumbs = crumbs.NewBreadcrumbs(
		crumbs.NewBreadcrumb(mainScreenTitle, s.goHome),
		crumbs.WithOnError(s.alert),
	)

	s.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	s.table.SetBorder(true).SetBorderColor(Style.BlurBorderColor)
	s.table.SetInputCapture(s.inputCapture)
	s.table.SetSelectedFunc(func(row, _ int) {
		s.activate(row)
	})
	s.table.SetFocusFunc(func() {
		s.table.SetBorderColor(Style.FocusedBorderColor)
	})
	s.table.SetBlurFunc(func() {
		s.table.SetBorderColor(Style.BlurBorderColor)
	})
	s.crumbs.SetNextFocusTarget(s.table)

	s.status = tview.NewTextView().SetDynamicColors(true)
	s.bottom = newBottom(s.menuItems())

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.crumbs, 1, 0, false).
		AddItem(s.table, 0, 1, true).
		AddItem(s.status, 1, 0, false).
		AddItem(s.bottom, 1, 0, false)
	s.pages = tview.NewPages().AddPage(pageMain, layout, true, true)

	s.unsubscribe = b.SubscribeSizeUpdates(s.onSizeUpdate)
	s.render()
	return s
}

func (s *Screen) Root() tview.Primitive {
	return s.pages
}

// Close stops listening for size updates.
func (s *Screen) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Screen) menuItems() []MenuItem {
	return []MenuItem{
		{Title: "Name", HotKeys: []string{"N"}, Action: func() { s.setSortKey(sorting.ByName) }},
		{Title: "Size", HotKeys: []string{"S"}, Action: func() { s.setSortKey(sorting.BySize) }},
		{Title: "Ext", HotKeys: []string{"E"}, Action: func() { s.setSortKey(sorting.ByExtension) }},
		{Title: "Reverse", HotKeys: []string{"R"}, Action: s.reverseSort},
		{Title: "Add", HotKeys: []string{"A"}, Action: s.showAddRoot},
		{Title: "x Remove", HotKeys: []string{"x"}, Action: s.removeSelectedRoot},
		{Title: "Home", HotKeys: []string{"H"}, Action: func() { _ = s.goHome() }},
		{Title: "F5 Refresh", HotKeys: []string{"F5"}, Action: s.refresh},
		{Title: "Quit", HotKeys: []string{"Q"}, Action: s.quit},
	}
}

func (s *Screen) setFocus(p tview.Primitive) {
	if s.app != nil {
		s.app.SetFocus(p)
	}
}

func (s *Screen) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyLeft:
		s.goBack()
		return nil
	case tcell.KeyEscape:
		if s.browser.Render().Mode == listing.Virtual {
			s.exitVirtual()
		} else {
			_ = s.goHome()
		}
		return nil
	case tcell.KeyF5:
		s.refresh()
		return nil
	case tcell.KeyDelete:
		s.removeSelectedRoot()
		return nil
	case tcell.KeyUp:
		if row, _ := s.table.GetSelection(); row <= 1 {
			s.setFocus(s.crumbs)
			return nil
		}
		return event
	case tcell.KeyRune:
		switch unicode.ToLower(event.Rune()) {
		case 'n':
			s.setSortKey(sorting.ByName)
		case 's':
			s.setSortKey(sorting.BySize)
		case 'e':
			s.setSortKey(sorting.ByExtension)
		case 'r':
			s.reverseSort()
		case 'a':
			s.showAddRoot()
		case 'x':
			s.removeSelectedRoot()
		case 'h':
			_ = s.goHome()
		case 'q':
			s.quit()
		default:
			return event
		}
		return nil
	default:
		return event
	}
}

func (s *Screen) itemAt(row int) (listing.Item, bool) {
	ref := s.table.GetCell(row, 0).GetReference()
	item, ok := ref.(listing.Item)
	return item, ok
}

func (s *Screen) activate(row int) {
	item, ok := s.itemAt(row)
	if !ok {
		return
	}
	s.message = ""
	var err error
	switch item.Kind {
	case listing.ItemBack:
		err = s.browser.ExitVirtual()
	case listing.ItemGroup:
		s.lastGroup = item.Group.Name
		err = s.browser.EnterVirtual(item.Group.Name)
	case listing.ItemEntry:
		if !item.Entry.IsDir() {
			s.message = item.Entry.Path()
			break
		}
		err = s.browser.Enter(item.Entry.Path())
	}
	s.render()
	if err != nil {
		s.alert(err)
	}
}

func (s *Screen) goHome() error {
	s.message = ""
	s.browser.RootView()
	s.render()
	return nil
}

func (s *Screen) enter(path string) error {
	s.message = ""
	err := s.browser.Enter(path)
	s.render()
	return err
}

func (s *Screen) goBack() {
	s.message = ""
	l := s.browser.Render()
	switch {
	case l.Mode == listing.Virtual:
		s.exitVirtual()
		return
	case l.IsRootView():
		return
	default:
		s.browser.Back()
	}
	s.render()
}

func (s *Screen) exitVirtual() {
	if err := s.browser.ExitVirtual(); err != nil {
		s.alert(err)
	}
	s.render()
}

func (s *Screen) refresh() {
	s.message = ""
	s.browser.Refresh()
	s.render()
}

func (s *Screen) setSortKey(key sorting.Key) {
	s.applySort(key, s.browser.Sort().Direction)
}

func (s *Screen) reverseSort() {
	st := s.browser.Sort()
	s.applySort(st.Key, st.Direction.Reverse())
}

func (s *Screen) applySort(key sorting.Key, dir sorting.Direction) {
	s.message = ""
	if err := s.browser.SetSort(key, dir); err != nil {
		if errors.Is(err, browser.ErrSortLocked) {
			s.message = "Sorting is fixed inside a group"
		} else {
			s.alert(err)
		}
	}
	s.render()
}

func (s *Screen) removeSelectedRoot() {
	if !s.browser.Controls().RegistryEditable {
		s.message = "Folders can be removed on the " + mainScreenTitle
		s.render()
		return
	}
	row, _ := s.table.GetSelection()
	item, ok := s.itemAt(row)
	if !ok || item.Kind != listing.ItemEntry {
		return
	}
	s.message = ""
	s.browser.RemoveRoot(item.Entry.Path())
	s.render()
}

func (s *Screen) showAddRoot() {
	if !s.browser.Controls().RegistryEditable {
		s.message = "Folders can be added on the " + mainScreenTitle
		s.render()
		return
	}
	input := tview.NewInputField().SetLabel("Folder: ")
	input.SetBorder(true).SetTitle(" Add folder ")
	input.SetDoneFunc(func(key tcell.Key) {
		s.pages.RemovePage(pageAdd)
		s.setFocus(s.table)
		if key != tcell.KeyEnter {
			return
		}
		path := strings.TrimSpace(input.GetText())
		if path == "" {
			return
		}
		err := s.browser.AddRoot(path)
		s.render()
		if err != nil {
			s.alert(err)
		}
	})
	s.pages.AddPage(pageAdd, centered(input, 60, 3), true, true)
	s.setFocus(input)
}

func (s *Screen) alert(err error) {
	modal := tview.NewModal().
		SetText(err.Error()).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			s.pages.RemovePage(pageAlert)
			s.setFocus(s.table)
		})
	s.pages.AddPage(pageAlert, modal, true, true)
	s.setFocus(modal)
}

func (s *Screen) quit() {
	if s.app != nil {
		s.app.Stop()
	}
}

func (s *Screen) onSizeUpdate(e *files.Entry) {
	if s.browser.Sort().Key != sorting.BySize {
		if row := s.rowOf(e); row > 0 {
			s.table.SetCell(row, 1, newSizeCell(e.Size(), Style.DirColor))
			return
		}
	}
	s.render()
}

func (s *Screen) rowOf(e *files.Entry) int {
	for i, item := range s.items {
		if item.Kind == listing.ItemEntry && item.Entry == e {
			return i + 1
		}
	}
	return -1
}

func sameItem(a, b listing.Item) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case listing.ItemEntry:
		return a.Entry == b.Entry
	case listing.ItemGroup:
		return a.Group.Name == b.Group.Name
	default:
		return true
	}
}

func (s *Screen) render() {
	l := s.browser.Render()

	row, _ := s.table.GetSelection()
	previous, hadSelection := s.itemAt(row)

	s.items = l.Items
	s.table.Clear()
	s.table.SetTitle(" " + screenTitle(l) + " ")
	s.table.SetCell(0, 0, headerCell("Name").SetExpansion(1))
	s.table.SetCell(0, 1, headerCell("Size").SetAlign(tview.AlignRight))

	if l.IsEmpty() {
		s.table.SetCell(1, 0, tview.NewTableCell(l.EmptyMessage).
			SetTextColor(Style.EmptyColor).
			SetSelectable(false))
	}
	selectRow := 1
	for i, item := range l.Items {
		s.setRow(i+1, item)
		if hadSelection && sameItem(item, previous) {
			selectRow = i + 1
		}
		if item.Kind == listing.ItemGroup && item.Group.Name == s.lastGroup && l.Mode == listing.Grouped {
			selectRow = i + 1
		}
	}
	if l.Mode != listing.Virtual {
		s.lastGroup = ""
	}
	s.table.Select(selectRow, 0)

	s.renderCrumbs(l)
	s.renderStatus(l)
}

func headerCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).
		SetTextColor(Style.TableHeaderColor).
		SetSelectable(false)
}

func screenTitle(l listing.Listing) string {
	switch {
	case l.Mode == listing.Virtual:
		return l.Group
	case l.IsRootView():
		return mainScreenTitle
	default:
		return filepath.Base(l.Dir)
	}
}

func (s *Screen) setRow(row int, item listing.Item) {
	var name, size *tview.TableCell
	switch item.Kind {
	case listing.ItemBack:
		name = tview.NewTableCell("⬆ " + item.Title()).SetTextColor(Style.DirColor)
		size = tview.NewTableCell("")
	case listing.ItemGroup:
		name = tview.NewTableCell("🗂 " + item.Title()).SetTextColor(Style.GroupColor)
		size = newGroupSizeCell(item.Group)
	default:
		e := item.Entry
		if e.IsDir() {
			name = tview.NewTableCell("📁 " + e.Name()).SetTextColor(Style.DirColor)
			size = newSizeCell(e.Size(), Style.DirColor)
		} else {
			name = tview.NewTableCell("📄 " + e.Name()).SetTextColor(Style.FileColor)
			size = newSizeCell(e.Size(), Style.FileColor)
		}
	}
	name.SetReference(item)
	s.table.SetCell(row, 0, name)
	s.table.SetCell(row, 1, size)
}

func (s *Screen) renderCrumbs(l listing.Listing) {
	s.crumbs.Clear()
	for _, c := range s.browser.Breadcrumbs() {
		path := c.Path
		s.crumbs.Push(crumbs.NewBreadcrumb(c.Title, func() error {
			return s.enter(path)
		}).WithPath(path))
	}
	if l.Mode == listing.Virtual {
		s.crumbs.Push(crumbs.NewBreadcrumb(l.Group, nil).WithColor(Style.GroupColor))
	}
}

func (s *Screen) renderStatus(l listing.Listing) {
	st := s.browser.Sort()
	arrow := "↑"
	if st.Direction == sorting.Descending {
		arrow = "↓"
	}
	var sb strings.Builder
	if s.browser.Controls().SortEnabled {
		_, _ = fmt.Fprintf(&sb, "Sort: %s %s", st.Key, arrow)
	} else {
		_, _ = fmt.Fprintf(&sb, "[gray]Sort: %s %s[-]", st.Key, arrow)
	}
	_, _ = fmt.Fprintf(&sb, " ┊ %s", countText(l))
	if s.message != "" {
		_, _ = fmt.Fprintf(&sb, " ┊ [%s]%s[-]", Style.WarningColor, tview.Escape(s.message))
	}
	s.status.SetText(sb.String())
}

func countText(l listing.Listing) string {
	switch {
	case l.Mode == listing.Grouped:
		return fmt.Sprintf("%d folders, %d groups", len(l.Entries()), len(l.Groups()))
	case l.IsRootView():
		return plural(len(l.Items), "folder")
	default:
		return plural(len(l.Entries()), "item")
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
