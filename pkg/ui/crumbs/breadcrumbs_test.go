package crumbs

import (
	"errors"
	"strings"
	"testing"

	"github.com/filetug/foldertug/pkg/ui/ttestutils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

func newTrail(actions *[]string) *Breadcrumbs {
	record := func(title string) func() error {
		return func() error {
			*actions = append(*actions, title)
			return nil
		}
	}
	bc := NewBreadcrumbs(NewBreadcrumb("Main Screen", record("Main Screen")))
	bc.Push(NewBreadcrumb("Docs", record("Docs")))
	bc.Push(NewBreadcrumb("2024", record("2024")))
	return bc
}

func TestBreadcrumbs_PushClear(t *testing.T) {
	t.Parallel()
	var actions []string
	bc := newTrail(&actions)
	assert.Equal(t, []string{"Main Screen", "Docs", "2024"}, bc.Titles())
	assert.True(t, bc.IsLastItemSelected())

	bc.Clear()
	assert.Equal(t, []string{"Main Screen"}, bc.Titles())
	assert.Equal(t, 0, bc.SelectedIndex())
	assert.Len(t, bc.Items(), 1)
}

func TestBreadcrumbs_GoHome(t *testing.T) {
	t.Parallel()
	var actions []string
	bc := newTrail(&actions)
	assert.NoError(t, bc.GoHome())
	assert.Equal(t, []string{"Main Screen"}, actions)

	assert.NoError(t, NewBreadcrumbs(nil).GoHome())
}

func TestBreadcrumbs_Draw(t *testing.T) {
	t.Parallel()
	var actions []string
	bc := newTrail(&actions)

	const width = 40
	s := ttestutils.NewSimScreen(t, "UTF-8", width, 1)
	defer s.Fini()

	bc.SetRect(0, 0, width, 1)
	bc.Draw(s)
	line := strings.TrimRight(ttestutils.ReadLine(s, 0, width), " ")
	assert.Equal(t, "Main Screen > Docs > 2024", line)

	t.Run("truncated", func(t *testing.T) {
		bc.SetRect(0, 0, 8, 1)
		s.Clear()
		bc.Draw(s)
		assert.Equal(t, "Main Scr", ttestutils.ReadLine(s, 0, 8))
	})

	t.Run("zero_width", func(t *testing.T) {
		bc.SetRect(0, 0, 0, 1)
		bc.Draw(s)
	})
}

func TestBreadcrumbs_InputHandler(t *testing.T) {
	t.Parallel()
	var actions []string
	bc := newTrail(&actions)
	handler := bc.InputHandler()
	key := func(k tcell.Key) {
		handler(tcell.NewEventKey(k, 0, tcell.ModNone), func(p tview.Primitive) {})
	}

	key(tcell.KeyLeft)
	key(tcell.KeyEnter)
	assert.Equal(t, []string{"Docs"}, actions)

	key(tcell.KeyHome)
	key(tcell.KeyLeft)
	assert.Equal(t, 0, bc.SelectedIndex())

	key(tcell.KeyEnd)
	key(tcell.KeyRight)
	assert.Equal(t, 2, bc.SelectedIndex())

	t.Run("tab_moves_focus", func(t *testing.T) {
		target := tview.NewBox()
		bc.SetNextFocusTarget(target)
		var focused tview.Primitive
		handler(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), func(p tview.Primitive) { focused = p })
		assert.Equal(t, target, focused)
	})

	t.Run("empty", func(t *testing.T) {
		empty := NewBreadcrumbs(nil)
		empty.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), nil)
	})
}

func TestBreadcrumbs_ActionError(t *testing.T) {
	t.Parallel()
	expectedErr := errors.New("not there")
	var got error
	bc := NewBreadcrumbs(NewBreadcrumb("Main Screen", nil), WithOnError(func(err error) { got = err }))
	bc.Push(NewBreadcrumb("gone", func() error { return expectedErr }))
	bc.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), nil)
	assert.Equal(t, expectedErr, got)
}

func TestBreadcrumbs_MouseHandler(t *testing.T) {
	t.Parallel()
	var actions []string
	bc := newTrail(&actions)
	bc.SetRect(0, 0, 40, 1)
	handler := bc.MouseHandler()

	var focused tview.Primitive
	setFocus := func(p tview.Primitive) { focused = p }

	// "Main Screen" spans 0-10, " > " 11-13, "Docs" 14-17.
	consumed, _ := handler(tview.MouseLeftClick, tcell.NewEventMouse(15, 0, tcell.Button1, 0), setFocus)
	assert.True(t, consumed)
	assert.Equal(t, bc, focused)
	assert.Equal(t, []string{"Docs"}, actions)
	assert.Equal(t, 1, bc.SelectedIndex())

	t.Run("separator", func(t *testing.T) {
		consumed, _ := handler(tview.MouseLeftClick, tcell.NewEventMouse(12, 0, tcell.Button1, 0), setFocus)
		assert.True(t, consumed)
		assert.Equal(t, []string{"Docs"}, actions)
	})

	t.Run("left_down_selects_only", func(t *testing.T) {
		consumed, _ := handler(tview.MouseLeftDown, tcell.NewEventMouse(2, 0, tcell.Button1, 0), setFocus)
		assert.True(t, consumed)
		assert.Equal(t, 0, bc.SelectedIndex())
		assert.Equal(t, []string{"Docs"}, actions)
	})

	t.Run("outside", func(t *testing.T) {
		consumed, _ := handler(tview.MouseLeftClick, tcell.NewEventMouse(2, 3, tcell.Button1, 0), setFocus)
		assert.False(t, consumed)
	})

	t.Run("move", func(t *testing.T) {
		consumed, _ := handler(tview.MouseMove, tcell.NewEventMouse(2, 0, tcell.ButtonNone, 0), setFocus)
		assert.False(t, consumed)
	})
}

func TestBreadcrumbs_FocusBlur(t *testing.T) {
	t.Parallel()
	var actions []string
	bc := newTrail(&actions)

	bc.Focus(func(p tview.Primitive) {})
	assert.Equal(t, 1, bc.SelectedIndex(), "focus selects the parent crumb")
	assert.True(t, bc.HasFocus())

	bc.Blur()
	assert.True(t, bc.IsLastItemSelected())
	assert.False(t, bc.HasFocus())

	single := NewBreadcrumbs(NewBreadcrumb("Main Screen", nil))
	single.Focus(func(p tview.Primitive) {})
	assert.Equal(t, 0, single.SelectedIndex())
}
