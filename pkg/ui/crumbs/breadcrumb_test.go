package crumbs

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestNewBreadcrumb(t *testing.T) {
	t.Parallel()
	t.Run("with_action", func(t *testing.T) {
		called := false
		c := NewBreadcrumb("Docs", func() error {
			called = true
			return nil
		})
		assert.Equal(t, "Docs", c.Title)
		assert.Equal(t, tcell.ColorDefault, c.Color)
		assert.True(t, c.Clickable())
		assert.NoError(t, c.Activate())
		assert.True(t, called)
	})

	t.Run("without_action", func(t *testing.T) {
		c := NewBreadcrumb("Images", nil)
		assert.False(t, c.Clickable())
		assert.NoError(t, c.Activate())
	})

	t.Run("with_error_action", func(t *testing.T) {
		expectedErr := errors.New("test error")
		c := NewBreadcrumb("gone", func() error { return expectedErr })
		assert.Equal(t, expectedErr, c.Activate())
	})
}

func TestBreadcrumb_With(t *testing.T) {
	t.Parallel()
	c := NewBreadcrumb("Docs", nil).
		WithPath("/home/u/Docs").
		WithColor(tcell.ColorRed)
	assert.Equal(t, "/home/u/Docs", c.Path)
	assert.Equal(t, tcell.ColorRed, c.Color)
}

func TestBreadcrumbs_NonClickableCrumbIgnoresEnter(t *testing.T) {
	var got error
	bc := NewBreadcrumbs(NewBreadcrumb("Main Screen", nil), WithOnError(func(err error) { got = err }))
	bc.Push(NewBreadcrumb("Images", nil))
	bc.selectedItemIndex = 1
	bc.trigger(1)
	assert.NoError(t, got)
	assert.Equal(t, 1, bc.SelectedIndex())
}
