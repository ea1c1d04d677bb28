// Package ui is the terminal front-end of foldertug built on tview.
package ui

import (
	"github.com/filetug/foldertug/pkg/browser"
	"github.com/filetug/foldertug/pkg/dirsize"
	"github.com/rivo/tview"
)

// Executor posts size results to the tview event loop.
// QueueUpdateDraw blocks once the loop stops, so each post gets its own goroutine.
func Executor(app *tview.Application) dirsize.Executor {
	return func(fn func()) {
		go func() {
			_ = app.QueueUpdateDraw(fn)
		}()
	}
}

// SetupApp attaches a folder browser screen to app.
func SetupApp(app *tview.Application, b *browser.Browser) *Screen {
	s := NewScreen(app, b)
	app.EnableMouse(true)
	app.SetRoot(s.Root(), true)
	app.SetFocus(s.table)
	return s
}
