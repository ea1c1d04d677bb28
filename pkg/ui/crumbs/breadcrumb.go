package crumbs

import "github.com/gdamore/tcell/v2"

// Breadcrumb is one step of a Breadcrumbs bar.
// A crumb without an activate func is drawn but ignores clicks and Enter.
type Breadcrumb struct {
	Title string
	// Path is the folder the crumb leads to, empty for non-folder steps.
	Path     string
	Color    tcell.Color
	activate func() error
}

func NewBreadcrumb(title string, activate func() error) *Breadcrumb {
	return &Breadcrumb{Title: title, Color: tcell.ColorDefault, activate: activate}
}

// WithPath records the folder the crumb leads to.
func (c *Breadcrumb) WithPath(path string) *Breadcrumb {
	c.Path = path
	return c
}

func (c *Breadcrumb) WithColor(color tcell.Color) *Breadcrumb {
	c.Color = color
	return c
}

func (c *Breadcrumb) Clickable() bool {
	return c.activate != nil
}

// Activate runs the crumb's action. Non-clickable crumbs return nil.
func (c *Breadcrumb) Activate() error {
	if c.activate == nil {
		return nil
	}
	return c.activate()
}
