package crumbs

import "github.com/gdamore/tcell/v2"

type Option func(bc *Breadcrumbs)

func WithSeparator(separator string) Option {
	return func(bc *Breadcrumbs) {
		bc.separator = separator
	}
}

// WithOnError receives errors returned by crumb actions triggered from
// the keyboard or the mouse.
func WithOnError(onError func(error)) Option {
	return func(bc *Breadcrumbs) {
		bc.onError = onError
	}
}

func WithSelectedColor(color tcell.Color) Option {
	return func(bc *Breadcrumbs) {
		bc.selectedColor = color
	}
}
