package ui

import "github.com/gdamore/tcell/v2"

type Styles struct {
	FocusedBorderColor tcell.Color
	BlurBorderColor    tcell.Color

	TableHeaderColor tcell.Color
	DirColor         tcell.Color
	FileColor        tcell.Color
	GroupColor       tcell.Color
	EmptyColor       tcell.Color

	// Tag names as used inside tview color tags.
	HotkeyColor  string
	WarningColor string
}

var Style = Styles{
	FocusedBorderColor: tcell.ColorCornflowerBlue,
	BlurBorderColor:    tcell.ColorGray,

	TableHeaderColor: tcell.ColorWhiteSmoke,
	DirColor:         tcell.ColorLightSkyBlue,
	FileColor:        tcell.ColorWhite,
	GroupColor:       tcell.ColorPlum,
	EmptyColor:       tcell.ColorGray,

	HotkeyColor:  "yellow",
	WarningColor: "orange",
}
