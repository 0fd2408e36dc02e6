package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background       tcell.Color
	Foreground       tcell.Color
	HeaderBg         tcell.Color
	HeaderFg         tcell.Color
	SelectionBg      tcell.Color
	SelectionFg      tcell.Color
	DirectoryFg      tcell.Color
	FileFg           tcell.Color
	NonMatchingFg    tcell.Color
	FooterBg         tcell.Color
	FooterFg         tcell.Color
	ErrorFg          tcell.Color
	ButtonFg         tcell.Color
	ButtonDisabledFg tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:       tcell.ColorDefault,
		Foreground:       tcell.ColorDefault,
		HeaderBg:         tcell.ColorDefault,
		HeaderFg:         tcell.ColorDefault,
		SelectionBg:      tcell.Color33,
		SelectionFg:      tcell.ColorWhite,
		DirectoryFg:      tcell.Color33,
		FileFg:           tcell.ColorDefault,
		NonMatchingFg:    tcell.ColorLightSlateGray,
		FooterBg:         tcell.ColorDefault,
		FooterFg:         tcell.ColorDefault,
		ErrorFg:          tcell.ColorRed,
		ButtonFg:         tcell.Color33,
		ButtonDisabledFg: tcell.ColorLightSlateGray,
	}
}
