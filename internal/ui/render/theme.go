package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background    tcell.Color
	Foreground    tcell.Color
	HiddenFg      tcell.Color
	SelectionBg   tcell.Color
	SelectionFg   tcell.Color
	DirectoryFg   tcell.Color
	SymlinkFg     tcell.Color
	FileFg        tcell.Color
	UnreadableFg  tcell.Color
	ColumnFg      tcell.Color
	MatchFg       tcell.Color
	FooterBg      tcell.Color
	FooterFg      tcell.Color
	ErrorFg       tcell.Color
	DetailLabelFg tcell.Color
	FlashBg       tcell.Color
	FlashFg       tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:    tcell.ColorDefault,
		Foreground:    tcell.ColorDefault,
		HiddenFg:      tcell.ColorLightSlateGray,
		SelectionBg:   tcell.Color33,
		SelectionFg:   tcell.ColorWhite,
		DirectoryFg:   tcell.Color33,
		SymlinkFg:     tcell.Color51,
		FileFg:        tcell.ColorDefault,
		UnreadableFg:  tcell.Color214, // amber, matches the ⚠️ icon
		ColumnFg:      tcell.ColorLightSlateGray,
		MatchFg:       tcell.Color220,
		FooterBg:      tcell.ColorDefault,
		FooterFg:      tcell.ColorDefault,
		ErrorFg:       tcell.ColorRed,
		DetailLabelFg: tcell.Color44,
		FlashBg:       tcell.ColorGreen,
		FlashFg:       tcell.ColorBlack,
	}
}
