package core

// Color is a foreground color for a screen cell.
type Color uint8

// Cell colors. The platform maps them to terminal colors.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorWhite
	ColorGray
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange

	ColorCount // Number of colors; not a color
)

// ansiCodes holds the ANSI 256-color code of every color.
var ansiCodes = [ColorCount]string{
	ColorGreen:        "2",
	ColorYellow:       "3",
	ColorWhite:        "7",
	ColorGray:         "245",
	ColorBrightRed:    "9",
	ColorBrightGreen:  "10",
	ColorBrightYellow: "11",
	ColorBrightWhite:  "15",
	ColorOrange:       "208",
}

// ANSI returns the ANSI 256-color code of c, or "" for the terminal's
// default foreground.
func (c Color) ANSI() string {
	if c >= ColorCount {
		return ""
	}
	return ansiCodes[c]
}
