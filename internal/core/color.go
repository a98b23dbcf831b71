package core

// Color is a foreground color for a screen cell, mapped to ANSI codes by the host.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
	ColorPink

	ColorCount // number of palette entries
)

// ansi256 holds the 256-color palette index of every Color.
// ColorDefault has no entry and leaves the terminal foreground alone.
var ansi256 = [ColorCount]string{
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
	ColorOrange:        "208",
	ColorGray:          "245",
	ColorBrown:         "130",
	ColorPink:          "218",
}

// ANSI returns the 256-color code of c, or "" for ColorDefault and unknown values.
func (c Color) ANSI() string {
	if c >= ColorCount {
		return ""
	}
	return ansi256[c]
}
