package chart

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the default series color cycle.
var Palette = []string{
	"hsl(220, 100%, 62%)", // blue
	"hsl(160, 82%, 47%)",  // green
	"hsl(32, 100%, 62%)",  // orange
	"hsl(340, 82%, 66%)",  // pink
}

// PaletteColor returns the palette entry for position i.
func PaletteColor(i int) string {
	return Palette[i%len(Palette)]
}

// HeatColor maps a 0..1 intensity onto hues 12 (red) through 132 (green).
func HeatColor(ratio float64) string {
	hue := int(math.Floor(12 + ratio*120 + 0.5))
	return fmt.Sprintf("hsl(%d 70%% 50%%)", hue)
}

var hslPattern = regexp.MustCompile(`^hsl\(\s*([\d.]+)(?:deg)?[\s,]+([\d.]+)%[\s,]+([\d.]+)%\s*\)$`)

// Hex converts a CSS color (#rgb, #rrggbb or hsl()) into #rrggbb for the
// terminal. ok is false for anything else.
func Hex(css string) (hex string, ok bool) {
	if m := hslPattern.FindStringSubmatch(css); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		s, _ := strconv.ParseFloat(m[2], 64)
		l, _ := strconv.ParseFloat(m[3], 64)
		return colorful.Hsl(math.Mod(h, 360), s/100, l/100).Clamped().Hex(), true
	}
	c, err := colorful.Hex(css)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}
