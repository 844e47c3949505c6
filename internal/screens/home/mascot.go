package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemcoach/internal/readiness"
	"github.com/abhisek/stemcoach/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // no quiz data yet, or on track
	MascotCelebrating                      // exam ready
	MascotAlert                            // needs focus
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ∑∫π │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ∑∫π │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ∑∫π │
└─────┘`

// variantFor picks the mascot for a readiness result.
func variantFor(r readiness.Result) MascotVariant {
	switch r.Status {
	case readiness.StatusExamReady:
		return MascotCelebrating
	case readiness.StatusBuilding, readiness.StatusNeedsFocus:
		return MascotAlert
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Secondary
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
