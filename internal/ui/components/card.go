package components

import "github.com/abhisek/stemcoach/internal/ui/theme"

// ContentWidth returns the uniform inner width used for stacked cards so
// they visually align.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 30 {
		w = 30
	}
	return w
}

// Card wraps content in a rounded-border card of the given outer width with
// an optional heading.
func Card(heading, content string, width int) string {
	if heading != "" {
		content = theme.Label.Render(heading) + "\n" + content
	}
	return theme.Card.Width(width).Render(content)
}
