package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const (
	minWidth      = 40
	maxLabelWidth = 16
	scatterHeight = 10
	heatCellWidth = 7
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	hintStyle   = dimStyle.Italic(true)
	sparkLevels = []rune("▁▂▃▄▅▆▇█")
)

// Render draws r into w at most width columns wide. Results that are not
// ready render as a single placeholder line.
func Render(w io.Writer, title string, r Result, width int) error {
	_, err := io.WriteString(w, Sprint(title, r, width))
	return err
}

// Sprint is Render into a string.
func Sprint(title string, r Result, width int) string {
	if r.Stage != StageReady {
		return hintStyle.Render(r.Message()) + "\n"
	}
	width = max(width, minWidth)

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title) + "\n")
	}
	switch {
	case r.Kind.categorical() && (r.Kind == Line || r.Kind == Area):
		renderSparklines(&b, r, width)
	case r.Kind.categorical():
		renderBars(&b, r, width)
	case r.Kind == Scatter:
		renderScatter(&b, r, width)
	case r.Kind == Heatmap:
		renderHeatmap(&b, r, width)
	case r.Kind == Pie || r.Kind == Donut:
		renderShares(&b, r, width)
	}
	return b.String()
}

func colored(css string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if hex, ok := Hex(css); ok {
		s = s.Foreground(lipgloss.Color(hex))
	}
	return s
}

func labelWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		w = max(w, runewidth.StringWidth(l))
	}
	return min(w, maxLabelWidth)
}

func pad(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func renderLegend(b *strings.Builder, series []Series) {
	if len(series) < 2 {
		return
	}
	parts := make([]string, len(series))
	for i, s := range series {
		parts[i] = colored(s.Color).Render("■") + " " + s.Label
	}
	b.WriteString(strings.Join(parts, "  ") + "\n")
}

func renderBars(b *strings.Builder, r Result, width int) {
	renderLegend(b, r.Series)
	lw := labelWidth(r.Labels)

	peak := 0.0
	for _, s := range r.Series {
		for _, v := range s.Values {
			peak = math.Max(peak, v)
		}
	}
	barWidth := max(width-lw-10, 4)

	for i, label := range r.Labels {
		for si, s := range r.Series {
			name := strings.Repeat(" ", lw)
			if si == 0 {
				name = pad(label, lw)
			}
			n := 0
			if peak > 0 && s.Values[i] > 0 {
				n = int(math.Round(s.Values[i] / peak * float64(barWidth)))
			}
			bar := colored(s.Color).Render(strings.Repeat("█", n))
			fmt.Fprintf(b, "%s │%s %s\n", name, bar, dimStyle.Render(formatValue(s.Values[i])))
		}
	}
}

func renderSparklines(b *strings.Builder, r Result, width int) {
	names := make([]string, len(r.Series))
	for i, s := range r.Series {
		names[i] = s.Label
	}
	lw := labelWidth(names)
	span := max(width-lw-24, 8)

	for _, s := range r.Series {
		values := s.Values
		if len(values) > span {
			values = values[len(values)-span:]
		}
		lo, hi := bounds(values)
		var line strings.Builder
		for _, v := range values {
			idx := int(math.Round(unit(v, lo, hi) * float64(len(sparkLevels)-1)))
			line.WriteRune(sparkLevels[idx])
		}
		fmt.Fprintf(b, "%s %s %s\n", pad(s.Label, lw), colored(s.Color).Render(line.String()),
			dimStyle.Render(fmt.Sprintf("min %s max %s last %s",
				formatValue(lo), formatValue(hi), formatValue(values[len(values)-1]))))
	}
	if len(r.Labels) > 0 {
		axis := fmt.Sprintf("%s … %s", r.Labels[0], r.Labels[len(r.Labels)-1])
		if len(r.Labels) == 1 {
			axis = r.Labels[0]
		}
		b.WriteString(strings.Repeat(" ", lw+1) + dimStyle.Render(axis) + "\n")
	}
}

func bounds(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func renderScatter(b *strings.Builder, r Result, width int) {
	renderLegend(b, r.Series)

	var xs, ys []float64
	for _, pts := range r.Scatter {
		for _, p := range pts {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	xlo, xhi := bounds(xs)
	ylo, yhi := bounds(ys)
	cols := max(min(width-10, 60), 8)

	grid := make([][]string, scatterHeight)
	for i := range grid {
		grid[i] = make([]string, cols)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}
	for si, pts := range r.Scatter {
		dot := colored(r.Series[si].Color).Render("●")
		for _, p := range pts {
			col := int(math.Round(unit(p.X, xlo, xhi) * float64(cols-1)))
			row := scatterHeight - 1 - int(math.Round(unit(p.Y, ylo, yhi)*float64(scatterHeight-1)))
			grid[row][col] = dot
		}
	}

	for i, row := range grid {
		axis := "        "
		switch i {
		case 0:
			axis = fmt.Sprintf("%8s", formatValue(yhi))
		case scatterHeight - 1:
			axis = fmt.Sprintf("%8s", formatValue(ylo))
		}
		b.WriteString(dimStyle.Render(axis) + "│" + strings.Join(row, "") + "\n")
	}
	b.WriteString(strings.Repeat(" ", 8) + "└" + strings.Repeat("─", cols) + "\n")
	xaxis := fmt.Sprintf("x %s … %s", formatValue(xlo), formatValue(xhi))
	if !r.NumericX {
		xaxis += " (point order)"
	}
	b.WriteString(strings.Repeat(" ", 9) + dimStyle.Render(xaxis) + "\n")
}

func renderHeatmap(b *strings.Builder, r Result, width int) {
	names := make([]string, len(r.Series))
	for i, s := range r.Series {
		names[i] = s.Label
	}
	lw := labelWidth(names)
	cols := max(min(r.Columns, (width-lw-1)/heatCellWidth), 1)

	header := strings.Repeat(" ", lw+1)
	for _, l := range r.Labels[:cols] {
		header += pad(" "+l, heatCellWidth)
	}
	b.WriteString(dimStyle.Render(header) + "\n")

	for row, s := range r.Series {
		line := pad(s.Label, lw) + " "
		for _, c := range r.Cells {
			if c.Y != row || c.X >= cols {
				continue
			}
			style := lipgloss.NewStyle().Width(heatCellWidth).Align(lipgloss.Center).
				Foreground(lipgloss.Color("#0F172A"))
			if hex, ok := Hex(c.Color); ok {
				style = style.Background(lipgloss.Color(hex))
			}
			line += style.Render(formatValue(c.Value))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("low %s  high %s", formatValue(r.HeatMin), formatValue(r.HeatMax))) + "\n")
}

func renderShares(b *strings.Builder, r Result, width int) {
	labels := make([]string, len(r.Slices))
	total := 0.0
	for i, s := range r.Slices {
		labels[i] = s.Name
		total += math.Max(s.Value, 0)
	}
	lw := labelWidth(labels)
	barWidth := max(width-lw-16, 4)

	glyph := "●"
	if r.Kind == Donut {
		glyph = "○"
	}
	for _, s := range r.Slices {
		share := 0.0
		if total > 0 && s.Value > 0 {
			share = s.Value / total
		}
		style := colored(s.Color)
		bar := style.Render(strings.Repeat("█", int(math.Round(share*float64(barWidth)))))
		fmt.Fprintf(b, "%s %s %5.1f%% %s\n", style.Render(glyph), pad(s.Name, lw), share*100, bar)
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s total", formatValue(total))) + "\n")
}
