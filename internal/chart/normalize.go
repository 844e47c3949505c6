package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stage is how far a chart request got through validation.
type Stage int

const (
	// StageAwaitingData means no request was given at all.
	StageAwaitingData Stage = iota
	// StageBuilding means type, labels or datasets is missing or empty.
	StageBuilding
	// StagePreparing means no dataset has both a label and data.
	StagePreparing
	// StageUnsupported means the data is usable but the type is unknown.
	StageUnsupported
	// StageReady means the result holds shaped data for the chart type.
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingData:
		return "awaiting-data"
	case StageBuilding:
		return "building"
	case StagePreparing:
		return "preparing"
	case StageUnsupported:
		return "unsupported"
	case StageReady:
		return "ready"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Series is a valid dataset truncated to the usable point count, with its
// color resolved.
type Series struct {
	Label  string
	Color  string
	Values []float64
}

// Row is one label of a categorical chart with each series' value keyed by
// series label.
type Row struct {
	Name   string
	Values map[string]float64
}

// MarshalJSON flattens the row into {"name": ..., "<series>": value}.
func (r Row) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		m[k] = v
	}
	m["name"] = r.Name
	return json.Marshal(m)
}

// ScatterPoint is one point of a scatter series.
type ScatterPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Label  string  `json:"label"`
	Series string  `json:"series"`
}

// HeatCell is one heatmap cell. X is the column (label) index and Y the
// row (dataset) index.
type HeatCell struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Value  float64 `json:"value"`
	XLabel string  `json:"xLabel"`
	YLabel string  `json:"yLabel"`
	Color  string  `json:"color"`
}

// Slice is one wedge of a pie or donut chart.
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Result is the normalized form of a chart request. Only the fields for
// Kind are populated, and only when Stage is StageReady.
type Result struct {
	Stage  Stage
	Kind   Kind
	Labels []string // truncated to Points
	Points int
	Series []Series

	Rows []Row // bar, line, area, histogram

	Scatter  [][]ScatterPoint // one slice per series
	NumericX bool

	Cells            []HeatCell
	HeatMin, HeatMax float64
	Columns          int

	Slices []Slice // pie, donut
}

// Message is the placeholder text for a result that is not ready.
func (r Result) Message() string {
	switch r.Stage {
	case StageAwaitingData:
		return "Awaiting data..."
	case StageBuilding:
		return "Building chart..."
	case StagePreparing:
		return "Preparing datasets..."
	case StageUnsupported:
		return fmt.Sprintf("Unsupported chart type: %s", r.Kind)
	}
	return ""
}

// Normalize validates d in stages and reshapes it for its chart type.
// It never fails: an incomplete request yields the stage it stopped at.
func Normalize(d *Data) Result {
	if d == nil {
		return Result{Stage: StageAwaitingData}
	}
	res := Result{Kind: d.Type}
	if d.Type == "" || len(d.Labels) == 0 || len(d.Datasets) == 0 {
		res.Stage = StageBuilding
		return res
	}

	var valid []Dataset
	for _, ds := range d.Datasets {
		if ds.Label != "" && len(ds.Data) > 0 {
			valid = append(valid, ds)
		}
	}
	if len(valid) == 0 {
		res.Stage = StagePreparing
		return res
	}

	points := len(d.Labels)
	for _, ds := range valid {
		points = min(points, len(ds.Data))
	}

	if !d.Type.Supported() {
		res.Stage = StageUnsupported
		return res
	}

	res.Stage = StageReady
	res.Points = points
	res.Labels = append([]string(nil), d.Labels[:points]...)
	res.Series = make([]Series, len(valid))
	for i, ds := range valid {
		color := ds.Color
		if color == "" {
			color = PaletteColor(i)
		}
		res.Series[i] = Series{
			Label:  ds.Label,
			Color:  color,
			Values: append([]float64(nil), ds.Data[:points]...),
		}
	}

	switch {
	case d.Type.categorical():
		res.Rows = categoricalRows(res.Labels, res.Series)
	case d.Type == Scatter:
		res.Scatter, res.NumericX = scatterSeries(d.Labels, res.Series)
	case d.Type == Heatmap:
		res.Cells, res.HeatMin, res.HeatMax = heatCells(res.Labels, res.Series)
		res.Columns = points
	case d.Type == Pie || d.Type == Donut:
		res.Slices = pieSlices(res.Labels, res.Series[0])
	}
	return res
}

func categoricalRows(labels []string, series []Series) []Row {
	rows := make([]Row, len(labels))
	for i, label := range labels {
		values := make(map[string]float64, len(series))
		for _, s := range series {
			values[s.Label] = s.Values[i]
		}
		rows[i] = Row{Name: label, Values: values}
	}
	return rows
}

// scatterSeries places points at their numeric label when every label
// (including the truncated ones) is a finite number, and at the 1-based
// index otherwise.
func scatterSeries(allLabels []string, series []Series) ([][]ScatterPoint, bool) {
	xs := make([]float64, len(allLabels))
	numeric := true
	for i, l := range allLabels {
		v, ok := parseNumber(l)
		if !ok {
			numeric = false
			break
		}
		xs[i] = v
	}

	out := make([][]ScatterPoint, len(series))
	for si, s := range series {
		pts := make([]ScatterPoint, len(s.Values))
		for i, y := range s.Values {
			x := float64(i + 1)
			if numeric {
				x = xs[i]
			}
			pts[i] = ScatterPoint{X: x, Y: y, Label: allLabels[i], Series: s.Label}
		}
		out[si] = pts
	}
	return out, numeric
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// unit places v within [lo, hi] as a ratio in 0..1. Ranges too wide to
// subtract are halved first; an empty range maps to 0.
func unit(v, lo, hi float64) float64 {
	r := (v - lo) / (hi - lo)
	if math.IsInf(hi-lo, 0) {
		r = (v/2 - lo/2) / (hi/2 - lo/2)
	}
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	return math.Min(r, 1)
}

func heatCells(labels []string, series []Series) ([]HeatCell, float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	var cells []HeatCell
	for row, s := range series {
		for col, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			cells = append(cells, HeatCell{X: col, Y: row, Value: v, XLabel: labels[col], YLabel: s.Label})
		}
	}

	for i := range cells {
		cells[i].Color = HeatColor(unit(cells[i].Value, lo, hi))
	}
	return cells, lo, hi
}

// pieSlices colors wedges by point index; the dataset color is not used.
func pieSlices(labels []string, s Series) []Slice {
	slices := make([]Slice, len(s.Values))
	for i, v := range s.Values {
		slices[i] = Slice{Name: labels[i], Value: v, Color: PaletteColor(i)}
	}
	return slices
}
