package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func labelsN(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + i))
	}
	return out
}

func TestNormalizeStages(t *testing.T) {
	valid := []Dataset{{Label: "s", Data: []float64{1}}}
	tests := []struct {
		name    string
		data    *Data
		stage   Stage
		message string
	}{
		{"nil", nil, StageAwaitingData, "Awaiting data..."},
		{"no type", &Data{Labels: []string{"a"}, Datasets: valid}, StageBuilding, "Building chart..."},
		{"no labels", &Data{Type: Bar, Datasets: valid}, StageBuilding, "Building chart..."},
		{"no datasets", &Data{Type: Bar, Labels: []string{"a"}}, StageBuilding, "Building chart..."},
		{"unlabeled dataset", &Data{Type: Bar, Labels: []string{"a"}, Datasets: []Dataset{{Data: []float64{1}}}}, StagePreparing, "Preparing datasets..."},
		{"empty data", &Data{Type: Bar, Labels: []string{"a"}, Datasets: []Dataset{{Label: "s"}}}, StagePreparing, "Preparing datasets..."},
		{"unknown type", &Data{Type: "radar", Labels: []string{"a"}, Datasets: valid}, StageUnsupported, "Unsupported chart type: radar"},
		{"unknown type without data", &Data{Type: "radar", Labels: []string{"a"}, Datasets: []Dataset{{Label: "s"}}}, StagePreparing, "Preparing datasets..."},
		{"ready", &Data{Type: Bar, Labels: []string{"a"}, Datasets: valid}, StageReady, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Normalize(tt.data)
			assert.Equal(t, tt.stage, r.Stage)
			assert.Equal(t, tt.message, r.Message())
		})
	}
}

func TestNormalizeTruncatesToShortestSeries(t *testing.T) {
	r := Normalize(&Data{
		Type:   Line,
		Labels: labelsN(10),
		Datasets: []Dataset{
			{Label: "a", Data: seq(7)},
			{Label: "b", Data: seq(9)},
		},
	})
	require.Equal(t, StageReady, r.Stage)
	assert.Equal(t, 7, r.Points)
	assert.Len(t, r.Rows, 7)
	assert.Len(t, r.Labels, 7)
	for _, s := range r.Series {
		assert.Len(t, s.Values, 7)
	}
	assert.Equal(t, Row{Name: "G", Values: map[string]float64{"a": 7, "b": 7}}, r.Rows[6])
}

func TestNormalizeSeriesColors(t *testing.T) {
	r := Normalize(&Data{
		Type:   Bar,
		Labels: []string{"x"},
		Datasets: []Dataset{
			{Label: "skipped"},
			{Label: "first", Data: []float64{1}},
			{Label: "custom", Data: []float64{2}, Color: "#ff0000"},
			{Label: "third", Data: []float64{3}},
		},
	})
	require.Len(t, r.Series, 3)
	assert.Equal(t, Palette[0], r.Series[0].Color)
	assert.Equal(t, "#ff0000", r.Series[1].Color)
	assert.Equal(t, Palette[2], r.Series[2].Color)
}

func TestRowMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(Row{Name: "Mon", Values: map[string]float64{"Physics": 3}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Mon","Physics":3}`, string(raw))
}

func TestNormalizeScatter(t *testing.T) {
	t.Run("numeric labels", func(t *testing.T) {
		r := Normalize(&Data{
			Type:     Scatter,
			Labels:   []string{"1", " 2.5 ", "4"},
			Datasets: []Dataset{{Label: "s", Data: []float64{10, 20, 30}}},
		})
		require.True(t, r.NumericX)
		assert.Equal(t, []ScatterPoint{
			{X: 1, Y: 10, Label: "1", Series: "s"},
			{X: 2.5, Y: 20, Label: " 2.5 ", Series: "s"},
			{X: 4, Y: 30, Label: "4", Series: "s"},
		}, r.Scatter[0])
	})

	t.Run("any non-numeric label uses positions", func(t *testing.T) {
		r := Normalize(&Data{
			Type:     Scatter,
			Labels:   []string{"5", "6", "late"},
			Datasets: []Dataset{{Label: "s", Data: []float64{10, 20}}},
		})
		require.False(t, r.NumericX)
		require.Len(t, r.Scatter[0], 2)
		assert.Equal(t, 1.0, r.Scatter[0][0].X)
		assert.Equal(t, 2.0, r.Scatter[0][1].X)
	})

	t.Run("blank label is not numeric", func(t *testing.T) {
		r := Normalize(&Data{
			Type:     Scatter,
			Labels:   []string{"1", ""},
			Datasets: []Dataset{{Label: "s", Data: []float64{1, 2}}},
		})
		assert.False(t, r.NumericX)
	})
}

func TestNormalizeHeatmap(t *testing.T) {
	r := Normalize(&Data{
		Type:   Heatmap,
		Labels: []string{"W1", "W2"},
		Datasets: []Dataset{
			{Label: "Mechanics", Data: []float64{10, 20}},
			{Label: "Calculus", Data: []float64{30, 40}},
		},
	})
	require.Len(t, r.Cells, 4)
	assert.Equal(t, 2, r.Columns)
	assert.Equal(t, 10.0, r.HeatMin)
	assert.Equal(t, 40.0, r.HeatMax)
	assert.Equal(t, HeatCell{X: 0, Y: 0, Value: 10, XLabel: "W1", YLabel: "Mechanics", Color: "hsl(12 70% 50%)"}, r.Cells[0])
	assert.Equal(t, "hsl(52 70% 50%)", r.Cells[1].Color)
	assert.Equal(t, HeatCell{X: 1, Y: 1, Value: 40, XLabel: "W2", YLabel: "Calculus", Color: "hsl(132 70% 50%)"}, r.Cells[3])

	flat := Normalize(&Data{
		Type:     Heatmap,
		Labels:   []string{"W1", "W2"},
		Datasets: []Dataset{{Label: "x", Data: []float64{5, 5}}},
	})
	for _, c := range flat.Cells {
		assert.Equal(t, "hsl(12 70% 50%)", c.Color)
	}
}

func TestNormalizeHeatmapExtremeRange(t *testing.T) {
	r := Normalize(&Data{
		Type:     Heatmap,
		Labels:   []string{"W1", "W2"},
		Datasets: []Dataset{{Label: "x", Data: []float64{1.7e308, -1.7e308}}},
	})
	require.Len(t, r.Cells, 2)
	assert.Equal(t, "hsl(132 70% 50%)", r.Cells[0].Color)
	assert.Equal(t, "hsl(12 70% 50%)", r.Cells[1].Color)
}

func TestUnit(t *testing.T) {
	tests := []struct {
		v, lo, hi float64
		want      float64
	}{
		{5, 0, 10, 0.5},
		{5, 5, 5, 0},
		{1.7e308, -1.7e308, 1.7e308, 1},
		{0, -1.7e308, 1.7e308, 0.5},
		{20, 0, 10, 1},
		{-3, 0, 10, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, unit(tt.v, tt.lo, tt.hi), 1e-9, "%v in [%v, %v]", tt.v, tt.lo, tt.hi)
	}
}

func TestNormalizePie(t *testing.T) {
	for _, kind := range []Kind{Pie, Donut} {
		r := Normalize(&Data{
			Type:   kind,
			Labels: []string{"Physics", "Math", "Chemistry"},
			Datasets: []Dataset{
				{Label: "broken"},
				{Label: "hours", Data: []float64{4, 3, 2}, Color: "#123456"},
				{Label: "ignored", Data: []float64{9, 9, 9}},
			},
		})
		require.Equal(t, StageReady, r.Stage, kind)
		assert.Equal(t, []Slice{
			{Name: "Physics", Value: 4, Color: Palette[0]},
			{Name: "Math", Value: 3, Color: Palette[1]},
			{Name: "Chemistry", Value: 2, Color: Palette[2]},
		}, r.Slices, kind)
	}
}

func TestDecode(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "[1,2]", `"bar"`, "{bad"} {
		assert.Nil(t, Decode([]byte(raw)), raw)
	}

	d := Decode([]byte(`{"type":"bar","labels":[1,"two",3.5],"datasets":[{"label":"a","data":[1,2,3]},{"label":"b","data":["x"]}]}`))
	require.NotNil(t, d)
	assert.Equal(t, Bar, d.Type)
	assert.Equal(t, []string{"1", "two", "3.5"}, d.Labels)
	require.Len(t, d.Datasets, 2)
	assert.Nil(t, d.Datasets[1].Data)

	r := Normalize(d)
	assert.Equal(t, StageReady, r.Stage)
	assert.Len(t, r.Series, 1)

	mixed := Decode([]byte(`{"type":"bar","labels":["a",{}],"datasets":[{"label":"a","data":[1]}]}`))
	assert.Equal(t, StageBuilding, Normalize(mixed).Stage)

	partial := Decode([]byte(`{"type":"pie"}`))
	assert.Equal(t, StageBuilding, Normalize(partial).Stage)
}
