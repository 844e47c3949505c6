// Package chart turns loosely specified chart requests into aligned,
// render-ready series and draws them in the terminal.
package chart

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind is a chart type.
type Kind string

const (
	Bar       Kind = "bar"
	Line      Kind = "line"
	Area      Kind = "area"
	Histogram Kind = "histogram"
	Pie       Kind = "pie"
	Donut     Kind = "donut"
	Scatter   Kind = "scatter"
	Heatmap   Kind = "heatmap"
)

// Kinds lists every supported chart type.
func Kinds() []Kind {
	return []Kind{Bar, Line, Pie, Area, Donut, Scatter, Histogram, Heatmap}
}

// Supported reports whether k is a chart type the normalizer can shape.
func (k Kind) Supported() bool {
	for _, s := range Kinds() {
		if k == s {
			return true
		}
	}
	return false
}

func (k Kind) categorical() bool {
	return k == Bar || k == Line || k == Area || k == Histogram
}

// Dataset is one named series of values.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	Color string    `json:"color,omitempty"`
}

// Data is a chart request.
type Data struct {
	Type     Kind      `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Decode parses a chart request without failing. It returns nil when raw
// is empty, null or not a JSON object. Fields with the wrong shape are
// left empty so Normalize reports the matching stage; numeric labels are
// converted to strings.
func Decode(raw []byte) *Data {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil
	}

	d := &Data{}
	var kind string
	if json.Unmarshal(fields["type"], &kind) == nil {
		d.Type = Kind(kind)
	}
	d.Labels = decodeLabels(fields["labels"])

	var sets []json.RawMessage
	if json.Unmarshal(fields["datasets"], &sets) == nil {
		d.Datasets = make([]Dataset, 0, len(sets))
		for _, s := range sets {
			d.Datasets = append(d.Datasets, decodeDataset(s))
		}
	}
	return d
}

func decodeLabels(raw json.RawMessage) []string {
	var items []any
	if json.Unmarshal(raw, &items) != nil || items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			return nil
		}
	}
	return out
}

// decodeDataset keeps the label and color of a malformed dataset but drops
// its data, which makes it invalid rather than fatal.
func decodeDataset(raw json.RawMessage) Dataset {
	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) != nil {
		return Dataset{}
	}
	var ds Dataset
	_ = json.Unmarshal(fields["label"], &ds.Label)
	_ = json.Unmarshal(fields["color"], &ds.Color)

	var values []float64
	if json.Unmarshal(fields["data"], &values) == nil {
		ds.Data = values
	}
	return ds
}
