package chart

import (
	"fmt"
	"slices"
)

const (
	DefaultTotalDays = 30
	MaxTotalDays     = 60
	defaultDemoCount = 12
	completedColor   = "hsl(160, 82%, 47%)"
)

// CompletionInput describes a daily completion tracker. Nil pointers take
// their defaults: 30 days, 12 sample days and demo data allowed.
type CompletionInput struct {
	Title          string
	TotalDays      int
	CompletedDays  []int
	CompletedCount *int
	DemoAllowed    *bool
}

// Completion is a completion tracker ready to normalize and render.
type Completion struct {
	Title     string
	Data      *Data
	Days      []int // completed days actually charted
	TotalDays int
	Sample    bool // Days is generated sample data
}

// CompletionChart builds a bar chart with one 0/1 bar per day. Days outside
// 1..TotalDays are dropped. When none remain and demo data is allowed, a
// deterministic sample pattern is charted instead.
func CompletionChart(in CompletionInput) Completion {
	total := in.TotalDays
	if total <= 0 {
		total = DefaultTotalDays
	}
	total = min(total, MaxTotalDays)

	var days []int
	for _, d := range in.CompletedDays {
		if d >= 1 && d <= total && !slices.Contains(days, d) {
			days = append(days, d)
		}
	}

	count := min(defaultDemoCount, total)
	if in.CompletedCount != nil {
		count = max(0, min(*in.CompletedCount, total))
	}
	demo := in.DemoAllowed == nil || *in.DemoAllowed

	out := Completion{Title: in.Title, TotalDays: total}
	if out.Title == "" {
		out.Title = fmt.Sprintf("Daily completion (%d days)", total)
	}
	switch {
	case len(days) > 0:
		out.Days = days
	case demo:
		out.Days = demoCompletion(total, count)
		out.Sample = true
	default:
		out.Days = []int{}
	}

	labels := make([]string, total)
	values := make([]float64, total)
	for i := range total {
		labels[i] = fmt.Sprintf("Day %d", i+1)
		if slices.Contains(out.Days, i+1) {
			values[i] = 1
		}
	}
	out.Data = &Data{
		Type:     Bar,
		Labels:   labels,
		Datasets: []Dataset{{Label: "Completed", Data: values, Color: completedColor}},
	}
	return out
}

// demoCompletion marks every third day starting at day 1, then adds
// ((n*5) mod total)+1 until count days are marked. A collision moves on to
// the next unmarked day so the fill always terminates.
func demoCompletion(total, count int) []int {
	marked := make(map[int]bool, total)
	for d := 1; d <= total; d += 3 {
		marked[d] = true
	}
	for len(marked) < count {
		d := (len(marked)*5)%total + 1
		for marked[d] {
			d = d%total + 1
		}
		marked[d] = true
	}

	days := make([]int, 0, len(marked))
	for d := range marked {
		days = append(days, d)
	}
	slices.Sort(days)
	return days
}

var (
	defaultWeeks  = []string{"Week 1", "Week 2", "Week 3", "Week 4"}
	defaultTopics = []string{"Mechanics", "Calculus", "Thermo", "DSA"}
	defaultValues = [][]float64{
		{42, 55, 62, 70},
		{35, 48, 58, 66},
		{50, 60, 63, 72},
		{30, 40, 52, 60},
	}
)

// MasteryTitle is the default heading of a mastery matrix.
const MasteryTitle = "Topic mastery heatmap"

// MasteryMatrix builds a heatmap with weeks as columns and one row per
// topic. Empty arguments fall back to a sample four by four matrix; a topic
// with no row of values gets an empty dataset.
func MasteryMatrix(weeks, topics []string, values [][]float64) *Data {
	if len(weeks) == 0 {
		weeks = defaultWeeks
	}
	if len(topics) == 0 {
		topics = defaultTopics
	}
	if len(values) == 0 {
		values = defaultValues
	}

	sets := make([]Dataset, len(topics))
	for i, topic := range topics {
		data := []float64{}
		if i < len(values) {
			data = slices.Clone(values[i])
		}
		sets[i] = Dataset{Label: topic, Data: data}
	}
	return &Data{Type: Heatmap, Labels: slices.Clone(weeks), Datasets: sets}
}

// ScoreTrend builds a line chart of quiz accuracies, oldest first. It
// returns nil when there are no scores.
func ScoreTrend(scores []float64) *Data {
	if len(scores) == 0 {
		return nil
	}
	labels := make([]string, len(scores))
	for i := range scores {
		labels[i] = fmt.Sprintf("Quiz %d", i+1)
	}
	return &Data{
		Type:     Line,
		Labels:   labels,
		Datasets: []Dataset{{Label: "Accuracy", Data: slices.Clone(scores)}},
	}
}
