package readiness

// Tone is the traffic-light band of a 0..100 value.
type Tone string

const (
	ToneReady      Tone = "ready"
	ToneOnTrack    Tone = "on-track"
	ToneNeedsFocus Tone = "needs-focus"
)

// Color returns the ring color for the tone.
func (t Tone) Color() string {
	switch t {
	case ToneReady:
		return "hsl(152 60% 45%)"
	case ToneOnTrack:
		return "hsl(38 92% 50%)"
	default:
		return "hsl(351 80% 60%)"
	}
}

// GaugeReading is a clamped gauge value.
type GaugeReading struct {
	Value int  `json:"value"`
	Tone  Tone `json:"tone"`
	// Angle is the filled arc in degrees.
	Angle int `json:"angle"`
}

// Gauge clamps v to 0..100 and classifies it.
func Gauge(v float64) GaugeReading {
	value := Clamp(v)
	tone := ToneNeedsFocus
	switch {
	case value >= 80:
		tone = ToneReady
	case value >= 60:
		tone = ToneOnTrack
	}
	return GaugeReading{
		Value: value,
		Tone:  tone,
		Angle: round(float64(value) / 100 * 360),
	}
}
