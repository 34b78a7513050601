package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SessionStats summarises one run, from Start or Restart to the fall.
type SessionStats struct {
	Run         int     `csv:"run"`
	DurationSec float64 `csv:"duration_sec"`
	Clock       string  `csv:"clock"` // MM:SS as shown on the end screen
	Ticks       int     `csv:"ticks"`
	Jumps       int     `csv:"jumps"`

	// Movement
	Distance    float64 `csv:"distance"`     // Horizontal path length
	MaxHeight   float64 `csv:"max_height"`   // Highest body centre reached
	SpeedMean   float64 `csv:"speed_mean"`   // Horizontal speed
	SpeedP90    float64 `csv:"speed_p90"`
	SpeedMax    float64 `csv:"speed_max"`
	WalkingPct  float64 `csv:"walking_pct"`  // Ticks with Walking set
	RunningPct  float64 `csv:"running_pct"`  // Ticks with Running set
	AirbornePct float64 `csv:"airborne_pct"` // Ticks without Grounded

	// Where the run ended
	FinalX    float64 `csv:"final_x"`
	FinalY    float64 `csv:"final_y"`
	FinalZ    float64 `csv:"final_z"`
	EndReason string  `csv:"end_reason"` // "fell" or "quit"
}

// ComputeSpeedStats calculates mean, 90th percentile and max of values.
func ComputeSpeedStats(values []float64) (mean, p90, peak float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	peak = floats.Max(sorted)

	return mean, p90, peak
}

// LogValue implements slog.LogValuer for structured logging.
func (s SessionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("run", s.Run),
		slog.String("clock", s.Clock),
		slog.Float64("duration_sec", s.DurationSec),
		slog.Int("ticks", s.Ticks),
		slog.Int("jumps", s.Jumps),
		slog.Float64("distance", s.Distance),
		slog.Float64("max_height", s.MaxHeight),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("airborne_pct", s.AirbornePct),
		slog.String("end_reason", s.EndReason),
	)
}

// LogStats logs the session summary using slog.
func (s SessionStats) LogStats() {
	slog.Info("session", "stats", s)
}
