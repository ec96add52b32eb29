package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/ekg/itsliquid/internal/core"
)

// Recorder accumulates per-frame metrics for headless runs and sweeps.
type Recorder struct {
	history []Metrics
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record analyzes the field at the given frame and stores the result.
func (rec *Recorder) Record(f core.Field, frame int) Metrics {
	m := Analyze(f, frame)
	rec.history = append(rec.history, m)
	return m
}

// History returns all recorded metrics in frame order.
func (rec *Recorder) History() []Metrics {
	return rec.history
}

// Last returns the most recent metrics and whether any were recorded.
func (rec *Recorder) Last() (Metrics, bool) {
	if len(rec.history) == 0 {
		return Metrics{}, false
	}
	return rec.history[len(rec.history)-1], true
}

// Summary renders a human-readable digest of the first and last frames.
func (rec *Recorder) Summary() string {
	if len(rec.history) == 0 {
		return "no frames recorded"
	}
	first := rec.history[0]
	last := rec.history[len(rec.history)-1]
	var sb strings.Builder
	fmt.Fprintf(&sb, "frames %d..%d\n", first.Frame, last.Frame)
	fmt.Fprintf(&sb, "mass r/g/b: %.6f/%.6f/%.6f -> %.6f/%.6f/%.6f\n",
		first.MassR, first.MassG, first.MassB, last.MassR, last.MassG, last.MassB)
	fmt.Fprintf(&sb, "kinetic energy: %.6f -> %.6f\n", first.KineticEnergy, last.KineticEnergy)
	fmt.Fprintf(&sb, "max speed: %.6f -> %.6f\n", first.MaxSpeed, last.MaxSpeed)
	fmt.Fprintf(&sb, "dye entropy: %.4f -> %.4f\n", first.DyeEntropy, last.DyeEntropy)
	fmt.Fprintf(&sb, "mean |divergence|: %.6e -> %.6e\n", first.AbsDivergence, last.AbsDivergence)
	fmt.Fprintf(&sb, "mean |vorticity|: %.6e -> %.6e\n", first.AbsVorticity, last.AbsVorticity)
	return sb.String()
}

// WriteCSV streams the full history as CSV with a header row.
func (rec *Recorder) WriteCSV(w io.Writer) error {
	if _, err := io.WriteString(w,
		"frame,mass_r,mass_g,mass_b,max_dye,avg_dye,kinetic_energy,max_speed,avg_speed,dye_entropy,abs_divergence,abs_vorticity\n"); err != nil {
		return err
	}
	for _, m := range rec.history {
		if _, err := fmt.Fprintf(w, "%d,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g\n",
			m.Frame, m.MassR, m.MassG, m.MassB, m.MaxDye, m.AvgDye,
			m.KineticEnergy, m.MaxSpeed, m.AvgSpeed, m.DyeEntropy,
			m.AbsDivergence, m.AbsVorticity); err != nil {
			return err
		}
	}
	return nil
}
