// Package convert builds KiCad footprints and symbols from normalised EasyEDA
// shape records.
//
// Builders never fail. Records that carry nothing the target can express are
// skipped, and values the target cannot represent degrade to a default with a
// debug log entry.
package convert

import (
	"log/slog"
	"math"

	"github.com/OpenTraceLab/jlcimport/pkg/easyeda"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
)

// Options configures a build.
type Options struct {
	// Logger receives diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func pos(p easyeda.Point) sexp.Position {
	return sexp.Position{X: round(p.X), Y: round(p.Y)}
}

func positions(pts []easyeda.Point) []sexp.Position {
	out := make([]sexp.Position, len(pts))
	for i, p := range pts {
		out[i] = pos(p)
	}
	return out
}

// round trims float noise left by the unit conversion to 1 nm.
func round(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0
	}
	return r
}

// normalizeAngle folds a to [0, 360).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
