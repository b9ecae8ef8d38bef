/*
Copyright © 2026 the SmokePlume authors.
This file is part of SmokePlume.

SmokePlume is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SmokePlume is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SmokePlume.  If not, see <http://www.gnu.org/licenses/>.
*/

package plume

import (
	"math"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"
)

// SimulationMode selects how the per-step geometries of a dynamic run
// combine into output frames.
type SimulationMode string

const (
	// Segment emits each step's own wedge: a moving, non-overlapping
	// slice of the plume.
	Segment SimulationMode = "segment"

	// CumulativeUnion unions every step computed so far, so frame
	// coverage is monotonically non-decreasing.
	CumulativeUnion SimulationMode = "cumulative_union"

	// CumulativeLast keeps only the most recent segment, approximating
	// the present plume position rather than historical coverage.
	CumulativeLast SimulationMode = "cumulative_last"
)

// ParseSimulationMode validates a simulation mode string.
func ParseSimulationMode(s string) (SimulationMode, error) {
	switch m := SimulationMode(s); m {
	case Segment, CumulativeUnion, CumulativeLast:
		return m, nil
	}
	return "", validationErrorf("unknown simulation mode %q", s)
}

// DynamicConfig controls the stepping loop of a dynamic simulation.
type DynamicConfig struct {
	StepMinutes float64
	Mode        SimulationMode

	// OnlyTargetFrames restricts output to the horizons present in the
	// request instead of every intermediate step.
	OnlyTargetFrames bool
}

// accumulator is the per-mode combination rule applied at every step.
// The differing rules are isolated here so the stepping loop itself is
// mode-agnostic.
type accumulator interface {
	// combine folds the step geometry into the accumulated state and
	// returns the geometry to emit, along with whether a degraded
	// fallback was needed.
	combine(step geom.Polygon) (geom.Polygon, bool)
}

type segmentAccum struct{}

func (segmentAccum) combine(step geom.Polygon) (geom.Polygon, bool) { return step, false }

type unionAccum struct {
	acc geom.Polygon
}

func (u *unionAccum) combine(step geom.Polygon) (geom.Polygon, bool) {
	out, degraded := safeUnion(u.acc, step)
	u.acc = out
	return out, degraded
}

type lastAccum struct {
	last geom.Polygon
}

func (l *lastAccum) combine(step geom.Polygon) (geom.Polygon, bool) {
	l.last = step
	return l.last, false
}

func newAccumulator(mode SimulationMode) (accumulator, error) {
	switch mode {
	case Segment:
		return segmentAccum{}, nil
	case CumulativeUnion:
		return &unionAccum{}, nil
	case CumulativeLast:
		return &lastAccum{}, nil
	}
	return nil, validationErrorf("unknown simulation mode %q", string(mode))
}

// Dynamic steps a virtual plume forward in StepMinutes increments until
// the largest requested horizon is reached, combining per-step geometry
// according to the selected mode. Step sizes are clamped so that every
// requested horizon is landed on exactly. Steps within one run are
// sequential because each depends on the prior leading edge, but
// independent fires may run Dynamic concurrently.
func (s *Scenario) Dynamic(hours []float64, cfg DynamicConfig) (*PlumeResult, error) {
	horizons, err := normalizeHours(hours)
	if err != nil {
		return nil, err
	}
	if cfg.StepMinutes <= 0 {
		return nil, validationErrorf("step must be positive, got %g minutes", cfg.StepMinutes)
	}
	acc, err := newAccumulator(cfg.Mode)
	if err != nil {
		return nil, err
	}
	src, err := s.resolveSource()
	if err != nil {
		return nil, err
	}

	em := CalcEmission(s.Intensity, src.areaM2, s.Wind, s.Params)
	if s.SuppressSmallFires && Suppress(em, s.Intensity, src.areaM2) {
		return &PlumeResult{Source: DynamicModelVersion, Suppressed: true}, nil
	}

	const eps = 1e-9
	bearing := downwindBearing(s.Wind.DirFromDeg)
	calm := s.Wind.SpeedMS < calmWindMS
	maxHorizon := floats.Max(horizons)
	stepHours := cfg.StepMinutes / 60

	res := &PlumeResult{Source: DynamicModelVersion}
	leading := src.origin
	elapsed := 0.
	target := 0 // index of the next requested horizon
	for maxHorizon-elapsed > eps {
		step := stepHours
		if target < len(horizons) && elapsed+step > horizons[target]-eps {
			step = horizons[target] - elapsed
		}
		if elapsed+step > maxHorizon {
			step = maxHorizon - elapsed
		}

		var seg geom.Polygon
		if calm {
			// No transport: the plume pools around the source and
			// spreads with age.
			seg = conePolygon(src.origin, s.Wind, elapsed+step, em, s.Params, s.Segments)
		} else {
			seg = conePolygon(leading, s.Wind, step, em, s.Params, s.Segments)
			stepLen, _ := coneDimensions(em, s.Wind, step, s.Params)
			leading = destination(leading, bearing, stepLen)
		}
		elapsed += step

		isTarget := target < len(horizons) && math.Abs(elapsed-horizons[target]) <= eps
		if isTarget {
			target++
		}

		// The accumulated state advances on every step, including the
		// ones that are filtered out of the output.
		poly, degraded := acc.combine(seg)
		if cfg.OnlyTargetFrames && !isTarget {
			continue
		}
		if poly == nil {
			return nil, geometryErrorf("step union at %g h produced no usable rings", elapsed)
		}

		lengthM, widthM := coneDimensions(em, s.Wind, elapsed, s.Params)
		res.Frames = append(res.Frames, Frame{
			HorizonHours: elapsed,
			Polygon:      poly,
			Meta: FrameMeta{
				PlumeLengthM:   lengthM,
				PlumeWidthM:    widthM,
				EmissionFactor: em.Factor,
				Loft:           em.Loft,
				Hours:          elapsed,
				WindSpeedMS:    s.Wind.SpeedMS,
				WindDirFrom:    s.Wind.DirFromDeg,
				BurningIndex:   s.Intensity.BurningIndex,
				AreaM2:         src.areaM2,
				Degraded:       degraded,
			},
		})
	}
	return res, nil
}
