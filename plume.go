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
	"sort"

	"github.com/ctessum/geom"
)

// Model version tags reported with every result.
const (
	StaticModelVersion  = "approx_cone_v1"
	DynamicModelVersion = "approx_cone_dynamic_v1"
)

// DefaultHours is the horizon list used when a request does not specify
// one.
var DefaultHours = []float64{0.5, 1, 2}

// maxHorizons bounds the number of distinct horizons in one request.
const maxHorizons = 12

// FireSource locates the burning area. Exactly one of Point or Footprint
// must be set. AreaM2, when present, gives the burned area in square
// meters for a point source, or overrides the area derived from a
// footprint.
type FireSource struct {
	// Point is the fire location as a lon/lat pair.
	Point *geom.Point

	// Footprint is a closed lon/lat ring (or rings) outlining the burn
	// area.
	Footprint geom.Polygon

	// AreaM2 is the burned area [m²].
	AreaM2 *float64
}

// WindState is the ambient wind in meteorological convention: DirFromDeg
// is the compass direction the wind blows from, so the plume travels
// along DirFromDeg+180.
type WindState struct {
	SpeedMS    float64 // [m/s]
	DirFromDeg float64 // [degrees, 0–360]
}

// FireIntensity holds the fire-danger indicators that drive the emission
// model. FRP and Confidence are satellite-derived and may be absent;
// absence is distinct from an explicit zero.
type FireIntensity struct {
	BurningIndex        float64  // NFDRS burning index
	OneHourFuelMoisture float64  // one-hour fuel moisture [percent]
	FRP                 *float64 // fire radiative power [MW]
	Confidence          *float64 // detection confidence [0–100]
}

// EmissionParameters are positive scale factors applied to the emission
// model outputs, nominally in the range 0.1–3. A zero multiplier is
// interpreted as 1.
type EmissionParameters struct {
	EmissionMultiplier  float64
	DiffusionMultiplier float64
	LoftMultiplier      float64
}

func (p EmissionParameters) normalized() EmissionParameters {
	if p.EmissionMultiplier == 0 {
		p.EmissionMultiplier = 1
	}
	if p.DiffusionMultiplier == 0 {
		p.DiffusionMultiplier = 1
	}
	if p.LoftMultiplier == 0 {
		p.LoftMultiplier = 1
	}
	return p
}

// FrameMeta holds the scalar outputs attached to one plume frame.
type FrameMeta struct {
	PlumeLengthM   float64
	PlumeWidthM    float64
	EmissionFactor float64
	Loft           float64
	Hours          float64
	WindSpeedMS    float64
	WindDirFrom    float64
	BurningIndex   float64
	AreaM2         float64

	// Degraded marks geometry that was recovered from a failed polygon
	// operation via the convex-hull fallback.
	Degraded bool
}

// Frame is one time step of the predicted plume: a closed lon/lat
// polygon and its derived metrics.
type Frame struct {
	HorizonHours float64
	Polygon      geom.Polygon
	Meta         FrameMeta
}

// PlumeResult is the ordered frame sequence computed for one fire. It is
// a request-scoped value: built fresh per computation, never persisted.
type PlumeResult struct {
	Frames     []Frame
	Source     string // model version tag
	Suppressed bool   // the fire was hidden by the suppression filter
}

// Scenario bundles the fully resolved numeric inputs for one fire's
// plume computation. Resolving live data (current wind, burning index)
// is the caller's responsibility; the model performs no network or file
// I/O. A Scenario is safe for concurrent use because all computations on
// it are read-only.
type Scenario struct {
	Source    FireSource
	Wind      WindState
	Intensity FireIntensity
	Params    EmissionParameters

	// SuppressSmallFires hides marginal fires entirely; see Suppress.
	SuppressSmallFires bool

	// Segments is the number of arc segments in each wedge polygon.
	// Zero means the default (40).
	Segments int
}

func (s *Scenario) validate() error {
	switch {
	case s.Source.Point == nil && len(s.Source.Footprint) == 0:
		return validationErrorf("fire source requires a point or a footprint polygon")
	case s.Source.Point != nil && len(s.Source.Footprint) > 0:
		return validationErrorf("fire source must not have both a point and a footprint")
	}
	for _, ring := range s.Source.Footprint {
		if len(ring) < 3 {
			return validationErrorf("footprint ring has %d points; need at least 3", len(ring))
		}
	}
	if s.Wind.SpeedMS < 0 {
		return validationErrorf("wind speed must be ≥ 0, got %g m/s", s.Wind.SpeedMS)
	}
	if s.Wind.DirFromDeg < 0 || s.Wind.DirFromDeg > 360 {
		return validationErrorf("wind direction must be within 0–360°, got %g", s.Wind.DirFromDeg)
	}
	if s.Params.EmissionMultiplier < 0 || s.Params.DiffusionMultiplier < 0 || s.Params.LoftMultiplier < 0 {
		return validationErrorf("multipliers must be positive, got emission=%g diffusion=%g loft=%g",
			s.Params.EmissionMultiplier, s.Params.DiffusionMultiplier, s.Params.LoftMultiplier)
	}
	return nil
}

// normalizeHours validates, deduplicates, and sorts the requested
// horizons. Non-positive horizons are rejected rather than dropped.
func normalizeHours(hours []float64) ([]float64, error) {
	if len(hours) == 0 {
		return nil, validationErrorf("at least one horizon is required")
	}
	seen := make(map[float64]struct{}, len(hours))
	out := make([]float64, 0, len(hours))
	for _, h := range hours {
		if h <= 0 {
			return nil, validationErrorf("horizons must be positive, got %g", h)
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	if len(out) > maxHorizons {
		return nil, validationErrorf("too many horizons: %d > %d", len(out), maxHorizons)
	}
	sort.Float64s(out)
	return out, nil
}
