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

import "github.com/ctessum/geom"

// resolved holds the origin, centroid, and area derived from a
// FireSource, plus the footprint when one was given.
type resolved struct {
	origin    geom.Point // wedge apex
	centroid  geom.Point
	areaM2    float64
	footprint geom.Polygon
}

// resolveSource validates the scenario and derives the wedge origin and
// source area. For footprint sources the origin is the downwind edge of
// the footprint rather than its centroid.
func (s *Scenario) resolveSource() (resolved, error) {
	if err := s.validate(); err != nil {
		return resolved{}, err
	}
	if s.Source.Point != nil {
		r := resolved{origin: *s.Source.Point, centroid: *s.Source.Point}
		if s.Source.AreaM2 != nil {
			r.areaM2 = *s.Source.AreaM2
		}
		return r, nil
	}
	fp := s.Source.Footprint
	r := resolved{footprint: fp, centroid: fp.Centroid()}
	if s.Source.AreaM2 != nil {
		r.areaM2 = *s.Source.AreaM2
	} else {
		r.areaM2 = geodesicArea(fp)
	}
	r.origin = downwindEdge(fp, downwindBearing(s.Wind.DirFromDeg))
	return r, nil
}

// frame builds the static wedge frame for one horizon.
func (s *Scenario) frame(src resolved, em Emission, hours float64) Frame {
	lengthM, widthM := coneDimensions(em, s.Wind, hours, s.Params)
	return Frame{
		HorizonHours: hours,
		Polygon:      conePolygon(src.origin, s.Wind, hours, em, s.Params, s.Segments),
		Meta: FrameMeta{
			PlumeLengthM:   lengthM,
			PlumeWidthM:    widthM,
			EmissionFactor: em.Factor,
			Loft:           em.Loft,
			Hours:          hours,
			WindSpeedMS:    s.Wind.SpeedMS,
			WindDirFrom:    s.Wind.DirFromDeg,
			BurningIndex:   s.Intensity.BurningIndex,
			AreaM2:         src.areaM2,
		},
	}
}

// Static computes one frame per requested horizon. Each frame is
// computed directly from the inputs with no dependency between horizons.
// A suppressed fire yields a result with zero frames and a nil error.
func (s *Scenario) Static(hours []float64) (*PlumeResult, error) {
	horizons, err := normalizeHours(hours)
	if err != nil {
		return nil, err
	}
	src, err := s.resolveSource()
	if err != nil {
		return nil, err
	}
	em := CalcEmission(s.Intensity, src.areaM2, s.Wind, s.Params)
	if s.SuppressSmallFires && Suppress(em, s.Intensity, src.areaM2) {
		return &PlumeResult{Source: StaticModelVersion, Suppressed: true}, nil
	}

	res := &PlumeResult{Source: StaticModelVersion, Frames: make([]Frame, 0, len(horizons))}
	for i, h := range horizons {
		f := s.frame(src, em, h)
		if i == 0 && len(src.footprint) > 0 {
			// The nearest horizon also covers the burn area itself.
			var degraded bool
			f.Polygon, degraded = safeUnion(f.Polygon, src.footprint)
			if f.Polygon == nil {
				return nil, geometryErrorf("union of wedge and footprint produced no usable rings")
			}
			f.Meta.Degraded = degraded
		}
		res.Frames = append(res.Frames, f)
	}
	return res, nil
}
