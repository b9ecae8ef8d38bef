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
	"sort"

	"github.com/ctessum/geom"
)

const (
	earthRadiusM    = 6.371e6
	metersPerDegree = earthRadiusM * math.Pi / 180

	defaultSegments = 40

	// Wind speeds below calmWindMS degrade the wedge to a symmetric
	// circle around the source.
	calmWindMS = 0.1

	// Floors that keep degenerate inputs from producing zero-size
	// geometry.
	minPlumeLengthM = 200.
	minPlumeWidthM  = 100.

	minHalfAngleDeg = 2.
	maxHalfAngleDeg = 40.
)

// downwindBearing converts a meteorological wind-from direction to the
// compass bearing the plume travels along.
func downwindBearing(dirFromDeg float64) float64 {
	return math.Mod(dirFromDeg+180, 360)
}

// destination returns the lon/lat point reached by traveling distM
// meters from p along the given compass bearing on a spherical earth.
func destination(p geom.Point, bearingDeg, distM float64) geom.Point {
	lat1 := p.Y * math.Pi / 180
	lon1 := p.X * math.Pi / 180
	brng := bearingDeg * math.Pi / 180
	d := distM / earthRadiusM
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(math.Sin(brng)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))
	return geom.Point{X: lon2 * 180 / math.Pi, Y: lat2 * 180 / math.Pi}
}

// coneDimensions returns the centerline length and maximum width [m] of
// the plume wedge at the given horizon. Length grows with wind speed and
// horizon, scaled by the emission-derived growth term; width grows
// super-linearly with horizon and linearly with the diffusion
// multiplier.
func coneDimensions(e Emission, wind WindState, hours float64, params EmissionParameters) (lengthM, widthM float64) {
	p := params.normalized()
	base := math.Max(wind.SpeedMS, 0) * 3600 * hours
	lengthM = math.Max(minPlumeLengthM, base*(0.8+1.2*e.Factor)*e.Loft)
	widthM = math.Max(minPlumeWidthM, lengthM*0.03)
	widthM *= 1 + 2.5*math.Sqrt(hours)*(0.6+0.4*(1-e.FMNorm))
	widthM *= p.DiffusionMultiplier
	return lengthM, widthM
}

// conePolygon builds the closed wedge ring for one horizon: narrow at
// the origin, widening toward the downwind tip. Calm wind degrades to a
// circle about the origin instead of a zero-length wedge.
func conePolygon(origin geom.Point, wind WindState, hours float64, e Emission, params EmissionParameters, segs int) geom.Polygon {
	if segs <= 0 {
		segs = defaultSegments
	}
	lengthM, widthM := coneDimensions(e, wind, hours, params)
	if wind.SpeedMS < calmWindMS {
		return circlePolygon(origin, lengthM/2, segs)
	}
	bearing := downwindBearing(wind.DirFromDeg)
	halfAngle := clamp(math.Atan2(widthM/2, math.Max(lengthM, 1))*180/math.Pi,
		minHalfAngleDeg, maxHalfAngleDeg)
	ring := make([]geom.Point, 0, segs+2)
	ring = append(ring, origin)
	for i := 1; i <= segs; i++ {
		frac := float64(i) / float64(segs)
		angle := bearing - halfAngle + 2*halfAngle*frac
		r := lengthM * math.Pow(frac, 0.9)
		ring = append(ring, destination(origin, angle, r))
	}
	ring = append(ring, origin) // close the ring
	return geom.Polygon{ring}
}

// circlePolygon returns a closed ring approximating a circle of radius
// radiusM about center.
func circlePolygon(center geom.Point, radiusM float64, segs int) geom.Polygon {
	ring := make([]geom.Point, 0, segs+1)
	for i := 0; i < segs; i++ {
		ring = append(ring, destination(center, float64(i)*360/float64(segs), radiusM))
	}
	ring = append(ring, ring[0])
	return geom.Polygon{ring}
}

// localMeters projects lon/lat rings onto a planar coordinate system in
// meters centered on ref (x east, y north), using an equirectangular
// approximation. The error is well under a percent at fire-footprint
// scales.
func localMeters(p geom.Polygon, ref geom.Point) geom.Polygon {
	cosLat := math.Cos(ref.Y * math.Pi / 180)
	out := make(geom.Polygon, len(p))
	for i, ring := range p {
		out[i] = make([]geom.Point, len(ring))
		for j, pt := range ring {
			out[i][j] = geom.Point{
				X: (pt.X - ref.X) * metersPerDegree * cosLat,
				Y: (pt.Y - ref.Y) * metersPerDegree,
			}
		}
	}
	return out
}

// geodesicArea approximates the area [m²] of a lon/lat polygon.
func geodesicArea(p geom.Polygon) float64 {
	return math.Abs(localMeters(p, p.Centroid()).Area())
}

// downwindEdge returns the footprint vertex farthest along the downwind
// bearing, so that a wedge anchored there does not appear to start
// inside the burn area.
func downwindEdge(footprint geom.Polygon, bearingDeg float64) geom.Point {
	c := footprint.Centroid()
	proj := localMeters(footprint, c)
	rad := bearingDeg * math.Pi / 180
	ux, uy := math.Sin(rad), math.Cos(rad)
	best := c
	bestDot := math.Inf(-1)
	for i, ring := range proj {
		for j, pt := range ring {
			if dot := pt.X*ux + pt.Y*uy; dot > bestDot {
				bestDot = dot
				best = footprint[i][j]
			}
		}
	}
	return best
}

// convexHull returns the closed convex hull ring of all vertices in the
// given polygons. It is the recovery geometry when a clipping operation
// fails on malformed input. Returns nil if fewer than three distinct
// vertices exist.
func convexHull(polys ...geom.Polygon) geom.Polygon {
	var pts []geom.Point
	for _, p := range polys {
		for _, ring := range p {
			pts = append(pts, ring...)
		}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X == pts[j].X {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	// Deduplicate.
	uniq := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			uniq = append(uniq, p)
		}
	}
	pts = uniq
	if len(pts) < 3 {
		return nil
	}
	cross := func(o, a, b geom.Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	var lower, upper []geom.Point
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	ring := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(ring) < 3 {
		return nil
	}
	ring = append(ring, ring[0])
	return geom.Polygon{ring}
}

// safeUnion unions two polygons, tolerating self-intersecting or
// near-degenerate rings: if the clipping operation fails or yields an
// empty result, the convex hull of both operands is substituted and
// degraded is set.
func safeUnion(a, b geom.Polygon) (out geom.Polygon, degraded bool) {
	if len(a) == 0 {
		return b, false
	}
	if len(b) == 0 {
		return a, false
	}
	defer func() {
		if recover() != nil {
			out = convexHull(a, b)
			degraded = true
		}
	}()
	u := a.Union(b).(geom.Polygon)
	if len(u) == 0 {
		return convexHull(a, b), true
	}
	return u, false
}
