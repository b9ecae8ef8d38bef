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

import "math"

// Reference scales that normalize the raw fire-danger inputs. These are
// empirical tuning values; the model depends only on their monotonic
// shape.
const (
	biScale   = 200.  // burning index normalization
	fmScale   = 100.  // one-hour fuel moisture normalization [percent]
	frpScale  = 500.  // fire radiative power saturation [MW]
	areaScale = 1.0e6 // reference source area [m²]

	emissionFloor = 0.05

	loftMin = 0.3
	loftMax = 3.0
)

// Blend weights for the baseline intensity score.
const (
	weightBI   = 0.4
	weightFM   = 0.25
	weightFRP  = 0.25
	weightArea = 0.1
)

// Emission is the output of the emission model: a normalized emission
// factor and the buoyant loft of the plume, plus the intermediate
// normalized scores they were derived from.
type Emission struct {
	// Factor is the normalized emission factor [dimensionless, ≥ 0].
	Factor float64
	// Loft is the buoyant rise tendency of the plume. Higher loft means
	// the smoke column rises farther before bending downwind.
	Loft float64

	BINorm, FMNorm, FRPNorm, AreaNorm float64
}

// CalcEmission converts fire-intensity indicators and the source area
// into a normalized emission factor and loft. The factor is monotonic in
// burning index, inversely monotonic in fuel moisture, saturating in
// FRP, and rises with source area independent of intensity. It is a pure
// function of its arguments.
func CalcEmission(intensity FireIntensity, areaM2 float64, wind WindState, params EmissionParameters) Emission {
	p := params.normalized()
	e := Emission{
		BINorm:   clamp(intensity.BurningIndex/biScale, 0, 1),
		FMNorm:   1 - clamp(intensity.OneHourFuelMoisture/fmScale, 0, 1),
		AreaNorm: clamp(areaM2/areaScale, 0, 1),
	}
	if intensity.FRP != nil {
		e.FRPNorm = clamp(*intensity.FRP/frpScale, 0, 1)
	}
	raw := weightBI*e.BINorm + weightFM*e.FMNorm + weightFRP*e.FRPNorm + weightArea*e.AreaNorm
	e.Factor = math.Max(emissionFloor, raw) * p.EmissionMultiplier
	e.Loft = calcLoft(e.BINorm, e.FRPNorm, wind.SpeedMS, p.LoftMultiplier)
	return e
}

// calcLoft estimates buoyant rise from the normalized intensity scores,
// damped as wind speed increases: calm conditions let the column rise,
// strong wind bends it over.
func calcLoft(biNorm, frpNorm, windSpeedMS, mult float64) float64 {
	base := 0.5 + 1.5*(0.6*frpNorm+0.4*biNorm)
	damp := 1.5 / (1 + 0.1*windSpeedMS)
	return clamp(base*damp*mult, loftMin, loftMax)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
