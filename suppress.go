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

// Suppression thresholds. A fire is hidden only when the available
// evidence all points to a marginal detection.
const (
	suppressEmission   = 0.08
	suppressFRPMW      = 30.
	suppressAreaLarge  = 10000. // [m²]
	suppressAreaSmall  = 5000.  // [m²]
	suppressConfidence = 40.
	suppressBI         = 40.
)

// Suppress decides whether a marginal fire's plume is hidden from output
// entirely. The decision covers the whole fire, not individual frames.
// Missing FRP or confidence never counts toward suppression — only
// explicitly low values do — so fires lacking satellite confirmation are
// not hidden by default.
func Suppress(e Emission, intensity FireIntensity, areaM2 float64) bool {
	confLow := intensity.Confidence != nil && *intensity.Confidence < suppressConfidence
	frpLow := intensity.FRP != nil && *intensity.FRP < suppressFRPMW
	if e.Factor < suppressEmission && frpLow && areaM2 < suppressAreaLarge && confLow {
		return true
	}
	return confLow && intensity.BurningIndex < suppressBI && areaM2 < suppressAreaSmall
}
