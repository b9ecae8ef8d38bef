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

import "testing"

func TestEmissionMonotonicBurningIndex(t *testing.T) {
	wind := WindState{SpeedMS: 3, DirFromDeg: 180}
	prev := -1.
	for bi := 0.; bi <= 300; bi += 25 {
		e := CalcEmission(FireIntensity{BurningIndex: bi, OneHourFuelMoisture: 10}, 1000, wind, EmissionParameters{})
		if e.Factor < prev {
			t.Fatalf("emission factor decreased from %g to %g at BI=%g", prev, e.Factor, bi)
		}
		prev = e.Factor
	}
}

func TestEmissionInverseFuelMoisture(t *testing.T) {
	wind := WindState{SpeedMS: 3, DirFromDeg: 180}
	prev := 2.
	for fm := 0.; fm <= 100; fm += 10 {
		e := CalcEmission(FireIntensity{BurningIndex: 50, OneHourFuelMoisture: fm}, 1000, wind, EmissionParameters{})
		if e.Factor > prev {
			t.Fatalf("emission factor increased from %g to %g at FM=%g%%", prev, e.Factor, fm)
		}
		prev = e.Factor
	}
}

func TestEmissionFRPSaturates(t *testing.T) {
	wind := WindState{SpeedMS: 3, DirFromDeg: 180}
	intensity := FireIntensity{BurningIndex: 50, OneHourFuelMoisture: 10}
	intensity.FRP = fp(5000)
	high := CalcEmission(intensity, 1000, wind, EmissionParameters{})
	if different(high.FRPNorm, 1, testTolerance) {
		t.Errorf("FRP norm: got %g, want 1", high.FRPNorm)
	}
	intensity.FRP = fp(1e9)
	extreme := CalcEmission(intensity, 1000, wind, EmissionParameters{})
	if different(high.Factor, extreme.Factor, testTolerance) {
		t.Errorf("FRP term failed to saturate: %g vs %g", high.Factor, extreme.Factor)
	}
}

func TestEmissionMissingFRPIsZeroTerm(t *testing.T) {
	wind := WindState{SpeedMS: 3, DirFromDeg: 180}
	e := CalcEmission(FireIntensity{BurningIndex: 50, OneHourFuelMoisture: 10}, 1000, wind, EmissionParameters{})
	if e.FRPNorm != 0 {
		t.Errorf("missing FRP should contribute a zero term, got norm %g", e.FRPNorm)
	}
}

func TestEmissionFloor(t *testing.T) {
	wind := WindState{SpeedMS: 3, DirFromDeg: 180}
	// Fully saturated fuel and zero danger indices: the raw score is
	// zero, so the floor applies.
	e := CalcEmission(FireIntensity{BurningIndex: 0, OneHourFuelMoisture: 100}, 0, wind, EmissionParameters{})
	if different(e.Factor, emissionFloor, testTolerance) {
		t.Errorf("emission floor: got %g, want %g", e.Factor, emissionFloor)
	}
}

func TestEmissionMultiplierScales(t *testing.T) {
	wind := WindState{SpeedMS: 3, DirFromDeg: 180}
	intensity := FireIntensity{BurningIndex: 50, OneHourFuelMoisture: 10}
	base := CalcEmission(intensity, 1000, wind, EmissionParameters{})
	doubled := CalcEmission(intensity, 1000, wind, EmissionParameters{EmissionMultiplier: 2})
	if different(doubled.Factor, 2*base.Factor, testTolerance) {
		t.Errorf("emission multiplier: got %g, want %g", doubled.Factor, 2*base.Factor)
	}
}

func TestEmissionAreaRaisesFactor(t *testing.T) {
	wind := WindState{SpeedMS: 3, DirFromDeg: 180}
	intensity := FireIntensity{BurningIndex: 50, OneHourFuelMoisture: 10}
	small := CalcEmission(intensity, 1000, wind, EmissionParameters{})
	large := CalcEmission(intensity, 5e5, wind, EmissionParameters{})
	if large.Factor <= small.Factor {
		t.Errorf("larger area should raise emission: %g vs %g", large.Factor, small.Factor)
	}
}

func TestLoftWindDamping(t *testing.T) {
	intensity := FireIntensity{BurningIndex: 100, OneHourFuelMoisture: 10, FRP: fp(200)}
	calm := CalcEmission(intensity, 1000, WindState{SpeedMS: 0, DirFromDeg: 180}, EmissionParameters{})
	windy := CalcEmission(intensity, 1000, WindState{SpeedMS: 20, DirFromDeg: 180}, EmissionParameters{})
	if calm.Loft <= windy.Loft {
		t.Errorf("loft should weaken with wind: calm %g, windy %g", calm.Loft, windy.Loft)
	}
	for _, e := range []Emission{calm, windy} {
		if e.Loft < loftMin || e.Loft > loftMax {
			t.Errorf("loft %g outside [%g, %g]", e.Loft, loftMin, loftMax)
		}
	}
}
