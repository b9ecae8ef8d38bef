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
	"reflect"
	"testing"

	"github.com/ctessum/geom"
)

func TestStaticWorkedExample(t *testing.T) {
	s := testScenario()
	res, err := s.Static([]float64{0.5, 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Source != StaticModelVersion {
		t.Errorf("source: got %q, want %q", res.Source, StaticModelVersion)
	}
	if len(res.Frames) != 2 {
		t.Fatalf("frames: got %d, want 2", len(res.Frames))
	}
	origin := *s.Source.Point
	for i, f := range res.Frames {
		if !closedRing(f.Polygon) {
			t.Errorf("frame %d: polygon ring not closed", i)
		}
		if f.Meta.PlumeLengthM <= 0 || math.IsNaN(f.Meta.PlumeLengthM) {
			t.Errorf("frame %d: length %g", i, f.Meta.PlumeLengthM)
		}
		if f.Meta.PlumeWidthM <= 0 || math.IsNaN(f.Meta.PlumeWidthM) {
			t.Errorf("frame %d: width %g", i, f.Meta.PlumeWidthM)
		}
		// Wind from 270°: the plume travels east.
		if c := f.Polygon.Centroid(); c.X <= origin.X {
			t.Errorf("frame %d: centroid lon %g not east of origin %g", i, c.X, origin.X)
		}
	}
	if res.Frames[0].HorizonHours != 0.5 || res.Frames[1].HorizonHours != 1 {
		t.Errorf("horizons: got %g, %g", res.Frames[0].HorizonHours, res.Frames[1].HorizonHours)
	}
	if res.Frames[1].Meta.PlumeLengthM < res.Frames[0].Meta.PlumeLengthM {
		t.Error("plume length decreased with horizon")
	}
}

func TestStaticDeterminism(t *testing.T) {
	a, err := testScenario().Static([]float64{0.5, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	b, err := testScenario().Static([]float64{0.5, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different results")
	}
}

func TestStaticRejectsInvalidHours(t *testing.T) {
	s := testScenario()
	if _, err := s.Static([]float64{-0.5, 1}); err == nil || !IsValidation(err) {
		t.Errorf("negative horizon: got %v, want ValidationError", err)
	}
	if _, err := s.Static(nil); err == nil || !IsValidation(err) {
		t.Errorf("empty horizons: got %v, want ValidationError", err)
	}
}

// Negative multipliers would flow through the emission and width
// formulas as negative factors, so they are rejected up front rather
// than producing a frame with negative dimensions.
func TestNegativeMultipliersRejected(t *testing.T) {
	s := testScenario()
	s.Params.EmissionMultiplier = -2
	if _, err := s.Static([]float64{1}); err == nil || !IsValidation(err) {
		t.Errorf("negative emission multiplier: got %v, want ValidationError", err)
	}

	s = testScenario()
	s.Params.DiffusionMultiplier = -1
	if _, err := s.Static([]float64{1}); err == nil || !IsValidation(err) {
		t.Errorf("negative diffusion multiplier: got %v, want ValidationError", err)
	}
	if _, err := s.Dynamic([]float64{1}, DynamicConfig{StepMinutes: 30, Mode: Segment}); err == nil || !IsValidation(err) {
		t.Errorf("negative diffusion multiplier (dynamic): got %v, want ValidationError", err)
	}
}

func TestStaticMissingSource(t *testing.T) {
	s := testScenario()
	s.Source = FireSource{}
	if _, err := s.Static([]float64{1}); err == nil || !IsValidation(err) {
		t.Errorf("missing source: got %v, want ValidationError", err)
	}
}

// footprintScenario returns a scenario with a roughly 1.1 km square burn
// area footprint.
func footprintScenario() *Scenario {
	s := testScenario()
	s.Source = FireSource{Footprint: geom.Polygon{{
		{X: -73.81, Y: 42.74}, {X: -73.80, Y: 42.74},
		{X: -73.80, Y: 42.75}, {X: -73.81, Y: 42.75},
		{X: -73.81, Y: 42.74},
	}}}
	return s
}

func TestFootprintMatchesEquivalentPoint(t *testing.T) {
	fs := footprintScenario()
	area := geodesicArea(fs.Source.Footprint)

	ps := testScenario()
	ps.Source.AreaM2 = &area

	fres, err := fs.Static([]float64{1})
	if err != nil {
		t.Fatal(err)
	}
	pres, err := ps.Static([]float64{1})
	if err != nil {
		t.Fatal(err)
	}
	fm, pm := fres.Frames[0].Meta, pres.Frames[0].Meta
	if different(fm.PlumeLengthM, pm.PlumeLengthM, 1e-6) {
		t.Errorf("length: footprint %g, point %g", fm.PlumeLengthM, pm.PlumeLengthM)
	}
	if different(fm.PlumeWidthM, pm.PlumeWidthM, 1e-6) {
		t.Errorf("width: footprint %g, point %g", fm.PlumeWidthM, pm.PlumeWidthM)
	}
}

func TestFootprintFirstFrameCoversBurnArea(t *testing.T) {
	s := footprintScenario()
	res, err := s.Static([]float64{0.5, 1})
	if err != nil {
		t.Fatal(err)
	}
	c := s.Source.Footprint.Centroid()
	if c.Within(res.Frames[0].Polygon) == geom.Outside {
		t.Error("burn-area centroid outside the nearest-horizon frame")
	}
}

func TestFootprintWedgeStartsAtDownwindEdge(t *testing.T) {
	s := footprintScenario()
	res, err := s.Static([]float64{1})
	if err != nil {
		t.Fatal(err)
	}
	// Wind from 270°: every frame vertex should be at or east of the
	// footprint's western edge, and the wedge tip well east of the
	// eastern edge.
	b := res.Frames[0].Polygon.Bounds()
	if b.Min.X < -73.81-1e-9 {
		t.Errorf("frame extends west of the burn area: min lon %g", b.Min.X)
	}
	if b.Max.X <= -73.80 {
		t.Errorf("wedge does not extend downwind of the burn area: max lon %g", b.Max.X)
	}
}

func TestStaticAreaOverride(t *testing.T) {
	s := footprintScenario()
	override := 1e4
	s.Source.AreaM2 = &override
	res, err := s.Static([]float64{1})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Frames[0].Meta.AreaM2; got != override {
		t.Errorf("area override: got %g, want %g", got, override)
	}
}
