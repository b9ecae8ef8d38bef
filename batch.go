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
	"sync"

	"github.com/ctessum/geom"
)

// BatchItem pairs one scenario's result with any error it produced.
type BatchItem struct {
	Result *PlumeResult
	Err    error
}

// ComputeStaticBatch computes static plumes for many independent fires
// concurrently. Fires do not interact, so there is no cross-fire
// ordering requirement; results are returned in input order.
func ComputeStaticBatch(scenarios []*Scenario, hours []float64) []BatchItem {
	out := make([]BatchItem, len(scenarios))
	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		go func(i int, sc *Scenario) {
			defer wg.Done()
			r, err := sc.Static(hours)
			out[i] = BatchItem{Result: r, Err: err}
		}(i, sc)
	}
	wg.Wait()
	return out
}

// ComputeDynamicBatch is the dynamic-mode counterpart of
// ComputeStaticBatch. Steps within one fire remain sequential; the fires
// themselves run in parallel.
func ComputeDynamicBatch(scenarios []*Scenario, hours []float64, cfg DynamicConfig) []BatchItem {
	out := make([]BatchItem, len(scenarios))
	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		go func(i int, sc *Scenario) {
			defer wg.Done()
			r, err := sc.Dynamic(hours, cfg)
			out[i] = BatchItem{Result: r, Err: err}
		}(i, sc)
	}
	wg.Wait()
	return out
}

// MergedCoverage unions every frame of every successful result into one
// polygon describing the total modeled smoke coverage. degraded reports
// whether any union needed the convex-hull fallback.
func MergedCoverage(items []BatchItem) (merged geom.Polygon, degraded bool) {
	for _, it := range items {
		if it.Err != nil || it.Result == nil {
			continue
		}
		for _, f := range it.Result.Frames {
			var d bool
			merged, d = safeUnion(merged, f.Polygon)
			degraded = degraded || d
		}
	}
	return merged, degraded
}

// EarliestImpact returns the earliest frame whose polygon contains pt (a
// lon/lat pair), if any. Frames are already ordered by horizon, so the
// first hit is the soonest predicted arrival.
func (r *PlumeResult) EarliestImpact(pt geom.Point) (Frame, bool) {
	for _, f := range r.Frames {
		if pt.Within(f.Polygon) != geom.Outside {
			return f, true
		}
	}
	return Frame{}, false
}
