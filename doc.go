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

// Package plume predicts downwind wildfire smoke plumes. Given a fire
// location or footprint, ambient wind, and fire-intensity indicators, it
// generates a time-sequenced set of polygons approximating the plume,
// along with derived metrics (length, width, emission intensity).
//
// The model is a fast geometric approximation intended for visualization
// and hazard communication, not regulatory air-quality modeling. All
// computation is synchronous, deterministic, and free of I/O: callers are
// responsible for resolving live data (current wind, fire-danger indices)
// into plain numeric inputs before constructing a Scenario.
package plume

// Version gives the version number of this version of SmokePlume.
const Version = "0.1.0"
