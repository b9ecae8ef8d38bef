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

import "fmt"

// ValidationError indicates a request that can never produce a valid
// plume, such as a missing fire location or a non-positive horizon.
// Invalid inputs are always rejected, never silently defaulted.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return "plume: " + e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// NewValidationError creates a ValidationError with the given message.
// It is intended for callers that validate requests before building a
// Scenario, such as the HTTP service.
func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// GeometryError indicates a polygon operation that failed on malformed
// input. Wherever possible the model recovers by substituting the convex
// hull of the offending rings and marking the frame as degraded, so a
// GeometryError is only returned when no usable geometry remains.
type GeometryError struct {
	msg string
}

func (e *GeometryError) Error() string { return "plume: geometry: " + e.msg }

func geometryErrorf(format string, args ...interface{}) error {
	return &GeometryError{msg: fmt.Sprintf(format, args...)}
}
