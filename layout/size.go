// seehuhn.de/go/pdfreport - relative layout and page overlays for PDF reports
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package layout

import (
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// Unit selects how the value of a Size is interpreted.
type Unit uint8

// These are the supported units for sizes.
const (
	// UnitPoint is an absolute length in PDF points.
	UnitPoint Unit = iota

	// UnitPercent is a percentage of the enclosing region.
	UnitPercent

	// UnitLocalPercent is a percentage of the space which remains in the
	// enclosing region after the start position of the new box.
	UnitLocalPercent
)

// Axis selects the horizontal or vertical dimension of a region.
type Axis uint8

// These are the two axes.
const (
	Horizontal Axis = iota
	Vertical
)

// Size describes the width or height of a box.
type Size struct {
	Value float64
	Unit  Unit
}

// Pt returns an absolute size in PDF points.
func Pt(v float64) Size {
	return Size{Value: v, Unit: UnitPoint}
}

// Percent returns a size given as percentage of the enclosing region.
func Percent(v float64) Size {
	return Size{Value: v, Unit: UnitPercent}
}

// LocalPercent returns a size given as percentage of the space remaining
// after the start position of a box.
func LocalPercent(v float64) Size {
	return Size{Value: v, Unit: UnitLocalPercent}
}

// ParseSize converts the text representation of a size into a Size.
//
// The accepted forms are "<n>%" for a percentage of the enclosing region,
// "<n>%l" for a percentage of the remaining space, and "<n>" for an absolute
// length.  Parsing never fails: the numeric part is the longest prefix of
// the text which forms a number, and is zero if there is no such prefix.
func ParseSize(text string) Size {
	text = strings.TrimSpace(text)
	v := leadingNumber(text)
	idx := strings.IndexByte(text, '%')
	switch {
	case idx < 0:
		return Pt(v)
	case strings.Contains(text[idx+1:], "l"):
		return LocalPercent(v)
	default:
		return Percent(v)
	}
}

func leadingNumber(s string) float64 {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !seenDot {
			seenDot = true
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}
	for end > 0 {
		v, err := strconv.ParseFloat(s[:end], 64)
		if err == nil {
			return v
		}
		end--
	}
	return 0
}

// String returns the text form of s, as accepted by ParseSize.
func (s Size) String() string {
	v := strconv.FormatFloat(s.Value, 'f', -1, 64)
	switch s.Unit {
	case UnitPercent:
		return v + "%"
	case UnitLocalPercent:
		return v + "%l"
	default:
		return v
	}
}

// Resolve converts s into an absolute length along the given axis.
//
// Percentages are clamped to the range from 0 to 100 and refer to the
// dimension of ref.  For local percentages, the result is further scaled by
// the fraction of ref which remains after the start position:
// 1 - start.X/width for the horizontal axis, and start.Y/height for the
// vertical axis (start.Y is the top edge of the new box, and the box grows
// downward).
func (s Size) Resolve(axis Axis, ref *Region, start vec.Vec2) float64 {
	if s.Unit == UnitPoint {
		return s.Value
	}

	var dim float64
	if ref != nil {
		if axis == Horizontal {
			dim = ref.Width()
		} else {
			dim = ref.Height()
		}
	}
	res := dim * clampPercentage(s.Value) / 100
	if s.Unit != UnitLocalPercent || dim == 0 {
		return res
	}

	if axis == Horizontal {
		return res * (1 - start.X/dim)
	}
	return res * (start.Y / dim)
}

func clampPercentage(v float64) float64 {
	return max(0, min(v, 100))
}
