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

import "seehuhn.de/go/geom/vec"

// Padding gives the space between the edges of a region and its content,
// in the order top, right, bottom, left.
type Padding [4]int

// Pad returns a padding with the same value on all four sides.
func Pad(all int) Padding {
	return NewPadding(all)
}

// Pad4 returns a padding with individual values for each side.
func Pad4(top, right, bottom, left int) Padding {
	return NewPadding(top, right, bottom, left)
}

// NewPadding normalizes a list of padding values.
//
// A single value applies to all four sides.  Otherwise the values are
// assigned clockwise, starting at the top; missing sides are zero and values
// after the fourth are ignored.  Negative values are replaced by zero.
func NewPadding(values ...int) Padding {
	var p Padding
	if len(values) == 1 {
		p = Padding{values[0], values[0], values[0], values[0]}
	} else {
		copy(p[:], values)
	}
	for i, v := range p {
		if v < 0 {
			p[i] = 0
		}
	}
	return p
}

// Top returns the padding at the top edge.
func (p Padding) Top() float64 { return float64(p[0]) }

// Right returns the padding at the right edge.
func (p Padding) Right() float64 { return float64(p[1]) }

// Bottom returns the padding at the bottom edge.
func (p Padding) Bottom() float64 { return float64(p[2]) }

// Left returns the padding at the left edge.
func (p Padding) Left() float64 { return float64(p[3]) }

// IsZero reports whether the padding is zero on all sides.
func (p Padding) IsZero() bool {
	return p == Padding{}
}

// Apply computes the content area of bounds.  The position is given in the
// local frame of bounds and refers to the top-left corner of the content
// area.
//
// The resulting size is not checked; if the padding is larger than the
// region, the width or height is negative.
func (p Padding) Apply(bounds *Region) (at vec.Vec2, width, height float64) {
	at = vec.Vec2{X: p.Left(), Y: bounds.Top() - p.Top()}
	width = bounds.Width() - (p.Left() + p.Right())
	height = bounds.Height() - (p.Top() + p.Bottom())
	return at, width, height
}
