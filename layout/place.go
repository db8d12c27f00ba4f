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

// PositionBeside returns the position, in the local frame of bounds, of a
// new box placed directly to the right of origin.  The gutter is added as
// horizontal space between origin and the new box.  If origin is nil, the
// top-left corner of bounds is returned.
func PositionBeside(bounds, origin *Region, gutter float64) vec.Vec2 {
	if origin == nil {
		return bounds.TopLeft()
	}
	anchor := bounds.Anchor()
	return origin.AbsoluteTopRight().Add(vec.Vec2{X: gutter - anchor.X, Y: -anchor.Y})
}

// PositionBelow returns the position, in the local frame of bounds, of a
// new box placed directly below origin.  The gutter is added as vertical
// space between origin and the new box.  If origin is nil, the top-left
// corner of bounds is returned.
func PositionBelow(bounds, origin *Region, gutter float64) vec.Vec2 {
	if origin == nil {
		return bounds.TopLeft()
	}
	anchor := bounds.Anchor()
	return vec.Vec2{
		X: origin.AbsoluteLeft() - anchor.X,
		Y: origin.Anchor().Y - anchor.Y - gutter,
	}
}
