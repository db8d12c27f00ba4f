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

package document

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/rect"
)

// Default paper sizes.
var (
	A4     = rect.Rect{URx: 595.276, URy: 841.890}
	A5     = rect.Rect{URx: 420.945, URy: 595.276}
	Letter = rect.Rect{URx: 612, URy: 792}
	Legal  = rect.Rect{URx: 612, URy: 1008}
)

// PaperSize returns the paper size with the given name.  Appending
// "-landscape" to the name swaps width and height.
func PaperSize(name string) (rect.Rect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	base, landscape := strings.CutSuffix(name, "-landscape")

	var paper rect.Rect
	switch base {
	case "a4":
		paper = A4
	case "a5":
		paper = A5
	case "letter":
		paper = Letter
	case "legal":
		paper = Legal
	default:
		return rect.Rect{}, fmt.Errorf("unknown paper size %q", name)
	}
	if landscape {
		paper.URx, paper.URy = paper.URy, paper.URx
	}
	return paper, nil
}

// Margins gives the distance between the edges of the paper and the
// printable area of a page.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// UniformMargins returns margins of the same size on all four sides.
func UniformMargins(m float64) Margins {
	return Margins{Top: m, Right: m, Bottom: m, Left: m}
}

// apply returns the printable area of a page with the given paper size.
func (m Margins) apply(paper rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: paper.LLx + m.Left,
		LLy: paper.LLy + m.Bottom,
		URx: paper.URx - m.Right,
		URy: paper.URy - m.Top,
	}
}
