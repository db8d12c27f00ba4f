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

package report

import (
	"seehuhn.de/go/pdfreport/internal/source"
	"seehuhn.de/go/pdfreport/layout"
)

type cell struct {
	cols  layout.Columns
	field source.Field
}

// bands distributes fields over rows of a grid with the given number of
// columns.  Fields are placed left to right; a field which does not fit
// into the remaining columns of a row starts a new row.
func bands(fields []source.Field, columns int) [][]cell {
	var res [][]cell
	var row []cell
	col := 0
	for _, f := range fields {
		span := min(max(f.Span, 1), columns)
		if col+span > columns {
			res = append(res, row)
			row = nil
			col = 0
		}
		row = append(row, cell{cols: layout.ColSpan(col, col+span-1), field: f})
		col += span
	}
	if len(row) > 0 {
		res = append(res, row)
	}
	return res
}
