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
	"errors"
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// GridOptions holds optional parameters for grid blocks.
// A nil *GridOptions is equivalent to the zero value.
type GridOptions struct {
	// Padding is applied to the active region before it is divided into
	// cells.
	Padding Padding

	// Gutter is the space between adjacent rows and columns.
	Gutter float64

	// Leading, if non-zero, replaces the line leading of the host while the
	// grid block runs.
	Leading float64
}

// Columns selects a range of grid columns, from First to Last inclusive.
type Columns struct {
	First, Last int
}

// Col selects the single column i.
func Col(i int) Columns {
	return Columns{First: i, Last: i}
}

// ColSpan selects the columns from first to last, inclusive.
// The order of the arguments does not matter.
func ColSpan(first, last int) Columns {
	if last < first {
		first, last = last, first
	}
	return Columns{First: first, Last: last}
}

// Grid divides a region into rows and columns of equal size.
type Grid struct {
	ctx     *Context
	frame   *Region
	columns int
	rows    int
	gutter  float64

	colWidth  float64
	rowHeight float64
}

// GridBlock divides the padded interior of the active region into a grid
// with the given number of columns and rows, and calls fn to fill the grid
// cells.  The leading of the host is restored when GridBlock returns.
func (c *Context) GridBlock(columns, rows int, opt *GridOptions, fn func(g *Grid) error) error {
	if columns < 1 || rows < 1 {
		return fmt.Errorf("invalid grid size %dx%d", columns, rows)
	}
	if opt == nil {
		opt = &GridOptions{}
	}

	return c.Padding(opt.Padding, func() error {
		g := newGrid(c, c.host.Bounds(), columns, rows, opt.Gutter)

		prevLeading := c.host.Leading()
		defer c.host.SetLeading(prevLeading)
		if opt.Leading != 0 {
			c.host.SetLeading(opt.Leading)
		}

		return fn(g)
	})
}

func newGrid(c *Context, frame *Region, columns, rows int, gutter float64) *Grid {
	return &Grid{
		ctx:       c,
		frame:     frame,
		columns:   columns,
		rows:      rows,
		gutter:    gutter,
		colWidth:  (frame.Width() - gutter*float64(columns-1)) / float64(columns),
		rowHeight: (frame.Height() - gutter*float64(rows-1)) / float64(rows),
	}
}

// Columns returns the number of columns of the grid.
func (g *Grid) Columns() int { return g.columns }

// Rows returns the number of rows of the grid.
func (g *Grid) Rows() int { return g.rows }

// ColumnWidth returns the width of a single column.
func (g *Grid) ColumnWidth() float64 { return g.colWidth }

// RowHeight returns the height of a single row.
func (g *Grid) RowHeight() float64 { return g.rowHeight }

// CellRect returns the absolute region covered by the given columns of a
// row, without materializing it.  The region spans from the left edge of the
// first column to the right edge of the last column.
func (g *Grid) CellRect(row int, cols Columns) (*Region, error) {
	cols = ColSpan(cols.First, cols.Last)
	if row < 0 || row >= g.rows || cols.First < 0 || cols.Last >= g.columns {
		return nil, &CellRangeError{
			Row:     row,
			Cols:    cols,
			Rows:    g.rows,
			Columns: g.columns,
		}
	}

	n := float64(cols.Last - cols.First + 1)
	left := g.frame.AbsoluteLeft() + float64(cols.First)*(g.colWidth+g.gutter)
	top := g.frame.AbsoluteTop() - float64(row)*(g.rowHeight+g.gutter)
	width := n*g.colWidth + (n-1)*g.gutter

	return g.frame.Child(
		g.frame.ToLocal(vec.Vec2{X: left, Y: top}),
		width, g.rowHeight)
}

// Cell runs fn with the given columns of a row as the active region.
// This is the equivalent of a table cell with a column span.
func (g *Grid) Cell(row int, cols Columns, fn func() error) (*Region, error) {
	cell, err := g.CellRect(row, cols)
	if err != nil {
		return nil, err
	}
	bounds := g.ctx.host.Bounds()
	at := bounds.ToLocal(cell.AbsoluteTopLeft())
	return g.ctx.host.BoundingBox(at, cell.Width(), cell.Height(), fn)
}

// ErrNoText is returned by TextCell if the host cannot render text.
var ErrNoText = errors.New("host cannot render text")

// TextCell renders a labeled value in a grid cell.  If label is empty, only
// the text is rendered.
func (g *Grid) TextCell(row int, cols Columns, label, text string) (*Region, error) {
	th, ok := g.ctx.host.(TextHost)
	if !ok {
		return nil, ErrNoText
	}
	return g.Cell(row, cols, func() error {
		if label == "" {
			return th.TextBox(text)
		}
		return th.TitledText(label, text)
	})
}

// CellRangeError is returned when a grid cell outside the grid is requested.
type CellRangeError struct {
	Row, Rows int
	Cols      Columns
	Columns   int
}

func (err *CellRangeError) Error() string {
	return fmt.Sprintf("grid cell (%d, %d-%d) outside %dx%d grid",
		err.Row, err.Cols.First, err.Cols.Last, err.Columns, err.Rows)
}
