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

// Package source loads report data from YAML files and SQLite databases.
package source

import (
	"errors"
	"fmt"
)

// DefaultColumns is the number of grid columns used for sections which do
// not specify a column count.
const DefaultColumns = 2

// Report is the content of a report.
type Report struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Sections []Section `yaml:"sections"`
}

// Section is a titled group of fields, which are laid out in a grid.
type Section struct {
	Title   string  `yaml:"title"`
	Columns int     `yaml:"columns"`
	Fields  []Field `yaml:"fields"`
}

// Field is a labelled value.  Span gives the number of grid columns the
// field occupies.
type Field struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Span  int    `yaml:"span"`
}

// normalize fills in default column counts and spans.
func (r *Report) normalize() error {
	if len(r.Sections) == 0 {
		return errors.New("report has no sections")
	}
	for i := range r.Sections {
		sec := &r.Sections[i]
		if sec.Columns < 0 {
			return fmt.Errorf("section %q: invalid column count %d", sec.Title, sec.Columns)
		}
		if sec.Columns == 0 {
			sec.Columns = DefaultColumns
		}
		for j := range sec.Fields {
			f := &sec.Fields[j]
			if f.Span <= 0 {
				f.Span = 1
			}
			if f.Span > sec.Columns {
				return fmt.Errorf("section %q, field %q: span %d exceeds %d columns",
					sec.Title, f.Label, f.Span, sec.Columns)
			}
		}
	}
	return nil
}
