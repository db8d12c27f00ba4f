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
	"slices"

	"go.uber.org/zap"
)

// PageFilter selects pages by number.
type PageFilter func(page int) bool

// AllPages selects every page.
func AllPages(int) bool { return true }

// OddPages selects pages 1, 3, 5, ...
func OddPages(page int) bool { return page%2 == 1 }

// EvenPages selects pages 2, 4, 6, ...
func EvenPages(page int) bool { return page%2 == 0 }

// PageList returns a filter which selects the listed pages.
func PageList(pages ...int) PageFilter {
	pages = slices.Clone(pages)
	return func(page int) bool {
		return slices.Contains(pages, page)
	}
}

// PageRange returns a filter which selects the pages from first to last,
// inclusive.  If last is zero or negative, all pages from first on are
// selected.
func PageRange(first, last int) PageFilter {
	return func(page int) bool {
		return page >= first && (last <= 0 || page <= last)
	}
}

type repeater struct {
	filter PageFilter
	fn     func(page int) error
}

// Repeat registers fn to draw on all pages selected by filter.  A nil
// filter selects all pages.
//
// The function is called when the document is closed, once for every
// selected page, in page order.  During the call, the area inside the page
// margins is the active region, the text cursor is at the top of this area,
// the default font and leading are selected with left alignment, and
// PageNumber returns the page being drawn.  Values stored with StoreValue can be retrieved using ValueInPage.
func (doc *Document) Repeat(filter PageFilter, fn func(page int) error) {
	if filter == nil {
		filter = AllPages
	}
	doc.repeaters = append(doc.repeaters, &repeater{filter: filter, fn: fn})
}

func (doc *Document) runRepeaters() error {
	if len(doc.repeaters) == 0 {
		return nil
	}

	doc.inRepeat = true
	defer func() { doc.inRepeat = false }()

	for _, p := range doc.pages {
		for i, rep := range doc.repeaters {
			if !rep.filter(p.number) {
				continue
			}
			err := doc.runRepeater(rep, p)
			if err != nil {
				return fmt.Errorf("repeater %d on page %d: %w", i+1, p.number, err)
			}
			doc.logger.Debug("repeater evaluated",
				zap.Int("repeater", i+1),
				zap.Int("page", p.number))
		}
	}
	return nil
}

func (doc *Document) runRepeater(rep *repeater, p *page) error {
	doc.enterPage(p)
	doc.font = doc.defaultFont
	doc.leading = doc.defaultLeading
	doc.align = AlignLeft
	doc.layout.ResetLastCreatedBox()

	b := p.content
	b.PushGraphicsState()
	defer b.PopGraphicsState()

	return rep.fn(p.number)
}
