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

// Package pagevalue stores values which change from page to page.
//
// Headers and footers are often drawn after the content of all pages has
// been generated.  At that point, values which were current while a page
// was being filled (for example the title of the section which starts on
// the page) are no longer available.  A Store records these values during
// content generation, so that they can be looked up by page number later.
package pagevalue

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Store maps keys to page-dependent values.
//
// Values are written in increasing page order.  When a value is stored for a
// page, all pages between the last page with a value and the new page are
// filled with the value which was current before the write, so that every
// page up to the highest written page has a value.
//
// A Store is not safe for concurrent use.
type Store[V any] struct {
	pages map[string]map[int]V
	max   map[string]int
}

// New returns an empty store.
func New[V any]() *Store[V] {
	return &Store[V]{
		pages: make(map[string]map[int]V),
		max:   make(map[string]int),
	}
}

// Set stores value for the given key and page.
//
// Pages after the highest page previously written for this key and before
// page are set to the value which was current for page before the call.  On
// the first write for a key, these pages get the zero value of V.  Pages
// which already have a value are never changed.
func (s *Store[V]) Set(key string, value V, page int) {
	// zero value if nothing is stored yet
	prev, _ := s.Get(key, page)

	values := s.pages[key]
	if values == nil {
		values = make(map[int]V)
		s.pages[key] = values
	}
	maxPage := s.max[key]

	for p := maxPage + 1; p < page; p++ {
		if _, ok := values[p]; !ok {
			values[p] = prev
		}
	}
	if _, ok := values[page]; !ok {
		values[page] = value
	}
	if page > maxPage {
		s.max[key] = page
	}
}

// Get returns the value of key for the given page.
//
// For pages after the highest written page, the value of the highest written
// page is returned.  The second return value is false if no value is
// available, for example if the key is unknown or page is less than 1.
func (s *Store[V]) Get(key string, page int) (V, bool) {
	values := s.pages[key]
	if len(values) == 0 {
		var zero V
		return zero, false
	}
	v, ok := values[min(page, s.max[key])]
	return v, ok
}

// Lookup returns the value of key for the given page, or def if no value is
// available.  See Get for details.
func (s *Store[V]) Lookup(key string, page int, def V) V {
	v, ok := s.Get(key, page)
	if !ok {
		return def
	}
	return v
}

// MaxPage returns the highest page written for key, or 0 if the key has not
// been written.
func (s *Store[V]) MaxPage(key string) int {
	return s.max[key]
}

// Keys returns the keys of the store in sorted order.
func (s *Store[V]) Keys() []string {
	keys := maps.Keys(s.pages)
	slices.Sort(keys)
	return keys
}

// Len returns the number of pages with a value for key.
func (s *Store[V]) Len(key string) int {
	return len(s.pages[key])
}
