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

// Package i18n translates the labels used in reports.
//
// Keys without a translation are returned unchanged, so that untranslated
// labels can be used directly.
package i18n

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// Bundle holds the translations for one language.
type Bundle struct {
	tag     language.Tag
	cat     *catalog.Builder
	printer *message.Printer
	keys    map[string]bool
	scope   string
}

// NewBundle returns an empty bundle for the given language.
func NewBundle(tag language.Tag) *Bundle {
	cat := catalog.NewBuilder(catalog.Fallback(tag))
	return &Bundle{
		tag:     tag,
		cat:     cat,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
		keys:    make(map[string]bool),
	}
}

// Language returns the language of the bundle.
func (b *Bundle) Language() language.Tag {
	return b.tag
}

// Add sets the message for key.  The message may contain fmt-style
// formatting verbs.  Keys added through a scoped bundle are prefixed with
// the scope.
func (b *Bundle) Add(key, msg string) error {
	key = b.qualify(key)
	err := b.cat.SetString(b.tag, key, msg)
	if err != nil {
		return fmt.Errorf("message %q: %w", key, err)
	}
	b.keys[key] = true
	return nil
}

// LoadYAML reads messages from a YAML document.  Nested mappings are
// flattened, joining the keys with dots:
//
//	report:
//	  page: "Page %d of %d"
//
// defines the key "report.page".
func (b *Bundle) LoadYAML(r io.Reader) error {
	var doc map[string]any
	err := yaml.NewDecoder(r).Decode(&doc)
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	return b.addTree("", doc)
}

func (b *Bundle) addTree(prefix string, tree map[string]any) error {
	keys := maps.Keys(tree)
	slices.Sort(keys)
	for _, key := range keys {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch val := tree[key].(type) {
		case map[string]any:
			if err := b.addTree(full, val); err != nil {
				return err
			}
		case nil:
			// skip
		default:
			if err := b.Add(full, fmt.Sprint(val)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WithScope returns a view of the bundle in which keys are looked up
// relative to scope first.  The returned bundle shares the messages with b.
func (b *Bundle) WithScope(scope string) *Bundle {
	res := *b
	res.scope = b.qualify(scope)
	return &res
}

// Scope returns the scope of the bundle.
func (b *Bundle) Scope() string {
	return b.scope
}

// Has reports whether a message exists for key.
func (b *Bundle) Has(key string) bool {
	return b.resolve(key) != ""
}

// T returns the message for key, formatted with args.  If there is no
// message, key itself is used as the format.  Without args, an unknown key
// is returned unchanged.
func (b *Bundle) T(key string, args ...any) string {
	full := b.resolve(key)
	if full == "" {
		if len(args) == 0 {
			return key
		}
		full = key
	}
	return b.printer.Sprintf(full, args...)
}

func (b *Bundle) resolve(key string) string {
	if scoped := b.qualify(key); b.keys[scoped] {
		return scoped
	}
	if b.keys[key] {
		return key
	}
	return ""
}

func (b *Bundle) qualify(key string) string {
	if b.scope == "" {
		return key
	}
	return b.scope + "." + strings.TrimPrefix(key, ".")
}
