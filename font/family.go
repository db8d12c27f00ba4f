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

package font

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/exp/maps"
)

// Style selects a member of a font family.
type Style uint8

// These are the supported font styles.
const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

var styleNames = [...]string{"regular", "bold", "italic", "bolditalic"}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle converts a style name to a Style.  The names "normal" and
// "bold_italic" are accepted as aliases.
func ParseStyle(name string) (Style, error) {
	name = strings.ToLower(strings.ReplaceAll(name, "_", ""))
	if name == "normal" || name == "" {
		return Regular, nil
	}
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("unknown font style %q", name)
}

// fileSuffix returns the file name suffix used for the style in a font
// directory.
func (s Style) fileSuffix() string {
	switch s {
	case Bold:
		return "_Bold"
	case Italic:
		return "_Italic"
	case BoldItalic:
		return "_BoldItalic"
	default:
		return ""
	}
}

// Family is a set of fonts which share a design, in different styles.
type Family struct {
	Name  string
	fonts [4]*Font
}

// NewFamily creates a font family.  The regular style is required.
func NewFamily(name string, regular *Font) *Family {
	fam := &Family{Name: name}
	fam.fonts[Regular] = regular
	return fam
}

// Set adds the font for the given style to the family.
func (fam *Family) Set(style Style, f *Font) {
	if int(style) < len(fam.fonts) {
		fam.fonts[style] = f
	}
}

// Has reports whether the family contains a font for the given style.
func (fam *Family) Has(style Style) bool {
	return int(style) < len(fam.fonts) && fam.fonts[style] != nil
}

// Styles returns the styles available in the family.
func (fam *Family) Styles() []Style {
	var res []Style
	for s, f := range fam.fonts {
		if f != nil {
			res = append(res, Style(s))
		}
	}
	return res
}

// Font returns the font for the given style.  Missing styles fall back to
// the closest available style: bold italic to bold, then italic, and
// everything to regular.
func (fam *Family) Font(style Style) *Font {
	if fam.Has(style) {
		return fam.fonts[style]
	}
	if style == BoldItalic {
		if fam.Has(Bold) {
			return fam.fonts[Bold]
		}
		if fam.Has(Italic) {
			return fam.fonts[Italic]
		}
	}
	return fam.fonts[Regular]
}

// Registry holds the font families available to a document.
type Registry struct {
	families map[string]*Family
}

// NewRegistry returns a registry which contains the built-in font families
// "Go" and "Go Mono".
func NewRegistry() (*Registry, error) {
	r := &Registry{families: make(map[string]*Family)}
	for _, name := range []string{GoFamily, GoMonoFamily} {
		fam, err := builtinFamily(name)
		if err != nil {
			return nil, err
		}
		r.Add(fam)
	}
	return r, nil
}

// Add registers a font family, replacing any family with the same name.
func (r *Registry) Add(fam *Family) {
	r.families[fam.Name] = fam
}

// CreateFamily loads a font family from the directory dir.
//
// The fonts must be stored in files named after the family, with an
// optional suffix for the style:
//
//	Family.ttf
//	Family_Bold.ttf
//	Family_Italic.ttf
//	Family_BoldItalic.ttf
//
// Only the regular style is required; missing files for the other styles are
// skipped.  The extension ext defaults to "ttf".
func (r *Registry) CreateFamily(dir, family, ext string) (*Family, error) {
	if ext == "" {
		ext = "ttf"
	}
	ext = strings.TrimPrefix(ext, ".")

	var fam *Family
	for _, style := range []Style{Regular, Bold, Italic, BoldItalic} {
		fname := filepath.Join(dir, family+style.fileSuffix()+"."+ext)
		f, err := LoadFile(fname)
		if errors.Is(err, fs.ErrNotExist) && style != Regular {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("font family %q: %w", family, err)
		}
		if fam == nil {
			fam = NewFamily(family, f)
		} else {
			fam.Set(style, f)
		}
	}

	r.Add(fam)
	return fam, nil
}

// Family returns the named font family.
func (r *Registry) Family(name string) (*Family, error) {
	fam, ok := r.families[name]
	if !ok {
		return nil, &UnknownFamilyError{Name: name, Suggestion: r.closest(name)}
	}
	return fam, nil
}

// Lookup returns the font for the given family and style.
func (r *Registry) Lookup(family string, style Style) (*Font, error) {
	fam, err := r.Family(family)
	if err != nil {
		return nil, err
	}
	return fam.Font(style), nil
}

// Families returns the names of all registered families, in sorted order.
func (r *Registry) Families() []string {
	names := maps.Keys(r.families)
	slices.Sort(names)
	return names
}

func (r *Registry) closest(name string) string {
	best := ""
	bestDist := -1
	lower := strings.ToLower(name)
	for _, candidate := range r.Families() {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(candidate))
		if bestDist < 0 || d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(name)/2) {
		return ""
	}
	return best
}

// UnknownFamilyError is returned when a font family is not registered.
type UnknownFamilyError struct {
	Name       string
	Suggestion string
}

func (err *UnknownFamilyError) Error() string {
	msg := fmt.Sprintf("unknown font family %q", err.Name)
	if err.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", err.Suggestion)
	}
	return msg
}

// Exists reports whether the regular style of a font family exists in dir.
func Exists(dir, family, ext string) bool {
	if ext == "" {
		ext = "ttf"
	}
	_, err := os.Stat(filepath.Join(dir, family+"."+strings.TrimPrefix(ext, ".")))
	return err == nil
}
