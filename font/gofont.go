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
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Names of the built-in font families.
const (
	GoFamily     = "Go"
	GoMonoFamily = "Go Mono"
)

var builtinData = map[string][4][]byte{
	GoFamily:     {goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF},
	GoMonoFamily: {gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF},
}

type builtinResult struct {
	once sync.Once
	fam  *Family
	err  error
}

var builtinCache = map[string]*builtinResult{
	GoFamily:     {},
	GoMonoFamily: {},
}

// builtinFamily returns one of the Go font families.  The fonts are parsed
// once and shared between registries; Font values are not modified after
// loading.
func builtinFamily(name string) (*Family, error) {
	res, ok := builtinCache[name]
	if !ok {
		return nil, fmt.Errorf("no built-in font family %q", name)
	}
	res.once.Do(func() {
		data := builtinData[name]
		fam := &Family{Name: name}
		for style, ttf := range data {
			f, err := Parse(ttf)
			if err != nil {
				res.err = fmt.Errorf("font %s %s: %w", name, Style(style), err)
				return
			}
			fam.fonts[style] = f
		}
		res.fam = fam
	})
	return res.fam, res.err
}
