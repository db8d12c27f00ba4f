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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestBoxBesidePreviousWithoutPredecessor(t *testing.T) {
	host := newTestHost(50, 40, 500, 700)
	ctx := New(host)

	box, err := ctx.BoxBesidePrevious(Pt(100), Pt(50), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(host.bounds.AbsoluteTopLeft(), box.AbsoluteTopLeft()); d != "" {
		t.Errorf("box not at top-left (-want +got):\n%s", d)
	}
	if ctx.LastCreatedBox() != box {
		t.Error("box was not tracked")
	}
}

func TestBoxChain(t *testing.T) {
	host := newTestHost(0, 0, 600, 800)
	ctx := New(host)
	opt := &BoxOptions{Gutter: 10}

	first, err := ctx.Box(ctx.TopLeft(), Percent(25), Pt(100), opt, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ctx.BoxBesidePrevious(LocalPercent(50), Pt(100), opt, nil)
	if err != nil {
		t.Fatal(err)
	}
	third, err := ctx.BoxBelowPrevious(Pt(80), Pt(40), opt, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := []rect.Rect{
		{LLx: 0, LLy: 700, URx: 150, URy: 800},
		// starts at x=160, half of the remaining 440 points
		{LLx: 160, LLy: 700, URx: 380, URy: 800},
		{LLx: 160, LLy: 650, URx: 240, URy: 690},
	}
	got := []rect.Rect{first.Rect, second.Rect, third.Rect}
	if d := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Errorf("wrong boxes (-want +got):\n%s", d)
	}
	if ctx.LastCreatedBox() != third {
		t.Error("last created box is wrong")
	}
}

func TestBoxDontTrack(t *testing.T) {
	host := newTestHost(0, 0, 600, 800)
	ctx := New(host)

	first, _ := ctx.Box(ctx.TopLeft(), Pt(10), Pt(10), nil, nil)
	_, err := ctx.BoxBelow(first, Pt(10), Pt(10), &BoxOptions{DontTrack: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ctx.LastCreatedBox() != first {
		t.Error("untracked box replaced the last created box")
	}

	ctx.ResetLastCreatedBox()
	if ctx.LastCreatedBox() != nil {
		t.Error("reset did not clear the last created box")
	}
}

func TestBoxPaddingAndFrame(t *testing.T) {
	host := newTestHost(100, 100, 400, 400)
	ctx := New(host)
	root := host.Bounds()

	var inner *Region
	box, err := ctx.Box(vec.Vec2{X: 10, Y: 390}, Pt(200), Pt(100),
		&BoxOptions{Padding: Pad4(10, 20, 10, 20)},
		func() error {
			inner = host.Bounds()
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}

	if d := cmp.Diff(rect.Rect{LLx: 110, LLy: 390, URx: 310, URy: 490}, box.Rect); d != "" {
		t.Errorf("wrong outer box (-want +got):\n%s", d)
	}
	if d := cmp.Diff(rect.Rect{LLx: 130, LLy: 400, URx: 290, URy: 480}, inner.Rect); d != "" {
		t.Errorf("wrong content frame (-want +got):\n%s", d)
	}
	if host.Bounds() != root {
		t.Error("active region was not restored")
	}
}

func TestBoxErrorRestoresFrame(t *testing.T) {
	host := newTestHost(0, 0, 600, 800)
	ctx := New(host)
	root := host.Bounds()

	errTest := errors.New("test error")
	box, err := ctx.Box(ctx.TopLeft(), Pt(100), Pt(100), nil, func() error {
		return errTest
	})
	if !errors.Is(err, errTest) {
		t.Errorf("expected test error, got %v", err)
	}
	if box == nil || ctx.LastCreatedBox() != box {
		t.Error("failed box was not returned and tracked")
	}
	if host.Bounds() != root {
		t.Error("active region was not restored after error")
	}

	// panics also restore the active region
	func() {
		defer func() { recover() }()
		ctx.Box(ctx.TopLeft(), Pt(100), Pt(100), nil, func() error {
			panic("test panic")
		})
	}()
	if host.Bounds() != root {
		t.Error("active region was not restored after panic")
	}
}

func TestBoxInvalidRegion(t *testing.T) {
	host := newTestHost(0, 0, 600, 800)
	ctx := New(host)

	called := false
	box, err := ctx.Box(ctx.TopLeft(), Pt(30), Pt(30), &BoxOptions{Padding: Pad(20)}, func() error {
		called = true
		return nil
	})

	var invalid *InvalidRegionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidRegionError, got %v", err)
	}
	if invalid.Width != -10 || invalid.Height != -10 {
		t.Errorf("wrong size in error: %gx%g", invalid.Width, invalid.Height)
	}
	if called {
		t.Error("content function called for invalid region")
	}
	if box == nil {
		t.Error("outer box should still be returned")
	}
}

func TestPercentHelpers(t *testing.T) {
	host := newTestHost(0, 0, 400, 200)
	ctx := New(host)

	if got := ctx.PercentW(25); got != 100 {
		t.Errorf("PercentW(25) = %g", got)
	}
	if got := ctx.PercentH(150); got != 200 {
		t.Errorf("PercentH(150) = %g", got)
	}

	base, _ := ctx.Box(ctx.TopLeft(), Percent(100), Pt(50), nil, nil)
	if got := ctx.RemainingHeight(base); got != 150 {
		t.Errorf("RemainingHeight = %g, want 150", got)
	}
}
