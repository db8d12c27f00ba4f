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

// Command pdfreport renders reports, read from YAML files or SQLite
// databases, as PDF files.
package main

import (
	"fmt"
	"os"

	"seehuhn.de/go/pdfreport/internal/observability"
)

func main() {
	err := newRootCmd().Execute()
	observability.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pdfreport:", err)
		os.Exit(1)
	}
}
