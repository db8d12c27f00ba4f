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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/pdfreport/internal/observability"
)

const testReport = `
title: Site Visit
sections:
  - title: Location
    fields:
      - label: Street
        value: Main Street 1
      - label: City
        value: Springfield
  - title: Notes
    columns: 1
    fields:
      - label: Remarks
        value: none
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pdfreport dev\n", out)
}

func TestFonts(t *testing.T) {
	out, err := execute(t, "fonts")
	require.NoError(t, err)
	assert.Contains(t, out, "* Go: regular, bold, italic, bolditalic\n")
	assert.Contains(t, out, "  Go Mono: ")
}

func TestRenderToFile(t *testing.T) {
	data := writeFile(t, "report.yaml", testReport)
	pdfFile := filepath.Join(t.TempDir(), "out.pdf")

	_, err := execute(t, "render", "--data", data, "-o", pdfFile, "--paper", "letter")
	require.NoError(t, err)

	body, err := os.ReadFile(pdfFile)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-1.7")))
	assert.True(t, bytes.HasSuffix(body, []byte("%%EOF\n")))
	assert.Contains(t, string(body), "/MediaBox [0 0 612 792]")
}

func TestRenderToStdout(t *testing.T) {
	data := writeFile(t, "report.yaml", testReport)

	out, err := execute(t, "render", "--data", data, "--title", "Other Title")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
	assert.Contains(t, out, "Other Title")
}

func TestRenderWithConfigFile(t *testing.T) {
	data := writeFile(t, "report.yaml", testReport)
	messages := writeFile(t, "de.yaml", "Location: Ort\nNotes: Notizen\n")
	cfgFile := writeFile(t, "pdfreport.yaml", `
locale:
  language: de
  messages: `+messages+`
output:
  compress: false
report:
  page_break_per_section: true
`)

	out, err := execute(t, "render", "--config", cfgFile, "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "(Ort) Tj")
	assert.Contains(t, out, "(Notizen) Tj")
	assert.Contains(t, out, "/Count 2")
}

func TestRenderErrors(t *testing.T) {
	_, err := execute(t, "render")
	assert.ErrorContains(t, err, "no report data")

	_, err = execute(t, "render", "--sqlite", "report.db")
	assert.ErrorContains(t, err, "source.query")

	_, err = execute(t, "render", "--data", "x.yaml", "--paper", "a17")
	assert.ErrorContains(t, err, "page.paper")

	_, err = execute(t, "render", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
