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

package source

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a report from a YAML file.
func LoadYAML(path string) (*Report, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	rep, err := ReadYAML(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rep, nil
}

// ReadYAML decodes a report in YAML format.
func ReadYAML(r io.Reader) (*Report, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	rep := &Report{}
	if err := dec.Decode(rep); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty report")
		}
		return nil, err
	}
	if err := rep.normalize(); err != nil {
		return nil, err
	}
	return rep, nil
}
