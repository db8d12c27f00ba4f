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
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newFontsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List the available font families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadFonts(a.cfg.Fonts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range reg.Families() {
				fam, err := reg.Family(name)
				if err != nil {
					return err
				}
				var styles []string
				for _, s := range fam.Styles() {
					styles = append(styles, s.String())
				}
				marker := " "
				if name == a.cfg.Fonts.Family {
					marker = "*"
				}
				_, err = fmt.Fprintf(out, "%s %s: %s\n", marker, name, strings.Join(styles, ", "))
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
