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
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens a SQLite database.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return db, nil
}

// LoadSQLite reads report fields from a SQLite database.
//
// The query must return the columns section, label and value, and
// optionally a fourth column with the span of the field.  Consecutive rows
// with the same section title form one section.
func LoadSQLite(ctx context.Context, path, query string) (*Report, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rep, err := QuerySections(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rep, nil
}

// QuerySections runs query on db and groups the result rows into sections.
// See LoadSQLite for the expected columns.
func QuerySections(ctx context.Context, db *sql.DB, query string) (*Report, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(cols) != 3 && len(cols) != 4 {
		return nil, fmt.Errorf("query returns %d columns, expected 3 or 4", len(cols))
	}

	rep := &Report{}
	for rows.Next() {
		var section, label, value string
		span := sql.NullInt64{}
		dest := []any{&section, &label, &value}
		if len(cols) == 4 {
			dest = append(dest, &span)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		n := len(rep.Sections)
		if n == 0 || rep.Sections[n-1].Title != section {
			rep.Sections = append(rep.Sections, Section{Title: section})
			n++
		}
		sec := &rep.Sections[n-1]
		f := Field{Label: label, Value: value, Span: int(span.Int64)}
		sec.Fields = append(sec.Fields, f)
		sec.Columns = max(sec.Columns, DefaultColumns, f.Span)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := rep.normalize(); err != nil {
		return nil, err
	}
	return rep, nil
}
