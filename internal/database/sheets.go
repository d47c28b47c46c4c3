package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Column maps a sheet header to its SQL column.
type Column struct {
	Header string
	Name   string
}

// Sheet describes one collection table. Key is the header used to find rows
// on update and delete.
type Sheet struct {
	Table   string
	Key     string
	Columns []Column
}

// Sheets holds the four collections, keyed by their URL path segment.
var Sheets = map[string]Sheet{
	"guests": {
		Table: "guests",
		Key:   "Name",
		Columns: []Column{
			{"Name", "name"}, {"Email", "email"}, {"RSVP", "rsvp"}, {"Message", "message"},
		},
	},
	"guest-requests": {
		Table: "guest_requests",
		Key:   "Name",
		Columns: []Column{
			{"Name", "name"}, {"Email", "email"}, {"Phone", "phone"}, {"RSVP", "rsvp"}, {"Message", "message"},
		},
	},
	"entourage": {
		Table: "entourage",
		Key:   "Name",
		Columns: []Column{
			{"Name", "name"}, {"RoleCategory", "role_category"}, {"RoleTitle", "role_title"}, {"Email", "email"},
		},
	},
	"principal-sponsors": {
		Table: "principal_sponsors",
		Key:   "MalePrincipalSponsor",
		Columns: []Column{
			{"MalePrincipalSponsor", "male_principal_sponsor"}, {"FemalePrincipalSponsor", "female_principal_sponsor"},
		},
	},
}

// Row is one sheet row. Values follow the sheet's column order.
type Row struct {
	sheet  Sheet
	Values []string
}

// get returns the value under a header, or "" when the header is unknown.
func (r Row) get(header string) string {
	for i, c := range r.sheet.Columns {
		if c.Header == header {
			return r.Values[i]
		}
	}
	return ""
}

// MarshalJSON writes the row as an object with keys in column order, the
// way the spreadsheet script serializes rows.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.sheet.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Header)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s Sheet) column(header string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Header == header {
			return c, true
		}
	}
	return Column{}, false
}

func (s Sheet) columnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// ListRows returns every row in insertion order.
func (db *DB) ListRows(ctx context.Context, sheet Sheet) ([]Row, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(sheet.columnNames(), ", "), sheet.Table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", sheet.Table, err)
	}
	defer rows.Close()

	result := []Row{}
	for rows.Next() {
		values := make([]string, len(sheet.Columns))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", sheet.Table, err)
		}
		result = append(result, Row{sheet: sheet, Values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", sheet.Table, err)
	}

	return result, nil
}

// AppendRow adds a row at the bottom of the sheet. Unknown headers are
// ignored, missing ones are stored as "".
func (db *DB) AppendRow(ctx context.Context, sheet Sheet, values map[string]string) error {
	args := make([]any, len(sheet.Columns))
	marks := make([]string, len(sheet.Columns))
	for i, c := range sheet.Columns {
		args[i] = values[c.Header]
		marks[i] = "?"
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		sheet.Table, strings.Join(sheet.columnNames(), ", "), strings.Join(marks, ", "))
	if _, err := db.ExecContext(ctx, db.rebind(query), args...); err != nil {
		return fmt.Errorf("failed to append %s row: %w", sheet.Table, err)
	}
	return nil
}

// UpdateRow overwrites the given headers on the first row whose key equals
// key. It reports false when no row matched.
func (db *DB) UpdateRow(ctx context.Context, sheet Sheet, key string, values map[string]string) (bool, error) {
	keyColumn, _ := sheet.column(sheet.Key)

	var sets []string
	var args []any
	for _, c := range sheet.Columns {
		v, ok := values[c.Header]
		if !ok {
			continue
		}
		sets = append(sets, c.Name+" = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return db.rowExists(ctx, sheet, key)
	}
	args = append(args, key)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = (SELECT id FROM %s WHERE %s = ? ORDER BY id LIMIT 1)",
		sheet.Table, strings.Join(sets, ", "), sheet.Table, keyColumn.Name)
	res, err := db.ExecContext(ctx, db.rebind(query), args...)
	if err != nil {
		return false, fmt.Errorf("failed to update %s row: %w", sheet.Table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update %s row: %w", sheet.Table, err)
	}
	return n > 0, nil
}

// DeleteRow removes the first row whose key equals key. It reports false
// when no row matched.
func (db *DB) DeleteRow(ctx context.Context, sheet Sheet, key string) (bool, error) {
	keyColumn, _ := sheet.column(sheet.Key)

	query := fmt.Sprintf("DELETE FROM %s WHERE id = (SELECT id FROM %s WHERE %s = ? ORDER BY id LIMIT 1)",
		sheet.Table, sheet.Table, keyColumn.Name)
	res, err := db.ExecContext(ctx, db.rebind(query), key)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s row: %w", sheet.Table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete %s row: %w", sheet.Table, err)
	}
	return n > 0, nil
}

func (db *DB) rowExists(ctx context.Context, sheet Sheet, key string) (bool, error) {
	keyColumn, _ := sheet.column(sheet.Key)

	var exists bool
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = ?)", sheet.Table, keyColumn.Name)
	if err := db.QueryRowContext(ctx, db.rebind(query), key).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to look up %s row: %w", sheet.Table, err)
	}
	return exists, nil
}
