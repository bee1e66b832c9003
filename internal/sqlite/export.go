// Package sqlite writes point-in-time snapshots of Airtable tables to a
// SQLite database or JSONL files. Snapshots are output only; nothing in the
// client reads them back.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/airtable/internal/codec"
	"github.com/mesh-intelligence/airtable/pkg/types"
)

// IDColumn is the primary-key column holding the Airtable record id.
const IDColumn = "id"

// ErrReservedColumn is returned when a schema field is named like IDColumn.
var ErrReservedColumn = errors.New("field name collides with id column")

// Table is one table's worth of fetched rows.
type Table struct {
	Name   string
	Schema types.Schema
	Rows   []types.Object
}

// Export creates the database at path, replacing any existing file, and
// writes every table into it. Each table is loaded inside its own
// transaction.
func Export(ctx context.Context, path string, tables []Table) error {
	for _, t := range tables {
		if err := checkTable(t); err != nil {
			return err
		}
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing old snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening sqlite: %w", err)
	}
	defer db.Close()

	for _, t := range tables {
		if err := exportTable(ctx, db, t); err != nil {
			return fmt.Errorf("exporting %s: %w", t.Name, err)
		}
	}
	return nil
}

func checkTable(t Table) error {
	if t.Name == "" {
		return types.ErrInvalidTable
	}
	if err := t.Schema.Validate(); err != nil {
		return fmt.Errorf("table %s: %w", t.Name, err)
	}
	if _, ok := t.Schema.Lookup(IDColumn); ok {
		return fmt.Errorf("table %s: %w", t.Name, ErrReservedColumn)
	}
	return nil
}

func exportTable(ctx context.Context, db *sql.DB, t Table) error {
	keys := t.Schema.Keys()
	if _, err := db.ExecContext(ctx, createTableSQL(t.Name, keys)); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL(t.Name, keys))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	c := codec.New(t.Schema)
	for _, row := range t.Rows {
		args, err := rowArgs(c, keys, row)
		if err != nil {
			return fmt.Errorf("row %s: %w", row.ID(), err)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %s: %w", row.ID(), err)
		}
	}
	return tx.Commit()
}

// columnType maps a field kind to its SQLite column affinity.
func columnType(kind types.FieldKind) string {
	switch kind {
	case types.KindNumber, types.KindCheckbox:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

func createTableSQL(table string, keys []types.FieldKey) string {
	cols := []string{quoteIdent(IDColumn) + " TEXT PRIMARY KEY"}
	for _, k := range keys {
		cols = append(cols, quoteIdent(k.Name)+" "+columnType(k.Kind))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(cols, ", "))
}

func insertSQL(table string, keys []types.FieldKey) string {
	cols := []string{quoteIdent(IDColumn)}
	for _, k := range keys {
		cols = append(cols, quoteIdent(k.Name))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(cols, ", "), placeholders)
}

// rowArgs encodes row with the table codec and converts each wire value to
// a column value. Fields the row does not carry become NULL.
func rowArgs(c *codec.Codec, keys []types.FieldKey, row types.Object) ([]any, error) {
	fields := c.EncodeFields(row)
	args := make([]any, 0, len(keys)+1)
	args = append(args, row.ID())
	for _, k := range keys {
		wire, ok := fields.Get(k.Name)
		if !ok {
			args = append(args, nil)
			continue
		}
		switch v := wire.(type) {
		case string, int64:
			args = append(args, v)
		case bool:
			if v {
				args = append(args, int64(1))
			} else {
				args = append(args, int64(0))
			}
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", k.Name, err)
			}
			args = append(args, string(b))
		}
	}
	return args, nil
}

// quoteIdent quotes a SQLite identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
