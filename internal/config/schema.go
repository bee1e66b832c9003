// Package config loads the table schema file used by the CLI.
//
// The file lists tables in order, each with its fields in column order:
//
//	tables:
//	  - name: content
//	    fields:
//	      - {name: view, kind: singleSelect}
//	      - {name: position, kind: number}
//	      - {name: title, kind: text}
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/airtable/pkg/types"
)

// Schema file errors.
var (
	ErrNoTables       = errors.New("schema file defines no tables")
	ErrDuplicateTable = errors.New("duplicate table")
	ErrUnknownTable   = errors.New("table not defined in schema file")
)

// TableDef is one table entry of the schema file.
type TableDef struct {
	Name   string           `yaml:"name"`
	Fields []types.FieldKey `yaml:"fields"`
}

type schemaFile struct {
	Tables []TableDef `yaml:"tables"`
}

// Schemas maps table names to schemas and remembers file order.
type Schemas struct {
	order  []string
	byName map[string]types.Schema
}

// Names returns table names in file order.
func (s *Schemas) Names() []string {
	cp := make([]string, len(s.order))
	copy(cp, s.order)
	return cp
}

// Get returns the schema for table, or ErrUnknownTable.
func (s *Schemas) Get(table string) (types.Schema, error) {
	schema, ok := s.byName[table]
	if !ok {
		return types.Schema{}, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return schema, nil
}

// LoadSchemas reads and validates the schema file at path.
func LoadSchemas(path string) (*Schemas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	schemas, err := ParseSchemas(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return schemas, nil
}

// ParseSchemas decodes a schema document. Unknown keys are rejected, every
// table needs a unique non-empty name, and every schema must validate.
func ParseSchemas(data []byte) (*Schemas, error) {
	var file schemaFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(file.Tables) == 0 {
		return nil, ErrNoTables
	}

	s := &Schemas{byName: make(map[string]types.Schema, len(file.Tables))}
	for i, def := range file.Tables {
		if def.Name == "" {
			return nil, fmt.Errorf("table %d: %w", i, types.ErrInvalidTable)
		}
		if _, dup := s.byName[def.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTable, def.Name)
		}
		schema := types.NewSchema(def.Fields...)
		if err := schema.Validate(); err != nil {
			return nil, fmt.Errorf("table %s: %w", def.Name, err)
		}
		s.order = append(s.order, def.Name)
		s.byName[def.Name] = schema
	}
	return s, nil
}

// Marshal renders schemas back into the file format.
func (s *Schemas) Marshal() ([]byte, error) {
	file := schemaFile{Tables: make([]TableDef, 0, len(s.order))}
	for _, name := range s.order {
		file.Tables = append(file.Tables, TableDef{Name: name, Fields: s.byName[name].Keys()})
	}
	return yaml.Marshal(file)
}

// NewSchemas builds a Schemas from table definitions without validation.
func NewSchemas(defs ...TableDef) *Schemas {
	s := &Schemas{byName: make(map[string]types.Schema, len(defs))}
	for _, def := range defs {
		if _, dup := s.byName[def.Name]; !dup {
			s.order = append(s.order, def.Name)
		}
		s.byName[def.Name] = types.NewSchema(def.Fields...)
	}
	return s
}
