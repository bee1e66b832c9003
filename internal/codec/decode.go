package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/mesh-intelligence/airtable/pkg/types"
)

// DecodeFields converts the "fields" object of one wire row into a Record.
// Schema keys missing from fields are logged and left out of the Record;
// values of the wrong JSON shape are dropped, except checkbox, which
// becomes an explicit false.
func (c *Codec) DecodeFields(fields map[string]any) types.Record {
	record := make(types.Record, c.schema.Len())
	for _, key := range c.schema.Keys() {
		raw, ok := fields[key.Name]
		if !ok {
			c.logger.Printf("airtable: field %q not found in record (wrong schema?)", key.Name)
			continue
		}
		if v, ok := decodeValue(key.Kind, raw); ok {
			record[key] = v
		}
	}
	return record
}

// decodeValue applies the decode rule for kind to one wire value.
func decodeValue(kind types.FieldKind, raw any) (types.Value, bool) {
	switch kind {
	case types.KindText, types.KindSingleSelect:
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		return types.Str(s), true
	case types.KindNumber:
		n, ok := toInt(raw)
		if !ok {
			return nil, false
		}
		return types.Int(n), true
	case types.KindCheckbox:
		b, _ := raw.(bool)
		return types.Bool(b), true
	case types.KindLinkToRecord:
		return decodeLinks(raw)
	case types.KindDateTime:
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		t, ok := ParseDate(s)
		if !ok {
			return nil, false
		}
		return types.Time(t), true
	case types.KindAttachment:
		return decodeAttachments(raw)
	default:
		return nil, false
	}
}

// toInt accepts the numeric representations produced by encoding/json.
// Fractional values truncate toward zero.
func toInt(raw any) (int64, bool) {
	switch n := raw.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func decodeLinks(raw any) (types.Value, bool) {
	switch ids := raw.(type) {
	case []string:
		return types.Strings(ids...), true
	case []any:
		list := make(types.List, 0, len(ids))
		for _, e := range ids {
			if s, ok := e.(string); ok {
				list = append(list, types.Str(s))
			}
		}
		return list, true
	default:
		return nil, false
	}
}

func decodeAttachments(raw any) (types.Value, bool) {
	var elems []map[string]any
	switch a := raw.(type) {
	case []map[string]any:
		elems = a
	case []any:
		for _, e := range a {
			if m, ok := e.(map[string]any); ok {
				elems = append(elems, m)
			}
		}
	default:
		return nil, false
	}

	var out types.Attachments
	for _, m := range elems {
		name, ok := m["filename"].(string)
		if !ok {
			continue
		}
		u, ok := m["url"].(string)
		if !ok {
			continue
		}
		out = append(out, types.NewAttachment(name, u))
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// wireRow is one {id, fields} object.
type wireRow struct {
	id     string
	fields map[string]any
}

// DecodeObjects decodes a list payload ({"records": [...]}) or a single
// record payload ({"id": ..., "fields": {...}}) into domain objects built by
// factory. Any other payload returns ErrInvalidFormat and no objects. Rows
// inside a list that lack an id or fields are skipped.
func DecodeObjects[T types.Object](c *Codec, payload []byte, factory types.Factory[T]) ([]T, error) {
	rows, err := c.parseRows(payload)
	if err != nil {
		return nil, err
	}
	objects := make([]T, 0, len(rows))
	for _, row := range rows {
		objects = append(objects, factory(row.id, c.DecodeFields(row.fields)))
	}
	return objects, nil
}

// parseRows normalizes both payload shapes into a sequence of rows.
func (c *Codec) parseRows(payload []byte) ([]wireRow, error) {
	top, err := decodeJSON(payload)
	if err != nil {
		return nil, err
	}
	obj, ok := top.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not an object", types.ErrInvalidFormat)
	}

	if records, has := obj["records"]; has {
		list, ok := records.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: records is not an array", types.ErrInvalidFormat)
		}
		rows := make([]wireRow, 0, len(list))
		for i, e := range list {
			row, ok := asRow(e)
			if !ok {
				c.logger.Printf("airtable: skipping record %d without id or fields", i)
				continue
			}
			rows = append(rows, row)
		}
		return rows, nil
	}

	row, ok := asRow(obj)
	if !ok {
		return nil, fmt.Errorf("%w: object is neither a record list nor a record", types.ErrInvalidFormat)
	}
	return []wireRow{row}, nil
}

func asRow(v any) (wireRow, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return wireRow{}, false
	}
	id, ok := obj["id"].(string)
	if !ok {
		return wireRow{}, false
	}
	fields, ok := obj["fields"].(map[string]any)
	if !ok {
		return wireRow{}, false
	}
	return wireRow{id: id, fields: fields}, true
}

// DecodeDeleted extracts the boolean "deleted" flag from a delete response.
// A missing or non-boolean flag is ErrInvalidFormat.
func DecodeDeleted(payload []byte) (bool, error) {
	top, err := decodeJSON(payload)
	if err != nil {
		return false, err
	}
	obj, ok := top.(map[string]any)
	if !ok {
		return false, fmt.Errorf("%w: top-level value is not an object", types.ErrInvalidFormat)
	}
	deleted, ok := obj["deleted"].(bool)
	if !ok {
		return false, fmt.Errorf("%w: missing boolean deleted", types.ErrInvalidFormat)
	}
	return deleted, nil
}

// DecodeFieldsJSON parses a JSON object of field values, as typed by a user,
// and decodes it with the codec's schema.
func (c *Codec) DecodeFieldsJSON(data []byte) (types.Record, error) {
	top, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	fields, ok := top.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: fields must be a JSON object", types.ErrInvalidFormat)
	}
	return c.DecodeFields(fields), nil
}

// decodeJSON parses exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidFormat, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", types.ErrInvalidFormat)
	}
	return v, nil
}
