package types

// Compile-time interface check: Row must implement Object.
var _ Object = (*Row)(nil)

// Row is a schema-agnostic Object that keeps every decoded field as is. It
// is what the CLI and the exporters work with when no domain type exists.
type Row struct {
	RowID  string
	fields Record
}

// NewRow returns a Row holding a copy of fields. It has the Factory[*Row]
// signature.
func NewRow(id string, fields Record) *Row {
	cp := make(Record, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return &Row{RowID: id, fields: cp}
}

func (r *Row) ID() string {
	return r.RowID
}

func (r *Row) Value(key FieldKey) (Value, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Fields returns a copy of the row's record.
func (r *Row) Fields() Record {
	cp := make(Record, len(r.fields))
	for k, v := range r.fields {
		cp[k] = v
	}
	return cp
}
