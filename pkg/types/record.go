package types

import "time"

// Record maps field keys to values for one table row. It is produced by
// decoding a wire row or consumed when encoding a domain object.
type Record map[FieldKey]Value

// Get returns the value stored under key.
func (r Record) Get(key FieldKey) (Value, bool) {
	v, ok := r[key]
	return v, ok
}

// Text returns the text projection of the value under key.
func (r Record) Text(key FieldKey) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	return TextOf(v), true
}

// Int returns the integer projection of the value under key.
func (r Record) Int(key FieldKey) (int64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return AsInt(v), true
}

// Bool returns the boolean projection of the value under key.
func (r Record) Bool(key FieldKey) (bool, bool) {
	v, ok := r[key]
	if !ok {
		return false, false
	}
	return AsBool(v), true
}

// Date returns the date projection of the value under key.
func (r Record) Date(key FieldKey) (time.Time, bool) {
	v, ok := r[key]
	if !ok {
		return Epoch, false
	}
	return AsDate(v), true
}

// Strings returns the text projection of every element of a sequence value,
// the in-memory form of linked record ids.
func (r Record) Strings(key FieldKey) ([]string, bool) {
	v, ok := r[key]
	if !ok {
		return nil, false
	}
	list := AsList(v)
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = TextOf(e)
	}
	return out, true
}

// Attachments returns the attachments stored under key. A single Attachment
// value is returned as a one-element sequence.
func (r Record) Attachments(key FieldKey) (Attachments, bool) {
	v, ok := r[key]
	if !ok {
		return nil, false
	}
	return AttachmentsOf(v), true
}

// Object is the contract a domain type implements to be stored in a table.
// ID returns the row id; Value returns the value for one schema key, or false
// when the object has nothing to send for it.
type Object interface {
	ID() string
	Value(key FieldKey) (Value, bool)
}

// Factory constructs a domain object from a row id and the fields decoded
// for it. Keys missing from fields were absent or unusable on the wire; the
// domain type supplies its own defaults for them.
type Factory[T Object] func(id string, fields Record) T
