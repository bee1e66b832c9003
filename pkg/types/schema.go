package types

import "fmt"

// Schema is the ordered set of field keys for one table. Order follows the
// domain type's declared field order. A Schema is immutable once built.
type Schema struct {
	keys []FieldKey
}

// NewSchema builds a Schema from keys in order. The input slice is copied.
// NewSchema does not reject bad input; call Validate for that.
func NewSchema(keys ...FieldKey) Schema {
	cp := make([]FieldKey, len(keys))
	copy(cp, keys)
	return Schema{keys: cp}
}

// Keys returns a copy of the ordered keys.
func (s Schema) Keys() []FieldKey {
	cp := make([]FieldKey, len(s.keys))
	copy(cp, s.keys)
	return cp
}

// Len returns the number of keys.
func (s Schema) Len() int {
	return len(s.keys)
}

// Lookup returns the first key with the given field name.
func (s Schema) Lookup(name string) (FieldKey, bool) {
	for _, k := range s.keys {
		if k.Name == name {
			return k, true
		}
	}
	return FieldKey{}, false
}

// Equal compares the ordered key sequences.
func (s Schema) Equal(other Schema) bool {
	if len(s.keys) != len(other.keys) {
		return false
	}
	for i := range s.keys {
		if s.keys[i] != other.keys[i] {
			return false
		}
	}
	return true
}

// Validate checks that the schema is non-empty, that every key has a name
// and a supported kind, and that no field name appears twice.
func (s Schema) Validate() error {
	if len(s.keys) == 0 {
		return ErrEmptySchema
	}
	seen := make(map[string]bool, len(s.keys))
	for _, k := range s.keys {
		if k.Name == "" {
			return ErrInvalidName
		}
		if !k.Kind.IsValid() {
			return fmt.Errorf("%w: field %q has kind %q", ErrInvalidFieldKind, k.Name, k.Kind)
		}
		if seen[k.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateField, k.Name)
		}
		seen[k.Name] = true
	}
	return nil
}
