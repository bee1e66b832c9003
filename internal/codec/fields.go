package codec

import (
	"bytes"
	"encoding/json"
)

// Fields is the "fields" object of a write body. Names keep schema emission
// order; the first value set for a name wins.
type Fields struct {
	names  []string
	values map[string]any
}

func newFields(capacity int) *Fields {
	return &Fields{
		names:  make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

// set stores v under name unless name is already present. Reports whether
// the value was stored.
func (f *Fields) set(name string, v any) bool {
	if _, dup := f.values[name]; dup {
		return false
	}
	f.names = append(f.names, name)
	f.values[name] = v
	return true
}

// Get returns the wire value emitted for name.
func (f *Fields) Get(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Names returns the emitted field names in order.
func (f *Fields) Names() []string {
	cp := make([]string, len(f.names))
	copy(cp, f.names)
	return cp
}

// Len returns the number of emitted fields.
func (f *Fields) Len() int {
	return len(f.names)
}

// MarshalJSON writes the fields as a JSON object in emission order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
