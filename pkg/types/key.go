package types

// FieldKey identifies one schema column by name and kind. Two keys are equal
// iff both components match; FieldKey is comparable and is used directly as
// a map key.
type FieldKey struct {
	Name string    `json:"name" yaml:"name"`
	Kind FieldKind `json:"kind" yaml:"kind"`
}

// Key is shorthand for FieldKey{Name: name, Kind: kind}.
func Key(name string, kind FieldKind) FieldKey {
	return FieldKey{Name: name, Kind: kind}
}

func (k FieldKey) String() string {
	return k.Name + ":" + string(k.Kind)
}
