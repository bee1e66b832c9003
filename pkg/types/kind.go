package types

import "fmt"

// FieldKind determines both the JSON shape expected on the wire and the
// Value adopter used in memory for a field.
type FieldKind string

// Supported field kinds. The set is closed.
const (
	KindText         FieldKind = "text"
	KindSingleSelect FieldKind = "singleSelect"
	KindNumber       FieldKind = "number"
	KindLinkToRecord FieldKind = "linkToRecord"
	KindDateTime     FieldKind = "dateTime"
	KindAttachment   FieldKind = "attachment"
	KindCheckbox     FieldKind = "checkbox"
)

// AllFieldKinds lists every supported kind in declaration order.
var AllFieldKinds = []FieldKind{
	KindText,
	KindSingleSelect,
	KindNumber,
	KindLinkToRecord,
	KindDateTime,
	KindAttachment,
	KindCheckbox,
}

// validFieldKinds is the set of recognized field kinds.
var validFieldKinds = map[FieldKind]bool{
	KindText:         true,
	KindSingleSelect: true,
	KindNumber:       true,
	KindLinkToRecord: true,
	KindDateTime:     true,
	KindAttachment:   true,
	KindCheckbox:     true,
}

// IsValid reports whether k is one of the supported kinds.
func (k FieldKind) IsValid() bool {
	return validFieldKinds[k]
}

func (k FieldKind) String() string {
	return string(k)
}

// UnmarshalText parses a kind name, so kinds can be read from YAML and JSON.
// Returns ErrInvalidFieldKind for unknown names.
func (k *FieldKind) UnmarshalText(text []byte) error {
	kind := FieldKind(text)
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFieldKind, string(text))
	}
	*k = kind
	return nil
}

// MarshalText returns the kind name.
func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k), nil
}
