package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldKindUnmarshalText(t *testing.T) {
	for _, kind := range AllFieldKinds {
		var got FieldKind
		require.NoError(t, got.UnmarshalText([]byte(kind)))
		assert.Equal(t, kind, got)
		assert.True(t, got.IsValid())
	}

	var bad FieldKind
	err := bad.UnmarshalText([]byte("formula"))
	assert.ErrorIs(t, err, ErrInvalidFieldKind)
	assert.Equal(t, FieldKind(""), bad)
}

func TestFieldKeyEquality(t *testing.T) {
	a := Key("title", KindText)
	b := Key("title", KindText)
	c := Key("title", KindSingleSelect)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "title:text", a.String())

	m := map[FieldKey]int{a: 1}
	m[b] = 2
	m[c] = 3
	assert.Len(t, m, 2)
	assert.Equal(t, 2, m[a])
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr error
	}{
		{"empty", NewSchema(), ErrEmptySchema},
		{"blank name", NewSchema(Key("", KindText)), ErrInvalidName},
		{"unknown kind", NewSchema(Key("x", FieldKind("formula"))), ErrInvalidFieldKind},
		{"duplicate name", NewSchema(Key("x", KindText), Key("x", KindNumber)), ErrDuplicateField},
		{"valid", NewSchema(Key("x", KindText), Key("y", KindNumber)), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSchemaImmutable(t *testing.T) {
	keys := []FieldKey{Key("a", KindText), Key("b", KindNumber)}
	s := NewSchema(keys...)
	keys[0] = Key("changed", KindText)
	assert.Equal(t, "a", s.Keys()[0].Name)

	out := s.Keys()
	out[1] = Key("changed", KindText)
	assert.Equal(t, "b", s.Keys()[1].Name)
	assert.Equal(t, 2, s.Len())
}

func TestSchemaLookupAndEqual(t *testing.T) {
	s := NewSchema(Key("a", KindText), Key("b", KindNumber))

	k, ok := s.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, KindNumber, k.Kind)
	_, ok = s.Lookup("c")
	assert.False(t, ok)

	assert.True(t, s.Equal(NewSchema(Key("a", KindText), Key("b", KindNumber))))
	assert.False(t, s.Equal(NewSchema(Key("b", KindNumber), Key("a", KindText))))
	assert.False(t, s.Equal(NewSchema(Key("a", KindText))))
}
