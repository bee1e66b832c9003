package codec

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/airtable/pkg/types"
)

// attachmentJSON is one element of an attachment field on the wire.
type attachmentJSON struct {
	FileName string `json:"filename"`
	URL      string `json:"url"`
}

// writeBody is the request body for create and update calls.
type writeBody struct {
	Fields *Fields `json:"fields"`
}

// EncodeFields asks obj for its value at every schema key and projects each
// present value according to the key's kind. Keys with no value are omitted,
// as are dateTime values that project to Epoch. When two keys share a name,
// the first emitted value is kept.
func (c *Codec) EncodeFields(obj types.Object) *Fields {
	keys := c.schema.Keys()
	fields := newFields(len(keys))
	for _, key := range keys {
		v, ok := obj.Value(key)
		if !ok || v == nil {
			continue
		}
		wire, ok := encodeValue(key.Kind, v)
		if !ok {
			continue
		}
		if !fields.set(key.Name, wire) {
			c.logger.Printf("airtable: duplicate field %q in schema, keeping first value", key.Name)
		}
	}
	return fields
}

// encodeValue applies the encode rule for kind to one value.
func encodeValue(kind types.FieldKind, v types.Value) (any, bool) {
	switch kind {
	case types.KindText, types.KindSingleSelect:
		return types.TextOf(v), true
	case types.KindNumber:
		return types.AsInt(v), true
	case types.KindCheckbox:
		return types.AsBool(v), true
	case types.KindLinkToRecord:
		list := types.AsList(v)
		ids := make([]string, len(list))
		for i, e := range list {
			ids[i] = types.TextOf(e)
		}
		return ids, true
	case types.KindDateTime:
		t := types.AsDate(v)
		if isUnset(t) {
			return nil, false
		}
		return FormatDate(t), true
	case types.KindAttachment:
		as := types.AttachmentsOf(v)
		out := make([]attachmentJSON, len(as))
		for i, a := range as {
			out[i] = attachmentJSON{FileName: a.FileName, URL: a.URL()}
		}
		return out, true
	default:
		return nil, false
	}
}

// Encode returns the {"fields": {...}} write body for obj. Failures are
// wrapped with ErrEncoding.
func (c *Codec) Encode(obj types.Object) ([]byte, error) {
	body, err := json.Marshal(writeBody{Fields: c.EncodeFields(obj)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrEncoding, err)
	}
	return body, nil
}
