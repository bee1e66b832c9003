package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/airtable/pkg/types"
)

func TestEncode_PerKind(t *testing.T) {
	c, _ := newTestCodec(fullSchema)
	when := time.Date(2024, 3, 1, 12, 30, 45, 999_000_000, time.FixedZone("X", 2*60*60))
	row := types.NewRow("rec1", types.Record{
		keyTitle: types.Str("Hello"),
		keyView:  types.Str("HiView"),
		keyPos:   types.Int(7),
		keyDone:  types.Bool(true),
		keyLinks: types.Strings("recA", "recB"),
		keyWhen:  types.Time(when),
		keyFiles: types.Attachments{types.NewAttachment("a.png", "https://x/a.png")},
	})

	body, err := c.Encode(row)
	require.NoError(t, err)
	assert.Equal(t,
		`{"fields":{"title":"Hello","view":"HiView","position":7,"done":true,"links":["recA","recB"],`+
			`"when":"2024-03-01T10:30:45.000Z","files":[{"filename":"a.png","url":"https://x/a.png"}]}}`,
		string(body))
}

func TestEncode_OmitsAbsentAndUnsetDate(t *testing.T) {
	c, _ := newTestCodec(fullSchema)

	body, err := c.Encode(types.NewRow("r", types.Record{keyTitle: types.Str("only")}))
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{"title":"only"}}`, string(body))

	body, err = c.Encode(types.NewRow("r", types.Record{keyWhen: types.Time(types.Epoch)}))
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{}}`, string(body))

	// A value without a date projection also reads as unset.
	body, err = c.Encode(types.NewRow("r", types.Record{keyWhen: types.Str("2024-01-01")}))
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{}}`, string(body))
}

func TestEncode_ProjectsByKind(t *testing.T) {
	c, _ := newTestCodec(types.NewSchema(keyTitle, keyPos, keyDone, keyLinks))
	row := types.NewRow("r", types.Record{
		keyTitle: types.Int(12),
		keyPos:   types.Str("not a number"),
		keyDone:  types.Str("true"),
		keyLinks: types.Str("recA"),
	})
	body, err := c.Encode(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fields":{"title":"12","position":0,"done":false,"links":[]}}`, string(body))
}

func TestEncode_AttachmentSingleOrSequence(t *testing.T) {
	c, _ := newTestCodec(types.NewSchema(keyFiles))
	a := types.NewAttachment("a.png", "https://x/a.png")
	want := `{"fields":{"files":[{"filename":"a.png","url":"https://x/a.png"}]}}`

	for name, v := range map[string]types.Value{
		"single":   a,
		"pointer":  &a,
		"sequence": types.Attachments{a},
		"list":     types.List{a},
	} {
		t.Run(name, func(t *testing.T) {
			body, err := c.Encode(types.NewRow("r", types.Record{keyFiles: v}))
			require.NoError(t, err)
			assert.Equal(t, want, string(body))
		})
	}

	body, err := c.Encode(types.NewRow("r", types.Record{keyFiles: types.Str("x")}))
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{"files":[]}}`, string(body))
}

func TestEncode_DuplicateNameFirstWins(t *testing.T) {
	first := types.Key("x", types.KindText)
	second := types.Key("x", types.KindNumber)
	c, logs := newTestCodec(types.NewSchema(first, second))

	body, err := c.Encode(types.NewRow("r", types.Record{first: types.Str("a"), second: types.Int(2)}))
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{"x":"a"}}`, string(body))
	assert.Contains(t, logs.String(), `duplicate field "x"`)

	// When the first key has no value the second one is emitted.
	body, err = c.Encode(types.NewRow("r", types.Record{second: types.Int(2)}))
	require.NoError(t, err)
	assert.Equal(t, `{"fields":{"x":2}}`, string(body))
}

func TestEncodeFields_Order(t *testing.T) {
	c, _ := newTestCodec(types.NewSchema(keyPos, keyTitle, keyView))
	f := c.EncodeFields(types.NewRow("r", types.Record{
		keyView:  types.Str("v"),
		keyTitle: types.Str("t"),
		keyPos:   types.Int(1),
	}))
	assert.Equal(t, []string{"position", "title", "view"}, f.Names())
	assert.Equal(t, 3, f.Len())
	v, ok := f.Get("position")
	require.True(t, ok)
	assert.Equal(t, int64(1), v)
}

func TestFields_MarshalFailure(t *testing.T) {
	f := newFields(1)
	f.set("bad", func() {})
	_, err := f.MarshalJSON()
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05.000Z"},
		{time.Date(2024, 1, 2, 3, 4, 5, 999_999_999, time.UTC), "2024-01-02T03:04:05.000Z"},
		{time.Date(2024, 1, 2, 0, 30, 0, 0, time.FixedZone("E", 3600)), "2024-01-01T23:30:00.000Z"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.in))
	}
}
