package airtable

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/airtable/pkg/transport"
	"github.com/mesh-intelligence/airtable/pkg/types"
)

var (
	keyName  = types.Key("name", types.KindText)
	keyCount = types.Key("count", types.KindNumber)
	schema   = types.NewSchema(keyName, keyCount)
	cfg      = types.Config{APIKey: "key", BaseURL: "https://api.example.com/v0/appX/"}
)

// recorder is a Transport that returns a canned response and remembers the
// requests it was given.
type recorder struct {
	mu       sync.Mutex
	requests []transport.Request
	body     string
	err      error
}

func (r *recorder) Do(_ context.Context, req transport.Request) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.body), nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func newTestClient(t *testing.T, rec *recorder) *Client[*types.Row] {
	t.Helper()
	c, err := NewClient(cfg, schema, types.NewRow,
		WithTransport(rec),
		WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(types.Config{BaseURL: "https://x"}, schema, types.NewRow)
	assert.ErrorIs(t, err, types.ErrAPIKeyEmpty)

	_, err = NewClient(cfg, types.NewSchema(keyName, types.Key("name", types.KindNumber)), types.NewRow)
	assert.ErrorIs(t, err, types.ErrDuplicateField)

	_, err = NewClient[*types.Row](cfg, schema, nil)
	assert.ErrorIs(t, err, ErrNilFactory)
}

func TestFetchAll(t *testing.T) {
	rec := &recorder{body: `{"records":[
		{"id":"rec1","fields":{"name":"a","count":1}},
		{"id":"rec2","fields":{"name":"b"}}
	]}`}
	c := newTestClient(t, rec)

	rows, err := Wait(c.FetchAll(context.Background(), "my table"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "rec1", rows[0].ID())
	v, _ := rows[0].Value(keyCount)
	assert.Equal(t, types.Int(1), v)
	_, ok := rows[1].Value(keyCount)
	assert.False(t, ok)

	require.Equal(t, 1, rec.count())
	assert.Equal(t, http.MethodGet, rec.requests[0].Method)
	assert.Equal(t, "https://api.example.com/v0/appX/my%20table", rec.requests[0].URL)
	assert.Nil(t, rec.requests[0].Body)
}

func TestFetchObject(t *testing.T) {
	rec := &recorder{body: `{"id":"rec/1","fields":{"name":"a"}}`}
	c := newTestClient(t, rec)

	rows, err := Wait(c.FetchObject(context.Background(), "rec/1", "t"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "rec/1", rows[0].ID())
	assert.Equal(t, "https://api.example.com/v0/appX/t/rec%2F1", rec.requests[0].URL)
}

func TestCreateObject(t *testing.T) {
	rec := &recorder{body: `{"id":"recNew","fields":{"name":"a","count":2}}`}
	c := newTestClient(t, rec)

	obj := types.NewRow("", types.Record{keyName: types.Str("a"), keyCount: types.Int(2)})
	got, err := Wait(c.CreateObject(context.Background(), obj, "t"))
	require.NoError(t, err)
	assert.Equal(t, "recNew", got.ID())

	req := rec.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://api.example.com/v0/appX/t", req.URL)
	assert.Equal(t, `{"fields":{"name":"a","count":2}}`, string(req.Body))
}

func TestUpdateObject(t *testing.T) {
	rec := &recorder{body: `{"records":[{"id":"rec1","fields":{"name":"b"}},{"id":"rec2","fields":{}}]}`}
	c := newTestClient(t, rec)

	got, err := Wait(c.UpdateObject(context.Background(), types.NewRow("rec1", types.Record{keyName: types.Str("b")}), "t"))
	require.NoError(t, err)
	assert.Equal(t, "rec1", got.ID(), "first decoded object is returned")
	assert.Equal(t, http.MethodPut, rec.requests[0].Method)
	assert.Equal(t, "https://api.example.com/v0/appX/t/rec1", rec.requests[0].URL)
}

func TestWrite_NoObject(t *testing.T) {
	rec := &recorder{body: `{"records":[]}`}
	c := newTestClient(t, rec)

	got, err := Wait(c.CreateObject(context.Background(), types.NewRow("", nil), "t"))
	assert.ErrorIs(t, err, types.ErrNoObject)
	assert.Nil(t, got)
}

func TestDeleteObject(t *testing.T) {
	tests := []struct {
		name    string
		rec     *recorder
		want    bool
		wantErr error
	}{
		{"deleted true", &recorder{body: `{"id":"rec1","deleted":true}`}, true, nil},
		{"deleted false", &recorder{body: `{"deleted":false}`}, false, nil},
		{"missing flag", &recorder{body: `{}`}, false, types.ErrInvalidFormat},
		{"transport failure", &recorder{err: io.ErrUnexpectedEOF}, false, io.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.rec)
			got, err := Wait(c.DeleteObject(context.Background(), types.NewRow("rec1", nil), "t"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if !errors.Is(tt.wantErr, types.ErrInvalidFormat) {
					assert.NotErrorIs(t, err, types.ErrInvalidFormat)
				}
				assert.False(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, http.MethodDelete, tt.rec.requests[0].Method)
			assert.Equal(t, "https://api.example.com/v0/appX/t/rec1", tt.rec.requests[0].URL)
		})
	}
}

func TestInvalidTargets_NoRequest(t *testing.T) {
	rec := &recorder{body: `{}`}
	c := newTestClient(t, rec)
	ctx := context.Background()

	_, err := Wait(c.FetchAll(ctx, ""))
	assert.ErrorIs(t, err, types.ErrInvalidTable)
	_, err = Wait(c.FetchObject(ctx, "", "t"))
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = Wait(c.UpdateObject(ctx, types.NewRow("", nil), "t"))
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = Wait(c.DeleteObject(ctx, types.NewRow("", nil), "t"))
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = Wait(c.CreateObject(ctx, types.NewRow("", nil), ""))
	assert.ErrorIs(t, err, types.ErrInvalidTable)

	assert.Equal(t, 0, rec.count())
}

func TestTransportErrorShortCircuits(t *testing.T) {
	boom := errors.New("connection reset")
	c := newTestClient(t, &recorder{err: boom})

	rows, err := Wait(c.FetchAll(context.Background(), "t"))
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, rows)
}

func TestResult_SingleFire(t *testing.T) {
	c := newTestClient(t, &recorder{body: `{"records":[]}`})
	ch := c.FetchAll(context.Background(), "t")

	r, ok := <-ch
	require.True(t, ok)
	assert.NoError(t, r.Err)
	assert.NotNil(t, r.Value)

	_, ok = <-ch
	assert.False(t, ok, "channel is closed after the single result")
}

func TestConcurrentCalls(t *testing.T) {
	var calls atomic.Int32
	tr := transport.Func(func(_ context.Context, req transport.Request) ([]byte, error) {
		calls.Add(1)
		return []byte(`{"records":[{"id":"rec1","fields":{"name":"a"}}]}`), nil
	})
	c, err := NewClient(cfg, schema, types.NewRow, WithTransport(tr), WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)

	const n = 32
	chans := make([]<-chan Result[[]*types.Row], n)
	for i := range chans {
		chans[i] = c.FetchAll(context.Background(), "t")
	}
	for _, ch := range chans {
		rows, err := Wait(ch)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	}
	assert.Equal(t, int32(n), calls.Load())
}

func TestDefaultTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "/v0/appX/t", r.URL.Path)
		io.WriteString(w, `{"records":[{"id":"rec1","fields":{"name":"a"}}]}`)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	c, err := NewClient(types.Config{APIKey: "key", BaseURL: srv.URL + "/v0/appX"}, schema, types.NewRow,
		WithHTTPClient(srv.Client()),
		WithLogger(log.New(&logs, "", 0)))
	require.NoError(t, err)

	rows, err := Wait(c.FetchAll(context.Background(), "t"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Contains(t, logs.String(), `field "count" not found`)
	assert.Same(t, c.Codec(), c.Codec())
}
