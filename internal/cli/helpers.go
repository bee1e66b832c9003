package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mesh-intelligence/airtable/internal/codec"
	"github.com/mesh-intelligence/airtable/internal/config"
	"github.com/mesh-intelligence/airtable/pkg/airtable"
	"github.com/mesh-intelligence/airtable/pkg/transport"
	"github.com/mesh-intelligence/airtable/pkg/types"
)

// clientOptions returns the client options every command shares.
func (a *app) clientOptions() []airtable.Option {
	opts := []airtable.Option{airtable.WithLogger(a.logger)}
	if a.transport != nil {
		opts = append(opts, airtable.WithTransport(a.transport))
	}
	return opts
}

// rowClient returns a generic client for table, whose rows are kept as
// plain field records.
func (a *app) rowClient(table string) (*airtable.Client[*types.Row], error) {
	cfg, err := a.clientConfig()
	if err != nil {
		return nil, err
	}
	schemas, err := a.schemas()
	if err != nil {
		return nil, err
	}
	schema, err := schemas.Get(table)
	if err != nil {
		return nil, userError(err)
	}
	client, err := airtable.NewClient(cfg, schema, types.NewRow, a.clientOptions()...)
	if err != nil {
		return nil, userError(err)
	}
	return client, nil
}

// rowJSON is the output shape of one row, matching the Airtable record shape.
type rowJSON struct {
	ID     string        `json:"id"`
	Fields *codec.Fields `json:"fields"`
}

// printRows writes rows as an indented JSON array.
func printRows(w io.Writer, c *codec.Codec, rows []*types.Row) error {
	out := make([]rowJSON, len(rows))
	for i, r := range rows {
		out[i] = rowJSON{ID: r.ID(), Fields: c.EncodeFields(r)}
	}
	return printJSON(w, out)
}

// printRow writes one row as indented JSON.
func printRow(w io.Writer, c *codec.Codec, row *types.Row) error {
	return printJSON(w, rowJSON{ID: row.ID(), Fields: c.EncodeFields(row)})
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// parseFields decodes a JSON object typed on the command line using the
// table's codec.
func parseFields(c *codec.Codec, arg string) (types.Record, error) {
	rec, err := c.DecodeFieldsJSON([]byte(arg))
	if err != nil {
		return nil, userError(fmt.Errorf("fields: %w", err))
	}
	return rec, nil
}

// classify assigns an exit code to a call failure. Invalid arguments and
// 4xx responses are user errors; everything else is a system error.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var status *transport.StatusError
	switch {
	case errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidTable),
		errors.Is(err, config.ErrUnknownTable):
		return userError(err)
	case errors.As(err, &status) && status.StatusCode >= http.StatusBadRequest && status.StatusCode < http.StatusInternalServerError:
		return userError(err)
	default:
		return err
	}
}

func toObjects(rows []*types.Row) []types.Object {
	out := make([]types.Object, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}
