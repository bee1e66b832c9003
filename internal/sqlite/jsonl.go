package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/airtable/internal/codec"
	"github.com/mesh-intelligence/airtable/pkg/types"
)

// jsonlRow is one line of a JSONL snapshot, shaped like an Airtable record.
type jsonlRow struct {
	ID     string        `json:"id"`
	Fields *codec.Fields `json:"fields"`
}

// WriteJSONL writes rows to path as one {"id","fields"} object per line,
// encoded with c. The file is replaced atomically: rows go to a temp file
// in the same directory which is synced and then renamed over path.
func WriteJSONL(path string, c *codec.Codec, rows []types.Object) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, row := range rows {
		if err := enc.Encode(jsonlRow{ID: row.ID(), Fields: c.EncodeFields(row)}); err != nil {
			return fail(fmt.Errorf("writing row %s: %w", row.ID(), err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
