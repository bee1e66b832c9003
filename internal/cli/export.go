package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/airtable/internal/paths"
	"github.com/mesh-intelligence/airtable/internal/sqlite"
	"github.com/mesh-intelligence/airtable/pkg/airtable"
	"github.com/mesh-intelligence/airtable/pkg/types"
)

// Export formats.
const (
	formatSQLite = "sqlite"
	formatJSONL  = "jsonl"
)

// snapshotFile is the database name written by the sqlite format.
const snapshotFile = "snapshot.db"

// maxConcurrentFetches bounds the tables fetched at once.
const maxConcurrentFetches = 4

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [table...]",
		Short: "Write a snapshot of tables to the data directory",
		Long: `export fetches the named tables (all schema tables when none are given)
concurrently and writes them either into one SQLite database or as one
JSONL file per table.`,
		Args: userArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatSQLite && format != formatJSONL {
				return userError(fmt.Errorf("unknown format %q (valid: %s, %s)", format, formatSQLite, formatJSONL))
			}
			schemas, err := a.schemas()
			if err != nil {
				return err
			}
			tables := args
			if len(tables) == 0 {
				tables = schemas.Names()
			}

			snapshots := make([]sqlite.Table, len(tables))
			clients := make([]*airtable.Client[*types.Row], len(tables))
			for i, name := range tables {
				client, err := a.rowClient(name)
				if err != nil {
					return err
				}
				clients[i] = client
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxConcurrentFetches)
			for i, name := range tables {
				i, name := i, name
				g.Go(func() error {
					rows, err := airtable.Wait(clients[i].FetchAll(ctx, name))
					if err != nil {
						return fmt.Errorf("fetching %s: %w", name, err)
					}
					snapshots[i] = sqlite.Table{
						Name:   name,
						Schema: clients[i].Codec().Schema(),
						Rows:   toObjects(rows),
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return classify(err)
			}

			dir, err := paths.ResolveDataDir(a.dataDir, a.v.GetString(cfgKeyDataDir))
			if err != nil {
				return fmt.Errorf("resolving data dir: %w", err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating data dir: %w", err)
			}

			out := cmd.OutOrStdout()
			if format == formatSQLite {
				path := filepath.Join(dir, snapshotFile)
				if err := sqlite.Export(cmd.Context(), path, snapshots); err != nil {
					return err
				}
				fmt.Fprintln(out, path)
				return nil
			}
			for i, snap := range snapshots {
				path := filepath.Join(dir, snap.Name+".jsonl")
				if err := sqlite.WriteJSONL(path, clients[i].Codec(), snap.Rows); err != nil {
					return fmt.Errorf("writing %s: %w", snap.Name, err)
				}
				fmt.Fprintln(out, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatSQLite, "snapshot format: sqlite or jsonl")
	return cmd
}
