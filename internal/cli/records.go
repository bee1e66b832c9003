package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/airtable/pkg/airtable"
	"github.com/mesh-intelligence/airtable/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <table>",
		Short: "List every record in a table",
		Example: `  airtable list content
  airtable list tags --schema ./schema.yaml`,
		Args: userArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.rowClient(args[0])
			if err != nil {
				return err
			}
			rows, err := airtable.Wait(client.FetchAll(cmd.Context(), args[0]))
			if err != nil {
				return classify(fmt.Errorf("list %s: %w", args[0], err))
			}
			return printRows(cmd.OutOrStdout(), client.Codec(), rows)
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <id>",
		Short: "Get one record by ID",
		Args:  userArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, id := args[0], args[1]
			client, err := a.rowClient(table)
			if err != nil {
				return err
			}
			rows, err := airtable.Wait(client.FetchObject(cmd.Context(), id, table))
			if err != nil {
				return classify(fmt.Errorf("get %s/%s: %w", table, id, err))
			}
			if len(rows) == 0 {
				return classify(fmt.Errorf("get %s/%s: %w", table, id, types.ErrNoObject))
			}
			return printRow(cmd.OutOrStdout(), client.Codec(), rows[0])
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "create <table> <fields-json>",
		Short:   "Create a record from a JSON object of fields",
		Example: `  airtable create content '{"title":"Hello","view":"HiView","position":1}'`,
		Args:    userArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			client, err := a.rowClient(table)
			if err != nil {
				return err
			}
			fields, err := parseFields(client.Codec(), args[1])
			if err != nil {
				return err
			}
			row, err := airtable.Wait(client.CreateObject(cmd.Context(), types.NewRow("", fields), table))
			if err != nil {
				return classify(fmt.Errorf("create in %s: %w", table, err))
			}
			return printRow(cmd.OutOrStdout(), client.Codec(), row)
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <table> <id> <fields-json>",
		Short: "Replace the fields of a record",
		Args:  userArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, id := args[0], args[1]
			client, err := a.rowClient(table)
			if err != nil {
				return err
			}
			fields, err := parseFields(client.Codec(), args[2])
			if err != nil {
				return err
			}
			row, err := airtable.Wait(client.UpdateObject(cmd.Context(), types.NewRow(id, fields), table))
			if err != nil {
				return classify(fmt.Errorf("update %s/%s: %w", table, id, err))
			}
			return printRow(cmd.OutOrStdout(), client.Codec(), row)
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <table> <id>",
		Short: "Delete a record by ID",
		Args:  userArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, id := args[0], args[1]
			client, err := a.rowClient(table)
			if err != nil {
				return err
			}
			deleted, err := airtable.Wait(client.DeleteObject(cmd.Context(), types.NewRow(id, nil), table))
			if err != nil {
				return classify(fmt.Errorf("delete %s/%s: %w", table, id, err))
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": deleted})
		},
	}
}
