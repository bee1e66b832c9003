package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables and fields defined in the schema file",
		Args:  userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas, err := a.schemas()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range schemas.Names() {
				schema, err := schemas.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, name)
				for _, k := range schema.Keys() {
					fmt.Fprintf(out, "  %s (%s)\n", k.Name, k.Kind)
				}
			}
			return nil
		},
	}
}
