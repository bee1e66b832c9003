package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/airtable/pkg/airtable"
)

const modulePath = "github.com/mesh-intelligence/airtable"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the airtable version",
		Args:  userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "airtable v%s\nmodule: %s\n", airtable.Version, modulePath)
			return nil
		},
	}
}
