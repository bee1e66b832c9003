package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration directory with default files",
		Args:  userArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			// PersistentPreRunE already resolved the directory and wrote the
			// defaults.
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "airtable initialized")
			fmt.Fprintln(out, "  config:", filepath.Join(a.configDir, configFileExt))
			fmt.Fprintln(out, "  schema:", filepath.Join(a.configDir, schemaFileExt))
			return nil
		},
	}
}
