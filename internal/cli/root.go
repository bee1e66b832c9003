// Package cli implements the airtable command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/airtable/internal/paths"
	"github.com/mesh-intelligence/airtable/pkg/transport"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app carries flag values and per-invocation state shared by subcommands.
type app struct {
	configDir  string
	dataDir    string
	schemaFile string

	transport transport.Transport
	logger    *log.Logger
	v         *viper.Viper
}

// Option configures the root command.
type Option func(*app)

// WithTransport makes every command talk to t instead of the network.
func WithTransport(t transport.Transport) Option {
	return func(a *app) { a.transport = t }
}

// NewRootCmd creates the top-level "airtable" command with its global flags
// and subcommands.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "airtable",
		Short: "Read and write Airtable tables from the command line",
		Long: `airtable talks to one Airtable base. Table layouts come from a schema
file; credentials and the base URL come from config.yaml or the
AIRTABLE_API_KEY and AIRTABLE_BASE_URL environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
			if cmd.Name() == "version" {
				return nil
			}
			dir, err := paths.ResolveConfigDir(a.configDir)
			if err != nil {
				return fmt.Errorf("resolving config dir: %w", err)
			}
			a.configDir = dir
			v, err := loadConfig(dir)
			if err != nil {
				return err
			}
			a.v = v
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return userError(err)
	})

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "export directory (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.schemaFile, "schema", "", "schema file (default: schema_file from config.yaml)")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newTablesCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newContentCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Stderr))
}

func run(root *cobra.Command, stderr io.Writer) int {
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "airtable:", err)
	return exitCode(err)
}

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by bad input rather than a failing system.
func userError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitUserError, err: err}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitSysError
}

// userArgs wraps a cobra argument validator so its failures exit with
// exitUserError.
func userArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return userError(fn(cmd, args))
	}
}
