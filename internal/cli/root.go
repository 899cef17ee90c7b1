package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"relticket.dev/relticket/internal/actions/pipeline"
	"relticket.dev/relticket/internal/actions/updatetickets"
	"relticket.dev/relticket/internal/runtime"
)

// settings carries the process boundary into the command tree
type settings struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	getenv      func(string) string
	confirmer   updatetickets.Confirmer
	openTTY     func() (*os.File, error)
	runtimeOpts []runtime.Option
}

// Option customizes the command tree, mainly for tests
type Option func(*settings)

// WithStreams replaces the standard streams
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(s *settings) {
		s.stdin = stdin
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithGetenv replaces environment lookup
func WithGetenv(getenv func(string) string) Option {
	return func(s *settings) { s.getenv = getenv }
}

// WithConfirmer replaces the terminal prompt used by --confirm
func WithConfirmer(c updatetickets.Confirmer) Option {
	return func(s *settings) { s.confirmer = c }
}

// WithRuntimeOptions passes options to every runtime.Context created
func WithRuntimeOptions(opts ...runtime.Option) Option {
	return func(s *settings) { s.runtimeOpts = append(s.runtimeOpts, opts...) }
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string, opts ...Option) *cobra.Command {
	s := &settings{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		getenv:  os.Getenv,
		openTTY: openControllingTerminal,
	}
	for _, opt := range opts {
		opt(s)
	}

	var (
		global globalFlags
		flags  pipelineFlags
	)

	rootCmd := &cobra.Command{
		Use:   "relticket",
		Short: "Mark the Linear tickets shipped in a GitHub release as done",
		Long: `Mark the Linear tickets shipped in a GitHub release as done.

Without a subcommand, relticket reads the notes of --release-tag, finds the pull
requests they mention, collects the ticket identifiers referenced by those pull
requests and moves every ticket in the Passing state to Done.

Each stage can also be run on its own and chained with pipes:

  relticket parse-notes --release-tag v1.2.0 | relticket extract-tickets | relticket update-tickets`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.run(cmd, global, flags.toConfig(), func(ctx *runtime.Context) error {
				confirmer, err := s.confirmerFor(ctx)
				if err != nil {
					return err
				}
				return pipeline.Action(ctx, pipeline.Options{Confirmer: confirmer})
			})
		},
	}

	rootCmd.SetIn(s.stdin)
	rootCmd.SetOut(s.stdout)
	rootCmd.SetErr(s.stderr)

	global.register(rootCmd.PersistentFlags())
	flags.registerReleaseTag(rootCmd.Flags())
	flags.registerTracker(rootCmd.Flags())
	flags.registerPrefixes(rootCmd.Flags())

	rootCmd.AddCommand(
		newParseNotesCmd(s, &global),
		newExtractTicketsCmd(s, &global),
		newUpdateTicketsCmd(s, &global),
	)

	return rootCmd
}
