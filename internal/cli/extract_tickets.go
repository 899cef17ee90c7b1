package cli

import (
	"github.com/spf13/cobra"

	"relticket.dev/relticket/internal/actions/extracttickets"
	"relticket.dev/relticket/internal/runtime"
)

// newExtractTicketsCmd creates the extract-tickets command
func newExtractTicketsCmd(s *settings, global *globalFlags) *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "extract-tickets [FILE|-]...",
		Short: "Print the ticket identifiers referenced by pull requests",
		Long: `Print the ticket identifiers referenced by pull requests, one per line.

Reads pull request numbers (optionally prefixed with "#") and scans each pull
request's title, description, comments and commit messages for identifiers
like ENG-123. Each identifier is printed once per run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := inputSources(args)
			if err != nil {
				return err
			}
			return s.run(cmd, *global, flags.toConfig(), func(ctx *runtime.Context) error {
				return extracttickets.Action(ctx, extracttickets.Options{
					Prefixes: ctx.Config.TicketPrefixes,
					Sources:  sources,
				})
			})
		},
	}

	flags.registerPrefixes(cmd.Flags())
	return cmd
}
