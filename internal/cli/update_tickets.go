package cli

import (
	"github.com/spf13/cobra"

	"relticket.dev/relticket/internal/actions/updatetickets"
	"relticket.dev/relticket/internal/runtime"
)

// newUpdateTicketsCmd creates the update-tickets command
func newUpdateTicketsCmd(s *settings, global *globalFlags) *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "update-tickets [FILE|-]...",
		Short: "Mark tickets as done in Linear",
		Long: `Mark tickets as done in Linear.

Reads ticket identifiers and moves each ticket whose state is Passing (any
state with --update-all-statuses) to its team's Done state. Tickets already
done are skipped. The URL of every updated ticket is printed; with --dry-run
nothing is changed and the URLs of the tickets that would be updated are
printed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := inputSources(args)
			if err != nil {
				return err
			}
			return s.run(cmd, *global, flags.toConfig(), func(ctx *runtime.Context) error {
				confirmer, err := s.confirmerFor(ctx)
				if err != nil {
					return err
				}
				return updatetickets.Action(ctx, updatetickets.Options{
					Confirmer: confirmer,
					Sources:   sources,
				})
			})
		},
	}

	flags.registerTracker(cmd.Flags())
	return cmd
}
