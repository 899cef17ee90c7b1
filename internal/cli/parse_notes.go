package cli

import (
	"github.com/spf13/cobra"

	"relticket.dev/relticket/internal/actions/parsenotes"
	"relticket.dev/relticket/internal/runtime"
)

// newParseNotesCmd creates the parse-notes command
func newParseNotesCmd(s *settings, global *globalFlags) *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "parse-notes [FILE|-]...",
		Short: "Print the pull request numbers mentioned in release notes",
		Long: `Print the pull request numbers mentioned in release notes, one per line.

With --release-tag the notes of that GitHub release are read. Otherwise the
given files are read in order ("-" is standard input, which is also the
default). Every "#123" reference and pull request URL is printed in order of
appearance, duplicates included.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := inputSources(args)
			if err != nil {
				return err
			}
			return s.run(cmd, *global, flags.toConfig(), func(ctx *runtime.Context) error {
				return parsenotes.Action(ctx, parsenotes.Options{
					ReleaseTag: ctx.Config.ReleaseTag,
					Sources:    sources,
				})
			})
		},
	}

	flags.registerReleaseTag(cmd.Flags())
	return cmd
}
