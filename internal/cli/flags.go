package cli

import (
	"github.com/spf13/pflag"

	"relticket.dev/relticket/internal/config"
)

// globalFlags are persistent flags shared by every command
type globalFlags struct {
	repo       string
	configFile string
	logFile    string
	noColor    bool
}

func (g *globalFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&g.repo, "repo", "", "GitHub repository as OWNER/NAME (env GH_REPO, default: origin remote)")
	flags.StringVar(&g.configFile, "config", "", "Path to a YAML config file (env RELTICKET_CONFIG)")
	flags.StringVar(&g.logFile, "log-file", "", "Also write a debug log to this file (env RELTICKET_LOG_FILE)")
	flags.BoolVar(&g.noColor, "no-color", false, "Disable colored stage labels")
}

// pipelineFlags are the per-command flags; each command registers only the
// groups it accepts so that others are rejected as unknown
type pipelineFlags struct {
	releaseTag        string
	linearAPIKey      string
	linearOrg         string
	failOn            string
	ticketPrefixes    []string
	dryRun            bool
	updateAllStatuses bool
	confirm           bool
}

func (p *pipelineFlags) registerReleaseTag(flags *pflag.FlagSet) {
	flags.StringVar(&p.releaseTag, "release-tag", "", "Tag of the GitHub release whose notes are read")
}

func (p *pipelineFlags) registerTracker(flags *pflag.FlagSet) {
	flags.StringVar(&p.linearAPIKey, "linear-api-key", "", "Linear API key (env LINEAR_API_KEY)")
	flags.StringVar(&p.linearOrg, "linear-org", "", "Linear organization used in ticket URLs (env LINEAR_ORG)")
	flags.BoolVar(&p.dryRun, "dry-run", false, "Query tickets but do not change them")
	flags.BoolVar(&p.updateAllStatuses, "update-all-statuses", false, "Update tickets in any state, not only Passing")
	flags.BoolVar(&p.confirm, "confirm", false, "Ask before changing each ticket")
	flags.StringVar(&p.failOn, "fail-on", string(config.FailOnFailed), "Exit non-zero on: failed, skipped or never")
}

func (p *pipelineFlags) registerPrefixes(flags *pflag.FlagSet) {
	flags.StringSliceVar(&p.ticketPrefixes, "ticket-prefix", nil, "Only accept tickets with this prefix (repeatable)")
}

func (p *pipelineFlags) toConfig() config.Flags {
	return config.Flags{
		ReleaseTag:        p.releaseTag,
		LinearAPIKey:      p.linearAPIKey,
		LinearOrg:         p.linearOrg,
		FailOn:            p.failOn,
		TicketPrefixes:    p.ticketPrefixes,
		DryRun:            p.dryRun,
		UpdateAllStatuses: p.updateAllStatuses,
		Confirm:           p.confirm,
	}
}
