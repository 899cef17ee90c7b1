package config

import (
	"regexp"
	"strings"

	relerrors "relticket.dev/relticket/internal/errors"
)

// DefaultLinearAPIURL is the Linear GraphQL endpoint
const DefaultLinearAPIURL = "https://api.linear.app/graphql"

// Environment variables consulted when a flag is not given
const (
	EnvLinearAPIKey = "LINEAR_API_KEY"
	EnvLinearOrg    = "LINEAR_ORG"
	EnvLinearAPIURL = "LINEAR_API_URL"
	EnvRepo         = "GH_REPO"
	EnvConfigFile   = "RELTICKET_CONFIG"
	EnvLogFile      = "RELTICKET_LOG_FILE"
)

var (
	prefixPattern = regexp.MustCompile(`^[A-Z]+$`)
	repoPattern   = regexp.MustCompile(`^[^/\s]+/[^/\s]+$`)
)

// FailPolicy decides which outcomes make the process exit non-zero.
// Fatal errors always do.
type FailPolicy string

const (
	// FailOnFailed exits non-zero when at least one ticket Failed
	FailOnFailed FailPolicy = "failed"
	// FailOnSkipped also exits non-zero when any ticket was Skipped
	FailOnSkipped FailPolicy = "skipped"
	// FailOnNever only exits non-zero on fatal errors
	FailOnNever FailPolicy = "never"
)

// ParseFailPolicy validates a --fail-on value. Empty means FailOnFailed.
func ParseFailPolicy(value string) (FailPolicy, error) {
	switch FailPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", FailOnFailed:
		return FailOnFailed, nil
	case FailOnSkipped:
		return FailOnSkipped, nil
	case FailOnNever:
		return FailOnNever, nil
	}
	return "", relerrors.NewConfigError("invalid --fail-on value %q (expected failed, skipped or never)", value)
}

// PipelineConfig is the resolved set of operating parameters for a run
type PipelineConfig struct {
	ReleaseTag        string
	LinearAPIKey      string
	LinearOrg         string
	LinearAPIURL      string
	Repo              string
	DryRun            bool
	UpdateAllStatuses bool
	Confirm           bool
	TicketPrefixes    []string
	FailOn            FailPolicy
	LogFile           string
}

// Flags holds values given on the command line. Empty strings and nil slices mean "not given".
type Flags struct {
	ReleaseTag        string
	LinearAPIKey      string
	LinearOrg         string
	Repo              string
	LogFile           string
	FailOn            string
	TicketPrefixes    []string
	DryRun            bool
	UpdateAllStatuses bool
	Confirm           bool
}

// Resolve merges flags, environment and config file into a PipelineConfig.
// getenv is usually os.Getenv; file may be nil.
func Resolve(flags Flags, file *File, getenv func(string) string) (*PipelineConfig, error) {
	if file == nil {
		file = &File{}
	}

	failOn, err := ParseFailPolicy(flags.FailOn)
	if err != nil {
		return nil, err
	}

	cfg := &PipelineConfig{
		ReleaseTag:        strings.TrimSpace(flags.ReleaseTag),
		LinearAPIKey:      firstNonEmpty(flags.LinearAPIKey, getenv(EnvLinearAPIKey)),
		LinearOrg:         firstNonEmpty(flags.LinearOrg, getenv(EnvLinearOrg), file.Linear.Org),
		LinearAPIURL:      firstNonEmpty(getenv(EnvLinearAPIURL), file.Linear.APIURL, DefaultLinearAPIURL),
		Repo:              firstNonEmpty(flags.Repo, getenv(EnvRepo), file.GitHub.Repo),
		DryRun:            flags.DryRun,
		UpdateAllStatuses: flags.UpdateAllStatuses,
		Confirm:           flags.Confirm,
		FailOn:            failOn,
		LogFile:           firstNonEmpty(flags.LogFile, getenv(EnvLogFile), file.Log.File),
	}

	prefixes := flags.TicketPrefixes
	if len(prefixes) == 0 {
		prefixes = file.Tickets.Prefixes
	}
	for _, prefix := range prefixes {
		prefix = strings.TrimSpace(prefix)
		if !prefixPattern.MatchString(prefix) {
			return nil, relerrors.NewConfigError("invalid ticket prefix %q (expected uppercase letters like ENG)", prefix)
		}
		cfg.TicketPrefixes = append(cfg.TicketPrefixes, prefix)
	}

	if cfg.Repo != "" && !repoPattern.MatchString(cfg.Repo) {
		return nil, relerrors.NewConfigError("invalid repository %q (expected OWNER/NAME)", cfg.Repo)
	}

	return cfg, nil
}

// RequireTracker checks that the Linear credentials are present
func (c *PipelineConfig) RequireTracker() error {
	if c.LinearAPIKey == "" {
		return relerrors.NewConfigError("%s not provided via --linear-api-key flag or environment variable", EnvLinearAPIKey)
	}
	if c.LinearOrg == "" {
		return relerrors.NewConfigError("%s not provided via --linear-org flag or environment variable", EnvLinearOrg)
	}
	return nil
}

// RequireReleaseTag checks that a release tag was given
func (c *PipelineConfig) RequireReleaseTag() error {
	if c.ReleaseTag == "" {
		return relerrors.NewConfigError("orchestrator mode requires --release-tag flag")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
