package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	relerrors "relticket.dev/relticket/internal/errors"
)

// File is the optional YAML config file
//
//	linear:
//	  org: acme
//	  api_url: https://api.linear.app/graphql
//	github:
//	  repo: acme/widgets
//	tickets:
//	  prefixes: [ENG, OPS]
//	log:
//	  file: ~/.local/state/relticket/relticket.log
type File struct {
	Linear  LinearFileConfig  `yaml:"linear"`
	GitHub  GitHubFileConfig  `yaml:"github"`
	Tickets TicketsFileConfig `yaml:"tickets"`
	Log     LogFileConfig     `yaml:"log"`
}

// LinearFileConfig holds tracker settings. The API key is deliberately not
// read from the file; use the flag or LINEAR_API_KEY.
type LinearFileConfig struct {
	Org    string `yaml:"org"`
	APIURL string `yaml:"api_url"`
}

// GitHubFileConfig holds hosting settings
type GitHubFileConfig struct {
	Repo string `yaml:"repo"`
}

// TicketsFileConfig holds ticket extraction settings
type TicketsFileConfig struct {
	Prefixes []string `yaml:"prefixes"`
}

// LogFileConfig holds logging settings
type LogFileConfig struct {
	File string `yaml:"file"`
}

// LoadFile reads a config file. An empty path returns an empty config.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, relerrors.NewConfigError("config file %s does not exist", path)
		}
		return nil, relerrors.NewIOError(path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, relerrors.NewConfigError("failed to parse config file %s: %v", path, err)
	}
	return &file, nil
}
