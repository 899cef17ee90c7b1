// Package cli defines the relticket command tree.
//
// The root command runs the whole pipeline for a release tag. The
// parse-notes, extract-tickets and update-tickets subcommands run one stage
// each, reading newline-delimited items from files, "-" or stdin and writing
// results to stdout, so they can be chained with shell pipes.
package cli
