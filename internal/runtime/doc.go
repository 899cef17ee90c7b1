// Package runtime provides the execution context for relticket commands.
//
// It encapsulates shared dependencies and configuration needed by actions,
// such as the logger, the result writer, the resolved PipelineConfig and the
// factories for the GitHub and Linear collaborators.
package runtime
