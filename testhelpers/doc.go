// Package testhelpers provides shared test utilities: in-memory fakes for
// the GitHub and Linear collaborators, httptest servers mimicking both APIs,
// a runtime context wired to buffers, and a lazily built relticket binary.
package testhelpers
