/*
Package export maps a derived step sequence onto the two downstream
configuration schemas (agent and command) and serializes them with the
indentation-based writer the agent runtime parses.

The package is pure: it consumes nodes already flattened by pkg/graph
and produces strings. Tool and parameter extraction are idempotent over
a fixed node list.
*/
package export
