/*
Package graph holds the pure algorithms over workflow graphs: template
instantiation (Clone) and the breadth-first derivation of a linear step
sequence (DeriveStepSequence).

Both operations fail soft. A malformed graph degrades the output (an
empty or partial sequence, a passed-through dangling edge) instead of
returning an error, so the surrounding editor stays usable while a
graph is half-built.
*/
package graph
