/*
Package domain contains the core data model for FlowForge workflows.

It defines the vocabulary shared by every other package: Nodes tagged
with a closed set of kinds, Edges linking them, the Workflow graph
under edit, and Templates (named workflow snapshots, built-in or
user-owned). This package is kept pure and free of I/O, following
Hexagonal Architecture principles.

# Key Entities

  - Node: a single step, tagged with a NodeKind and a kind-specific data payload.
  - Edge: a directed link between two nodes.
  - Workflow: the full node/edge graph.
  - Template: a named, categorized workflow snapshot.
*/
package domain
