/*
Package flowforge is a workflow-graph editor core for agent automation: a
template library, a graph cloner and traversal engine, and exporters that
turn workflow graphs into agent and command artifacts.

It follows a hexagonal layout. The pure graph and export logic lives in
pkg/domain, pkg/graph and pkg/export; persistence is abstracted behind
pkg/ports with memory, file and redis adapters; and the Studio facade in
this package ties catalog, store and export together.

# Concept

A workflow is a directed graph of typed nodes (prompts, conditions, tool
calls, git steps, ...). Templates are frozen workflows: the built-in
catalog ships read-only ones, and users keep their own in a template
store with favorites and recents. Cloning a template mints fresh ids so
several instances can live on one canvas; exporting derives a linear
step sequence from the graph and renders it as an agent or command
configuration file.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/lxyhes/flowforge"
		"github.com/lxyhes/flowforge/pkg/adapters/memory"
	)

	func main() {
		studio := flowforge.New(memory.New())
		ctx := context.Background()

		// Browse the built-in catalog.
		for _, tpl := range studio.Catalog() {
			fmt.Println(tpl.ID, "-", tpl.Name)
		}

		// Clone a template into an editable workflow.
		w, err := studio.Instantiate(ctx, "builtin-code-review")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("nodes:", len(w.Nodes))

		// Export it as an agent definition.
		artifact, filename, err := studio.ExportAgent(ctx, "builtin-code-review")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("write", filename)
		fmt.Println(artifact)
	}
*/
package flowforge
