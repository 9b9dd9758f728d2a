/*
Package dsl provides a fluent builder for programmatically constructing
workflow graphs.

It allows developers to define flows using a type-safe, chainable API
instead of hand-writing node and edge literals. This is particularly
useful for dynamic graph generation, unit testing, and leveraging IDE
autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/lxyhes/flowforge/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Add("start").Start().Label("Start").Go("review")
		b.Add("review").Prompt("Review the diff").Label("Review").Go("end")
		b.Add("end").End().Label("Done")

		// The resulting workflow can be traversed or exported.
		w := b.Build()
		_ = w
	}
*/
package dsl
