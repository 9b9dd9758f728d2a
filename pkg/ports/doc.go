/*
Package ports defines the interfaces between the FlowForge core and the
outside world, following Hexagonal Architecture principles.

The core never touches a storage backend directly: pkg/store talks to a
TemplateRepository, and the adapters under pkg/adapters supply memory,
file and redis implementations. The contract test suite in this package
keeps every adapter honest.
*/
package ports
