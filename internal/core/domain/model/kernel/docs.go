// Package kernel provides core domain primitives shared across the table and
// order models.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and
//     comparison capabilities, plus helpers for id lists
//
// These primitives are immutable and thread-safe. They enforce construction
// through factory functions so that domain objects never carry half-built
// identity values.
package kernel
