// Package bytecode models compiled units as linear instruction streams.
//
// The host compiler hands over one Unit per class or singleton object, each
// method body being a flat []Instr in emission order. The rewriting layer
// consumes these streams through the Sink interface and never needs basic
// blocks or a control-flow graph: call-site matching depends only on the
// fields of the current instruction.
//
// Units travel between the host and the CLI as msgpack files (see codec.go)
// with a schema version for safe invalidation when the format changes.
package bytecode
