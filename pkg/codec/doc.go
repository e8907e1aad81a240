// Package codec converts a FormDocument to and from the single JSON text the
// host exchanges with the engine. Decoding yields a Payload describing which
// top-level fields were present so partial updates leave the rest of the
// document alone. Legacy nesting attributes (children, columns, rows) are
// accepted on input and folded into components.
package codec
