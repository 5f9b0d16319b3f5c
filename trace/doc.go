// Package trace holds the in-memory model of a recorded GPS trace.
//
// A Trace is an ordered slice of Points in recording order. The order
// defines the line geometry and is preserved verbatim by every consumer.
package trace
