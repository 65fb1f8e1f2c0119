// Package analytics turns a social-graph snapshot into dashboard statistics:
// per-user metrics, top-K rankings, three-way categorical bins, cross-tabs
// and chart specifications.
//
// Every function here is pure. Inputs are never mutated, nothing is cached
// between calls, and no I/O happens; callers load a models.Snapshot first and
// may invoke the engine concurrently for independent panels.
package analytics
