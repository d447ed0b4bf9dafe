// Package version holds the format version constants and the gates at which
// the persisted layout changed.
//
// Every descriptor field and every migration refers to one of these gates
// instead of a bare number, so the history of the format reads top to
// bottom in gates.go.
package version
