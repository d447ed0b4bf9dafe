// Package files reads and writes the project file kinds.
//
// Every file kind is a Format: an ordered list of named sections, each
// holding the entities of one part of the kind's data. A read runs
//
//	version section -> version check -> sections -> reference resolution -> migrations
//
// and either returns a complete Result or an error; there is no partial
// success. Unresolved and foreign references are not errors: they are
// collected in the Result next to parse warnings and migration reports.
//
// The caller owns the streams. Formats never close them.
package files
