// Package migrate upgrades the object graph of files written by older
// format versions.
//
// Field level changes are handled while parsing by the descriptors. The
// migrations here restructure the graph after references were resolved:
//
//   - remove-autogenerated-components (files before version 17) removes
//     auto-generated components nobody depends on and demotes the rest.
//   - slot-names-to-taxonomy (files before version 12) maps legacy slot
//     names onto entries of the default slot taxonomy.
//   - rename-reserved-parameters (files before version 8) renames
//     parameters using a reserved name to its current spelling.
//
// Every migration is idempotent. Problems are logged and reported as
// MigrationError values; they never abort a read.
package migrate
