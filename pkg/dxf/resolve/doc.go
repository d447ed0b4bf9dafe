// Package resolve implements deferred reference resolution.
//
// While a file is parsed, every constructed entity is registered in a
// Registry arena and every reference is captured as a placeholder without
// dereferencing it, because its target may appear later in the stream, in
// another file or in another project. Once a file (or a group of files of
// one project sharing a registry) is loaded, Resolve drains the placeholder
// queue to a fixed point.
//
// # Outcomes
//
// Every placeholder ends in exactly one state:
//
//   - Resolved: the setter ran and the holder now carries a handle
//   - Unresolved: the target never appeared; reported, never dropped
//   - Foreign: the id belongs to another project; left symbolic for the
//     caller that loads that project
//
// Resolve may be called repeatedly. Resolved placeholders are never
// applied twice; unresolved and foreign ones are retried, so loading a
// further file into a shared registry can complete earlier references.
//
// # Basic Usage
//
//	reg := resolve.NewRegistry(projectID)
//	reg.Register(wall.ID, wall)
//	resolve.Bind(reg, resolve.HolderOf("reference slot", slotOwner), &slot.Target)
//	report := reg.Resolve()
//	target, ok := resolve.Deref(reg, slot.Target)
package resolve
