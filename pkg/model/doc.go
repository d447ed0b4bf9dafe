// Package model defines the persisted engineering data model: components,
// parameters, instances, networks, taxonomies, resources, multi-value
// tables, users and mapping rules.
//
// The types are plain data. Cross references are expressed as Ref values
// holding the persisted EntityID and, once a read has resolved them, a
// Handle into the registry that owns the loaded entities. No entity holds a
// pointer to an entity it does not own, so the graph has no pointer cycles.
//
// Closed unions (Parameter, ValueSource, Placement, ResourceEntry,
// FlowElement) are sealed interfaces; code that handles them uses
// exhaustive type switches.
package model
