// Package entities declares the descriptor of every persisted entity kind.
//
// Descriptors that nest each other recursively (components inside child
// slots, chat replies, taxonomy entries, mapping rules, sub networks) get
// their field tables assigned in init to break the initialization cycle.
//
// Codes are grouped per entity family:
//
//	900        own id of every entity
//	1000-1499  components, slots, calculations, chat, access profiles
//	1500-1799  parameters and value sources
//	1800-1999  instances and placements
//	2000-2199  flow and simulation networks
//	2200-2299  taxonomies
//	2300-2499  resources and assets
//	2500-2799  big tables, 3D fields, function graphs
//	2800-2999  value mappings, user lists
//	3000-3699  users, excel tools, site planner, geo maps, relations, meta, links
package entities
