// simdxf reads, validates and upgrades SIMULTAN project files.
//
// SIMULTAN stores projects as line-oriented (code, value) files, one file
// kind per extension (.codxf components, .txdxf taxonomies, .lidxf links
// and so on). simdxf reads every format version ever written and writes
// the current one.
//
// Usage:
//
//	# Show what a file contains
//	simdxf inspect project.codxf
//
//	# Upgrade files to the current format version
//	simdxf convert --in-place *.codxf
//
//	# Check files, failing on unresolved references
//	simdxf validate --strict project.codxf project.txdxf
//
//	# Index a directory in the catalog and list outdated files
//	simdxf scan ./projects
//	simdxf catalog list --outdated
//
//	# Keep the catalog current while files change
//	simdxf watch ./projects
package main

func main() {
	Execute()
}
