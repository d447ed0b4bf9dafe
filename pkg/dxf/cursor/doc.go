// Package cursor provides the pull-style parser cursor used by every
// entity descriptor, and its write-side mirror.
//
// The cursor exposes the current field code, typed expect-accessors that
// validate the code before decoding the value, and helpers for the framing
// shared by all file kinds:
//
//	0          0         0        0
//	SECTION    <KIND>    SEQEND   ENDSEC
//	2
//	<name>
//
// Entities start with code 0 and their kind. A list is a count field, the
// child entities and a SEQEND marker. The cursor never rewinds: optional
// fields are detected by inspecting Code before consuming.
package cursor
