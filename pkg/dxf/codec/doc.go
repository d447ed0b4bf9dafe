// Package codec reads and writes the (code, value) pair stream underlying
// every project file.
//
// A field is two consecutive lines: an integer code and the value rendered
// as text. The codec knows nothing about entities, sections or format
// versions; it only owns line framing, value formatting and escaping.
//
// # Value Formatting
//
//   - Integers: decimal
//   - Doubles: shortest round-trippable decimal, INF, -INF and NaN for non-finite values
//   - Booleans: 1 and 0
//   - GUIDs: canonical hyphenated hex
//   - Strings: \n, \t, \r, \\ and ; escaped with a backslash
//
// # Usage
//
//	w := codec.NewWriter(out)
//	w.WriteString(1, "Parameter X")
//	w.WriteDouble(2, math.Inf(1))
//	if err := w.Flush(); err != nil {
//	    return err
//	}
//
//	r := codec.NewReader(in, "project.codxf")
//	for {
//	    pair, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
package codec
