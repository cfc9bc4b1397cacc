// Package series provides read-only accessors over named value streams.
// A series is indexed by offset: 0 is the current bar, -1 the previous one.
// No accessor owns more history than its underlying buffer retains.
package series

// Series is a uniform read-only view over one value stream.
type Series interface {
	// Value returns the value at the given offset. Offset 0 is the current
	// bar, -1 the previous bar. Positive offsets are invalid.
	Value(offset int) (float64, error)
	// Len returns the number of values currently held.
	Len() int
}

// MultiLine is implemented by series providers that expose multiple named
// sub-lines (e.g. the upper/mid/lower bands of Bollinger Bands).
type MultiLine interface {
	// Line returns the named sub-line.
	Line(name string) (Series, error)
	// LineNames lists the available sub-lines in declaration order. The
	// first entry is the primary line.
	LineNames() []string
}
