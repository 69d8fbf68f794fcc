package bough

// Filter is a post-process effect applied to a node's rendered subtree. The
// core only needs to know how far an effect spills past the content; each
// backend type-asserts filters to its own applier and skips the rest.
type Filter interface {
	// Padding returns the extra pixels needed around the source to accommodate
	// the effect (e.g. blur radius, outline thickness). Zero means no padding.
	Padding() int
}

// FilterPadding returns the cumulative padding required by a filter chain.
// The offscreen target for a filtered subtree is grown by this amount on
// every side.
func FilterPadding(filters []Filter) int {
	pad := 0
	for _, f := range filters {
		pad += f.Padding()
	}
	return pad
}
