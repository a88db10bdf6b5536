package probe

// junctionAtStart reports whether the fusion junction of a retained block
// lies at the block's genomic start. The '+' side of a feature is its
// transcription start, which is the genomic start only on the plus strand.
// Plain coordinates behave as plus-strand features.
func junctionAtStart(side byte, plusStrand bool) bool {
	return (side == '+') == plusStrand
}

// Inverted reports whether the two halves of a fusion are joined
// head-to-head or tail-to-tail (same side on the same strand, or different
// sides on different strands), in which case one half must be
// reverse-complemented to bring the 5' and 3' ends of the features
// together. The predicate is symmetric in its two halves.
func Inverted(side1 byte, plus1 bool, side2 byte, plus2 bool) bool {
	return junctionAtStart(side1, plus1) == junctionAtStart(side2, plus2)
}
