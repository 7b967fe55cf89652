package util

import (
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// SlicesEquivalent reports pairwise hash equality of two slices.
func SlicesEquivalent[A set.Hash, B, BB set.Hasher[A]](fst []B, snd []BB) bool {
	return slices.EqualFunc(fst, snd, func(e1 B, e2 BB) bool {
		return e1.Hash() == e2.Hash()
	})
}
