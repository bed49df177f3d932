package internal

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// IterSeq2Sorted yields the pairs of a sequence ordered by key.
// Later pairs with a duplicate key replace earlier ones.
func IterSeq2Sorted[K cmp.Ordered, V any](seq iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		values := map[K]V{}
		for k, v := range seq {
			values[k] = v
		}

		for _, k := range slices.Sorted(maps.Keys(values)) {
			if !yield(k, values[k]) {
				return
			}
		}
	}
}
