// Package precompose implements the build-time precomposition pass
// described in spec.md §4.1 ("Precomposition (build-time algorithm...)").
//
// Grounded on _examples/original_source/prepare/src/encode/mod.rs's
// `precompose` function and, for the blocked-rule/recent-skipped-CCC
// bookkeeping, the same shape as
// _examples/original_source/composing/src/composition/mod.rs's runtime
// buffer flush — precomposition is the build-time application of the
// identical "does the leading starter absorb the next item" rule the
// engine applies at runtime, just walking a decomposition instead of a
// compose buffer.
package precompose

import "github.com/boxesandglue/unorm/internal/pairs"

// Precompose folds a full decomposition down to the shortest sequence the
// runtime does not need to redo composition work for: starting from the
// leading starter, it repeatedly tries to combine the starter with the
// next element, honoring the Unicode blocked rule (an item may not combine
// if an earlier item of equal combining class was already left behind).
// Everything is only ever folded into the single leading starter — a
// second starter that does not combine with it ends the fold, and
// everything from that point on is returned unchanged.
func Precompose(decomposition []rune, ccc func(rune) uint8, table pairs.Map) []rune {
	if len(decomposition) < 2 || ccc(decomposition[0]) != 0 {
		return decomposition
	}

	starter := decomposition[0]
	rest := decomposition[1:]

	tail := make([]rune, 0, len(rest))
	recentSkippedCCC := uint8(0)

	for i := 0; i < len(rest); i++ {
		c := rest[i]
		cccOfC := ccc(c)

		if cccOfC != 0 && cccOfC == recentSkippedCCC {
			tail = append(tail, c)
			continue
		}

		if result, ok := table.Lookup(starter, c); ok {
			starter = result
			continue
		}

		tail = append(tail, c)

		if cccOfC == 0 {
			// A second starter that can't combine: the fold is over, the
			// rest of the decomposition passes through untouched.
			tail = append(tail, rest[i+1:]...)
			break
		}

		recentSkippedCCC = cccOfC
	}

	return append([]rune{starter}, tail...)
}
