// Copyright 2026, the Byteseek contributors.

package utils

// PairSpace is the required length of the workspace passed to
// CountDistinctPairs.
const PairSpace = 256 * 256

// CountDistinctPairs returns the number of distinct adjacent byte
// pairs in seq.  wk is workspace of length PairSpace, cleared on
// entry.  A sequence with very few distinct pairs is too repetitive
// for hashed search indexes to produce useful shifts.
func CountDistinctPairs(seq []byte, wk []int) int {

	for i := range wk {
		wk[i] = 0
	}

	var last int
	var n int
	for i, x := range seq {

		v := int(x)

		if i > 0 {
			k := 256*last + v
			if wk[k] == 0 {
				n++
			}
			wk[k]++
		}
		last = v
	}

	return n
}
