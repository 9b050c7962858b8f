package rendezvous

import (
	"cmp"
	"math/bits"
	"slices"
)

type scored struct {
	score uint64
	idx   int
}

// compareScored orders by descending score, then by descending index.
func compareScored(a, b scored) int {
	if c := cmp.Compare(b.score, a.score); c != 0 {
		return c
	}
	return cmp.Compare(b.idx, a.idx)
}

func better(a, b scored) bool {
	return compareScored(a, b) < 0
}

// selectTop reorders s so that its k best entries occupy s[:k] in no
// particular order. Requires 0 < k <= len(s).
//
// Quickselect with median-of-three pivots; if partitioning takes more than
// 2*log2(n) rounds the remaining window is sorted outright.
func selectTop(s []scored, k int) {
	nth := k - 1
	lo, hi := 0, len(s)-1
	budget := 2 * bits.Len(uint(len(s)))
	for lo < hi {
		if budget == 0 {
			slices.SortFunc(s[lo:hi+1], compareScored)
			return
		}
		budget--

		p := partition(s, lo, hi)
		switch {
		case p == nth:
			return
		case p < nth:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partition places a median-of-three pivot at its final rank within
// s[lo:hi+1] and returns that rank. Entries better than the pivot end up
// to its left.
func partition(s []scored, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if better(s[mid], s[lo]) {
		s[lo], s[mid] = s[mid], s[lo]
	}
	if better(s[hi], s[lo]) {
		s[lo], s[hi] = s[hi], s[lo]
	}
	if better(s[hi], s[mid]) {
		s[mid], s[hi] = s[hi], s[mid]
	}
	s[mid], s[hi] = s[hi], s[mid]

	pivot := s[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if better(s[j], pivot) {
			s[i], s[j] = s[j], s[i]
			i++
		}
	}
	s[i], s[hi] = s[hi], s[i]
	return i
}
