// SPDX-License-Identifier: GPL-2.0-only

package deflate

import (
	"math/bits"
	"unsafe"
)

// countEqualBytes extends an already-matched prefix between window[a:] and
// window[b:] and returns the total number of equal leading bytes, capped
// at limit. Reads 8 bytes at a time via an unaligned word load, matching
// the teacher's hot-path extension trick.
func countEqualBytes(window []byte, a, b, matched, limit int) int {
	for matched+8 <= limit {
		left := *(*uint64)(unsafe.Pointer(&window[a+matched]))
		right := *(*uint64)(unsafe.Pointer(&window[b+matched]))
		if left == right {
			matched += 8
			continue
		}
		diff := left ^ right
		matched += bits.TrailingZeros64(diff) >> 3
		return matched
	}
	for matched < limit && window[a+matched] == window[b+matched] {
		matched++
	}
	return matched
}

// findLongestMatch walks the hash chain starting at curMatch (the head
// returned by insertString for strStart) looking for the longest match to
// window[strStart:], applying the level's chain-depth, good-length, and
// nice-length tuning (spec.md §4.3). It returns the match length (at
// least minMatch-1, meaning "no usable match") and, when it returns a
// longer value, leaves the match's start position in s.matchStart.
func (s *compressorState) findLongestMatch(curMatch uint32) uint32 {
	strStart := int(s.strStart)

	limit := uint32(0)
	if s.strStart > s.wSize-minLookahead {
		limit = s.strStart - (s.wSize - minLookahead)
	}

	chainLength := s.params.maxChain
	if s.prevLen >= s.params.goodLength {
		chainLength >>= 2
	}

	niceMatch := s.niceMatch
	if niceMatch > s.lookahead {
		niceMatch = s.lookahead
	}

	maxLen := int(s.lookahead)
	if maxLen > maxMatch {
		maxLen = maxMatch
	}

	best := minMatch - 1
	match := curMatch

	for chainLength > 0 {
		chainLength--

		m := int(match)
		if s.window[m] == s.window[strStart] &&
			s.window[m+1] == s.window[strStart+1] &&
			s.window[m+2] == s.window[strStart+2] {

			matched := countEqualBytes(s.window, strStart, m, 3, maxLen)
			if matched > best {
				best = matched
				s.matchStart = match
				if uint32(matched) >= niceMatch {
					break
				}
			}
		}

		if match <= limit {
			break
		}
		prev := s.prev[match&s.wMask]
		if prev == nilPos || prev >= match {
			break
		}
		match = prev
	}

	if uint32(best) > s.lookahead {
		return s.lookahead
	}
	return uint32(best)
}
