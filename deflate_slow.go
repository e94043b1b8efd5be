// SPDX-License-Identifier: GPL-2.0-only

package deflate

// deflateSlow implements the lazy match driver used by levels 4-9: before
// committing to a match found at strStart, it also searches at
// strStart+1 and only emits the earlier match if the later one isn't
// longer (spec.md §4.4). This costs one extra chain walk per match but
// typically improves ratio noticeably over the non-lazy driver.
func (s *compressorState) deflateSlow(flush FlushMode) blockState {
	for {
		if s.lookahead < minLookahead {
			s.fillWindow()
			if s.lookahead < minLookahead && flush == NoFlush {
				return needMore
			}
			if s.lookahead == 0 {
				break
			}
		}

		var hashHead uint32
		if s.lookahead >= minMatch {
			hashHead = s.insertString(s.strStart)
		}

		s.prevLen = s.matchLen
		s.prevMatch = s.matchStart
		s.matchLen = minMatch - 1

		if hashHead != nilPos && s.prevLen < s.params.maxLazy &&
			s.strStart-hashHead <= s.wSize-minLookahead && s.strategy != StrategyHuffmanOnly {
			s.matchLen = s.findLongestMatch(hashHead)

			if s.matchLen <= 5 && (s.strategy == StrategyFiltered ||
				(s.matchLen == minMatch && s.strStart-s.matchStart > 4096)) {
				s.matchLen = minMatch - 1
			}
		}

		if s.prevLen >= minMatch && s.matchLen <= s.prevLen {
			maxInsert := s.strStart + s.lookahead - minMatch
			full := s.tally(s.strStart-1-s.prevMatch, s.prevLen-minMatch)

			s.lookahead -= s.prevLen - 1
			s.prevLen -= 2
			for {
				s.strStart++
				if s.strStart <= maxInsert {
					s.insertString(s.strStart)
				}
				s.prevLen--
				if s.prevLen == 0 {
					break
				}
			}
			s.matchAvailable = false
			s.matchLen = minMatch - 1
			s.strStart++

			if full {
				s.flushBlock(false)
				return blockDone
			}
		} else if s.matchAvailable {
			full := s.tally(0, uint32(s.window[s.strStart-1]))
			if full {
				s.flushBlock(false)
			}
			s.strStart++
			s.lookahead--
			if full {
				return blockDone
			}
		} else {
			s.matchAvailable = true
			s.strStart++
			s.lookahead--
		}
	}

	if s.matchAvailable {
		s.tally(0, uint32(s.window[s.strStart-1]))
		s.matchAvailable = false
	}

	s.insert = 0
	if s.strStart < minMatch-1 {
		s.insert = s.strStart
	} else {
		s.insert = minMatch - 1
	}
	if flush == Finish {
		s.flushBlock(true)
		return finishDone
	}
	if s.lastLit > 0 {
		s.flushBlock(false)
		return blockDone
	}
	return blockDone
}
