// SPDX-License-Identifier: GPL-2.0-only

package deflate

// deflateFast implements the non-lazy match driver used by levels 1-3: at
// each position it takes the longest match found immediately, without
// comparing it against the match available one byte later (spec.md
// §4.4). It inserts every consumed string into the hash chain, except the
// positions inside a match longer than the level's maxLazy.
func (s *compressorState) deflateFast(flush FlushMode) blockState {
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

		matchLen := uint32(minMatch - 1)
		if hashHead != nilPos && s.strStart-hashHead <= s.wSize-minLookahead && s.strategy != StrategyHuffmanOnly {
			matchLen = s.findLongestMatch(hashHead)
		}

		var full bool
		if matchLen >= minMatch {
			full = s.tally(s.strStart-s.matchStart, matchLen-minMatch)
			s.lookahead -= matchLen

			if matchLen <= s.params.maxLazy && s.lookahead >= minMatch {
				matchLen--
				for matchLen > 0 {
					s.strStart++
					if s.lookahead >= minMatch {
						s.insertString(s.strStart)
					}
					matchLen--
				}
				s.strStart++
			} else {
				s.strStart += matchLen
				s.insH = 0
				if s.lookahead >= minMatch-1 {
					s.updateHash(s.window[s.strStart])
					s.updateHash(s.window[s.strStart+1])
				}
			}
		} else {
			full = s.tally(0, uint32(s.window[s.strStart]))
			s.lookahead--
			s.strStart++
		}

		if full {
			s.flushBlock(false)
			return blockDone
		}
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
