// SPDX-License-Identifier: GPL-2.0-only

package deflate

// deflateStored implements level 0: no matching at all, just accumulating
// literal bytes and periodically emitting them as stored blocks once
// enough have queued up, or whenever flush demands it (spec.md §4.4).
// Unlike the fast/slow drivers it bypasses the window's hash chains
// entirely; input still passes through the window before being copied
// into a stored block.
func (s *compressorState) deflateStored(flush FlushMode) blockState {
	maxBlockSize := uint32(0xffff)
	if maxBlockSize > s.wSize-5 {
		maxBlockSize = s.wSize - 5
	}

	for {
		if s.lookahead <= 1 {
			s.fillWindow()
			if s.lookahead == 0 && flush == NoFlush {
				return needMore
			}
			if s.lookahead == 0 {
				break
			}
		}

		s.strStart += s.lookahead
		s.lookahead = 0

		maxStart := uint32(s.blockStart) + maxBlockSize
		if s.strStart == 0 || s.strStart >= maxStart {
			s.lookahead = s.strStart - maxStart
			if s.strStart > maxStart {
				s.strStart = maxStart
			}
		}

		if s.strStart-uint32(s.blockStart) >= s.wSize-minLookahead {
			break
		}
	}

	s.insert = 0
	if flush == Finish && s.lookahead == 0 && len(s.in) == 0 {
		s.flushBlock(true)
		return finishDone
	}

	if s.strStart > uint32(s.blockStart) {
		s.flushBlock(false)
	}
	return blockDone
}
