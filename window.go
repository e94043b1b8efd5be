// SPDX-License-Identifier: GPL-2.0-only

package deflate

// nilPos marks an empty hash-chain slot. Position 0 can in principle also
// be a genuine match start; treating it as empty in that rare case only
// costs a potential match, never correctness (spec.md §9 mirrors this
// exact trade-off for narrow integer chain indices).
const nilPos = 0

// updateHash rolls insH forward by one byte using the 3-byte rolling hash
// (spec.md §4.2): insH <- ((insH << hashShift) ^ byte) & hashMask.
func (s *compressorState) updateHash(b byte) {
	s.insH = ((s.insH << s.hashShift) ^ uint32(b)) & s.hashMask
}

// insertString inserts the 3-byte string starting at window index str
// into the hash chain (rolling insH to cover window[str+2] first) and
// returns the chain's previous head (nilPos if none).
func (s *compressorState) insertString(str uint32) uint32 {
	s.updateHash(s.window[str+minMatch-1])
	head := s.head[s.insH]
	s.prev[str&s.wMask] = head
	s.head[s.insH] = str
	return head
}

// fillWindow refills the window from the current call's input whenever
// lookahead drops below minLookahead, sliding the window first if its
// free tail is empty and strStart has reached the slide threshold
// (spec.md §4.2). insert tracks window positions ending at strStart whose
// hash has not yet been computed/inserted (left behind when a fast or
// slow driver pass runs out of lookahead); fillWindow catches them up once
// enough lookahead exists to hash them.
func (s *compressorState) fillWindow() {
	wSize := s.wSize
	maxDist := wSize - minLookahead

	for {
		more := uint32(len(s.window)) - s.lookahead - s.strStart

		if s.strStart >= wSize+maxDist {
			copy(s.window[0:wSize], s.window[wSize:2*wSize])
			if s.matchStart >= wSize {
				s.matchStart -= wSize
			} else {
				s.matchStart = 0
			}
			s.strStart -= wSize
			s.blockStart -= int64(wSize)
			if s.insert > s.strStart {
				s.insert = s.strStart
			}
			s.slideHash()
			more += wSize
		}

		if len(s.in) == 0 {
			break
		}

		n := uint32(len(s.in))
		if n > more {
			n = more
		}
		if n == 0 {
			break
		}

		copy(s.window[s.strStart+s.lookahead:], s.in[:n])
		s.in = s.in[n:]
		s.consumedIn += int(n)
		s.lookahead += n

		if s.lookahead+s.insert >= minMatch {
			str := s.strStart - s.insert
			s.updateHash(s.window[str])
			s.updateHash(s.window[str+1])
			for s.insert > 0 {
				s.updateHash(s.window[str+minMatch-1])
				s.prev[str&s.wMask] = s.head[s.insH]
				s.head[s.insH] = str
				str++
				s.insert--
				if s.lookahead+s.insert < minMatch {
					break
				}
			}
		}

		if s.lookahead >= minLookahead || len(s.in) == 0 {
			break
		}
	}
}

// slideHash shifts every hash-chain index down by wSize, discarding (zeroing
// to nilPos) any entry that pointed below the new window start (spec.md
// §4.2 step 1).
func (s *compressorState) slideHash() {
	wSize := s.wSize
	for i := range s.head {
		if s.head[i] >= wSize {
			s.head[i] -= wSize
		} else {
			s.head[i] = nilPos
		}
	}
	for i := range s.prev {
		if s.prev[i] >= wSize {
			s.prev[i] -= wSize
		} else {
			s.prev[i] = nilPos
		}
	}
}
