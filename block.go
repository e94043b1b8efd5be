// SPDX-License-Identifier: GPL-2.0-only

package deflate

// tally records one literal byte (dist==0) or one (distance, length)
// match into the pending symbol buffer and its frequency tables, and
// reports whether the block should be flushed now: either the buffer is
// full, or (every 8192 pairs, at level > 2) matches are sparse enough that
// the block's estimated compressed size already exceeds half its input
// size, so flushing early bounds the damage (spec.md §4.5's tr_tally).
func (s *compressorState) tally(dist uint32, lc uint32) bool {
	s.symBuf[s.lastLit] = symToken{dist: uint16(dist), lc: uint16(lc)}
	s.lastLit++

	if dist == 0 {
		s.dynLTree[lc].freqOrCode++
	} else {
		s.matches++
		dist--
		s.dynLTree[int(lengthCodeFor(int(lc)))+literals+1].freqOrCode++
		s.dynDTree[distCodeFor(int(dist))].freqOrCode++
	}

	if s.lastLit&0x1fff == 0 && s.level > 2 {
		outLength := int64(s.lastLit) * 8
		for dcode := 0; dcode < dCodes; dcode++ {
			outLength += int64(s.dynDTree[dcode].freqOrCode) * int64(5+extraDBits[dcode])
		}
		outLength >>= 3
		inLength := int64(s.strStart) - s.blockStart
		if int64(s.matches) < int64(s.lastLit)/2 && outLength > inLength/2 {
			return true
		}
	}

	return s.lastLit == len(s.symBuf)-1
}

// compressBlock walks the tallied symbol buffer, emitting each literal or
// match as a Huffman code under the given trees (spec.md §4.5 step 4,
// applied to either the dynamic or static tree pair).
func (s *compressorState) compressBlock(lTree, dTree []treeNode) {
	if s.lastLit != 0 {
		for i := 0; i < s.lastLit; i++ {
			tok := s.symBuf[i]
			if tok.dist == 0 {
				s.bw.sendCode(lTree, int(tok.lc))
				continue
			}

			lc := int(tok.lc)
			code := lengthCodeFor(lc)
			s.bw.sendCode(lTree, int(code)+literals+1)
			if extra := extraLBits[code]; extra != 0 {
				length := lc - int(baseLength[code])
				s.bw.sendBits(uint32(length), uint(extra))
			}

			distM1 := int(tok.dist) - 1
			dcode := distCodeFor(distM1)
			s.bw.sendCode(dTree, int(dcode))
			if extra := extraDBits[dcode]; extra != 0 {
				d := distM1 - int(baseDist[dcode])
				s.bw.sendBits(uint32(d), uint(extra))
			}
		}
	}
	s.bw.sendCode(lTree, endBlock)
	s.lastEobLen = int(lTree[endBlock].dadOrLen)
}

// detectDataType scans the literal frequencies just accumulated for the
// current block and guesses whether it looks like text or binary, used
// only as an RFC1952-style advisory bit in callers that expose it; the
// DEFLATE bitstream itself doesn't encode this (spec.md §4.5 step 2's
// set_data_type).
func (s *compressorState) detectDataType() int8 {
	blockMask := uint32(0xf3ffc07f) // bit n set for bytes 0-6, 14-25, 28-31, which mark a block binary; 9, 10, 13 and 32-255 count as text below
	for n := uint32(0); n <= 31; n++ {
		if blockMask&1 != 0 && s.dynLTree[n].freqOrCode != 0 {
			return binaryBlock
		}
		blockMask >>= 1
	}
	if s.dynLTree[9].freqOrCode != 0 || s.dynLTree[10].freqOrCode != 0 || s.dynLTree[13].freqOrCode != 0 {
		return textBlock
	}
	for n := uint32(32); n < literals; n++ {
		if s.dynLTree[n].freqOrCode != 0 {
			return textBlock
		}
	}
	return binaryBlock
}

// buildTrees constructs the dynamic literal/length and distance trees and
// the bit-length tree derived from them for the block about to be
// flushed, leaving max-code indices and bit-length totals in s.huff
// (spec.md §4.6/§4.7).
func (s *compressorState) buildTrees() {
	s.huff.resetLengths()
	s.lMaxCode = buildTree(&s.huff, s.dynLTree[:], &ltreeDesc)
	s.dMaxCode = buildTree(&s.huff, s.dynDTree[:], &dtreeDesc)
	s.blMaxCode = buildBlTree(&s.huff, s.blTree[:], s.dynLTree[:], s.lMaxCode, s.dynDTree[:], s.dMaxCode)
}

// flushBlock chooses among stored, static-Huffman, and dynamic-Huffman
// encodings by estimated bit cost and emits whichever is smallest,
// closing the block with the final-block bit if last is set (spec.md
// §4.5 steps 1 and 4-5). While blockStart is non-negative the window still
// holds the literal byte range for the block regardless of which symbols
// were tallied, so a stored encoding is considered even when matches were
// found; once a window slide has pushed blockStart below zero, only the
// Huffman encodings are used. At level 0 the stored encoding is always
// used.
func (s *compressorState) flushBlock(last bool) {
	storedLen := uint32(0)
	if s.strStart >= uint32(s.blockStart) {
		storedLen = s.strStart - uint32(s.blockStart)
	}

	s.dataType = s.detectDataType()
	s.buildTrees()

	optLenBits := s.huff.optLen
	staticLenBits := s.huff.staticLen

	optLenBytes := (optLenBits + 3 + 7) >> 3
	staticLenBytes := (staticLenBits + 3 + 7) >> 3
	if staticLenBytes <= optLenBytes {
		optLenBytes = staticLenBytes
	}

	if s.blockStart >= 0 && (s.level == NoCompression || storedLen+4 <= uint32(optLenBytes)) && storedLen <= 0xffff {
		s.storedBlock(s.window[s.blockStart:s.strStart], storedLen, last)
	} else if staticLenBytes == optLenBytes {
		s.bw.sendBits(b2u(last)|1<<1, 3)
		s.compressBlock(staticLTree[:], staticDTree[:])
	} else {
		s.bw.sendBits(b2u(last)|2<<1, 3)
		s.bw.sendAllTrees(&s.huff, s.blTree[:], s.dynLTree[:], s.lMaxCode, s.dynDTree[:], s.dMaxCode, s.blMaxCode)
		s.compressBlock(s.dynLTree[:], s.dynDTree[:])
	}

	s.blockStart = int64(s.strStart)
	s.resetBlock()
	if last {
		s.bw.biWindup()
	} else {
		s.bw.biFlush()
	}
}

// storedBlock emits a raw (uncompressed) block: the 3-bit header, a
// byte-alignment pad, then LEN/NLEN and the literal bytes themselves
// (spec.md §4.5's stored block format).
func (s *compressorState) storedBlock(data []byte, length uint32, last bool) {
	s.bw.sendBits(b2u(last), 3)
	s.bw.biWindup()
	s.bw.pending = append(s.bw.pending, byte(length), byte(length>>8), byte(^length), byte(^length>>8))
	s.bw.pending = append(s.bw.pending, data[:length]...)
}

// trAlign emits an empty static block so a decoder can resynchronize to a
// byte boundary without losing sliding-window history (spec.md §4.8's
// PARTIAL_FLUSH). A second empty block follows if the first one doesn't
// leave enough trailing bits for the decoder to unambiguously tell the
// flush point apart from a real final block.
func (s *compressorState) trAlign() {
	s.bw.sendBits(1<<1, 3)
	s.bw.sendCode(staticLTree[:], endBlock)
	s.bw.biFlush()
	if 1+s.lastEobLen+10-int(s.bw.biValid) < 9 {
		s.bw.sendBits(1<<1, 3)
		s.bw.sendCode(staticLTree[:], endBlock)
		s.bw.biFlush()
	}
	s.lastEobLen = 7
}

// clearHash zeroes every hash-chain head, forgetting all match history so
// no later match can reference data before this point (spec.md §4.8's
// FULL_FLUSH, §8's "full flush drops history" property).
func (s *compressorState) clearHash() {
	for i := range s.head {
		s.head[i] = nilPos
	}
}

// resetBlock clears the tallied symbol buffer and tree frequencies for
// the next block, without disturbing the window or match state.
func (s *compressorState) resetBlock() {
	s.lastLit = 0
	s.matches = 0
	for i := range s.dynLTree {
		s.dynLTree[i] = treeNode{}
	}
	for i := range s.dynDTree {
		s.dynDTree[i] = treeNode{}
	}
	for i := range s.blTree {
		s.blTree[i] = treeNode{}
	}
	s.dynLTree[endBlock].freqOrCode = 1
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
