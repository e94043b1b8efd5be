// SPDX-License-Identifier: GPL-2.0-only

package deflate

// bitWriter packs variable-width codes LSB-first into pending, the
// session's output staging buffer (spec.md §3, §4.1). biBuf holds up to
// 16 bits not yet flushed to pending; biValid is how many of its low bits
// are meaningful.
type bitWriter struct {
	pending    []byte // output staging buffer, allocated by compressorState.reset with capacity 4*litBufSize
	pendingOut int    // read cursor: bytes [0:pendingOut) already drained to caller output
	biBuf      uint16
	biValid    uint
}

// reset clears the bit accumulator and rewinds pending for a new session
// or after a full drain.
func (w *bitWriter) reset(buf []byte) {
	w.pending = buf[:0]
	w.pendingOut = 0
	w.biBuf = 0
	w.biValid = 0
}

// pendingBytes reports how many bytes in pending are unread by the caller.
func (w *bitWriter) pendingBytes() int {
	return len(w.pending) - w.pendingOut
}

// sendBits appends the low `length` bits of value, LSB-first, to the bit
// accumulator, spilling to pending a byte pair at a time whenever the
// 16-bit register would overflow (spec.md §4.1).
func (w *bitWriter) sendBits(value uint32, length uint) {
	if w.biValid > 16-length {
		w.biBuf |= uint16(value) << w.biValid
		w.pending = append(w.pending, byte(w.biBuf), byte(w.biBuf>>8))
		w.biBuf = uint16(value >> (16 - w.biValid))
		w.biValid += length - 16
	} else {
		w.biBuf |= uint16(value) << w.biValid
		w.biValid += length
	}
}

// sendCode sends the Huffman code for tree[sym] (its assigned length and
// bit pattern).
func (w *bitWriter) sendCode(tree []treeNode, sym int) {
	w.sendBits(uint32(tree[sym].freqOrCode), uint(tree[sym].dadOrLen))
}

// biFlush empties the accumulator to whole bytes, leaving at most 7 bits
// of residue (spec.md §4.1 bi_flush).
func (w *bitWriter) biFlush() {
	if w.biValid == 16 {
		w.pending = append(w.pending, byte(w.biBuf), byte(w.biBuf>>8))
		w.biBuf = 0
		w.biValid = 0
	} else if w.biValid >= 8 {
		w.pending = append(w.pending, byte(w.biBuf))
		w.biBuf >>= 8
		w.biValid -= 8
	}
}

// biWindup flushes all remaining bits, zero-padded to a byte boundary,
// and resets the accumulator (spec.md §4.1 bi_windup).
func (w *bitWriter) biWindup() {
	if w.biValid > 8 {
		w.pending = append(w.pending, byte(w.biBuf), byte(w.biBuf>>8))
	} else if w.biValid > 0 {
		w.pending = append(w.pending, byte(w.biBuf))
	}
	w.biBuf = 0
	w.biValid = 0
}

// drain copies as many pending bytes as fit into dst, advances
// pendingOut, and compacts pending back to empty once fully drained.
// Returns the number of bytes copied.
func (w *bitWriter) drain(dst []byte) int {
	avail := w.pendingBytes()
	n := len(dst)
	if n > avail {
		n = avail
	}
	if n == 0 {
		return 0
	}
	copy(dst, w.pending[w.pendingOut:w.pendingOut+n])
	w.pendingOut += n
	if w.pendingOut == len(w.pending) {
		w.pending = w.pending[:0]
		w.pendingOut = 0
	}
	return n
}
