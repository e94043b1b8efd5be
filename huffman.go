// SPDX-License-Identifier: GPL-2.0-only

package deflate

// staticTreeDesc names the static counterpart of a dynamic tree, used by
// buildTree to compute both the optimal and the static encoded length in
// the same pass (spec.md §4.6).
type staticTreeDesc struct {
	staticTree []treeNode // nil for the bit-length tree, which has no static form
	extraBits  []int      // extra bits per code
	extraBase  int        // first code with extra bits (LITERALS+1 for ltree)
	elems      int        // number of elements in the alphabet
	maxLength  int        // max bit length for codes in this tree
}

var ltreeDesc = staticTreeDesc{staticTree: staticLTree[:], extraBits: extraLBits[:], extraBase: literals + 1, elems: lCodes, maxLength: maxBits}
var dtreeDesc = staticTreeDesc{staticTree: staticDTree[:], extraBits: extraDBits[:], extraBase: 0, elems: dCodes, maxLength: maxBits}
var blTreeDesc = staticTreeDesc{staticTree: nil, extraBits: extraBlBits[:], extraBase: 0, elems: blCodes, maxLength: maxBlBits}

// huffmanBuilder is per-Stream scratch state for Huffman construction
// (spec.md §3: heap, heapLen, heapMax, depth, blCount). It is reused across
// blocks and across trees within a block; reset before each build.
type huffmanBuilder struct {
	heap    [2*lCodes + 1]int // node indices, heap[1..heapLen] is a valid heap
	heapLen int
	heapMax int // heap[heapMax..2*lCodes] holds nodes in increasing-frequency order once sorted out
	depth   [2*lCodes + 1]uint8
	blCount [maxBits + 1]uint16 // number of codes of each length, scratch for genCodes

	// optLen/staticLen accumulate, in bits, the length this block would
	// take under the tree just built / under the fixed tree, across all
	// calls to buildTree for the current block (ltree then dtree).
	optLen    uint64
	staticLen uint64
}

// resetLengths clears the per-block bit-length accumulators before
// building the literal and distance trees for a new block.
func (b *huffmanBuilder) resetLengths() {
	b.optLen = 0
	b.staticLen = 0
}

// smaller reports whether node n is ordered before node m in the heap:
// by frequency, ties broken by depth (spec.md §4.6 step 1).
func (b *huffmanBuilder) smaller(tree []treeNode, n, m int) bool {
	return tree[n].freqOrCode < tree[m].freqOrCode ||
		(tree[n].freqOrCode == tree[m].freqOrCode && b.depth[n] <= b.depth[m])
}

// pqdownheap restores the heap property at index k after its value may
// have increased.
func (b *huffmanBuilder) pqdownheap(tree []treeNode, k int) {
	v := b.heap[k]
	j := k << 1
	for j <= b.heapLen {
		if j < b.heapLen && b.smaller(tree, b.heap[j+1], b.heap[j]) {
			j++
		}
		if b.smaller(tree, v, b.heap[j]) {
			break
		}
		b.heap[k] = b.heap[j]
		k = j
		j <<= 1
	}
	b.heap[k] = v
}

// buildTree constructs an optimal Huffman tree for tree (freq populated
// for indices 0..desc.elems-1): it fills in tree[n].dadOrLen with each
// leaf's code length and tree[n].freqOrCode with each leaf's code, and
// returns maxCode, the highest symbol index with freq > 0 (or with a
// synthesized frequency of 1 when fewer than two symbols were used).
//
// tree must have capacity 2*desc.elems+1 so internal nodes can be appended
// past the leaf range, matching the spec's "interleaved (freq, code) array".
func buildTree(b *huffmanBuilder, tree []treeNode, desc *staticTreeDesc) (maxCode int) {
	b.heapLen = 0
	b.heapMax = 2*lCodes + 1
	maxCode = -1

	for n := 0; n < desc.elems; n++ {
		if tree[n].freqOrCode != 0 {
			b.heapLen++
			b.heap[b.heapLen] = n
			maxCode = n
			b.depth[n] = 0
		} else {
			tree[n].dadOrLen = 0
		}
	}

	// Ensure at least two leaves exist so every code has a sibling bit,
	// even for degenerate single-symbol (or empty) inputs.
	for b.heapLen < 2 {
		var node int
		if maxCode < 2 {
			maxCode++
			node = maxCode
		} else {
			node = 0
		}
		tree[node].freqOrCode = 1
		b.heapLen++
		b.heap[b.heapLen] = node
		if node > maxCode {
			maxCode = node
		}
		b.depth[node] = 0
	}

	for n := b.heapLen / 2; n >= 1; n-- {
		b.pqdownheap(tree, n)
	}

	node := desc.elems // next internal node index
	for {
		n := b.heap[1] // smallest
		b.heap[1] = b.heap[b.heapLen]
		b.heapLen--
		b.pqdownheap(tree, 1)

		m := b.heap[1] // second smallest

		b.heapMax--
		b.heap[b.heapMax] = n
		b.heapMax--
		b.heap[b.heapMax] = m

		tree[node].freqOrCode = tree[n].freqOrCode + tree[m].freqOrCode
		if b.depth[n] >= b.depth[m] {
			b.depth[node] = b.depth[n] + 1
		} else {
			b.depth[node] = b.depth[m] + 1
		}
		tree[n].dadOrLen = uint16(node)
		tree[m].dadOrLen = uint16(node)

		b.heap[1] = node
		node++
		b.pqdownheap(tree, 1)

		if b.heapLen < 2 {
			break
		}
	}

	b.heapMax--
	b.heap[b.heapMax] = b.heap[1]

	genBitlen(b, tree, desc, maxCode)
	genCodes(tree, maxCode, b.blCount[:])
	return maxCode
}

// genBitlen computes bit lengths for all leaves from the tree shape left
// by buildTree's merge pass, walking internal nodes from the last merged
// backwards, then enforces maxLength by redistributing any overflow
// (spec.md §4.6 steps 3-4). It also adds this tree's contribution to
// b.optLen and b.staticLen, adjusted for any redistributed lengths.
func genBitlen(b *huffmanBuilder, tree []treeNode, desc *staticTreeDesc, maxCode int) {
	stree := desc.staticTree
	extra := desc.extraBits
	base := desc.extraBase
	maxLength := desc.maxLength

	for bits := 0; bits <= maxBits; bits++ {
		b.blCount[bits] = 0
	}

	// The node at heap[heapMax] is the root; set its length to 0
	// (the root itself is not a leaf and carries no code).
	tree[b.heap[b.heapMax]].dadOrLen = 0

	overflow := 0
	for h := b.heapMax + 1; h < 2*lCodes+1; h++ {
		n := b.heap[h]
		bits := int(tree[tree[n].dadOrLen].dadOrLen) + 1
		if bits > maxLength {
			bits = maxLength
			overflow++
		}
		tree[n].dadOrLen = uint16(bits)

		if n > maxCode {
			continue // not a leaf of this alphabet
		}

		b.blCount[bits]++
		extraBits := 0
		if n >= base {
			extraBits = extra[n-base]
		}
		freq := tree[n].freqOrCode
		b.optLen += uint64(freq) * uint64(bits+extraBits)
		if stree != nil {
			b.staticLen += uint64(freq) * uint64(int(stree[n].dadOrLen)+extraBits)
		}
	}

	if overflow == 0 {
		return
	}

	for overflow > 0 {
		bits := maxLength - 1
		for b.blCount[bits] == 0 {
			bits--
		}
		b.blCount[bits]--     // move one leaf down from this bit length
		b.blCount[bits+1] += 2 // up here and to the overflow length
		b.blCount[maxLength]--
		overflow -= 2
	}

	// Rebuild the leaf length assignment from blCount, walking leaves from
	// the deepest heap entries down; re-derive optLen's bit-length part.
	h := 2*lCodes + 1
	for bits := maxLength; bits != 0; bits-- {
		n := b.blCount[bits]
		for n != 0 {
			h--
			m := b.heap[h]
			if m > maxCode {
				continue
			}
			if int(tree[m].dadOrLen) != bits {
				b.optLen += uint64(bits-int(tree[m].dadOrLen)) * uint64(tree[m].freqOrCode)
				tree[m].dadOrLen = uint16(bits)
			}
			n--
		}
	}
}

// genCodes assigns canonical, bit-reversed codes to every leaf with a
// non-zero length, given the per-length counts left in blCount by
// genBitlen (spec.md §4.6 step 5).
func genCodes(tree []treeNode, maxCode int, blCount []uint16) {
	var nextCode [maxBits + 1]uint16
	code := uint16(0)
	for bits := 1; bits <= maxBits; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}

	for n := 0; n <= maxCode; n++ {
		length := int(tree[n].dadOrLen)
		if length == 0 {
			continue
		}
		tree[n].freqOrCode = reverseBits(nextCode[length], length)
		nextCode[length]++
	}
}
