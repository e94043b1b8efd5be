// SPDX-License-Identifier: GPL-2.0-only

package deflate

// scanTree run-length-encodes the code-length sequence tree[0..maxCode]
// (which the caller has terminated with a guard entry at maxCode+1 whose
// length is the sentinel value 0xffff) and tallies symbol frequencies into
// blTree, the bit-length alphabet's own frequency array (spec.md §4.7).
func scanTree(blTree []treeNode, tree []treeNode, maxCode int) {
	prevLen := -1
	nextLen := int(tree[0].dadOrLen)
	count := 0
	maxCount, minCount := 7, 4
	if nextLen == 0 {
		maxCount, minCount = 138, 3
	}
	tree[maxCode+1].dadOrLen = 0xffff // guard

	for n := 0; n <= maxCode; n++ {
		curLen := nextLen
		nextLen = int(tree[n+1].dadOrLen)
		count++
		switch {
		case count < maxCount && curLen == nextLen:
			continue
		case count < minCount:
			blTree[curLen].freqOrCode += uint16(count)
		case curLen != 0:
			if curLen != prevLen {
				blTree[curLen].freqOrCode++
			}
			blTree[repPrev3_6].freqOrCode++
		case count <= 10:
			blTree[repZero3_10].freqOrCode++
		default:
			blTree[repZero11_138].freqOrCode++
		}

		count = 0
		prevLen = curLen
		switch {
		case nextLen == 0:
			maxCount, minCount = 138, 3
		case curLen == nextLen:
			maxCount, minCount = 6, 3
		default:
			maxCount, minCount = 7, 4
		}
	}
}

// sendTree re-walks the same run structure as scanTree, this time
// emitting bits through the bit sink using the already-built bit-length
// tree (spec.md §4.7).
func (w *bitWriter) sendTree(blTree []treeNode, tree []treeNode, maxCode int) {
	prevLen := -1
	nextLen := int(tree[0].dadOrLen)
	count := 0
	maxCount, minCount := 7, 4
	if nextLen == 0 {
		maxCount, minCount = 138, 3
	}

	for n := 0; n <= maxCode; n++ {
		curLen := nextLen
		nextLen = int(tree[n+1].dadOrLen)
		count++
		switch {
		case count < maxCount && curLen == nextLen:
			continue
		case count < minCount:
			for ; count > 0; count-- {
				w.sendCode(blTree, curLen)
			}
		case curLen != 0:
			if curLen != prevLen {
				w.sendCode(blTree, curLen)
				count--
			}
			w.sendCode(blTree, repPrev3_6)
			w.sendBits(uint32(count-repPrev3_6Min), repPrev3_6Bits)
		case count <= 10:
			w.sendCode(blTree, repZero3_10)
			w.sendBits(uint32(count-repZero3_10Min), repZero3_10Bits)
		default:
			w.sendCode(blTree, repZero11_138)
			w.sendBits(uint32(count-repZero11_138Min), repZero11_138Bits)
		}

		count = 0
		prevLen = curLen
		switch {
		case nextLen == 0:
			maxCount, minCount = 138, 3
		case curLen == nextLen:
			maxCount, minCount = 6, 3
		default:
			maxCount, minCount = 7, 4
		}
	}
}

// buildBlTree builds the bit-length tree from the literal/length and
// distance trees' code lengths and returns the blOrder index of the last
// bit-length code to transmit, so one less than the number transmitted
// (spec.md §4.7's build_bl_tree; always >= 3, i.e. at least 4 codes).
func buildBlTree(b *huffmanBuilder, blTree []treeNode, lTree []treeNode, lMaxCode int, dTree []treeNode, dMaxCode int) (blMaxCode int) {
	scanTree(blTree, lTree, lMaxCode)
	scanTree(blTree, dTree, dMaxCode)

	buildTree(b, blTree, &blTreeDesc)

	maxBlIndex := blCodes - 1
	for ; maxBlIndex >= 3; maxBlIndex-- {
		if blTree[blOrder[maxBlIndex]].dadOrLen != 0 {
			break
		}
	}

	// Track the dynamic header's own bits (HLIT+HDIST+HCLEN = 14, plus 3
	// bits per transmitted bit-length code) in the running optLen total,
	// matching spec.md §4.5 step 1's optLenBytes computation downstream.
	b.optLen += uint64(3*(maxBlIndex+1)) + 5 + 5 + 4

	return maxBlIndex
}

// sendAllTrees emits the dynamic block header: HLIT, HDIST, HCLEN, the
// bit-length code lengths in blOrder, then the RLE-encoded literal and
// distance trees (spec.md §4.5 step 4).
func (w *bitWriter) sendAllTrees(b *huffmanBuilder, blTree []treeNode, lTree []treeNode, lMaxCode int, dTree []treeNode, dMaxCode int, blMaxCode int) {
	w.sendBits(uint32(lMaxCode-256), 5) // HLIT = lcodes - 257 where lMaxCode = lcodes-1
	w.sendBits(uint32(dMaxCode), 5)     // HDIST = dcodes - 1
	w.sendBits(uint32(blMaxCode-3), 4)  // HCLEN = blcodes - 4

	for rank := 0; rank <= blMaxCode; rank++ {
		w.sendBits(uint32(blTree[blOrder[rank]].dadOrLen), 3)
	}

	w.sendTree(blTree, lTree, lMaxCode)
	w.sendTree(blTree, dTree, dMaxCode)
}
