// SPDX-License-Identifier: GPL-2.0-only

package deflate

// blockState is the result of one strategy-driver pass over the current
// lookahead (spec.md §4.4).
type blockState int

const (
	needMore      blockState = iota // driver ran out of input; call again after more is supplied
	blockDone                       // a block boundary was reached; more input may follow
	finishStarted                   // all input consumed and flush==Finish; no data left to tally
	finishDone                      // the final block has been emitted
)

// compressorState is the complete internal state of one compression
// session: the sliding window and hash chains (spec.md §4.2), the pending
// symbol buffer and trees (spec.md §3, §4.5-4.7), the bit writer
// (spec.md §4.1), and the bookkeeping needed to resume a strategy driver
// across calls (spec.md §4.4). One compressorState backs one Stream and
// is never shared.
type compressorState struct {
	// Sliding window and hash chains (window.go, match.go).
	wBits uint32 // log2 window size
	wSize uint32 // window size W = 1<<wBits
	wMask uint32 // wSize-1

	window []byte   // size 2*wSize, holds the last wSize bytes plus current lookahead
	head   []uint32 // size hashSize, hash -> most recent window position with that hash (nilPos if none)
	prev   []uint32 // size wSize, window position -> previous position with the same hash

	hashBits  uint32
	hashSize  uint32
	hashMask  uint32
	hashShift uint32
	insH      uint32 // rolling hash of the 3 bytes starting at strStart (or the next string to hash)

	strStart   uint32 // start of the string currently being matched, relative to window[0]
	lookahead  uint32 // number of valid bytes at and after strStart
	blockStart int64  // window index where the current block's literals/matches begin
	matchStart uint32 // start of the best match found for strStart, set by findLongestMatch
	matchLen   uint32 // length of the best match found for strStart
	prevMatch  uint32 // match start carried from the previous step, for lazy evaluation
	prevLen    uint32 // match length carried from the previous step
	matchAvailable bool // a match from the previous step is pending lazy-evaluation comparison

	insert uint32 // window positions ending at strStart still needing hash-chain insertion

	// Level/strategy tuning (resolved once per SetParams/NewStream call).
	level        Level
	strategy     Strategy
	params       levelParams
	niceMatch    uint32 // niceLength, clamped to maxMatch

	// Symbol buffer: literals and match (distance, length) pairs tallied
	// for the block currently being assembled (spec.md §4.5's d_buf/l_buf,
	// here interleaved since Go has no trouble indexing a struct slice).
	symBuf  []symToken
	lastLit int // number of entries used in symBuf
	matches int // number of match (non-literal) entries since the last new block

	// Huffman trees for the current block, sized with room for internal
	// nodes appended past the leaf range (spec.md §3).
	dynLTree [2*lCodes + 1]treeNode
	dynDTree [2*dCodes + 1]treeNode
	blTree   [2*blCodes + 1]treeNode
	huff     huffmanBuilder

	lMaxCode  int
	dMaxCode  int
	blMaxCode int

	// Bit-level output sink.
	bw bitWriter

	// Block/stream bookkeeping.
	status     streamStatus
	dataType   int8 // last block's binaryBlock/textBlock/unknownBlock guess, exposed via Stream.DataType
	lastEobLen int  // bit length of the most recently sent END_BLOCK code, for trAlign's resync check

	// Current call's I/O, re-sliced as bytes are consumed/produced
	// (spec.md §3's NextIn/NextOut; stream.go copies these in/out of the
	// public Stream fields each call).
	in         []byte
	consumedIn int
}

// symToken is one entry of the pending symbol buffer: either a literal
// byte (dist==0) or a (distance, length) back-reference.
type symToken struct {
	dist uint16 // match distance, or 0 for a literal
	lc   uint16 // literal byte value, or (length-MIN_MATCH) for a match
}

// streamStatus tracks where in the zlib-header/body/trailer sequence a
// Stream is (spec.md §4.8/§6).
type streamStatus int8

const (
	initStatus streamStatus = iota
	busyStatus
	finishStatus
)

// Data-type classification results of detectDataType, kept in dataType
// and exposed via Stream.DataType; they do not affect block encoding.
const (
	binaryBlock  = 0
	textBlock    = 1
	unknownBlock = 2
)

// reset reinitializes state for a freshly (re)configured session, sizing
// window/head/prev for wBits/memLevel and clearing all positions and
// trees. It does not allocate if the slices are already the right size,
// so Stream.Reset can reuse a pooled compressorState cheaply.
func (s *compressorState) reset(wBits uint32, memLevel uint32, level Level, strategy Strategy) {
	s.wBits = wBits
	s.wSize = 1 << wBits
	s.wMask = s.wSize - 1

	if cap(s.window) < int(2*s.wSize) {
		s.window = make([]byte, 2*s.wSize)
	} else {
		s.window = s.window[:2*s.wSize]
	}

	s.hashBits = memLevel + 7
	s.hashSize = 1 << s.hashBits
	s.hashMask = s.hashSize - 1
	s.hashShift = (s.hashBits + minMatch - 1) / minMatch

	if cap(s.head) < int(s.hashSize) {
		s.head = make([]uint32, s.hashSize)
	} else {
		s.head = s.head[:s.hashSize]
		clear(s.head)
	}
	if cap(s.prev) < int(s.wSize) {
		s.prev = make([]uint32, s.wSize)
	} else {
		s.prev = s.prev[:s.wSize]
		clear(s.prev)
	}

	litBufSize := uint32(1) << (memLevel + 6)
	if cap(s.symBuf) < int(litBufSize) {
		s.symBuf = make([]symToken, litBufSize)
	} else {
		s.symBuf = s.symBuf[:litBufSize]
	}

	pendingSize := litBufSize * 4
	if cap(s.bw.pending) < int(pendingSize) {
		s.bw.reset(make([]byte, 0, pendingSize))
	} else {
		s.bw.reset(s.bw.pending[:0])
	}

	s.insH = 0
	s.strStart = 0
	s.lookahead = 0
	s.blockStart = 0
	s.matchStart = 0
	s.matchLen = minMatch - 1
	s.prevMatch = 0
	s.prevLen = minMatch - 1
	s.matchAvailable = false
	s.insert = 0
	s.resetBlock()
	s.status = initStatus
	s.dataType = unknownBlock
	s.lastEobLen = 8
	s.in = nil
	s.consumedIn = 0

	s.setLevelStrategy(level, strategy)
}

// setLevelStrategy re-resolves the match-engine tuning table entry; used
// by reset and by SetParams for a mid-stream level/strategy change
// (spec.md §4.9).
func (s *compressorState) setLevelStrategy(level Level, strategy Strategy) {
	level = resolveLevel(level)
	s.level = level
	s.strategy = strategy
	s.params = deflateLevels[level]
	if strategy != StrategyDefault {
		s.params.strategy = strategy
	}
	s.niceMatch = s.params.niceLength
}
