// SPDX-License-Identifier: GPL-2.0-only

package deflate

// Level selects a compression level 0–9, or DefaultLevel to let the
// implementation pick (level 6). Level 0 disables matching and only
// emits stored blocks.
type Level int

// Level constants.
const (
	NoCompression      Level = 0
	BestSpeed          Level = 1
	BestCompression    Level = 9
	DefaultLevel       Level = -1
	defaultLevelActual Level = 6
)

// Strategy tunes the match engine and tree builder for specific input
// shapes. StrategyDefault uses the level's own driver (non-lazy for levels
// 1-3, lazy for 4-9); StrategyFiltered additionally suppresses matches of
// length 5 or less in the lazy driver (tuned for filtered/predicted data,
// e.g. PNG rows) and changes nothing at levels 1-3; StrategyHuffmanOnly
// disables matching entirely.
type Strategy int

// Strategy constants.
const (
	StrategyDefault Strategy = iota
	StrategyFiltered
	StrategyHuffmanOnly
)

// FlushMode controls what the orchestrator does at a block boundary.
type FlushMode int

// FlushMode constants.
const (
	// NoFlush lets the compressor decide when to start and end blocks.
	NoFlush FlushMode = iota
	// PartialFlush emits an empty static block so a decoder can resync to
	// a byte-unaligned bit position without losing history.
	PartialFlush
	// SyncFlush emits an empty stored block, byte-aligning the stream and
	// leaving the trailing marker 00 00 FF FF, without losing history.
	SyncFlush
	// FullFlush is SyncFlush plus forgetting all match history, so no
	// subsequent match may reference data before the flush point.
	FullFlush
	// Finish tells the orchestrator to wrap up: emit the final block and,
	// if the wrapper is enabled, the Adler-32 trailer.
	Finish
)

// DataType is the compressor's advisory guess at whether the most
// recently flushed block looked like text or binary data, mirroring
// zlib's data_type field. The DEFLATE bitstream itself doesn't encode
// this; it's exposed purely for callers layering their own framing
// (e.g. a gzip OS/XFL-style header) on top of Stream.
type DataType int8

// DataType constants.
const (
	DataBinary  DataType = 0
	DataText    DataType = 1
	DataUnknown DataType = 2
)

// Window size bounds (spec: W = 2^windowBits).
const (
	MinWindowBits     = 9
	MaxWindowBits     = 15
	DefaultWindowBits = 15
)

// MemLevel bounds; memLevel controls hash and literal-buffer sizing.
const (
	MinMemLevel     = 1
	MaxMemLevel     = 9
	DefaultMemLevel = 8
)

// resolveLevel maps DefaultLevel to its concrete value and clamps the rest.
func resolveLevel(level Level) Level {
	if level == DefaultLevel {
		return defaultLevelActual
	}
	if level < NoCompression {
		return NoCompression
	}
	if level > BestCompression {
		return BestCompression
	}
	return level
}
