// SPDX-License-Identifier: GPL-2.0-only

package deflate

import (
	"hash"
	"hash/adler32"
)

// Stream is one compression session: a sliding window, match engine, and
// bit-level output sink, fed incrementally through NextIn/NextOut (spec.md
// §3, §6). A Stream is not safe for concurrent use; each call to Deflate
// must complete before the next begins.
type Stream struct {
	// NextIn is the remaining input for the current call. Deflate consumes
	// a prefix of it and re-slices NextIn past what it consumed.
	NextIn []byte
	// NextOut is the remaining output space for the current call. Deflate
	// writes a prefix of it and re-slices NextOut past what it wrote.
	NextOut []byte
	// TotalIn and TotalOut report cumulative consumed/produced byte counts
	// across the whole session.
	TotalIn  int64
	TotalOut int64
	// Msg carries the most recent StatusStreamError's message, if any.
	Msg string

	zlibWrap      bool
	wroteHdr      bool
	adlerHash     hash.Hash32
	dictAdler     uint32
	trailerQueued bool
	pendingEnd    bool // set once Finish has fully drained; further calls are no-ops returning StreamEnd

	s *compressorState
}

// streamError records msg on zs.Msg and returns the matching
// StatusStreamError/ErrStreamError pair.
func (zs *Stream) streamError(format string, args ...any) (Status, error) {
	status, err := streamErrorf(format, args...)
	zs.Msg = err.Error()
	return status, err
}

// NewStream allocates a new zlib-wrapped (RFC 1950) Stream. windowBits
// must be in [MinWindowBits, MaxWindowBits]; memLevel in [MinMemLevel,
// MaxMemLevel]; level is resolved via resolveLevel (spec.md §4.9).
func NewStream(level Level, windowBits int, memLevel int, strategy Strategy) (*Stream, error) {
	return newStream(level, windowBits, memLevel, strategy, true)
}

// NewRawStream allocates a Stream that emits a bare RFC 1951 DEFLATE
// bitstream with no zlib header/trailer (spec.md §1's explicit
// alternative framing).
func NewRawStream(level Level, windowBits int, memLevel int, strategy Strategy) (*Stream, error) {
	return newStream(level, windowBits, memLevel, strategy, false)
}

func newStream(level Level, windowBits int, memLevel int, strategy Strategy, wrap bool) (*Stream, error) {
	if windowBits < MinWindowBits || windowBits > MaxWindowBits {
		_, err := streamErrorf("windowBits %d out of range [%d,%d]", windowBits, MinWindowBits, MaxWindowBits)
		return nil, err
	}
	if memLevel < MinMemLevel || memLevel > MaxMemLevel {
		_, err := streamErrorf("memLevel %d out of range [%d,%d]", memLevel, MinMemLevel, MaxMemLevel)
		return nil, err
	}
	if strategy < StrategyDefault || strategy > StrategyHuffmanOnly {
		_, err := streamErrorf("invalid strategy %d", strategy)
		return nil, err
	}

	st := acquireCompressorState()
	st.reset(uint32(windowBits), uint32(memLevel), level, strategy)

	zs := &Stream{zlibWrap: wrap, s: st, adlerHash: adler32.New()}
	return zs, nil
}

// Reset reinitializes the Stream for reuse with the same configuration,
// as if freshly returned by NewStream (a supplement beyond what a
// push-only compressor strictly needs, but idiomatic for callers pooling
// Streams across many short messages).
func (zs *Stream) Reset() {
	zs.TotalIn = 0
	zs.TotalOut = 0
	zs.Msg = ""
	zs.wroteHdr = false
	zs.pendingEnd = false
	zs.trailerQueued = false
	zs.adlerHash = adler32.New()
	zs.dictAdler = 0
	zs.s.reset(zs.s.wBits, zs.s.hashBits-7, zs.s.level, zs.s.strategy)
}

// SetParams changes the compression level and/or strategy mid-stream.
// Any data tallied for the block in progress is flushed first under the
// old parameters if the change affects which driver runs (spec.md §4.9).
func (zs *Stream) SetParams(level Level, strategy Strategy) (Status, error) {
	s := zs.s
	level = resolveLevel(level)

	oldFast := usesFastDriver(s.level)
	newFast := usesFastDriver(level)
	if oldFast != newFast || (s.level == NoCompression) != (level == NoCompression) {
		// Driver is changing; flush whatever is pending under the old one
		// before swapping tuning tables so match bookkeeping isn't reused
		// across incompatible drivers.
		if s.lastLit != 0 || int64(s.strStart) > s.blockStart {
			s.flushBlock(false)
		}
	}
	s.setLevelStrategy(level, strategy)
	return StatusOK, nil
}

// SetDictionary primes the window and hash chains with a preset
// dictionary before the first call to Deflate (spec.md §4.9's
// SetDictionary). It is an error to call this after compression has
// started.
func (zs *Stream) SetDictionary(dict []byte) (Status, error) {
	s := zs.s
	if s.status != initStatus || s.strStart != 0 || s.lookahead != 0 {
		status, err := dictionaryTooLateError()
		zs.Msg = err.Error()
		return status, err
	}

	zs.dictAdler = adler32.Checksum(dict)

	if len(dict) < minMatch {
		return StatusOK, nil
	}

	if uint32(len(dict)) >= s.wSize {
		dict = dict[uint32(len(dict))-s.wSize:]
	}

	copy(s.window, dict)
	s.strStart = uint32(len(dict))
	s.blockStart = int64(s.strStart)
	s.insH = 0
	s.updateHash(s.window[0])
	s.updateHash(s.window[1])
	for n := uint32(0); n < s.strStart-minMatch+1; n++ {
		s.insertString(n)
	}
	s.lookahead = 0
	s.matchLen = minMatch - 1
	s.matchAvailable = false
	s.insert = 0
	return StatusOK, nil
}

// Deflate advances the compression session, consuming a prefix of NextIn
// and producing a prefix of NextOut under the given flush mode (spec.md
// §4.8, §6). Callers loop calling Deflate, draining NextOut between
// calls, until it returns StatusStreamEnd (after a Finish call) or
// StatusBufError/an error.
func (zs *Stream) Deflate(flush FlushMode) (Status, error) {
	if zs.pendingEnd {
		return StatusStreamEnd, nil
	}
	if flush < NoFlush || flush > Finish {
		return zs.streamError("invalid flush mode %d", flush)
	}
	if len(zs.NextOut) == 0 {
		return StatusBufError, ErrBufError
	}

	s := zs.s

	if zs.zlibWrap && !zs.wroteHdr {
		zs.writeHeader()
		zs.wroteHdr = true
	}

	outBefore := len(zs.NextOut)
	inBefore := len(zs.NextIn)

	if s.status != finishStatus {
		if s.status == initStatus {
			s.status = busyStatus
		}
		s.in = zs.NextIn
		s.consumedIn = 0

		var bs blockState
		if s.level == NoCompression {
			bs = s.deflateStored(flush)
		} else if usesFastDriver(s.level) {
			bs = s.deflateFast(flush)
		} else {
			bs = s.deflateSlow(flush)
		}

		consumed := s.consumedIn
		if consumed > 0 {
			zs.adlerHash.Write(zs.NextIn[:consumed])
		}
		zs.NextIn = zs.NextIn[consumed:]

		if bs == finishStarted || bs == finishDone {
			s.status = finishStatus
		}

		if bs == blockDone {
			switch flush {
			case PartialFlush:
				s.trAlign()
			case SyncFlush, FullFlush:
				s.storedBlock(nil, 0, false)
				if flush == FullFlush {
					s.clearHash()
					if s.lookahead == 0 {
						s.strStart = 0
						s.blockStart = 0
						s.insert = 0
					}
				}
			}
		}
	}

	n := s.bw.drain(zs.NextOut)
	zs.NextOut = zs.NextOut[n:]

	if s.status == finishStatus && s.bw.pendingBytes() == 0 {
		if zs.zlibWrap {
			n2 := zs.writeTrailer(zs.NextOut)
			zs.NextOut = zs.NextOut[n2:]
			if s.bw.pendingBytes() > 0 {
				goto progress
			}
		}
		zs.pendingEnd = true
		zs.TotalIn += int64(inBefore - len(zs.NextIn))
		zs.TotalOut += int64(outBefore - len(zs.NextOut))
		return StatusStreamEnd, nil
	}

progress:
	producedOut := outBefore - len(zs.NextOut)
	consumedIn := inBefore - len(zs.NextIn)
	zs.TotalIn += int64(consumedIn)
	zs.TotalOut += int64(producedOut)

	if producedOut == 0 && consumedIn == 0 && flush == NoFlush {
		return StatusBufError, ErrBufError
	}
	return StatusOK, nil
}

// End reports whether the stream was cleanly finished and releases the
// session's scratch state back to the shared pool (spec.md §4.8's
// deflateEnd). It is safe to call End without having reached
// StatusStreamEnd; it returns ErrDataError in that case but still
// releases resources.
func (zs *Stream) End() (Status, error) {
	if zs.s == nil {
		return StatusOK, nil
	}
	finished := zs.pendingEnd
	releaseCompressorState(zs.s)
	zs.s = nil
	if !finished {
		return StatusDataError, ErrDataError
	}
	return StatusOK, nil
}

// DataType reports the advisory text/binary guess for the most recently
// flushed block (spec.md §4.5 step 2's set_data_type), DataUnknown before
// any block has been flushed.
func (zs *Stream) DataType() DataType {
	return DataType(zs.s.dataType)
}

// writeHeader emits the 2-byte RFC 1950 zlib header (CMF/FLG), setting
// FDICT and appending the preset dictionary's Adler-32 if SetDictionary
// was used (spec.md §4.8 step "emit the 2-byte zlib header once").
func (zs *Stream) writeHeader() {
	s := zs.s
	cmf := byte(0x08) | byte((s.wBits-8)<<4)

	level := s.level
	var flevel byte
	switch {
	case level == NoCompression:
		flevel = 0
	case level < 6:
		flevel = 1
	case level == 6:
		flevel = 2
	default:
		flevel = 3
	}

	flg := flevel << 6
	if zs.dictAdler != 0 {
		flg |= 0x20
	}

	header := uint16(cmf)<<8 | uint16(flg)
	header += 31 - header%31
	flg = byte(header)

	s.bw.pending = append(s.bw.pending, cmf, flg)
	if zs.dictAdler != 0 {
		d := zs.dictAdler
		s.bw.pending = append(s.bw.pending, byte(d>>24), byte(d>>16), byte(d>>8), byte(d))
	}
}

// writeTrailer emits as much of the 4-byte big-endian Adler-32 trailer as
// dst has room for, returning the number of bytes written; any remainder
// stays pending for the next call to drain.
func (zs *Stream) writeTrailer(dst []byte) int {
	s := zs.s
	if !zs.trailerQueued {
		adler := zs.adlerHash.Sum32()
		s.bw.pending = append(s.bw.pending, byte(adler>>24), byte(adler>>16), byte(adler>>8), byte(adler))
		zs.trailerQueued = true
	}
	return s.bw.drain(dst)
}

// Compress is a one-shot convenience wrapper around Stream for callers
// who have the whole input in memory and don't need incremental feeding
// (a supplement beyond spec.md's streaming-only contract, in the spirit
// of the teacher's own one-shot Compress helper).
func Compress(src []byte, level Level) ([]byte, error) {
	zs, err := NewStream(level, DefaultWindowBits, DefaultMemLevel, StrategyDefault)
	if err != nil {
		return nil, err
	}
	defer zs.End()

	out := make([]byte, 0, len(src)/2+64)
	buf := make([]byte, 64*1024)

	zs.NextIn = src
	for {
		zs.NextOut = buf
		status, err := zs.Deflate(Finish)
		if err != nil {
			return nil, err
		}
		out = append(out, buf[:len(buf)-len(zs.NextOut)]...)
		if status == StatusStreamEnd {
			break
		}
	}
	return out, nil
}
