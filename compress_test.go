package deflate

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"math/rand"
	"testing"
)

func testInputSet() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "short-text", data: []byte("hello world, deflate test")},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 2000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 12000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
		{name: "32kib-zeros", data: make([]byte, 32*1024)},
	}
}

// decodeZlib runs Go's standard library zlib reader over compressed,
// serving as the conforming decoder the spec describes only by contract.
func decodeZlib(t *testing.T, compressed []byte) []byte {
	t.Helper()
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("zlib.NewReader: %v", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("zlib read: %v", err)
	}
	return out
}

func TestCompress_RoundTripAcrossLevels(t *testing.T) {
	levels := []Level{NoCompression, BestSpeed, 2, 5, BestCompression, DefaultLevel}

	for _, in := range testInputSet() {
		for _, level := range levels {
			name := fmt.Sprintf("%s/level-%d", in.name, level)
			t.Run(name, func(t *testing.T) {
				cmp, err := Compress(in.data, level)
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}
				out := decodeZlib(t, cmp)
				if !bytes.Equal(out, in.data) {
					t.Fatalf("round-trip mismatch: got=%d want=%d bytes", len(out), len(in.data))
				}
			})
		}
	}
}

func TestStream_RoundTripAcrossStrategies(t *testing.T) {
	strategies := []Strategy{StrategyDefault, StrategyFiltered, StrategyHuffmanOnly}
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 500)

	for _, strat := range strategies {
		t.Run(fmt.Sprintf("strategy-%d", strat), func(t *testing.T) {
			zs, err := NewStream(6, DefaultWindowBits, DefaultMemLevel, strat)
			if err != nil {
				t.Fatalf("NewStream: %v", err)
			}
			defer zs.End()

			out := compressAll(t, zs, data)
			got := decodeZlib(t, out)
			if !bytes.Equal(got, data) {
				t.Fatalf("round-trip mismatch under strategy %d", strat)
			}
		})
	}
}

func TestStream_RoundTripAcrossWindowAndMemLevels(t *testing.T) {
	data := bytes.Repeat([]byte("window and mem level coverage payload "), 2000)

	for wBits := MinWindowBits; wBits <= MaxWindowBits; wBits += 3 {
		for memLevel := MinMemLevel; memLevel <= MaxMemLevel; memLevel += 3 {
			name := fmt.Sprintf("w%d-m%d", wBits, memLevel)
			t.Run(name, func(t *testing.T) {
				zs, err := NewStream(6, wBits, memLevel, StrategyDefault)
				if err != nil {
					t.Fatalf("NewStream: %v", err)
				}
				defer zs.End()

				out := compressAll(t, zs, data)
				got := decodeZlib(t, out)
				if !bytes.Equal(got, data) {
					t.Fatalf("round-trip mismatch for %s", name)
				}
			})
		}
	}
}

func TestStream_RandomInputRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	data := make([]byte, 64*1024)
	rnd.Read(data)

	cmp, err := Compress(data, DefaultLevel)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	out := decodeZlib(t, cmp)
	if !bytes.Equal(out, data) {
		t.Fatal("random input round-trip mismatch")
	}
}

func TestStream_OneBytePerCall(t *testing.T) {
	data := []byte("resumability must hold even when every Deflate call supplies exactly one input byte")

	zs, err := NewStream(DefaultLevel, DefaultWindowBits, DefaultMemLevel, StrategyDefault)
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	defer zs.End()

	var out bytes.Buffer
	outBuf := make([]byte, 1)
	for i := 0; i < len(data); i++ {
		zs.NextIn = data[i : i+1]
		for len(zs.NextIn) > 0 {
			zs.NextOut = outBuf
			status, err := zs.Deflate(NoFlush)
			if err != nil {
				t.Fatalf("Deflate: %v", err)
			}
			out.Write(outBuf[:len(outBuf)-len(zs.NextOut)])
			_ = status
		}
	}
	for {
		zs.NextOut = outBuf
		status, err := zs.Deflate(Finish)
		if err != nil {
			t.Fatalf("Deflate finish: %v", err)
		}
		out.Write(outBuf[:len(outBuf)-len(zs.NextOut)])
		if status == StatusStreamEnd {
			break
		}
	}

	got := decodeZlib(t, out.Bytes())
	if !bytes.Equal(got, data) {
		t.Fatal("one-byte-per-call round-trip mismatch")
	}
}

func TestStream_OutputChunkSizeInvariance(t *testing.T) {
	data := bytes.Repeat([]byte("output chunk size must not change the decoded result "), 3000)

	sizes := []int{1, 2, 7, 64, 4096}
	for _, chunk := range sizes {
		t.Run(fmt.Sprintf("chunk-%d", chunk), func(t *testing.T) {
			zs, err := NewStream(6, DefaultWindowBits, DefaultMemLevel, StrategyDefault)
			if err != nil {
				t.Fatalf("NewStream: %v", err)
			}
			defer zs.End()

			var out bytes.Buffer
			outBuf := make([]byte, chunk)
			zs.NextIn = data
			for {
				zs.NextOut = outBuf
				status, err := zs.Deflate(Finish)
				if err != nil {
					t.Fatalf("Deflate: %v", err)
				}
				out.Write(outBuf[:len(outBuf)-len(zs.NextOut)])
				if status == StatusStreamEnd {
					break
				}
			}

			got := decodeZlib(t, out.Bytes())
			if !bytes.Equal(got, data) {
				t.Fatalf("mismatch for output chunk size %d", chunk)
			}
		})
	}
}

// compressAll drives zs to completion over data in 4KiB input chunks and
// 4KiB output chunks, returning the full compressed byte stream.
func compressAll(t *testing.T, zs *Stream, data []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	outBuf := make([]byte, 4096)

	remaining := data
	for {
		chunkLen := 4096
		if chunkLen > len(remaining) {
			chunkLen = len(remaining)
		}
		zs.NextIn = remaining[:chunkLen]
		remaining = remaining[chunkLen:]

		flush := NoFlush
		if len(remaining) == 0 {
			flush = Finish
		}

		for {
			zs.NextOut = outBuf
			status, err := zs.Deflate(flush)
			if err != nil {
				t.Fatalf("Deflate: %v", err)
			}
			out.Write(outBuf[:len(outBuf)-len(zs.NextOut)])
			if status == StatusStreamEnd {
				return out.Bytes()
			}
			if len(zs.NextIn) == 0 && status == StatusOK && flush != Finish {
				break
			}
		}
	}
}
