// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package deflate

import (
	"bytes"
	"fmt"
	"testing"
)

func benchmarkInputSets() map[string][]byte {
	return map[string][]byte{
		"small-text-4k":   bytes.Repeat([]byte("deflate benchmark text payload "), 160),
		"pattern-128k":    bytes.Repeat([]byte("ABCDEF0123456789"), 8192),
		"byte-cycle-256k": bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 26214),
	}
}

func BenchmarkCompress(b *testing.B) {
	levels := []Level{BestSpeed, 5, BestCompression}
	for inputName, inputData := range benchmarkInputSets() {
		for _, level := range levels {
			name := fmt.Sprintf("%s/level-%d", inputName, level)
			b.Run(name, func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(inputData)))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_, err := Compress(inputData, level)
					if err != nil {
						b.Fatalf("Compress failed: %v", err)
					}
				}
			})
		}
	}
}

func BenchmarkStream_Incremental(b *testing.B) {
	data := benchmarkInputSets()["pattern-128k"]
	chunk := 4096

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		zs, err := NewStream(6, DefaultWindowBits, DefaultMemLevel, StrategyDefault)
		if err != nil {
			b.Fatalf("NewStream: %v", err)
		}

		out := make([]byte, chunk)
		remaining := data
		for len(remaining) > 0 {
			n := chunk
			if n > len(remaining) {
				n = len(remaining)
			}
			zs.NextIn = remaining[:n]
			remaining = remaining[n:]

			flush := NoFlush
			if len(remaining) == 0 {
				flush = Finish
			}
			for {
				zs.NextOut = out
				status, err := zs.Deflate(flush)
				if err != nil {
					b.Fatalf("Deflate: %v", err)
				}
				if status == StatusStreamEnd || (len(zs.NextIn) == 0 && flush != Finish) {
					break
				}
			}
		}
		zs.End()
	}
}
