// SPDX-License-Identifier: GPL-2.0-only

/*
Package deflate implements a streaming DEFLATE compressor compatible with
RFC 1951 (DEFLATE bit stream) optionally wrapped in RFC 1950 (zlib header
and Adler-32 trailer).

The package is the compression half only: it accepts variable-sized input
chunks and produces variable-sized output chunks under caller-controlled
flush semantics, resuming across calls without re-buffering the whole
input. Decompression, gzip framing, and any public io.Reader/io.Writer
adapter are out of scope; callers wrap Stream themselves.

# Streaming

	s, err := deflate.NewStream(deflate.DefaultLevel, deflate.DefaultWindowBits, deflate.DefaultMemLevel, deflate.StrategyDefault)
	...
	s.NextIn = chunk
	for len(s.NextIn) > 0 {
		s.NextOut = out[:cap(out)]
		status, err := s.Deflate(deflate.NoFlush)
		out = append(written, s.NextOut... consumed prefix)
	}
	status, err := s.Deflate(deflate.Finish)

# One-shot

	out, err := deflate.Compress(data, deflate.DefaultLevel)
*/
package deflate
