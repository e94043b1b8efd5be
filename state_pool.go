// SPDX-License-Identifier: GPL-2.0-only

package deflate

import "sync"

// compressorStatePool recycles compressorState values (and their large
// window/hash-chain slices) across Stream sessions.
var compressorStatePool = sync.Pool{
	New: func() any {
		return &compressorState{}
	},
}

// acquireCompressorState fetches a compressorState from the pool, ready
// for reset to configure it for a new session.
func acquireCompressorState() *compressorState {
	return compressorStatePool.Get().(*compressorState)
}

// releaseCompressorState returns st to the pool. Its slices are kept (not
// nilled) so a future acquire can reuse their backing arrays; reset
// overwrites their contents before the next session reads them.
func releaseCompressorState(st *compressorState) {
	if st == nil {
		return
	}
	compressorStatePool.Put(st)
}
