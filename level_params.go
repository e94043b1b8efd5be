// SPDX-License-Identifier: GPL-2.0-only

package deflate

// levelParams holds the match-engine tuning for one compression level.
type levelParams struct {
	goodLength uint32 // reduce search above this match length
	maxLazy    uint32 // do not perform lazy search above this match length
	niceLength uint32 // stop searching once a match this long is found
	maxChain   uint32 // max hash-chain probes
	strategy   Strategy
}

// deflateLevels defines the search-depth/laziness tuning for levels 0–9.
// Level 0 is unused by deflate_stored (no matching at all); levels 1–3
// use the non-lazy deflate_fast driver; levels 4–9 use deflate_slow.
var deflateLevels = [10]levelParams{
	{0, 0, 0, 0, StrategyDefault},         // 0: store only
	{4, 4, 8, 4, StrategyDefault},         // 1: fast
	{4, 5, 16, 8, StrategyDefault},        // 2: fast
	{4, 6, 32, 32, StrategyDefault},       // 3: fast
	{4, 4, 16, 16, StrategyDefault},       // 4: slow
	{8, 16, 32, 32, StrategyDefault},      // 5: slow
	{8, 16, 128, 128, StrategyDefault},    // 6: slow (default)
	{8, 32, 128, 256, StrategyDefault},    // 7: slow
	{32, 128, 258, 1024, StrategyDefault}, // 8: slow
	{32, 258, 258, 4096, StrategyDefault}, // 9: slow, max
}

// usesFastDriver reports whether level uses deflate_fast (non-lazy) vs
// deflate_slow (lazy) vs deflate_stored.
func usesFastDriver(level Level) bool {
	return level >= 1 && level <= 3
}
