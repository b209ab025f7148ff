package rbitmap

import "github.com/kelindar/bitmap"

// Uncompressed is the Bitmap Builder's reusable, growable bit array (spec
// §3). kelindar/bitmap already provides Set/Remove/Contains/Grow over a
// position-addressed []uint64; we alias it rather than wrap it so callers
// keep its full method set.
type Uncompressed = bitmap.Bitmap

// ClearAll zeroes every word of an Uncompressed bitmap in place without
// shrinking its backing array, so it can be reused across Bitmap Builder
// iterations (spec §4.4's carry-over reset).
func ClearAll(b Uncompressed) {
	for i := range b {
		b[i] = 0
	}
}
