// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package xorc implements the XOR Compressor (spec §4.5): after every
// selected commit has a reachability bitmap, it rewrites each as the XOR
// against one of its ten closest predecessors when that is smaller.
package xorc

import "github.com/packbitmap/index/reach"

// MaxOffset bounds how far back the compressor searches for a smaller
// XOR delta (spec §4.5, confirmed against original_source's
// MAX_XOR_OFFSET_SEARCH).
const MaxOffset = 10

// Compress fills in WriteAs and XOROffset for every entry of selected,
// which must already have Bitmap populated (i.e. reach.Builder.Build has
// run). selected is mutated in place.
func Compress(selected []*reach.Selected) {
	for k, s := range selected {
		best := s.Bitmap
		bestSize := best.SerializedSize()
		bestOffset := 0

		for d := 1; d <= MaxOffset; d++ {
			if k-d < 0 {
				break
			}

			trial := selected[k-d].Bitmap.Xor(s.Bitmap)
			if size := trial.SerializedSize(); size < bestSize {
				best = trial
				bestSize = size
				bestOffset = d
			}
		}

		s.WriteAs = best
		s.XOROffset = bestOffset
	}
}
