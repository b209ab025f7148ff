// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package rbitmap wraps the two bitmap representations the builder needs:
// an Uncompressed, growable bit array (kelindar/bitmap, used as the
// Bitmap Builder's reusable accumulator) and a Compressed, serializable
// bitmap (RoaringBitmap, standing in for spec.md's external EWAH
// primitive — see DESIGN.md for why Roaring is the grounded substitute).
package rbitmap

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/kelindar/bitmap"
)

// Compressed is a run-length compressed bit array exposing exactly the
// primitive spec.md §3 requires of "Compressed bitmap (EWAH)": new,
// set(bit), xor(a,b)->c, serialize/deserialize, serialized size.
type Compressed struct {
	rb *roaring.Bitmap
}

// New returns an empty compressed bitmap.
func New() *Compressed {
	return &Compressed{rb: roaring.New()}
}

// FromUncompressed converts an Uncompressed bit array into its compressed
// form (spec §3: "conversion to a compressed bitmap").
func FromUncompressed(src bitmap.Bitmap) *Compressed {
	rb := roaring.New()
	for word, bits64 := range src {
		base := uint32(word) * 64
		for bits64 != 0 {
			tz := bits.TrailingZeros64(bits64)
			rb.Add(base + uint32(tz))
			bits64 &= bits64 - 1
		}
	}
	return &Compressed{rb: rb}
}

// Set sets a single bit.
func (c *Compressed) Set(bit uint32) {
	c.rb.Add(bit)
}

// Contains tests a single bit.
func (c *Compressed) Contains(bit uint32) bool {
	return c.rb.Contains(bit)
}

// OrInto bitwise-ORs the receiver's bits into an Uncompressed destination
// (spec §3: the Uncompressed bitmap's "bitwise-or with a compressed
// bitmap" operation).
func (c *Compressed) OrInto(dst *bitmap.Bitmap) {
	it := c.rb.Iterator()
	for it.HasNext() {
		dst.Set(it.Next())
	}
}

// Xor returns a new compressed bitmap holding the symmetric difference of
// the receiver and other, without mutating either operand.
func (c *Compressed) Xor(other *Compressed) *Compressed {
	result := c.rb.Clone()
	result.Xor(other.rb)
	return &Compressed{rb: result}
}

// SerializedSize returns the number of bytes Serialize would write.
func (c *Compressed) SerializedSize() int {
	return int(c.rb.GetSerializedSizeInBytes())
}

// WriteTo serializes the bitmap to w, returning the number of bytes
// written. A negative byte count from the underlying codec is a fatal
// condition per spec §7 and is surfaced as an error here instead.
func (c *Compressed) WriteTo(w io.Writer) (int64, error) {
	n, err := c.rb.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("serialize compressed bitmap: %w", err)
	}
	if n < 0 {
		return n, fmt.Errorf("serialize compressed bitmap: negative byte count")
	}
	return n, nil
}

// ReadFrom deserializes a bitmap previously written by WriteTo.
func (c *Compressed) ReadFrom(r io.Reader) (int64, error) {
	if c.rb == nil {
		c.rb = roaring.New()
	}
	return c.rb.ReadFrom(r)
}
