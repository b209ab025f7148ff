// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package object defines the object table: the append-only array of packed
// objects and the hash lookup from identifier to array position that every
// bitmap in the build addresses into.
package object

import (
	"encoding/hex"
)

// IDSize is the width of an object identifier in bytes.
const IDSize = 20

// ID is a fixed-width content identifier, treated as opaque bytes for
// hashing and equality.
type ID [IDSize]byte

// String renders the identifier as lowercase hex, for diagnostics.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether id is the zero identifier.
func (id ID) IsZero() bool {
	return id == ID{}
}
