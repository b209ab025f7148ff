// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package serialize writes the on-disk index: header, optional hash
// cache, four type bitmaps, and the selected-commit region, to a
// temporary file that is atomically renamed into place (spec §4.6, §6).
package serialize

import "github.com/packbitmap/index/object"

// Magic is the 4-byte signature every index file starts with.
var Magic = [4]byte{'B', 'I', 'T', 'M'}

// Version is the on-disk format version this package writes.
const Version uint16 = 2

// Option bits for the header's options field.
const (
	OptFullDAG   uint16 = 0x1
	OptHashCache uint16 = 0x8
)

// DirectoryEntrySize is the fixed size of one selected-commit directory
// record (spec §6): 20-byte identifier, 4-byte bitmap_pos, 1-byte
// xor_offset, 1-byte flags, 2 bytes padding.
const DirectoryEntrySize = 28

// Header is the 32-byte fixed header (spec §6).
type Header struct {
	Version    uint16
	Options    uint16
	EntryCount uint32
	Checksum   object.ID
}

// HasHashCache reports whether the HASH_CACHE option bit is set.
func (h Header) HasHashCache() bool {
	return h.Options&OptHashCache != 0
}
