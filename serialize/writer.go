package serialize

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelindar/iostream"
	"github.com/packbitmap/index/object"
	"github.com/packbitmap/index/reach"
)

// hashBatchSize mirrors the original writer's 1024-entry stack buffer for
// streaming the hash cache (spec §4.6).
const hashBatchSize = 1024

// Writer produces one index file. It owns the single temp-file-to-rename
// build state explicitly, per the Design Notes ("make the writer an
// explicit value owned by the top-level command").
type Writer struct {
	file   *os.File
	stream *iostream.Writer
	tmp    string
	final  string
}

// Create opens a temporary file in dir for building the index that will
// ultimately be renamed to finalName.
func Create(dir, finalName string) (*Writer, error) {
	tmp, err := os.CreateTemp(dir, "tmp_bitmap_*")
	if err != nil {
		return nil, fmt.Errorf("create temporary bitmap file: %w", err)
	}

	return &Writer{
		file:   tmp,
		stream: iostream.NewWriter(tmp),
		tmp:    tmp.Name(),
		final:  filepath.Join(dir, finalName),
	}, nil
}

// WriteHeader writes the 32-byte fixed header (spec §6).
func (w *Writer) WriteHeader(h Header) error {
	var buf [32]byte
	copy(buf[0:4], Magic[:])
	binary.BigEndian.PutUint16(buf[4:6], h.Version)
	binary.BigEndian.PutUint16(buf[6:8], h.Options)
	binary.BigEndian.PutUint32(buf[8:12], h.EntryCount)
	copy(buf[12:32], h.Checksum[:])

	_, err := w.stream.Write(buf[:])
	return err
}

// WriteHashCache writes name_hash for every record in position order, as
// 32-bit big-endian integers, batched the way the original writer
// batches its 1024-entry stack buffer (spec §4.6 step 3).
func (w *Writer) WriteHashCache(table *object.Table) error {
	var batch [hashBatchSize * 4]byte
	n := 0

	for _, rec := range table.Records() {
		binary.BigEndian.PutUint32(batch[n*4:n*4+4], rec.NameHash)
		n++
		if n == hashBatchSize {
			if _, err := w.stream.Write(batch[:n*4]); err != nil {
				return err
			}
			n = 0
		}
	}
	if n > 0 {
		if _, err := w.stream.Write(batch[:n*4]); err != nil {
			return err
		}
	}
	return nil
}

// WriteTypeIndex writes the four type bitmaps in commits/trees/blobs/tags
// order (spec §4.6 step 4, §6).
func (w *Writer) WriteTypeIndex(types *object.TypeIndex) error {
	if _, err := types.Commits.WriteTo(w.stream); err != nil {
		return err
	}
	if _, err := types.Trees.WriteTo(w.stream); err != nil {
		return err
	}
	if _, err := types.Blobs.WriteTo(w.stream); err != nil {
		return err
	}
	if _, err := types.Tags.WriteTo(w.stream); err != nil {
		return err
	}
	return nil
}

// WriteSelected writes the selected-commit region in two passes (spec
// §4.6 step 5): bitmap payloads first, recording each one's on-disk
// offset, then the fixed-size directory referencing those offsets.
func (w *Writer) WriteSelected(selected []*reach.Selected) error {
	for _, s := range selected {
		s.WritePos = uint32(w.stream.Offset())
		if _, err := s.WriteAs.WriteTo(w.stream); err != nil {
			return fmt.Errorf("write bitmap payload for commit %s: %w", s.CommitID, err)
		}
	}

	var entry [DirectoryEntrySize]byte
	for _, s := range selected {
		copy(entry[0:20], s.CommitID[:])
		binary.BigEndian.PutUint32(entry[20:24], s.WritePos)
		entry[24] = byte(s.XOROffset)
		entry[25] = s.Flags
		entry[26] = 0
		entry[27] = 0

		if _, err := w.stream.Write(entry[:]); err != nil {
			return fmt.Errorf("write directory entry for commit %s: %w", s.CommitID, err)
		}
	}
	return nil
}

// Offset returns the number of bytes written to the stream so far.
func (w *Writer) Offset() int64 {
	return w.stream.Offset()
}

// Finish closes the temp file, makes it read-only, and atomically
// renames it over the final filename — the only publication point (spec
// §4.6, §7: "no partial index is ever presented as valid").
func (w *Writer) Finish() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close temporary bitmap file: %w", err)
	}
	if err := os.Chmod(w.tmp, 0444); err != nil {
		return fmt.Errorf("make temporary bitmap file read-only: %w", err)
	}
	if err := os.Rename(w.tmp, w.final); err != nil {
		return fmt.Errorf("rename temporary bitmap file into place: %w", err)
	}
	return nil
}

// Abandon removes the temporary file without publishing it. Used by
// callers that hit a fatal error after Create but before Finish; spec §5
// notes a fatal abort otherwise "leaves the temporary file behind", which
// this makes an explicit choice rather than an accident.
func (w *Writer) Abandon() {
	w.file.Close()
	os.Remove(w.tmp)
}
