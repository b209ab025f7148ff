package object

import (
	"fmt"

	"github.com/kelindar/intmap"
	"github.com/zeebo/xxh3"
)

// defaultLoadFactor mirrors the Closure Loader's hash-map resize step
// (spec §4.1: "Resize the Object Table's hash map to accommodate
// num_objects / load_factor").
const defaultLoadFactor = 2

// Table is the Object Table: an append-only array of object records plus a
// hash lookup from identifier to array position. Its records are added once
// by the Closure Loader and none are added afterwards — positions are frozen
// before any bitmap is allocated. Later stages only update a record's
// NameHash in place.
type Table struct {
	records []Record
	byHash  *intmap.Map64
}

// NewTable creates an Object Table sized for an expected object count.
func NewTable(expectedObjects int) *Table {
	buckets := uint32(expectedObjects/defaultLoadFactor) + 1
	return &Table{
		records: make([]Record, 0, expectedObjects),
		byHash:  intmap.NewMap64(buckets),
	}
}

// Len returns the number of records currently in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the records in insertion (position) order. The returned
// slice must not be mutated by the caller.
func (t *Table) Records() []Record {
	return t.records
}

// hashOf computes the table's bucket hash for an identifier.
func hashOf(id ID) uint64 {
	return xxh3.Hash(id[:])
}

// Add allocates a new record at the next free position for id. Duplicate
// insertion is a fatal invariant violation (spec §4.1, §7).
func (t *Table) Add(id ID, kind Kind) (*Record, error) {
	if _, ok := t.Lookup(id); ok {
		return nil, fmt.Errorf("%w: object %s already present in object table", ErrDuplicateObject, id)
	}

	pos := uint32(len(t.records))
	t.records = append(t.records, Record{ID: id, Kind: kind, Position: pos})
	t.byHash.Store(hashOf(id), uint64(pos)+1) // +1 so zero means "absent"
	return &t.records[pos], nil
}

// Lookup finds the record for id, if present.
func (t *Table) Lookup(id ID) (*Record, bool) {
	stored, ok := t.byHash.Load(hashOf(id))
	if !ok {
		return nil, false
	}

	pos := uint32(stored - 1)
	if int(pos) >= len(t.records) || t.records[pos].ID != id {
		// Hash collision between distinct identifiers: the bucket is taken
		// but doesn't name this object. Fall back to a linear scan rather
		// than report a false hit.
		for i := range t.records {
			if t.records[i].ID == id {
				return &t.records[i], true
			}
		}
		return nil, false
	}
	return &t.records[pos], true
}

// Position looks up the bit index for id. It fails when the object is not
// present in the table, which signals a packfile closure violation at the
// call sites that matter (spec §4.1, §4.4).
func (t *Table) Position(id ID) (uint32, error) {
	rec, ok := t.Lookup(id)
	if !ok {
		return 0, fmt.Errorf("%w: object %s is missing from the pack", ErrClosureViolation, id)
	}
	return rec.Position, nil
}

// At returns a pointer to the record at position pos so callers can update
// NameHash/Referenced in place.
func (t *Table) At(pos uint32) *Record {
	return &t.records[pos]
}
