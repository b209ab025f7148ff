package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func id(b byte) ID {
	var i ID
	i[0] = b
	return i
}

func TestTableAddAndLookup(t *testing.T) {
	tbl := NewTable(4)

	rec, err := tbl.Add(id(1), KindCommit)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), rec.Position)

	rec2, err := tbl.Add(id(2), KindTree)
	assert.NoError(t, err)
	assert.Equal(t, uint32(1), rec2.Position)

	assert.Equal(t, 2, tbl.Len())

	found, ok := tbl.Lookup(id(1))
	assert.True(t, ok)
	assert.Equal(t, KindCommit, found.Kind)

	_, ok = tbl.Lookup(id(99))
	assert.False(t, ok)
}

func TestTableDuplicateInsertIsFatal(t *testing.T) {
	tbl := NewTable(1)
	_, err := tbl.Add(id(1), KindBlob)
	assert.NoError(t, err)

	_, err = tbl.Add(id(1), KindBlob)
	assert.ErrorIs(t, err, ErrDuplicateObject)
}

func TestTablePositionsAreDenseAndStable(t *testing.T) {
	tbl := NewTable(3)
	var ids []ID
	for i := byte(1); i <= 3; i++ {
		ids = append(ids, id(i))
		_, err := tbl.Add(id(i), KindBlob)
		assert.NoError(t, err)
	}

	for i, want := range ids {
		rec, ok := tbl.Lookup(want)
		assert.True(t, ok)
		assert.Equal(t, uint32(i), rec.Position)
	}
}

func TestTablePositionMissingIsClosureViolation(t *testing.T) {
	tbl := NewTable(1)
	_, err := tbl.Position(id(7))
	assert.ErrorIs(t, err, ErrClosureViolation)
}
