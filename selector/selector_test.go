package selector

import (
	"testing"

	"github.com/packbitmap/index/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearParents reports every commit as having no parents, so none of
// them are merges.
type linearParents struct{}

func (linearParents) Parents(object.ID) ([]object.ID, error) { return nil, nil }

func makeCommits(n int) []object.ID {
	commits := make([]object.ID, n)
	for i := range commits {
		commits[i][0] = byte(i)
		commits[i][1] = byte(i >> 8)
		commits[i][2] = byte(i >> 16)
	}
	return commits
}

func TestSelectUnder100SelectsEvery(t *testing.T) {
	commits := makeCommits(10)
	selected, err := Select(commits, linearParents{}, 0)
	require.NoError(t, err)
	assert.Equal(t, commits, selected)
}

func TestSelectMustRegionSelectsEveryCommit(t *testing.T) {
	commits := makeCommits(101)
	selected, err := Select(commits, linearParents{}, 0)
	require.NoError(t, err)
	assert.Equal(t, commits, selected, "every commit at i<=MustRegion must be selected")
}

// Past the must region the gaps between selected commits grow, so a
// 25,000-commit linear history selects far fewer than it contains.
func TestSelectLinear25000ThinsOutPastMustRegion(t *testing.T) {
	commits := makeCommits(25000)
	selected, err := Select(commits, linearParents{}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, selected)

	assert.Equal(t, commits[0], selected[0])
	assert.Less(t, len(selected), 25000)

	// the must-region prefix is selected densely before gaps open up
	for i := 0; i <= MustRegion; i++ {
		assert.Equal(t, commits[i], selected[i])
	}
}

func TestSelectMaxBitmapsCaps(t *testing.T) {
	commits := makeCommits(25000)
	selected, err := Select(commits, linearParents{}, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, len(selected))
}

// mergeAt reports commits[index] as a 2-parent merge; every other commit
// has a single parent.
type mergeAt struct {
	commits []object.ID
	index   int
}

func (m mergeAt) Parents(id object.ID) ([]object.ID, error) {
	if id == m.commits[m.index] {
		return []object.ID{m.commits[0], m.commits[0]}, nil
	}
	return []object.ID{m.commits[0]}, nil
}

// A merge commit inside a selection window is chosen over the window's
// last commit, even though it isn't last.
func TestSelectPrefersMergeWithinWindow(t *testing.T) {
	commits := makeCommits(20300)
	mergeIndex := 103 // first ramp-region window starts at i=101
	parents := mergeAt{commits: commits, index: mergeIndex}

	selected, err := Select(commits, parents, 0)
	require.NoError(t, err)

	found := false
	for _, s := range selected {
		if s == commits[mergeIndex] {
			found = true
		}
	}
	assert.True(t, found, "expected the merge commit to be selected over the window's last commit")
}

func TestNextSkipRegions(t *testing.T) {
	assert.Equal(t, 0, nextSkip(0))
	assert.Equal(t, 0, nextSkip(100))
	assert.Equal(t, 1, nextSkip(101))
	assert.Equal(t, MinSkip, nextSkip(RampRegion))
	assert.Equal(t, MinSkip, nextSkip(RampRegion+1))
	assert.Equal(t, MaxSkip, nextSkip(RampRegion+MaxSkip+1))
}
