package store

import (
	"github.com/kelindar/xxrand"
	"github.com/packbitmap/index/object"
)

// GenerateRandomDAG builds a synthetic, closed commit history of n
// commits, each pointing at a freshly generated tree/blob pair, with an
// occasional merge back to an earlier commit. It mirrors the corpus's own
// use of xxrand to generate synthetic load (examples/cache/main.go) and
// exists so builder and selector tests can exercise a history shape wider
// than a hand-built fixture without a real packfile.
//
// The returned head is the most recently generated commit.
func GenerateRandomDAG(n int) (fx *Fixture, head object.ID) {
	fx = NewFixture()
	if n <= 0 {
		return fx, object.ID{}
	}

	commits := make([]object.ID, 0, n)
	for i := 0; i < n; i++ {
		blob := syntheticID(0x10, i)
		fx.AddBlob(blob)

		tree := syntheticID(0x20, i)
		fx.AddTree(tree, Entry{ID: blob, Kind: object.KindBlob, Name: "f"})

		commit := syntheticID(0x30, i)
		parents := make([]object.ID, 0, 2)
		if i > 0 {
			parents = append(parents, commits[i-1])
		}
		// every 37th commit (past the first) merges back to a random
		// earlier ancestor, the same "occasional merge" shape a linear
		// mainline with feature branches produces.
		if i > 1 && i%37 == 0 {
			back := xxrand.Intn(i - 1)
			if commits[back] != parents[0] {
				parents = append(parents, commits[back])
			}
		}

		fx.AddCommit(commit, tree, parents...)
		commits = append(commits, commit)
	}

	return fx, commits[len(commits)-1]
}

// syntheticID derives a deterministic, collision-free identifier from a
// tag byte and an index, so object identifiers do not depend on the random
// merge choices.
func syntheticID(tag byte, i int) object.ID {
	var id object.ID
	id[0] = tag
	id[1] = byte(i)
	id[2] = byte(i >> 8)
	id[3] = byte(i >> 16)
	return id
}
