// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package selector implements the Commit Selector (spec §4.3): it
// chooses a sparse subset of a linearized commit history whose gaps
// widen with depth, preferring merge commits within each gap.
package selector

import "github.com/packbitmap/index/object"

// Region boundaries and skip bounds from the density policy (spec §4.3;
// confirmed against original_source/pack-bitmap-write.c's
// next_commit_index, which uses the same constants).
const (
	MustRegion = 100   // i <= MustRegion: select every commit
	RampRegion = 20000 // MustRegion < i <= RampRegion: skip grows with i
	MinSkip    = 100   // the ramp region's largest skip and the deep region's smallest
	MaxSkip    = 5000  // the skip never exceeds this in the deep region
)

// ParentCounter is the slice of Store the Selector needs: how many
// parents a commit has, to detect merges.
type ParentCounter interface {
	Parents(id object.ID) ([]object.ID, error)
}

// nextSkip computes next_commit_index(i): how many commits to skip after
// selecting the one at index i.
func nextSkip(i int) int {
	if i <= MustRegion {
		return 0
	}
	if i <= RampRegion {
		offset := i - MustRegion
		if offset < MinSkip {
			return offset
		}
		return MinSkip
	}

	offset := i - RampRegion
	next := offset
	if next > MaxSkip {
		next = MaxSkip
	}
	if next < MinSkip {
		next = MinSkip
	}
	return next
}

// Select chooses the subset of commits from the ordered slice commits is
// input; order is whatever the revision walker produced and is treated as
// opaque (spec §4.3). maxBitmaps <= 0 means uncapped.
func Select(commits []object.ID, parents ParentCounter, maxBitmaps int) ([]object.ID, error) {
	total := len(commits)
	if total < 100 {
		if maxBitmaps > 0 && total > maxBitmaps {
			total = maxBitmaps
		}
		selected := make([]object.ID, total)
		copy(selected, commits)
		return selected, nil
	}

	var selected []object.ID
	for i := 0; i < total; {
		skip := nextSkip(i)
		if i+skip >= total {
			break
		}
		if maxBitmaps > 0 && len(selected) >= maxBitmaps {
			selected = selected[:maxBitmaps]
			break
		}

		if skip == 0 {
			selected = append(selected, commits[i])
		} else {
			chosen := commits[i+skip]
			for j := 0; j <= skip; j++ {
				candidate := commits[i+j]
				isMerge, err := isMergeCommit(candidate, parents)
				if err != nil {
					return nil, err
				}
				if isMerge {
					chosen = candidate
				}
			}
			selected = append(selected, chosen)
		}

		i += skip + 1
	}

	if maxBitmaps > 0 && len(selected) > maxBitmaps {
		selected = selected[:maxBitmaps]
	}
	return selected, nil
}

func isMergeCommit(id object.ID, parents ParentCounter) (bool, error) {
	ps, err := parents.Parents(id)
	if err != nil {
		return false, err
	}
	return len(ps) >= 2, nil
}
