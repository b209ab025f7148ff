// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Command packbitmap-index builds a reachability bitmap index for a
// packfile-shaped object graph (spec §6's CLI surface). The real
// front-end this spec describes parses packfile flags and drives the
// builder against an actual object store; since the object store itself
// is out of scope (spec §1), this command reads its graph from a small
// JSON description instead (see fixture.go) and wires it into the same
// packbitmap.Builder a production front-end would use.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/packbitmap/index"
	"github.com/packbitmap/index/walk"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "packbitmap-index:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		quiet      bool
		showProg   bool
		hashCache  bool
		maxBitmaps int
	)

	cmd := &cobra.Command{
		Use:   "packbitmap-index [graph.json]",
		Short: "Build a reachability bitmap index for a packed object graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveGraphPath(args)
			if err != nil {
				return err
			}

			fx, heads, err := loadGraph(path)
			if err != nil {
				return err
			}

			var progress packbitmap.Progress = packbitmap.NoopProgress{}
			if showProg && !quiet {
				progress = &packbitmap.WriterProgress{W: os.Stderr}
			}

			walker := walk.NewGraphWalker(fx)
			builder := packbitmap.New(fx, walker,
				packbitmap.WithMaxBitmaps(maxBitmaps),
				packbitmap.WithHashCache(hashCache),
				packbitmap.WithProgress(progress),
			)

			dir := filepath.Dir(path)
			basename := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			return builder.Build(heads, dir, basename)
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress output")
	cmd.Flags().BoolVar(&showProg, "progress", false, "show a progress meter")
	cmd.Flags().BoolVar(&hashCache, "hash-cache", false, "write the optional hash-cache table")
	cmd.Flags().IntVar(&maxBitmaps, "max", 0, "cap the number of selected, bitmapped commits (0 = uncapped)")
	return cmd
}

// resolveGraphPath returns the positional graph-file argument, or (spec
// §6: "selects the largest packfile when absent") the largest *.json file
// in the current directory when none is given.
func resolveGraphPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	entries, err := os.ReadDir(".")
	if err != nil {
		return "", fmt.Errorf("no graph file given and cannot scan current directory: %w", err)
	}

	var largest string
	var largestSize int64
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() > largestSize {
			largest = entry.Name()
			largestSize = info.Size()
		}
	}
	if largest == "" {
		return "", fmt.Errorf("no graph file given and none found in current directory")
	}
	return largest, nil
}
