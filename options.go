// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package packbitmap is the top-level entry point: it wires the Closure
// Loader, Name-Hint Collector, Commit Selector, Bitmap Builder, XOR
// Compressor and Serializer together in the order spec.md §2 describes,
// as an explicit, caller-owned value rather than the original's
// process-wide writer (Design Notes: "Global writer state").
package packbitmap

import "github.com/packbitmap/index/pkg/opt"

// BuildOptions configures a single Build call (spec §6's CLI surface,
// minus flag parsing which belongs to cmd/packbitmap-index).
type BuildOptions struct {
	MaxBitmaps int      // <= 0 means uncapped
	HashCache  bool     // write the optional hash-cache table
	Progress   Progress // defaults to NoopProgress
}

func (o *BuildOptions) init() {
	o.Progress = NoopProgress{}
}

// WithMaxBitmaps caps the number of selected, bitmapped commits.
func WithMaxBitmaps(n int) func(*BuildOptions) {
	return func(o *BuildOptions) { o.MaxBitmaps = n }
}

// WithHashCache enables the optional hash-cache table in the header's
// options bitfield.
func WithHashCache(enabled bool) func(*BuildOptions) {
	return func(o *BuildOptions) { o.HashCache = enabled }
}

// WithProgress installs a Progress reporter in place of the default
// no-op.
func WithProgress(p Progress) func(*BuildOptions) {
	return func(o *BuildOptions) { o.Progress = p }
}

// NewOptions assembles BuildOptions from functional options, applying
// defaults first (see (*BuildOptions).init).
func NewOptions(opts ...func(*BuildOptions)) BuildOptions {
	return opt.Configure(opts...)
}
