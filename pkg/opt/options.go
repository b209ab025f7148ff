// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package opt provides a small functional-options helper shared by the
// packages in this module that need configurable defaults.
package opt

// --------------------------- Configuration ----------------------------

// Configure initializes and creates a new options structure. If T has an
// init() method it is called first to set defaults, then every opt is
// applied in order.
func Configure[T any](opts ...func(*T)) T {
	options := new(T)

	var x any = options
	if v, ok := x.(interface {
		init()
	}); ok {
		v.init()
	}

	for _, opt := range opts {
		opt(options)
	}
	return *options
}
