// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package packbitmap

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Progress reports build phase transitions. The CLI's --quiet/--progress
// flags (spec §6) swap in a no-op or a writer-backed implementation; the
// builder itself never blocks on it and never depends on a specific
// logging library — see DESIGN.md for why this one ambient concern stays
// on the standard library.
type Progress interface {
	Phase(name string)
	Count(done, total int)
}

// NoopProgress discards every report. It is the Builder's default.
type NoopProgress struct{}

func (NoopProgress) Phase(string)   {}
func (NoopProgress) Count(int, int) {}

// WriterProgress reports phases and counts to an io.Writer, formatting
// counts with humanize's thousands separators the way a CLI's --progress
// flag would.
type WriterProgress struct {
	W     io.Writer
	phase string
}

func (p *WriterProgress) Phase(name string) {
	p.phase = name
	fmt.Fprintf(p.W, "%s...\n", name)
}

func (p *WriterProgress) Count(done, total int) {
	if total <= 0 {
		fmt.Fprintf(p.W, "%s: %s objects\n", p.phase, humanize.Comma(int64(done)))
		return
	}
	fmt.Fprintf(p.W, "%s: %s / %s\n", p.phase, humanize.Comma(int64(done)), humanize.Comma(int64(total)))
}
