// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/trace.go
// Summary: Optional tty traffic tracer for protocol debugging.
// Usage: Enabled by Options.TraceTty; writes annotated hex/text dumps
//        of both directions to the process log.

package term

import (
	"fmt"
	"log"
	"strings"
)

type tracer struct {
	seq int
}

func newTracer() *tracer { return &tracer{} }

func (tr *tracer) ttyIn(data []byte)  { tr.dump("<-", data) }
func (tr *tracer) ttyOut(data []byte) { tr.dump("->", data) }

func (tr *tracer) dump(dir string, data []byte) {
	tr.seq++
	log.Printf("trace %s #%d %d bytes: %s", dir, tr.seq, len(data), renderBytes(data))
}

// renderBytes shows printable runs verbatim and controls in caret or
// hex form.
func renderBytes(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		switch {
		case b == 0x1b:
			sb.WriteString("ESC ")
		case b < 0x20:
			fmt.Fprintf(&sb, "^%c ", b+0x40)
		case b == 0x7f:
			sb.WriteString("^? ")
		case b < 0x80:
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, "\\x%02x", b)
		}
	}
	return sb.String()
}
