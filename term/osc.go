// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/osc.go
// Summary: Operating System Command handling: window title and icon.

package term

import (
	"log"
	"strconv"
	"strings"
)

// OscDispatch handles a terminated OSC string. The first argument
// selects the command; a malformed selector is logged and dropped.
func (t *Terminal) OscDispatch(args []string) {
	if len(args) == 0 {
		return
	}
	cmd, err := strconv.Atoi(args[0])
	if err != nil {
		log.Printf("term: bad osc selector %q", args[0])
		return
	}
	payload := strings.Join(args[1:], ";")
	switch cmd {
	case 0:
		t.setTitle(payload)
		t.setIcon(payload)
	case 1:
		t.setIcon(payload)
	case 2:
		t.setTitle(payload)
	default:
		t.logUnhandled("OSC %d", cmd)
	}
}

func (t *Terminal) setTitle(s string) {
	if t.TitleChanged != nil {
		t.TitleChanged(s)
	}
}

func (t *Terminal) setIcon(s string) {
	if t.IconChanged != nil {
		t.IconChanged(s)
	}
}
