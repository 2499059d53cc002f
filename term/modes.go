// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/modes.go
// Summary: Terminal mode bitset.
// Usage: The interpreter flips modes via CSI h/l; the input encoder and
//        draw path read them.

package term

import "strings"

// Mode is one switchable terminal behavior.
type Mode uint32

const (
	ModeAutoWrap Mode = 1 << iota
	ModeShowCursor
	ModeAutoRepeat
	ModeAltSendsEsc
	ModeAppCursor
	ModeAppKeypad
	ModeReverse
	ModeOrigin
	ModeInsert
	ModeEcho
	ModeCrOnLf
	ModeKbdLock
	ModeBracketedPaste
	ModeFocus
	ModeMeta8Bit
	ModeDeleteSendsDel
	ModeMousePressRelease
	ModeMouseDrag
	ModeMouseMotion
	ModeMouseSelect
	ModeMouseFormatSGR
)

var modeNames = map[Mode]string{
	ModeAutoWrap:          "AUTO_WRAP",
	ModeShowCursor:        "SHOW_CURSOR",
	ModeAutoRepeat:        "AUTO_REPEAT",
	ModeAltSendsEsc:       "ALT_SENDS_ESC",
	ModeAppCursor:         "APPCURSOR",
	ModeAppKeypad:         "APPKEYPAD",
	ModeReverse:           "REVERSE",
	ModeOrigin:            "ORIGIN",
	ModeInsert:            "INSERT",
	ModeEcho:              "ECHO",
	ModeCrOnLf:            "CR_ON_LF",
	ModeKbdLock:           "KBDLOCK",
	ModeBracketedPaste:    "BRACKETED_PASTE",
	ModeFocus:             "FOCUS",
	ModeMeta8Bit:          "META_8BIT",
	ModeDeleteSendsDel:    "DELETE_SENDS_DEL",
	ModeMousePressRelease: "MOUSE_PRESS_RELEASE",
	ModeMouseDrag:         "MOUSE_DRAG",
	ModeMouseMotion:       "MOUSE_MOTION",
	ModeMouseSelect:       "MOUSE_SELECT",
	ModeMouseFormatSGR:    "MOUSE_FORMAT_SGR",
}

// ModeSet holds the active modes.
type ModeSet uint32

// Has reports whether every given mode is set.
func (s ModeSet) Has(m Mode) bool { return uint32(s)&uint32(m) == uint32(m) }

// Set switches a mode on or off.
func (s *ModeSet) Set(m Mode, on bool) {
	if on {
		*s |= ModeSet(m)
	} else {
		*s &^= ModeSet(m)
	}
}

// String lists the set modes for diagnostics.
func (s ModeSet) String() string {
	var parts []string
	for m, name := range modeNames {
		if s.Has(m) {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	// Map order is unstable; sort for deterministic output.
	for i := 1; i < len(parts); i++ {
		for j := i; j > 0 && parts[j] < parts[j-1]; j-- {
			parts[j], parts[j-1] = parts[j-1], parts[j]
		}
	}
	return strings.Join(parts, "|")
}

// defaultModes is the reset state.
const defaultModes = ModeSet(ModeAutoWrap | ModeShowCursor | ModeAutoRepeat | ModeDeleteSendsDel | ModeAltSendsEsc)
