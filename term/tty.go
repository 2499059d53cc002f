// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/tty.go
// Summary: Pty plumbing: spawns the child over a pseudo-terminal, pumps
//          its output into the interpreter and propagates resizes.
// Notes: The read loop runs in its own goroutine. All terminal dispatch
//        is serialized through the Tty mutex; hosts must route their
//        own event dispatch through WithLock.

package term

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// Tty couples a terminal to a child process over a pseudo-terminal.
type Tty struct {
	term *Terminal
	cmd  *exec.Cmd
	file *os.File

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// StartShell launches command under a pty sized to the terminal. The
// terminal's WriteToPty and ResizePty hooks are wired before the read
// loop starts.
func StartShell(t *Terminal, command string, args ...string) (*Tty, error) {
	rows, cols := t.Size()
	cmd := exec.Command(command, args...)
	cmd.Env = append(os.Environ(), "TERM="+t.TermName())

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("tty: start %q: %w", command, err)
	}

	y := &Tty{
		term: t,
		cmd:  cmd,
		file: f,
		done: make(chan struct{}),
	}
	t.WriteToPty = y.write
	t.ResizePty = y.resize

	go y.readLoop()
	go y.waitChild()
	return y, nil
}

// WithLock runs fn with the dispatch lock held. Hosts use this to drive
// KeyPress, mouse and resize entry points from their event loop.
func (y *Tty) WithLock(fn func()) {
	y.mu.Lock()
	defer y.mu.Unlock()
	fn()
}

// Done is closed once the child has exited and the read loop drained.
func (y *Tty) Done() <-chan struct{} { return y.done }

// readLoop pumps child output into the interpreter until the pty closes.
func (y *Tty) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := y.file.Read(buf)
		if n > 0 {
			y.mu.Lock()
			y.term.ProcessTty(buf[:n])
			y.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// waitChild reaps the child and reports its exit code.
func (y *Tty) waitChild() {
	err := y.cmd.Wait()
	code := 0
	if exit, ok := err.(*exec.ExitError); ok {
		code = exit.ExitCode()
	} else if err != nil {
		log.Printf("tty: wait: %v", err)
		code = -1
	}
	y.mu.Lock()
	if !y.closed && y.term.ChildExited != nil {
		y.term.ChildExited(code)
	}
	y.mu.Unlock()
	close(y.done)
}

func (y *Tty) write(data []byte) {
	if _, err := y.file.Write(data); err != nil {
		log.Printf("tty: write: %v", err)
	}
}

func (y *Tty) resize(rows, cols int) {
	err := pty.Setsize(y.file, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		log.Printf("tty: resize: %v", err)
	}
}

// Close tears down the pty and the child. ChildExited does not fire for
// a close-initiated exit.
func (y *Tty) Close() error {
	y.mu.Lock()
	if y.closed {
		y.mu.Unlock()
		return nil
	}
	y.closed = true
	y.mu.Unlock()

	err := y.file.Close()
	if y.cmd.Process != nil {
		y.cmd.Process.Kill()
	}
	<-y.done
	return err
}
