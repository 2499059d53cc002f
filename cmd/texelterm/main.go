// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelterm/main.go
// Summary: Entry point: flags, config, sanity checks and the run loop.

package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/framegrace/texelterm/config"
)

func main() {
	shell := flag.String("e", "", "command to run (defaults to $SHELL)")
	trace := flag.Bool("trace", false, "dump parsed tty traffic to the log")
	logFile := flag.String("log", "", "append diagnostics to this file")
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("texelterm: open log: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("texelterm: stdin is not a terminal")
	}

	command := *shell
	if command == "" {
		command = os.Getenv("SHELL")
	}
	if command == "" {
		command = "/bin/sh"
	}

	cfg := config.Get()
	if err := config.Err(); err != nil {
		log.Printf("texelterm: config: %v", err)
	}

	if err := run(cfg, command, *trace); err != nil {
		log.Fatalf("texelterm: %v", err)
	}
}
