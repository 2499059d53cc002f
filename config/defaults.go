// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the texelterm configuration file.

package config

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("terminal", Section{
		"termName":            "xterm-256color",
		"scrollBackHistory":   10000,
		"unlimitedScrollBack": false,
		"scrollOnTtyOutput":   false,
		"scrollOnKeyPress":    true,
		"scrollOnPaste":       true,
		"autoRepeat":          true,
		"wordDelimiters":      " \t",
		"syncTty":             true,
		"traceTty":            false,
	})
	cfg.RegisterDefaults("colors", Section{
		"foreground": "#c0c0c0",
		"background": "#000000",
	})
	cfg.RegisterDefaults("search", Section{
		"enabled": false,
	})
}
