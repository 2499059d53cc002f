// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load and save logic for the config store.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

func loadLocked() error {
	path, err := configPath()
	if err != nil {
		log.Printf("config: failed to resolve config path: %v", err)
		current = make(Config)
		applyDefaults(current)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("config: failed to read %s: %v", path, readErr)
		cfg = make(Config)
	}
	applyDefaults(cfg)

	if !exists && readErr == nil {
		// First run: materialize the defaults so the user has a file
		// to edit.
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("config: failed to write default config: %v", err)
			readErr = err
		}
	}

	current = cfg
	return readErr
}

func saveLocked() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return writeConfig(path, current)
}

// readConfig parses a config file; exists reports whether the file was
// present at all.
func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(Config), false, nil
	}
	if err != nil {
		return make(Config), true, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return make(Config), true, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg == nil {
		cfg = make(Config)
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp, path)
}
