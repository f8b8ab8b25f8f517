package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blockforge/cmd/blockforge/blockdef"
	"blockforge/cmd/blockforge/blockdefyaml"
)

// appName is the single source of truth for the application name.
// All derived identifiers (env vars, config paths, error messages) are computed from it.
const appName = "blockforge"

// Env var names derived from appName.
var (
	envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"
	envBlocks    = strings.ToUpper(appName) + "_BLOCKS"
)

// resolveConfigDir returns the base config directory for the application.
// Priority: $<APPNAME>_CONFIG_DIR > $XDG_CONFIG_HOME/<appName> > ~/.config/<appName>
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveBlockFiles returns all definition files to load.
// Order: configDir/blocks/* → $<APPNAME>_BLOCKS → flagFiles
// A missing blocks directory is skipped; explicitly provided paths are kept
// as-is so read errors name them.
func resolveBlockFiles(configDir string, flagFiles []string) ([]string, error) {
	files, err := globDefs(filepath.Join(configDir, "blocks"))
	if err != nil {
		return nil, err
	}
	files = append(files, splitColon(os.Getenv(envBlocks))...)
	files = append(files, flagFiles...)
	return files, nil
}

// resolveToolboxFile returns the toolbox document path: the flag when set,
// otherwise configDir/toolbox.json.
func resolveToolboxFile(configDir, flag string) string {
	if flag != "" {
		return flag
	}
	return filepath.Join(configDir, "toolbox.json")
}

// globDefs returns sorted *.json / *.yml / *.yaml files in dir.
// Returns nil without error if dir does not exist.
func globDefs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yml", ".yaml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// splitColon splits a colon-separated string, filtering empty parts.
func splitColon(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// project is a compiled set of definitions together with the editor they
// were registered into.
type project struct {
	configDir string
	files     []string
	editor    *blockdef.MemoryEditor
	registry  *blockdef.Registry
	schemas   []blockdef.Schema
}

// load resolves the definition files and compiles them.
func load(flagFiles []string) (*project, error) {
	dir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}
	files, err := resolveBlockFiles(dir, flagFiles)
	if err != nil {
		return nil, err
	}
	p, err := loadSources(files)
	if err != nil {
		return nil, err
	}
	p.configDir = dir
	return p, nil
}

// loadSources reads every definition file and registers the combined list
// with a fresh host editor.
func loadSources(files []string) (*project, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf(
			"no block definition files found: add *.json or *.yml files to ~/.config/%s/blocks/, "+
				"set $%s, or use --file",
			appName, envBlocks,
		)
	}

	raw, err := readDefinitions(files)
	if err != nil {
		return nil, err
	}

	editor := blockdef.NewHostEditor()
	reg := blockdef.NewRegistry(editor, logger)
	schemas, err := blockdef.NewEngine(reg).Build(raw)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded block definitions", "files", len(files), "blocks", len(schemas))
	return &project{files: files, editor: editor, registry: reg, schemas: schemas}, nil
}

// readDefinitions parses every file by extension and concatenates their
// definition lists. A single file is handed to the validator untouched.
func readDefinitions(files []string) (any, error) {
	all := []any{}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("definition file %s: %w", f, err)
		}
		v, err := parseDefinitions(f, data)
		if err != nil {
			return nil, fmt.Errorf("definition file %s: %w", f, err)
		}
		if len(files) == 1 {
			return v, nil
		}
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("definition file %s: block definitions must be an array", f)
		}
		all = append(all, items...)
	}
	return all, nil
}

func parseDefinitions(path string, data []byte) (any, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return blockdef.ParseJSON(data)
	}
	return blockdefyaml.Parse(data)
}
