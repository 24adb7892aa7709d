package config

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
)

// DataDir returns the default directory for database files:
// %LOCALAPPDATA%\docs-mcp on Windows, $XDG_DATA_HOME/docs-mcp elsewhere
// ($HOME/.local/share/docs-mcp when XDG_DATA_HOME is unset).
func DataDir() string {
	return dataDir(runtime.GOOS)
}

func dataDir(goos string) string {
	home, _ := os.UserHomeDir()

	var base string
	if goos == "windows" {
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Local")
		}
	} else {
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			base = filepath.Join(home, ".local", "share")
		}
	}
	return filepath.Join(base, "docs-mcp")
}

// ResolveDBPath returns arg when it is absolute or exists, otherwise the file
// of that name in DataDir when that exists, otherwise arg unchanged.
func ResolveDBPath(arg string) string {
	if filepath.IsAbs(arg) || exists(arg) {
		return arg
	}
	candidate := filepath.Join(DataDir(), arg)
	if exists(candidate) {
		return candidate
	}
	return arg
}

// ListDatabases returns the *.db files in DataDir, sorted.
func ListDatabases() ([]string, error) {
	dir := DataDir()
	if !exists(dir) {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.db"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
