// Package taskdir provides constants and utilities for the per-user
// .taskdeck directory structure.
package taskdir

import (
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the taskdeck state directory.
	Dir = ".taskdeck"

	// DefaultTasksFile is the default tasks file name (inside .taskdeck).
	DefaultTasksFile = "tasks.json"

	// DefaultConfigFile is the default config file name (inside .taskdeck).
	DefaultConfigFile = "taskdeck.toml"
)

// TasksPath returns the full path to the tasks file within a base directory.
func TasksPath(baseDir string) string {
	return joinPath(baseDir, DefaultTasksFile)
}

// ConfigPath returns the full path to the config file within a base directory.
func ConfigPath(baseDir string) string {
	return joinPath(baseDir, DefaultConfigFile)
}

// DirPath returns the full path to the .taskdeck directory within a base directory.
func DirPath(baseDir string) string {
	if baseDir == "" || baseDir == "." {
		return Dir
	}
	return filepath.Join(baseDir, Dir)
}

// HomeDir returns the base directory for per-user state, falling back
// to the current directory when the home directory cannot be resolved.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func joinPath(baseDir, file string) string {
	return filepath.Join(DirPath(baseDir), file)
}
