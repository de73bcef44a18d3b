//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EmptyStateText is what the list shows when the manifest has no files
const EmptyStateText = "No files available."

// fixtureFile is one [[files]] entry of a test manifest
type fixtureFile struct {
	Name   string
	Device string
	Path   string
	Status string
}

// Available builds an available file on device cam-1
func Available(name string) fixtureFile {
	return fixtureFile{Name: name, Device: "cam-1", Path: "/dcim/" + name, Status: "available"}
}

// Scheduled builds a file that is already queued for download
func Scheduled(name string) fixtureFile {
	return fixtureFile{Name: name, Device: "cam-1", Path: "/dcim/" + name, Status: "scheduled"}
}

// CreateTestWorkspace creates an isolated directory used as $HOME and working directory
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "dlpick-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = dir
	return dir, nil
}

// ConfigPath returns the config file the app reads inside the workspace
func (tf *TUITestFramework) ConfigPath() string {
	return filepath.Join(tf.workspace, "config.toml")
}

// WriteConfig writes the app config for this workspace
func (tf *TUITestFramework) WriteConfig(content string) error {
	return os.WriteFile(tf.ConfigPath(), []byte(content), 0644)
}

// CreateManifest writes a TOML manifest into the workspace and returns its path
func (tf *TUITestFramework) CreateManifest(name string, files ...fixtureFile) (string, error) {
	var sb strings.Builder
	for _, f := range files {
		fmt.Fprintf(&sb, "[[files]]\nname = %q\ndevice = %q\npath = %q\nstatus = %q\n\n",
			f.Name, f.Device, f.Path, f.Status)
	}

	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// SpoolFiles lists the committed batch files in dir
func SpoolFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
