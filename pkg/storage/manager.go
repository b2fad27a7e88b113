package storage

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Manager handles the output directory and writes downloaded images into it
type Manager struct {
	fs        afero.Fs
	outputDir string
}

// NewManager creates a storage manager rooted at outputDir.
// Nothing is created until EnsureDir is called.
func NewManager(fs afero.Fs, outputDir string) *Manager {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &Manager{
		fs:        fs,
		outputDir: outputDir,
	}
}

// EnsureDir creates the output directory and any missing parents.
// An existing directory is not an error.
func (m *Manager) EnsureDir() error {
	if err := m.fs.MkdirAll(m.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", m.outputDir, err)
	}

	info, err := m.fs.Stat(m.outputDir)
	if err != nil {
		return fmt.Errorf("failed to stat output directory %s: %w", m.outputDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", m.outputDir)
	}

	return nil
}

// Save writes data to filename inside the output directory, replacing any
// previous file of the same name. The content is staged in a temporary file
// and renamed so the destination is never left half written.
func (m *Manager) Save(filename string, data []byte) (string, error) {
	path := m.Path(filename)
	tempFile := path + ".tmp"

	if err := afero.WriteFile(m.fs, tempFile, data, 0644); err != nil {
		_ = m.fs.Remove(tempFile)
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := m.fs.Rename(tempFile, path); err != nil {
		_ = m.fs.Remove(tempFile)
		return "", fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return path, nil
}

// Path returns the destination path for filename
func (m *Manager) Path(filename string) string {
	return filepath.Join(m.outputDir, filename)
}

// GetOutputDir returns the output directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}
