package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves where the analyzer reads inputs and writes reports and
// logs. All paths are absolute after construction.
type Paths struct {
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// NewPaths builds absolute paths from the configured directories,
// resolving relative entries against the current working directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(wd, p)
	}

	return &Paths{
		DataDir:    abs(cfg.DataDir),
		ReportsDir: abs(cfg.ReportsDir),
		LogsDir:    abs(cfg.LogsDir),
	}, nil
}

// EnsureDirectories creates the data, reports and logs directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the full path for a report file.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
