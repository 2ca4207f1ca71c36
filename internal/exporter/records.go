package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteJSON writes a dataset as a record-oriented JSON array with
// ISO-8601 timestamps.
func WriteJSON(path string, records interface{}, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	logger.Info("wrote JSON export", slog.String("path", path))
	return nil
}

// WriteMsgpack writes a dataset as a binary msgpack record stream.
func WriteMsgpack(path string, records interface{}, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := msgpack.NewEncoder(file).Encode(records); err != nil {
		return fmt.Errorf("failed to encode msgpack: %w", err)
	}

	logger.Info("wrote msgpack export", slog.String("path", path))
	return nil
}
