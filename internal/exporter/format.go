// Package exporter serializes aligned and windowed datasets to flat
// files in a fixed set of formats.
package exporter

import (
	"fmt"
	"strings"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
)

// Format identifies a supported export format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// SupportedFormats lists every accepted format identifier.
func SupportedFormats() []Format {
	return []Format{FormatCSV, FormatXLSX, FormatJSON, FormatMsgpack}
}

// ParseFormat resolves a format identifier, case-insensitively. Unknown
// identifiers fail with a format error.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, supported := range SupportedFormats() {
		if f == supported {
			return f, nil
		}
	}
	return "", apperrors.NewFormatError(fmt.Sprintf("unsupported export format: %q (supported: csv, xlsx, json, msgpack)", s))
}

// Extension returns the file extension for the format, without a dot.
func (f Format) Extension() string {
	return string(f)
}
