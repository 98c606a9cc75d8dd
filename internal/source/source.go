// Package source loads manifests and zobjs from disk.
package source

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// File is a loaded input with the name used in diagnostics.
type File struct {
	Name string
	Data []byte
}

// ReadManifest reads a manifest and normalises it to UTF-8. A UTF-16 or
// UTF-8 byte order mark is honoured and removed.
func ReadManifest(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("source: read %s: %w", path, err)
	}
	text, err := DecodeText(raw)
	if err != nil {
		return File{}, fmt.Errorf("source: decode %s: %w", path, err)
	}
	return File{Name: filepath.Base(path), Data: text}, nil
}

// ReadZobj reads a zobj unchanged.
func ReadZobj(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("source: read %s: %w", path, err)
	}
	return File{Name: filepath.Base(path), Data: raw}, nil
}

// DecodeText converts BOM-prefixed UTF-16 or UTF-8 text to plain UTF-8.
// Text without a BOM is returned as is.
func DecodeText(raw []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	return out, err
}

// WriteZobj writes data to path, creating parent directories.
func WriteZobj(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("source: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("source: write %s: %w", path, err)
	}
	return nil
}
