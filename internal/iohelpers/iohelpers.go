package iohelpers

import (
	"fmt"
	"os"
	"path/filepath"
)

func ReadFile(filePath string) ([]byte, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %q: %w", filePath, err)
	}
	return raw, nil
}

// WriteFile writes data to filePath and syncs both the file and its parent
// directory before returning. Existing files are replaced; the decision
// whether replacing is allowed belongs to the caller and is made before any
// key material exists. A failed write removes the partial file.
func WriteFile(filePath string, isPrivate bool, data []byte) error {
	mode := os.FileMode(0o666)
	if isPrivate {
		mode = os.FileMode(0o600)
	}

	dirPath := filepath.Dir(filePath)
	d, err := os.OpenFile(dirPath, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open directory: %q: %w", dirPath, err)
	}
	defer d.Close()

	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file: %q: %w", filePath, err)
	}

	needClose := true
	needRemove := true
	defer func() {
		if needClose {
			_ = f.Close()
		}
		if needRemove {
			_ = os.Remove(filePath)
		}
	}()

	_, err = f.Write(data)
	if err != nil {
		return fmt.Errorf("I/O error: %q: %w", filePath, err)
	}

	err = f.Sync()
	if err != nil {
		return fmt.Errorf("I/O error: %q: %w", filePath, err)
	}

	err = d.Sync()
	if err != nil {
		return fmt.Errorf("I/O error: %q: %w", filePath, err)
	}

	needClose = false
	err = f.Close()
	if err != nil {
		return fmt.Errorf("failed to close file: %q: %w", filePath, err)
	}

	needRemove = false
	return nil
}
