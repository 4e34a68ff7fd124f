package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document kinds accepted on the command line
const (
	KindEntity = "entity"
	KindMap    = "map"
)

// ValidateKind validates a document kind string
func ValidateKind(k string) error {
	validKinds := []string{"entity", "entities", "map", "maps"}
	if Contains(validKinds, strings.ToLower(k)) {
		return nil
	}
	return fmt.Errorf("invalid kind: %s (must be: entity or map)", k)
}

// NormalizeKind converts kind variants to standard form
func NormalizeKind(k string) string {
	switch strings.ToLower(k) {
	case "map", "maps":
		return KindMap
	default:
		return KindEntity
	}
}

// ValidateDirectoryPath validates that a directory path exists
func ValidateDirectoryPath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("error accessing directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	if Contains(validFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
