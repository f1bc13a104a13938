package util

import (
	"errors"
	"strings"
)

var errBadFileName = errors.New("invalid file name")

// SanitizeFileName makes an uploaded file name safe to embed in a storage
// key: traversal sequences are rejected, path separators flattened.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errBadFileName
	}
	s := strings.TrimSpace(name)
	for _, sep := range []string{"/", "\\"} {
		s = strings.ReplaceAll(s, sep, "_")
	}
	if s == "" {
		return "", errBadFileName
	}
	return s, nil
}
