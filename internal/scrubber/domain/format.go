package domain

import (
	"path/filepath"
	"strings"
)

// supportedExtensions is the raster-format allow-list. Anything else is
// rejected before any decode attempt.
var supportedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"tiff": {},
	"bmp":  {},
}

// SupportedExtensions returns the allow-list in a stable order for status
// reporting.
func SupportedExtensions() []string {
	return []string{"jpg", "jpeg", "png", "tiff", "bmp"}
}

// NormalizeExtension lowercases and strips the leading dot from a file name's
// extension. Returns "" when the name carries none.
func NormalizeExtension(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return strings.TrimPrefix(ext, ".")
}

// IsSupportedExtension reports whether ext is in the allow-list.
func IsSupportedExtension(ext string) bool {
	_, ok := supportedExtensions[ext]
	return ok
}
