package host

import (
	"path/filepath"
	"strings"
)

var extensionParsers = map[string]string{
	".html":   "html",
	".htm":    "html",
	".js":     "babel",
	".jsx":    "babel",
	".mjs":    "babel",
	".cjs":    "babel",
	".css":    "css",
	".ts":     "typescript",
	".tsx":    "typescript",
	".mts":    "typescript",
	".cts":    "typescript",
	".vue":    "vue",
	".svelte": "svelte",
}

// InferParser returns the parser name for a file path, or "" when the
// extension is unknown
func InferParser(path string) string {
	return extensionParsers[strings.ToLower(filepath.Ext(path))]
}

// Supported reports whether a path has an extension with a known parser
func Supported(path string) bool {
	return InferParser(path) != ""
}
