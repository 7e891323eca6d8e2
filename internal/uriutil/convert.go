// Package uriutil converts between file:// URIs sent by editors and file
// system paths, which config discovery and parser inference need.
package uriutil

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// IsFileURI reports whether uri uses the file scheme
func IsFileURI(uri string) bool {
	return strings.HasPrefix(strings.ToLower(uri), "file:")
}

// PathToURI converts a file system path to a file:// URI. Relative paths
// are made absolute first; Windows drive paths get three slashes
// (file:///C:/proj) and UNC paths keep their server as the host
// (file://server/share).
func PathToURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if runtime.GOOS == "windows" && strings.HasPrefix(abs, `\\`) {
		return "file://" + escapeSegments(filepath.ToSlash(strings.TrimPrefix(abs, `\\`)))
	}

	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	return "file://" + escapeSegments(abs)
}

// URIToPath converts a file:// URI to a file system path. Anything that is
// not a parseable file URI is treated leniently as a path with a prefix.
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return fallback(uri)
	}

	if parsed.Host != "" && parsed.Host != "localhost" {
		if runtime.GOOS == "windows" {
			return `\\` + parsed.Host + filepath.FromSlash(parsed.Path)
		}
		return parsed.Host + parsed.Path
	}

	return filepath.FromSlash(stripDriveSlash(parsed.Path))
}

func escapeSegments(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// stripDriveSlash turns /C:/proj into C:/proj
func stripDriveSlash(path string) string {
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		return path[1:]
	}
	return path
}

func fallback(uri string) string {
	path := strings.TrimPrefix(uri, "file://")
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	return filepath.FromSlash(stripDriveSlash(path))
}
