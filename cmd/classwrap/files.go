package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"bennypowers.dev/classwrap/internal/host"
	"github.com/bmatcuk/doublestar/v4"
)

// skipDirs are never descended into
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// collectFiles expands paths into the files to format. Files named
// explicitly are always included; directories contribute the files with a
// known parser. Paths matching an ignore glob are skipped either way.
func collectFiles(paths, ignore []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}
	add := func(path string) {
		if !seen[path] && !ignored(path, ignore) {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("accessing %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && (skipDirs[d.Name()] || ignored(path, ignore)) {
					return filepath.SkipDir
				}
				return nil
			}
			if host.Supported(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", root, err)
		}
	}
	return files, nil
}

func ignored(path string, ignore []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, g := range ignore {
		if ok, err := doublestar.Match(g, slashed); err == nil && ok {
			return true
		}
	}
	return false
}
