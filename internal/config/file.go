package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/classwrap/internal/log"
	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileNames are the config files looked for in each directory, in order
var FileNames = []string{
	".prettierrc",
	".prettierrc.json",
	".prettierrc.json5",
	".prettierrc.yaml",
	".prettierrc.yml",
	".prettierrc.toml",
	"package.json",
}

// packageKey is the package.json field holding the config
const packageKey = "prettier"

// File is a loaded config file
type File struct {
	Path      string
	Options   map[string]any
	Overrides []Override
}

// Override applies options to the files matching its globs
type Override struct {
	Files        []string
	ExcludeFiles []string
	Options      map[string]any
}

// Find looks for a config file in dir and its parents. It returns nil when
// there is none.
func Find(dir string) (*File, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			f, err := Load(path)
			if err != nil {
				return nil, err
			}
			if f != nil {
				return f, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Load reads one config file. A package.json without a prettier field
// yields nil.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: config files are chosen by the user
	if err != nil {
		return nil, NewFileError(path, err)
	}

	m, err := decode(filepath.Base(path), data)
	if err != nil {
		return nil, NewFileError(path, err)
	}

	if filepath.Base(path) == "package.json" {
		field, ok := m[packageKey]
		if !ok {
			return nil, nil
		}
		obj, ok := field.(map[string]any)
		if !ok {
			log.Warn("Ignoring %s field in %s: shared config references are not supported", packageKey, path)
			return nil, nil
		}
		m = obj
	}

	f := &File{Path: path, Options: m}
	if f.Overrides, err = parseOverrides(m["overrides"]); err != nil {
		return nil, NewFileError(path, err)
	}
	return f, nil
}

func decode(name string, data []byte) (map[string]any, error) {
	m := map[string]any{}
	switch {
	case strings.HasSuffix(name, ".toml"):
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case name == ".prettierrc" && !bytes.HasPrefix(bytes.TrimSpace(jsonc.ToJSON(data)), []byte("{")):
		// An extensionless rc file is JSON or YAML
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		// Parse as JSONC (allows comments and trailing commas)
		if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	}
	return m, nil
}

func parseOverrides(raw any) ([]Override, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		if maps, ok := raw.([]map[string]any); ok {
			for _, m := range maps {
				list = append(list, m)
			}
		} else {
			return nil, errors.New("overrides must be a list")
		}
	}

	var out []Override
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errors.New("each override must be an object")
		}
		files, err := toList("overrides.files", m["files"])
		if err != nil {
			return nil, err
		}
		var exclude []string
		if m["excludeFiles"] != nil {
			if exclude, err = toList("overrides.excludeFiles", m["excludeFiles"]); err != nil {
				return nil, err
			}
		}
		opts, _ := m["options"].(map[string]any)
		out = append(out, Override{Files: files, ExcludeFiles: exclude, Options: opts})
	}
	return out, nil
}

// OptionsFor returns base with the file's options and every matching
// override applied, for the document at path
func (f *File) OptionsFor(path string, base Options) (Options, error) {
	opts := base
	if err := opts.Apply(f.Options); err != nil {
		return base, err
	}

	rel := path
	if abs, err := filepath.Abs(path); err == nil {
		if r, err := filepath.Rel(filepath.Dir(f.Path), abs); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)

	for _, o := range f.Overrides {
		if !matchAny(o.Files, rel) || matchAny(o.ExcludeFiles, rel) {
			continue
		}
		if err := opts.Apply(o.Options); err != nil {
			return base, err
		}
	}
	return opts, nil
}

// matchAny matches rel against globs. Globs without a slash match the base
// name at any depth.
func matchAny(globs []string, rel string) bool {
	for _, g := range globs {
		target := rel
		if !strings.Contains(g, "/") {
			target = filepath.Base(rel)
		}
		if ok, err := doublestar.Match(g, target); err == nil && ok {
			return true
		}
	}
	return false
}

// Resolve finds the config for the document at path and returns the
// resulting options, validated. Flags are applied last.
func Resolve(path string, flags map[string]any) (Options, error) {
	return ResolveWithDefaults(path, nil, flags)
}

// ResolveWithDefaults is Resolve with an extra layer between the built-in
// defaults and the config file, such as an editor's indentation settings.
func ResolveWithDefaults(path string, defaults, flags map[string]any) (Options, error) {
	opts := Defaults()
	if err := opts.Apply(defaults); err != nil {
		return opts, err
	}

	f, err := Find(filepath.Dir(path))
	if err != nil {
		return opts, err
	}
	if f != nil {
		log.Debug("Using config %s for %s", f.Path, path)
		if opts, err = f.OptionsFor(path, opts); err != nil {
			return opts, err
		}
	}
	if err := opts.Apply(flags); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}
