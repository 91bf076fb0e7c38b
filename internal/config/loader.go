package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source locates where a config value came from.
type Source struct {
	Kind   SourceKind
	Name   string
	File   string
	Line   int
	Column int
}

// LoadResult is a validated config plus the position of every key that a
// file set.
type LoadResult struct {
	Config *Config
	// Sources maps dotted YAML paths (windows.1.width) to the file that
	// set them last.
	Sources map[string]Source
	// Files lists every file read, includes before their includer.
	Files []string
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "deskfolio", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources is Load keeping per-key sources for config explain.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and its includes. A missing file yields the
// defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{
		visited: map[string]bool{},
		sources: map[string]Source{},
	}

	var raw RawConfig
	if _, err := os.Stat(path); err == nil {
		if raw, err = l.load(path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg, err := BuildEffectiveConfig(raw)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return nil, withSource(err, l.sources)
	}
	return &LoadResult{Config: cfg, Sources: l.sources, Files: l.files}, nil
}

// loader walks one include tree. Each file is read at most once; a file
// reached again through its own includes is a cycle.
type loader struct {
	visited map[string]bool
	active  []string
	sources map[string]Source
	files   []string
}

func (l *loader) load(path string) (RawConfig, error) {
	file, err := filepath.Abs(path)
	if err != nil {
		return RawConfig{}, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if real, err := filepath.EvalSymlinks(file); err == nil {
		file = real
	}
	for _, open := range l.active {
		if open == file {
			chain := append(append([]string{}, l.active...), file)
			return RawConfig{}, fmt.Errorf("include cycle detected: %s", strings.Join(chain, " -> "))
		}
	}
	if l.visited[file] {
		return RawConfig{}, nil
	}
	l.visited[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return RawConfig{}, fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var own RawConfig
	if err := decodeStrict(data, &own); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", file, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawConfig{}, fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}

	l.active = append(l.active, file)
	var merged RawConfig
	for _, inc := range own.Include {
		paths, err := includePaths(file, inc)
		if err != nil {
			return RawConfig{}, fmt.Errorf("%s: include %q: %w", file, inc, err)
		}
		for _, p := range paths {
			sub, err := l.load(p)
			if err != nil {
				return RawConfig{}, err
			}
			merged = merged.merge(sub)
		}
	}
	l.active = l.active[:len(l.active)-1]

	// Keys set here override the includes.
	recordPositions(rootNode(&doc), file, "", l.sources)
	l.files = append(l.files, file)
	return merged.merge(own), nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// includePaths resolves an include entry relative to the including file. A
// directory expands to its .yaml and .yml files in name order.
func includePaths(from, inc string) ([]string, error) {
	if inc == "" {
		return nil, fmt.Errorf("path is empty")
	}
	if inc == "~" || strings.HasPrefix(inc, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		inc = filepath.Join(home, strings.TrimPrefix(inc, "~"))
	}
	if !filepath.IsAbs(inc) {
		inc = filepath.Join(filepath.Dir(from), inc)
	}

	info, err := os.Stat(inc)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{inc}, nil
	}
	entries, err := os.ReadDir(inc)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			if !e.IsDir() {
				out = append(out, filepath.Join(inc, e.Name()))
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func rootNode(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

// recordPositions stores the position of every value under node. Sequence
// items are addressed by index, so windows.1.width is the second window's
// width.
func recordPositions(node *yaml.Node, file, prefix string, out map[string]Source) {
	join := func(key string) string {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}
	at := func(n *yaml.Node) Source {
		return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
	}

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := join(node.Content[i].Value), node.Content[i+1]
			out[key] = at(val)
			recordPositions(val, file, key, out)
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			key := join(strconv.Itoa(i))
			out[key] = at(item)
			recordPositions(item, file, key, out)
		}
	}
}

// withSource fills in the file position of a validation error from the
// nearest recorded ancestor of its path.
func withSource(err error, sources map[string]Source) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	for path := verr.Path; ; {
		if src, ok := sources[path]; ok {
			verr.Source = src
			break
		}
		i := strings.LastIndex(path, ".")
		if i < 0 {
			break
		}
		path = path[:i]
	}
	return err
}
