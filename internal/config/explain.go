package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Paths follow the YAML keys, with list items addressed by index:
//
//	z_top
//	limits.min_width
//	maximize_insets.bottom
//	windows.0.title
//	links.1.url
//	viewport.source
//	logging.level
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	node := &doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	for _, part := range strings.Split(path, ".") {
		next, ok := child(node, part)
		if !ok {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		node = next
	}

	var out any
	if err := node.Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func child(node *yaml.Node, key string) (*yaml.Node, bool) {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				return node.Content[i+1], true
			}
		}
	case yaml.SequenceNode:
		idx, err := strconv.Atoi(key)
		if err == nil && idx >= 0 && idx < len(node.Content) {
			return node.Content[idx], true
		}
	}
	return nil, false
}
