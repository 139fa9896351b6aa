package config

import (
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	yaml "go.yaml.in/yaml/v3"
)

// coerceToJSONBytes converts a YAML scheduler file to JSON so both formats go
// through the same strict decoder. Files without a .yaml or .yml extension
// are returned as is.
func coerceToJSONBytes(name string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".yaml" && ext != ".yml" {
		return data, nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	v, err := normalizeYAML("", v)
	if err != nil {
		return nil, err
	}
	j, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yaml->json marshal: %w", err)
	}
	return j, nil
}

// normalizeYAML checks that every mapping key is a string, so the tree
// marshals to JSON with the names the strict decoder matches against.
// yaml.v3 decodes mappings with any non-string key as map[any]any; path is
// the dotted location used in errors.
func normalizeYAML(path string, in any) (any, error) {
	switch x := in.(type) {
	case map[any]any:
		for k := range x {
			if _, ok := k.(string); !ok {
				return nil, fmt.Errorf("non-string key %q", joinPath(path, fmt.Sprint(k)))
			}
		}
		return nil, fmt.Errorf("unexpected mapping %q", path)
	case map[string]any:
		for k, v := range x {
			n, err := normalizeYAML(joinPath(path, k), v)
			if err != nil {
				return nil, err
			}
			x[k] = n
		}
		return x, nil
	case []any:
		for i := range x {
			n, err := normalizeYAML(fmt.Sprintf("%s[%d]", path, i), x[i])
			if err != nil {
				return nil, err
			}
			x[i] = n
		}
		return x, nil
	default:
		return in, nil
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
