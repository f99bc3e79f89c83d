package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// LoadFile reads a YAML or JSON config file and applies its values with
// SetConfig. Nested objects are flattened into slash separated keys:
//
//	random:
//	  jitter_cycles_min: 2000
//
// sets "random/jitter_cycles_min".
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	newValues, err := ParseToMap(data)
	if err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return SetConfig(newValues)
}

// ParseToMap parses and flattens a hierarchical YAML or JSON object.
func ParseToMap(data []byte) (map[string]interface{}, error) {
	loaded := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, err
	}

	flat := make(map[string]interface{})
	flatten(flat, loaded, "")
	return flat, nil
}

func flatten(flat, subMap map[string]interface{}, prefix string) {
	for key, entry := range subMap {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "/" + key
		}

		if nextSub, ok := entry.(map[string]interface{}); ok {
			flatten(flat, nextSub, fullKey)
			continue
		}
		flat[fullKey] = entry
	}
}
