// Package config loads and validates request files: named environments,
// request definitions, and the JSON schemas they reference. Files may be
// JSON or YAML.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level request file.
type Config struct {
	Environments map[string]Environment `json:"environments" yaml:"environments"`
	Requests     map[string]Request     `json:"requests" yaml:"requests"`
	Schemas      map[string]interface{} `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Environment holds the client defaults applied to every request executed
// against it.
type Environment struct {
	Host           string                 `json:"host" yaml:"host"`
	Headers        map[string]string      `json:"headers,omitempty" yaml:"headers,omitempty"`
	Params         map[string]interface{} `json:"params,omitempty" yaml:"params,omitempty"`
	TimeoutSeconds int                    `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty"`
}

// Request is one named request definition.
type Request struct {
	Method      string                 `json:"method" yaml:"method"`
	Path        string                 `json:"path" yaml:"path"`
	Headers     map[string]string      `json:"headers,omitempty" yaml:"headers,omitempty"`
	QueryParams map[string]interface{} `json:"queryParams,omitempty" yaml:"queryParams,omitempty"`
	Body        string                 `json:"body,omitempty" yaml:"body,omitempty"`
	Schema      string                 `json:"schema,omitempty" yaml:"schema,omitempty"`
	Extract     map[string]string      `json:"extract,omitempty" yaml:"extract,omitempty"`
}

// Load reads, parses and validates a request file. YAML is selected by the
// .yaml/.yml extension, JSON otherwise.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if errs := Validate(&config); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %s", joinErrors(errs))
	}

	return &config, nil
}

// SchemaJSON renders a named schema as a JSON document, whatever syntax the
// request file was written in.
func (c *Config) SchemaJSON(name string) (string, error) {
	raw, ok := c.Schemas[name]
	if !ok {
		return "", fmt.Errorf("schema not found: %s", name)
	}
	doc, err := json.Marshal(normalizeKeys(raw))
	if err != nil {
		return "", fmt.Errorf("error rendering schema %s: %w", name, err)
	}
	return string(doc), nil
}

// normalizeKeys rewrites yaml.v3's map[interface{}]interface{} nodes into
// string-keyed maps so they survive json.Marshal.
func normalizeKeys(value interface{}) interface{} {
	switch v := value.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, inner := range v {
			out[fmt.Sprint(key)] = normalizeKeys(inner)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, inner := range v {
			out[key] = normalizeKeys(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, inner := range v {
			out[i] = normalizeKeys(inner)
		}
		return out
	default:
		return v
	}
}

func joinErrors(errs []ValidationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}
