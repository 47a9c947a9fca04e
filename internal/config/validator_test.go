package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Environments: map[string]Environment{
			"prod": {Host: "api.example.com"},
		},
		Requests: map[string]Request{
			"ping": {Method: "GET", Path: "/ping"},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	if errs := Validate(validConfig()); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{
			name:     "no environments",
			mutate:   func(c *Config) { c.Environments = nil },
			wantPath: "environments",
		},
		{
			name: "missing host",
			mutate: func(c *Config) {
				c.Environments["prod"] = Environment{}
			},
			wantPath: "environments.prod.host",
		},
		{
			name: "negative timeout",
			mutate: func(c *Config) {
				c.Environments["prod"] = Environment{Host: "api.example.com", TimeoutSeconds: -1}
			},
			wantPath: "environments.prod.timeoutSeconds",
		},
		{
			name:     "no requests",
			mutate:   func(c *Config) { c.Requests = nil },
			wantPath: "requests",
		},
		{
			name: "missing path",
			mutate: func(c *Config) {
				c.Requests["ping"] = Request{Method: "GET"}
			},
			wantPath: "requests.ping.path",
		},
		{
			name: "missing method",
			mutate: func(c *Config) {
				c.Requests["ping"] = Request{Path: "/ping"}
			},
			wantPath: "requests.ping.method",
		},
		{
			name: "invalid method",
			mutate: func(c *Config) {
				c.Requests["ping"] = Request{Method: "FETCH", Path: "/ping"}
			},
			wantPath: "requests.ping.method",
		},
		{
			name: "unknown schema",
			mutate: func(c *Config) {
				c.Requests["ping"] = Request{Method: "GET", Path: "/ping", Schema: "ghost"}
			},
			wantPath: "requests.ping.schema",
		},
		{
			name: "empty extract path",
			mutate: func(c *Config) {
				c.Requests["ping"] = Request{Method: "GET", Path: "/ping", Extract: map[string]string{"x": ""}}
			},
			wantPath: "requests.ping.extract.x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			errs := Validate(cfg)
			if len(errs) == 0 {
				t.Fatal("Expected validation errors")
			}
			found := false
			for _, e := range errs {
				if strings.HasPrefix(e.Path, tt.wantPath) {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error at %s, got %v", tt.wantPath, errs)
			}
		})
	}
}

func TestValidate_MethodCaseInsensitive(t *testing.T) {
	cfg := validConfig()
	cfg.Requests["ping"] = Request{Method: "get", Path: "/ping"}
	if errs := Validate(cfg); len(errs) != 0 {
		t.Errorf("Expected lowercase method to validate, got %v", errs)
	}
}
