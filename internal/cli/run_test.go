package cli

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/riposte-dev/riposte/internal/config"
)

func TestSelectEnvironment(t *testing.T) {
	cfg := &config.Config{
		Environments: map[string]config.Environment{
			"staging": {Host: "staging.example.com"},
		},
	}

	env, err := selectEnvironment(cfg, "")
	if err != nil {
		t.Fatalf("Expected only environment to be selected, got %v", err)
	}
	if env.Host != "staging.example.com" {
		t.Errorf("Unexpected environment: %+v", env)
	}

	if _, err := selectEnvironment(cfg, "prod"); err == nil {
		t.Error("Expected error for unknown environment")
	}

	cfg.Environments["prod"] = config.Environment{Host: "api.example.com"}
	if _, err := selectEnvironment(cfg, ""); err == nil {
		t.Error("Expected error when multiple environments and no flag")
	}

	env, err = selectEnvironment(cfg, "prod")
	if err != nil {
		t.Fatalf("Expected prod environment, got %v", err)
	}
	if env.Host != "api.example.com" {
		t.Errorf("Unexpected environment: %+v", env)
	}
}

func TestRunRequest_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/1" {
			t.Errorf("Expected path /users/1, got %s", r.URL.Path)
		}
		if r.Header.Get("X-Env") != "test" {
			t.Errorf("Expected environment header, got %q", r.Header.Get("X-Env"))
		}
		w.Write([]byte(`{"id":1,"name":"ada"}`))
	}))
	defer server.Close()

	cfgContent := fmt.Sprintf(`{
		"environments": {
			"test": {"host": %q, "headers": {"X-Env": "test"}, "timeoutSeconds": 5}
		},
		"requests": {
			"getUser": {
				"method": "GET",
				"path": "/users/1",
				"schema": "user",
				"extract": {"name": "$.name"}
			}
		},
		"schemas": {
			"user": {"type": "object", "required": ["id", "name"]}
		}
	}`, server.URL)

	cfgPath := filepath.Join(t.TempDir(), "requests.json")
	if err := os.WriteFile(cfgPath, []byte(cfgContent), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if code := runRequest(runCmd, cfgPath, "getUser"); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRunRequest_MissingRequest(t *testing.T) {
	cfgContent := `{
		"environments": {"test": {"host": "https://api.example.com"}},
		"requests": {"ping": {"method": "GET", "path": "/ping"}}
	}`

	cfgPath := filepath.Join(t.TempDir(), "requests.json")
	if err := os.WriteFile(cfgPath, []byte(cfgContent), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if code := runRequest(runCmd, cfgPath, "absent"); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
}

func TestRunRequest_MissingConfig(t *testing.T) {
	if code := runRequest(runCmd, filepath.Join(t.TempDir(), "nope.json"), "x"); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
}
