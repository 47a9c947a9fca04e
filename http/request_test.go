package http

import (
	"testing"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest(MethodPost, "api.example.com", "/users")

	if req.Method != "POST" {
		t.Errorf("Expected method POST, got %s", req.Method)
	}
	if req.Host != "api.example.com" {
		t.Errorf("Expected host api.example.com, got %s", req.Host)
	}
	if req.Path != "/users" {
		t.Errorf("Expected path /users, got %s", req.Path)
	}
	if req.Headers == nil || req.QueryParams == nil {
		t.Error("Expected initialized header and query parameter maps")
	}
}

func TestRequest_Builder(t *testing.T) {
	req := NewRequest(MethodGet, "api.example.com", "/users").
		WithHeader("Accept", "application/json").
		WithQueryParam("limit", 10).
		WithQueryParams(map[string]interface{}{"offset": 20, "active": true}).
		WithBody(`{"x":1}`)

	if req.Headers["Accept"] != "application/json" {
		t.Errorf("Expected Accept header, got %v", req.Headers)
	}
	if req.QueryParams["limit"] != 10 || req.QueryParams["offset"] != 20 || req.QueryParams["active"] != true {
		t.Errorf("Expected query params, got %v", req.QueryParams)
	}
	if req.Body != `{"x":1}` {
		t.Errorf("Expected body, got %q", req.Body)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		path   string
		params map[string]string
		want   string
	}{
		{
			name: "scheme defaults to https",
			host: "api.example.com",
			path: "/users",
			want: "https://api.example.com/users",
		},
		{
			name: "explicit scheme preserved",
			host: "http://localhost:8080",
			path: "/health",
			want: "http://localhost:8080/health",
		},
		{
			name:   "query parameters encoded",
			host:   "api.example.com",
			path:   "/search",
			params: map[string]string{"q": "a b"},
			want:   "https://api.example.com/search?q=a+b",
		},
		{
			name: "base path joined without double slash",
			host: "https://api.example.com/v2/",
			path: "/users",
			want: "https://api.example.com/v2/users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.host, tt.path, tt.params)
			if err != nil {
				t.Fatalf("BuildURL returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBuildURL_InvalidHost(t *testing.T) {
	if _, err := BuildURL("://bad", "/x", nil); err == nil {
		t.Error("Expected error for invalid host")
	}
}

func TestStringifyParams(t *testing.T) {
	got := stringifyParams(map[string]interface{}{
		"count": 3,
		"ratio": 1.5,
		"on":    true,
		"name":  "x",
	})

	want := map[string]string{"count": "3", "ratio": "1.5", "on": "true", "name": "x"}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("Expected %s=%q, got %q", key, value, got[key])
		}
	}
}
