package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

var validMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true, "DELETE": true,
}

// Validate checks a parsed request file and returns all problems found.
func Validate(config *Config) []ValidationError {
	var errors []ValidationError

	if len(config.Environments) == 0 {
		errors = append(errors, ValidationError{
			Path:    "environments",
			Message: "at least one environment is required",
		})
	}

	for name, env := range config.Environments {
		if env.Host == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("environments.%s.host", name),
				Message: "host is required",
			})
		}
		if env.TimeoutSeconds < 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("environments.%s.timeoutSeconds", name),
				Message: "timeoutSeconds cannot be negative",
			})
		}
	}

	if len(config.Requests) == 0 {
		errors = append(errors, ValidationError{
			Path:    "requests",
			Message: "at least one request is required",
		})
	}

	for name, req := range config.Requests {
		if req.Path == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.path", name),
				Message: "path is required",
			})
		}

		if req.Method == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.method", name),
				Message: "method is required",
			})
		} else if !validMethods[strings.ToUpper(req.Method)] {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.method", name),
				Message: fmt.Sprintf("invalid method: %s", req.Method),
			})
		}

		if req.Schema != "" {
			if _, ok := config.Schemas[req.Schema]; !ok {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("requests.%s.schema", name),
					Message: fmt.Sprintf("unknown schema: %s", req.Schema),
				})
			}
		}

		for varName, path := range req.Extract {
			if path == "" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("requests.%s.extract.%s", name, varName),
					Message: "extract path cannot be empty",
				})
			}
		}
	}

	return errors
}
