// Package jsonpath extracts values from JSON response bodies using JSONPath
// expressions, translated onto gjson's path syntax.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract returns the value at a JSONPath expression within a JSON document,
// rendered as a string.
func Extract(doc, path string) (string, error) {
	if doc == "" {
		return "", fmt.Errorf("empty JSON document")
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	result := gjson.Get(doc, toGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// ExtractAll evaluates a set of named JSONPath expressions against one
// document. Extractions that fail are reported together; the successful ones
// are still returned.
func ExtractAll(doc string, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	results := make(map[string]string, len(paths))
	var failures []string
	for name, path := range paths {
		value, err := Extract(doc, path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	if len(failures) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failures, "; "))
	}
	return results, nil
}

// toGjsonPath converts a JSONPath expression ($.users[0].name) to gjson
// syntax (users.0.name). Filters and wildcards are not supported.
func toGjsonPath(path string) string {
	if path == "$" {
		return "@this"
	}
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	replacer := strings.NewReplacer("['", ".", "']", "", `["`, ".", `"]`, "", "[", ".", "]", "")
	path = replacer.Replace(path)
	return strings.TrimPrefix(path, ".")
}
