// Package output renders requests and outcomes for the terminal.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	http "github.com/riposte-dev/riposte/http"
)

// Formatter renders requests and outcome reports in text form.
type Formatter struct {
	Verbose bool
	NoColor bool
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(verbose, noColor bool) *Formatter {
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
	}
}

// ColorSupported reports whether stdout is a terminal that can take ANSI
// colors. Callers typically pass !ColorSupported() as NoColor.
func ColorSupported() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// FormatRequest formats a request for display.
func (f *Formatter) FormatRequest(req *http.Request) string {
	var buf strings.Builder

	methodColor := color.New(color.FgBlue, color.Bold)
	if f.NoColor {
		methodColor.DisableColor()
	}

	target := req.Host + req.Path
	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n", methodColor.Sprint(req.Method), target))

	if f.Verbose || len(req.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(req.Headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", key, req.Headers[key]))
		}
	}

	if len(req.QueryParams) > 0 {
		buf.WriteString("  Query:\n")
		keys := make([]string, 0, len(req.QueryParams))
		for key := range req.QueryParams {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			buf.WriteString(fmt.Sprintf("    %s: %v\n", key, req.QueryParams[key]))
		}
	}

	if req.Body != "" {
		buf.WriteString("  Body: ")
		buf.WriteString(formatJSONString(req.Body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatReport formats the outcome of one execution for display.
func (f *Formatter) FormatReport(rep http.Report) string {
	var buf strings.Builder

	statusColor := color.New(color.Bold)
	switch {
	case rep.IsSuccess():
		statusColor.Add(color.FgGreen)
	case rep.StatusCode == http.StatusTimeout || rep.StatusCode == http.StatusFailure:
		statusColor.Add(color.FgRed)
	case rep.StatusCode >= 300 && rep.StatusCode < 400:
		statusColor.Add(color.FgYellow)
	default:
		statusColor.Add(color.FgRed)
	}
	if f.NoColor {
		statusColor.DisableColor()
	}

	buf.WriteString(fmt.Sprintf("◀ OUTCOME: %s (%dms)\n",
		statusColor.Sprint(statusLabel(rep.StatusCode)),
		rep.Duration.Milliseconds()))

	if rep.Error != nil {
		buf.WriteString(fmt.Sprintf("  Error: %s\n", rep.Error.Message))
		return buf.String()
	}

	if rep.Data != nil {
		raw, err := json.Marshal(rep.Data)
		if err == nil {
			buf.WriteString("  Data:\n")
			buf.WriteString(formatJSONString(string(raw)))
			buf.WriteString("\n")
		}
	}

	return buf.String()
}

// statusLabel names the sentinel codes; real HTTP codes render numerically.
func statusLabel(status int) string {
	switch status {
	case http.StatusTimeout:
		return "TIMEOUT"
	case http.StatusFailure:
		return "FAILED"
	default:
		return fmt.Sprintf("%d", status)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// formatJSONString attempts to pretty-print a JSON string.
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, []byte(s), "  ", "  "); err != nil {
		return s
	}
	return prettyJSON.String()
}
