package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	http "github.com/riposte-dev/riposte/http"
	"github.com/riposte-dev/riposte/internal/logger"
	"github.com/riposte-dev/riposte/internal/output"
)

// sendFlags registers the flags shared by the method commands.
func sendFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

// send builds a request from command flags, runs it through the pipeline and
// prints the outcome. It returns the process exit code.
func send(cmd *cobra.Command, method, rawURL, body string) int {
	headers, _ := cmd.Flags().GetStringArray("header")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	noColor, _ := cmd.Flags().GetBool("no-color")
	logLevel, _ := cmd.Flags().GetString("log-level")

	log, err := logger.New(logger.Config{Level: logLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Sync() //nolint:errcheck

	host, path, params := splitURL(rawURL)

	client := http.NewClient(
		http.WithTimeout(timeout),
		http.WithLogger(log),
	)

	req := http.NewRequest(method, host, path)
	if body != "" {
		req.WithBody(body)
	}
	for key, value := range params {
		req.WithQueryParam(key, value)
	}
	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			req.WithHeader(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}

	formatter := output.NewFormatter(verbose, noColor || !output.ColorSupported())
	fmt.Print(formatter.FormatRequest(req))

	outcome := http.Execute(context.Background(), client, req, http.Raw)

	fmt.Print(formatter.FormatReport(http.Report{
		StatusCode: outcome.StatusCode,
		Data:       deref(outcome.Data),
		Error:      outcome.Error,
		Duration:   outcome.Duration,
	}))

	if !outcome.IsSuccess() {
		return 1
	}
	return 0
}

func deref(data *interface{}) interface{} {
	if data == nil {
		return nil
	}
	return *data
}

// splitURL separates a raw URL into the host (scheme and authority), the
// path, and its query parameters. A missing scheme defaults to https, which
// BuildURL also assumes.
func splitURL(rawURL string) (host, path string, params map[string]interface{}) {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, "/", nil
	}

	host = fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	if parsed.User != nil {
		host = fmt.Sprintf("%s://%s@%s", parsed.Scheme, parsed.User.String(), parsed.Host)
	}

	path = parsed.Path
	if path == "" {
		path = "/"
	}

	query := parsed.Query()
	if len(query) > 0 {
		params = make(map[string]interface{}, len(query))
		for key := range query {
			params[key] = query.Get(key)
		}
	}

	return host, path, params
}
