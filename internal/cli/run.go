package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	http "github.com/riposte-dev/riposte/http"
	"github.com/riposte-dev/riposte/internal/config"
	"github.com/riposte-dev/riposte/internal/logger"
	"github.com/riposte-dev/riposte/internal/metrics"
	"github.com/riposte-dev/riposte/internal/output"
	"github.com/riposte-dev/riposte/pkg/jsonpath"
	"github.com/riposte-dev/riposte/pkg/jsonschema"
)

var runCmd = &cobra.Command{
	Use:   "run CONFIG REQUEST",
	Short: "Execute a named request from a request file",
	Long: `Run loads a request file (JSON or YAML), merges the selected environment's
defaults into the named request, executes it through the pipeline, and
prints the outcome. A request may reference a JSON schema from the file
to validate the response payload, and extract expressions to pull values
out of it.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if code := runRequest(cmd, args[0], args[1]); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	runCmd.Flags().StringP("env", "e", "", "Environment to run against (defaults to the only one defined)")
	runCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
	runCmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	runCmd.Flags().Bool("stats", false, "Print latency and outcome statistics")
}

func runRequest(cmd *cobra.Command, cfgPath, reqName string) int {
	envName, _ := cmd.Flags().GetString("env")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")
	logLevel, _ := cmd.Flags().GetString("log-level")
	stats, _ := cmd.Flags().GetBool("stats")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	env, err := selectEnvironment(cfg, envName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	reqDef, ok := cfg.Requests[reqName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: request not found: %s\n", reqName)
		return 1
	}

	log, err := logger.New(logger.Config{Level: logLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Sync() //nolint:errcheck

	client := http.NewClient(http.WithLogger(log))
	if env.TimeoutSeconds > 0 {
		client.Timeout = time.Duration(env.TimeoutSeconds) * time.Second
	}
	for key, value := range env.Headers {
		client.DefaultHeaders[key] = value
	}
	for key, value := range env.Params {
		client.DefaultParams[key] = value
	}

	var recorder *metrics.Recorder
	if stats {
		recorder = metrics.NewRecorder()
		recorder.Install(client)
	}

	req := http.NewRequest(strings.ToUpper(reqDef.Method), env.Host, reqDef.Path)
	for key, value := range reqDef.Headers {
		req.WithHeader(key, value)
	}
	for key, value := range reqDef.QueryParams {
		req.WithQueryParam(key, value)
	}
	if reqDef.Body != "" {
		req.WithBody(reqDef.Body)
	}

	convert := http.Convert[interface{}](http.Raw)
	if reqDef.Schema != "" {
		doc, err := cfg.SchemaJSON(reqDef.Schema)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		convert = jsonschema.Validated(doc, convert)
	}

	formatter := output.NewFormatter(verbose, noColor || !output.ColorSupported())
	fmt.Print(formatter.FormatRequest(req))

	outcome := http.Execute(context.Background(), client, req, convert)

	fmt.Print(formatter.FormatReport(http.Report{
		StatusCode: outcome.StatusCode,
		Data:       deref(outcome.Data),
		Error:      outcome.Error,
		Duration:   outcome.Duration,
	}))

	if outcome.IsSuccess() && len(reqDef.Extract) > 0 {
		printExtracts(deref(outcome.Data), reqDef.Extract)
	}

	if recorder != nil {
		printSummary(recorder.Snapshot())
	}

	if !outcome.IsSuccess() {
		return 1
	}
	return 0
}

// selectEnvironment resolves the --env flag, defaulting to the only
// environment in the file when the flag is empty.
func selectEnvironment(cfg *config.Config, name string) (config.Environment, error) {
	if name != "" {
		env, ok := cfg.Environments[name]
		if !ok {
			return config.Environment{}, fmt.Errorf("environment not found: %s", name)
		}
		return env, nil
	}
	switch len(cfg.Environments) {
	case 0:
		return config.Environment{}, fmt.Errorf("no environments defined")
	case 1:
		for _, env := range cfg.Environments {
			return env, nil
		}
	}
	return config.Environment{}, fmt.Errorf("multiple environments defined, pick one with --env")
}

func printExtracts(data interface{}, paths map[string]string) {
	raw, err := json.Marshal(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: extraction failed: %v\n", err)
		return
	}

	values, err := jsonpath.ExtractAll(string(raw), paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("  Extracted:")
	for _, name := range names {
		fmt.Printf("    %s = %s\n", name, values[name])
	}
}

func printSummary(s metrics.Summary) {
	fmt.Println("  Stats:")
	fmt.Printf("    total=%d success=%d httpError=%d timeout=%d exception=%d fault=%d\n",
		s.Total, s.Successes, s.HTTPErrors, s.Timeouts, s.Exceptions, s.Faults)
	fmt.Printf("    p50=%s p95=%s p99=%s max=%s\n", s.P50, s.P95, s.P99, s.Max)
}
