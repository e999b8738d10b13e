package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Fuabioo/dehash/internal/core"
	"github.com/Fuabioo/dehash/internal/errors"
	"golang.org/x/term"
)

// batchFailure reports that some archives of a multi-archive run failed.
type batchFailure struct {
	failed int
	total  int
}

func (e *batchFailure) Error() string {
	return fmt.Sprintf("%d of %d archives failed", e.failed, e.total)
}

// outputJSON marshals and prints JSON to stdout.
func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// isTerminal checks if the given file descriptor is a TTY.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// getExitCode maps error codes to CLI exit codes.
func getExitCode(err error) int {
	if err == nil {
		return 0
	}

	if _, ok := err.(*batchFailure); ok {
		return 2 // Some archives failed
	}

	code := errors.Code(err)
	switch code {
	case errors.CodeZipNotFound:
		return 4 // Archive not found
	case errors.CodeZipBombDetected, errors.CodePathTraversal, errors.CodeLimitExceeded:
		return 5 // Zip bomb / security
	case errors.CodeOutputExists:
		return 3 // Output already exists
	case "":
		// Not a dehash error - could be usage error
		return 1 // General error
	default:
		return 1 // General error
	}
}

// loadConfig loads the configuration from the config directory.
// A missing directory is fine: defaults and environment overrides apply.
func loadConfig() (*core.Config, error) {
	configDir, err := core.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	cfg, err := core.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// printError prints an error to stderr with appropriate formatting.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// confirmPrompt prompts the user for a yes/no confirmation.
// Returns true if user confirms, false otherwise.
func confirmPrompt(message string) bool {
	if !isTerminal(os.Stdin) {
		return false
	}

	fmt.Fprintf(os.Stderr, "%s (y/N): ", message)

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// formatBytes formats bytes as human-readable size.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
