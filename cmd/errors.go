package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// PrintError prints a user-facing error message to stderr. When verbose mode
// is enabled the underlying error is included.
func PrintError(message string, err error) {
	if err != nil && viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// HandleFatalError prints the error and exits with a non-zero status.
func HandleFatalError(message string, err error) {
	PrintError(message, err)
	os.Exit(1)
}

// LogError prints an error only when verbose mode is enabled. Useful for
// non-fatal conditions like a failed Close.
func LogError(message string, err error) {
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "%s: %v\n", message, err)
	}
}
