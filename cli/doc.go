// Package cli is responsible for parsing command-line arguments of mazegen,
// validating user input and running the selected mode. Usage errors are
// reported as an ExitError carrying the process exit code.
package cli
