// Package app defines common runtime contracts shared by the cmd/* entrypoints
// (the transfer API server, the one-shot transfer command and the migration runner).
package app

// Runner represents a runnable application component.
type Runner interface {
	Run() error
}
