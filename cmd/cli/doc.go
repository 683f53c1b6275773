// Package cli constructs the gitflow command-line interface, wiring the Cobra
// command hierarchy, the layered configuration loader, and structured logging
// around the repository session commands.
package cli
