// Package cli constructs the relkit command-line interface, wiring the Cobra
// command hierarchy, configuration loader, and structured logging primitives.
package cli
