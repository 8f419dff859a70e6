// Package cli constructs the osforge command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives used by the commit import, digest, and platform commands.
package cli
