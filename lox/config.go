package lox

import (
	"io"
	"os"
)

// Config controls where a VM writes and which debug output it produces.
type Config struct {
	// Stdout receives program results, traces and code listings.
	Stdout io.Writer
	// Stderr receives compile diagnostics and runtime errors.
	Stderr io.Writer

	// TraceExecution prints the stack and the next instruction before each
	// dispatch.
	TraceExecution bool
	// PrintCode prints the chunk listing after every successful compile.
	PrintCode bool
}

func (cfg Config) withDefaults() Config {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	return cfg
}
