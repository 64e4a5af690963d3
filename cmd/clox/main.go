package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mgomes/clox/lox"
)

// Exit statuses follow sysexits.h.
const (
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
	exitIOErr    = 74
	exitConfig   = 78
)

func main() {
	if err := runCLI(os.Args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if !exitErr.reported {
				fmt.Fprintln(os.Stderr, exitErr)
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitError carries the process exit status for a failed run. reported is
// set when the message already reached stderr.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

type cliFlags struct {
	fs         *flag.FlagSet
	trace      *bool
	printCode  *bool
	configPath *string
	plain      *bool
	verbosity  verbosityFlag
}

func newCLIFlags() *cliFlags {
	f := &cliFlags{fs: flag.NewFlagSet("clox", flag.ContinueOnError)}
	f.fs.SetOutput(new(flagErrorSink))
	f.trace = f.fs.Bool("trace", false, "print the stack and each instruction as it executes")
	f.printCode = f.fs.Bool("print-code", false, "print the bytecode listing after each compile")
	f.configPath = f.fs.String("config", "", "read settings from a YAML or TOML file")
	f.plain = f.fs.Bool("plain", false, "use the line-based REPL even on a terminal")
	f.fs.Var(&f.verbosity, "v", "increase log verbosity (repeatable)")
	return f
}

func runCLI(args []string) error {
	flags := newCLIFlags()
	if err := flags.fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(os.Stderr)
			return nil
		}
		printUsage(os.Stderr)
		return &exitError{code: exitUsage, err: err}
	}

	if flags.fs.NArg() > 1 {
		printUsage(os.Stderr)
		return &exitError{code: exitUsage, reported: true}
	}

	s, err := resolveSettings(flags, os.Getenv)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}
	log := configureLogging(s.Verbosity)
	log.Debugf("settings: trace=%t print_code=%t plain_repl=%t", s.TraceExecution, s.PrintCode, s.PlainREPL)

	if flags.fs.NArg() == 1 {
		vm := newVM(s, os.Stdout, os.Stderr)
		return runFile(vm, flags.fs.Arg(0))
	}
	return runREPL(s)
}

func newVM(s settings, stdout, stderr io.Writer) *lox.VM {
	return lox.NewVM(lox.Config{
		Stdout:         stdout,
		Stderr:         stderr,
		TraceExecution: s.TraceExecution,
		PrintCode:      s.PrintCode,
	})
}

func runFile(vm *lox.VM, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return &exitError{code: exitIOErr, err: fmt.Errorf("could not read file %q: %w", path, err)}
	}
	logger().Infof("running %s (%d bytes)", path, len(source))

	result, err := vm.Interpret(string(source))
	switch result {
	case lox.InterpretCompileError:
		return &exitError{code: exitDataErr, err: err, reported: true}
	case lox.InterpretRuntimeError:
		return &exitError{code: exitSoftware, err: err, reported: true}
	}
	return nil
}

func printUsage(w io.Writer) {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "Usage: %s [flags] [path]\n", prog)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -trace")
	fmt.Fprintln(w, "    print the stack and each instruction as it executes")
	fmt.Fprintln(w, "  -print-code")
	fmt.Fprintln(w, "    print the bytecode listing after each compile")
	fmt.Fprintln(w, "  -config <file>")
	fmt.Fprintln(w, "    read settings from a .yaml, .yml or .toml file")
	fmt.Fprintln(w, "  -plain")
	fmt.Fprintln(w, "    use the line-based REPL even on a terminal")
	fmt.Fprintln(w, "  -v")
	fmt.Fprintln(w, "    increase log verbosity (repeatable)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

// verbosityFlag counts occurrences of -v. An explicit -v=N sets the level.
type verbosityFlag int

func (v *verbosityFlag) String() string {
	if v == nil {
		return "0"
	}
	return strconv.Itoa(int(*v))
}

func (v *verbosityFlag) Set(value string) error {
	if value == "true" {
		*v++
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid verbosity %q", value)
	}
	*v = verbosityFlag(n)
	return nil
}

func (v *verbosityFlag) IsBoolFlag() bool { return true }
