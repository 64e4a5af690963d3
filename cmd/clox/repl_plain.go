package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mgomes/clox/lox"
)

// runREPL picks the interactive front end. The full-screen REPL needs a
// terminal on both ends; anything else gets the line-based loop.
func runREPL(s settings) error {
	if !s.PlainREPL && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		logger().Info("starting terminal REPL")
		return runTUI(s)
	}
	logger().Info("starting line REPL")
	return runPlainREPL(newVM(s, os.Stdout, os.Stderr), os.Stdin, os.Stdout, s.Prompt)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runPlainREPL prints prompt, reads a line and interprets it until in is
// exhausted. Blank lines are skipped. Errors in a line are reported by the
// VM and do not end the session.
func runPlainREPL(vm *lox.VM, in io.Reader, out io.Writer, prompt string) error {
	r := bufio.NewReader(in)
	for {
		fmt.Fprint(out, prompt)
		line, err := r.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			if result, ierr := vm.Interpret(strings.TrimRight(line, "\r\n")); result != lox.InterpretOK {
				logger().Debugf("line failed (%s): %v", result, ierr)
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
}
