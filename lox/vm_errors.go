package lox

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrCodeExhausted  = errors.New("execution ran past end of code")
)

// RuntimeError is returned when a chunk cannot be executed. With the
// current instruction set this means corrupt bytecode or a broken stack
// discipline, never a fault in the user's program.
type RuntimeError struct {
	Err    error
	Offset int
	Line   int
	// Instruction is the opcode name, empty when the byte did not decode.
	Instruction string
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "runtime error at offset %d", e.Offset)
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	b.WriteString(": ")
	if e.Instruction != "" {
		b.WriteString(e.Instruction)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
