package lox

import (
	"errors"
	"fmt"
)

// MaxConstants is how many constants a chunk may hold. The pool is indexed
// by a one-byte operand and the 256th constant is rejected.
const MaxConstants = 255

var (
	ErrTruncatedCode = errors.New("instruction operand runs past end of code")
	ErrConstantIndex = errors.New("constant index out of range")
)

// Chunk is an append-only unit of bytecode. Lines holds the source line of
// every byte in Code, so the two slices always have the same length.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []Value
}

// NewChunk returns an empty chunk.
func NewChunk() *Chunk {
	return &Chunk{
		Code:      make([]byte, 0, 64),
		Lines:     make([]int, 0, 64),
		Constants: make([]Value, 0, 8),
	}
}

// Write appends one code byte together with its source line.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp appends an opcode.
func (c *Chunk) WriteOp(op Opcode, line int) {
	c.Write(byte(op), line)
}

// AddConstant appends value to the constant pool and returns its index.
// The index may exceed what an operand byte can hold; callers check.
func (c *Chunk) AddConstant(value Value) int {
	c.Constants = append(c.Constants, value)
	return len(c.Constants) - 1
}

// Len returns the number of code bytes.
func (c *Chunk) Len() int {
	return len(c.Code)
}

// Line returns the source line recorded for the byte at offset, or 0.
func (c *Chunk) Line(offset int) int {
	if offset < 0 || offset >= len(c.Lines) {
		return 0
	}
	return c.Lines[offset]
}

// Validate decodes every instruction and checks operands without executing
// anything.
func (c *Chunk) Validate() error {
	if len(c.Lines) != len(c.Code) {
		return fmt.Errorf("line table has %d entries for %d code bytes", len(c.Lines), len(c.Code))
	}
	for offset := 0; offset < len(c.Code); {
		op, err := DecodeOpcode(c.Code[offset])
		if err != nil {
			return fmt.Errorf("offset %d: %w", offset, err)
		}
		next := offset + op.InstructionLen()
		if next > len(c.Code) {
			return fmt.Errorf("offset %d: %s: %w", offset, op, ErrTruncatedCode)
		}
		if op == OpConstant {
			if idx := int(c.Code[offset+1]); idx >= len(c.Constants) {
				return fmt.Errorf("offset %d: %w: %d", offset, ErrConstantIndex, idx)
			}
		}
		offset = next
	}
	return nil
}
