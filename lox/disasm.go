package lox

import (
	"fmt"
	"io"
	"strings"
)

// Disassemble returns a listing of the chunk with a name header.
func (c *Chunk) Disassemble(name string) string {
	var sb strings.Builder
	c.DisassembleTo(&sb, name)
	return sb.String()
}

// DisassembleTo writes the listing to w, one line per instruction.
func (c *Chunk) DisassembleTo(w io.Writer, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = c.DisassembleInstruction(w, offset)
	}
}

// DisassembleInstruction writes the instruction at offset and returns the
// offset of the next one. Invalid bytes are listed, never fatal.
func (c *Chunk) DisassembleInstruction(w io.Writer, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	if offset > 0 && c.Line(offset) == c.Line(offset-1) {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", c.Line(offset))
	}

	op, err := DecodeOpcode(c.Code[offset])
	if err != nil {
		fmt.Fprintf(w, "Unknown opcode: %d\n", c.Code[offset])
		return offset + 1
	}

	switch op {
	case OpConstant:
		return c.constantInstruction(w, op, offset)
	default:
		fmt.Fprintf(w, "%s\n", op)
		return offset + 1
	}
}

func (c *Chunk) constantInstruction(w io.Writer, op Opcode, offset int) int {
	if offset+1 >= len(c.Code) {
		fmt.Fprintf(w, "%-16s <truncated>\n", op)
		return len(c.Code)
	}
	idx := int(c.Code[offset+1])
	display := "<invalid>"
	if idx < len(c.Constants) {
		display = c.Constants[idx].String()
	}
	fmt.Fprintf(w, "%-16s %4d '%s'\n", op, idx, display)
	return offset + 2
}
