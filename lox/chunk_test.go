package lox

import (
	"errors"
	"testing"
)

func TestChunkWriteKeepsLinesInStep(t *testing.T) {
	c := NewChunk()
	c.WriteOp(OpConstant, 1)
	c.Write(0, 1)
	c.WriteOp(OpNegate, 2)
	c.WriteOp(OpReturn, 3)

	if c.Len() != 4 || len(c.Lines) != 4 {
		t.Fatalf("expected 4 code bytes and 4 lines, got %d and %d", c.Len(), len(c.Lines))
	}
	want := []int{1, 1, 2, 3}
	for i, line := range want {
		if c.Line(i) != line {
			t.Fatalf("byte %d: expected line %d, got %d", i, line, c.Line(i))
		}
	}
	if c.Line(-1) != 0 || c.Line(4) != 0 {
		t.Fatalf("out of range offsets should report line 0")
	}
}

func TestChunkAddConstantReturnsSequentialIndexes(t *testing.T) {
	c := NewChunk()
	for i := 0; i < 3; i++ {
		if idx := c.AddConstant(Value(i) * 1.5); idx != i {
			t.Fatalf("expected index %d, got %d", i, idx)
		}
	}
	if c.Constants[2] != 3 {
		t.Fatalf("expected constant 3, got %v", c.Constants[2])
	}
}

func TestChunkValidate(t *testing.T) {
	valid := NewChunk()
	idx := valid.AddConstant(1.2)
	valid.WriteOp(OpConstant, 1)
	valid.Write(byte(idx), 1)
	valid.WriteOp(OpReturn, 1)
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid chunk, got %v", err)
	}

	tests := []struct {
		name  string
		build func(c *Chunk)
		want  error
	}{
		{
			name: "unknown opcode",
			build: func(c *Chunk) {
				c.Write(0xff, 1)
			},
			want: ErrUnknownOpcode,
		},
		{
			name: "missing operand",
			build: func(c *Chunk) {
				c.WriteOp(OpConstant, 1)
			},
			want: ErrTruncatedCode,
		},
		{
			name: "constant index",
			build: func(c *Chunk) {
				c.WriteOp(OpConstant, 1)
				c.Write(3, 1)
				c.WriteOp(OpReturn, 1)
			},
			want: ErrConstantIndex,
		},
	}
	for _, tt := range tests {
		c := NewChunk()
		tt.build(c)
		if err := c.Validate(); !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}

	mismatched := &Chunk{Code: []byte{byte(OpReturn)}}
	if err := mismatched.Validate(); err == nil {
		t.Fatalf("expected line table mismatch to be rejected")
	}
}
