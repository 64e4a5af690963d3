package lox

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func newTestVM(cfg Config) (*VM, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cfg.Stdout = &stdout
	cfg.Stderr = &stderr
	return NewVM(cfg), &stdout, &stderr
}

func interpretSource(t *testing.T, source string) string {
	t.Helper()
	vm, stdout, stderr := newTestVM(Config{})
	result, err := vm.Interpret(source)
	if err != nil || result != InterpretOK {
		t.Fatalf("interpret %q: %v %v (stderr %q)", source, result, err, stderr.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("interpret %q wrote to stderr: %q", source, stderr.String())
	}
	return stdout.String()
}

func TestInterpretArithmetic(t *testing.T) {
	tests := map[string]string{
		"1.2":          "1.2\n",
		"1 + 2 * 3":    "7\n",
		"-(1 + 2) * 3": "-9\n",
		"10 - 2 / 2":   "9\n",
		"1 - 2 - 3":    "-4\n",
		"8 / 4 / 2":    "1\n",
		"2.4 / 2":      "1.2\n",
		"1.2 * 2":      "2.4\n",
		"--5":          "5\n",
		"(((3)))":      "3\n",
		"1 / 0":        "inf\n",
		"-1 / 0":       "-inf\n",
		"0 / 0":        "NaN\n",
		"1 //\n+ 1":    "2\n",
	}
	for source, want := range tests {
		if got := interpretSource(t, source); got != want {
			t.Fatalf("%q: expected %q, got %q", source, want, got)
		}
	}
}

func TestInterpretCompileError(t *testing.T) {
	vm, stdout, stderr := newTestVM(Config{})
	result, err := vm.Interpret("(")
	if result != InterpretCompileError {
		t.Fatalf("expected compile error result, got %v", result)
	}
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("expected *CompileError, got %v", err)
	}
	if got := stderr.String(); got != "[line 1] Error at end: Expect expression.\n" {
		t.Fatalf("unexpected stderr %q", got)
	}
	if stdout.Len() != 0 {
		t.Fatalf("nothing should run after a compile error, got %q", stdout.String())
	}
}

func TestVMIsReusableAcrossInterprets(t *testing.T) {
	vm, stdout, _ := newTestVM(Config{})
	for _, source := range []string{"1", "(", "2 * 2"} {
		_, _ = vm.Interpret(source)
		if vm.StackDepth() != 0 {
			t.Fatalf("%q: stack should be empty afterwards, depth %d", source, vm.StackDepth())
		}
	}
	if got := stdout.String(); got != "1\n4\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTraceExecution(t *testing.T) {
	vm, stdout, _ := newTestVM(Config{TraceExecution: true})
	if result, err := vm.Interpret("1 + 2"); err != nil || result != InterpretOK {
		t.Fatalf("interpret: %v %v", result, err)
	}
	want := "          \n" +
		"0000    1 OP_CONSTANT         0 '1'\n" +
		"          [ 1 ]\n" +
		"0002    | OP_CONSTANT         1 '2'\n" +
		"          [ 1 ][ 2 ]\n" +
		"0004    | OP_ADD\n" +
		"          [ 3 ]\n" +
		"0005    | OP_RETURN\n" +
		"3\n"
	if got := stdout.String(); got != want {
		t.Fatalf("unexpected trace:\n%s\nwant:\n%s", got, want)
	}
}

func TestTracingDoesNotChangeResults(t *testing.T) {
	for _, source := range []string{"-(1 + 2) * 3", "10 - 2 / 2", "1 / 0"} {
		vm, stdout, _ := newTestVM(Config{})
		tracer, traced, _ := newTestVM(Config{TraceExecution: true})
		_, _ = vm.Interpret(source)
		_, _ = tracer.Interpret(source)
		if !strings.HasSuffix(traced.String(), "\n"+stdout.String()) {
			t.Fatalf("%q: traced output %q does not end with %q", source, traced.String(), stdout.String())
		}
	}
}

func TestPrintCode(t *testing.T) {
	vm, stdout, _ := newTestVM(Config{PrintCode: true})
	if _, err := vm.Interpret("1"); err != nil {
		t.Fatalf("interpret: %v", err)
	}
	want := "== code ==\n" +
		"0000    1 OP_CONSTANT         0 '1'\n" +
		"0002    | OP_RETURN\n" +
		"1\n"
	if got := stdout.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}

	vm.SetPrintCode(false)
	stdout.Reset()
	_, _ = vm.Interpret("2")
	if got := stdout.String(); got != "2\n" {
		t.Fatalf("listing should be off, got %q", got)
	}
}

func TestRunReturnsPrintedValue(t *testing.T) {
	vm, stdout, _ := newTestVM(Config{})
	c := NewChunk()
	c.WriteOp(OpConstant, 1)
	c.Write(byte(c.AddConstant(2.5)), 1)
	c.WriteOp(OpNegate, 1)
	c.WriteOp(OpReturn, 1)

	v, err := vm.Run(c)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if v != -2.5 || stdout.String() != "-2.5\n" {
		t.Fatalf("unexpected result %v, output %q", v, stdout.String())
	}
}

func TestRunCorruptChunks(t *testing.T) {
	overflow := NewChunk()
	overflow.AddConstant(1)
	for i := 0; i <= StackMax; i++ {
		overflow.WriteOp(OpConstant, 1)
		overflow.Write(0, 1)
	}
	overflow.WriteOp(OpReturn, 1)

	tests := []struct {
		name        string
		chunk       *Chunk
		want        error
		offset      int
		instruction string
	}{
		{
			name:  "unknown opcode",
			chunk: &Chunk{Code: []byte{0xff}, Lines: []int{4}},
			want:  ErrUnknownOpcode,
		},
		{
			name:        "underflow",
			chunk:       &Chunk{Code: []byte{op(OpAdd)}, Lines: []int{1}},
			want:        ErrStackUnderflow,
			instruction: "OP_ADD",
		},
		{
			name:        "return on empty stack",
			chunk:       &Chunk{Code: []byte{op(OpReturn)}, Lines: []int{1}},
			want:        ErrStackUnderflow,
			instruction: "OP_RETURN",
		},
		{
			name:        "overflow",
			chunk:       overflow,
			want:        ErrStackOverflow,
			offset:      StackMax * 2,
			instruction: "OP_CONSTANT",
		},
		{
			name:   "missing return",
			chunk:  &Chunk{Code: []byte{op(OpConstant), 0}, Lines: []int{1, 1}, Constants: []Value{1}},
			want:   ErrCodeExhausted,
			offset: 2,
		},
		{
			name:        "missing operand",
			chunk:       &Chunk{Code: []byte{op(OpConstant)}, Lines: []int{1}},
			want:        ErrTruncatedCode,
			instruction: "OP_CONSTANT",
		},
		{
			name:        "constant index",
			chunk:       &Chunk{Code: []byte{op(OpConstant), 5, op(OpReturn)}, Lines: []int{1, 1, 1}},
			want:        ErrConstantIndex,
			instruction: "OP_CONSTANT",
		},
	}

	for _, tt := range tests {
		vm, _, _ := newTestVM(Config{})
		_, err := vm.Run(tt.chunk)
		if !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
		var rtErr *RuntimeError
		if !errors.As(err, &rtErr) {
			t.Fatalf("%s: expected *RuntimeError, got %T", tt.name, err)
		}
		if rtErr.Offset != tt.offset || rtErr.Instruction != tt.instruction {
			t.Fatalf("%s: unexpected location %+v", tt.name, rtErr)
		}
	}
}

func TestRuntimeErrorMessage(t *testing.T) {
	vm, _, _ := newTestVM(Config{})
	_, err := vm.Run(&Chunk{Code: []byte{op(OpNegate)}, Lines: []int{3}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got != "runtime error at offset 0 (line 3): OP_NEGATE: stack underflow" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestResetClearsState(t *testing.T) {
	vm, _, _ := newTestVM(Config{})
	_, _ = vm.Run(&Chunk{Code: []byte{op(OpConstant), 0}, Lines: []int{1, 1}, Constants: []Value{1}})
	if vm.StackDepth() != 1 {
		t.Fatalf("expected the constant to remain on the stack, depth %d", vm.StackDepth())
	}
	vm.Reset()
	if vm.StackDepth() != 0 {
		t.Fatalf("expected empty stack after reset, depth %d", vm.StackDepth())
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{7, "7"},
		{-9, "-9"},
		{1.2, "1.2"},
		{0.1, "0.1"},
		{1e21, "1000000000000000000000"},
		{Value(math.Copysign(0, -1)), "-0"},
		{Value(math.Inf(1)), "inf"},
		{Value(math.Inf(-1)), "-inf"},
		{Value(math.NaN()), "NaN"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestInterpretResultString(t *testing.T) {
	if InterpretOK.String() != "ok" || InterpretCompileError.String() != "compile error" || InterpretRuntimeError.String() != "runtime error" {
		t.Fatalf("unexpected result names")
	}
}

func TestNewVMDefaultsWriters(t *testing.T) {
	cfg := NewVM(Config{}).Config()
	if cfg.Stdout == nil || cfg.Stderr == nil {
		t.Fatalf("expected default writers")
	}
}
