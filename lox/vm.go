package lox

import (
	"fmt"
	"strings"
)

// StackMax is the fixed capacity of the value stack.
const StackMax = 256

// InterpretResult is the outcome of one Interpret call.
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

func (r InterpretResult) String() string {
	switch r {
	case InterpretOK:
		return "ok"
	case InterpretCompileError:
		return "compile error"
	case InterpretRuntimeError:
		return "runtime error"
	default:
		return fmt.Sprintf("InterpretResult(%d)", int(r))
	}
}

// VM executes chunks on a fixed-size value stack. A VM is not safe for
// concurrent use; a REPL reuses one VM for strictly sequential calls.
type VM struct {
	config Config

	chunk    *Chunk
	ip       int
	stack    [StackMax]Value
	stackTop int
}

// NewVM constructs a VM. Nil writers default to os.Stdout and os.Stderr.
func NewVM(cfg Config) *VM {
	return &VM{config: cfg.withDefaults()}
}

// SetTraceExecution toggles per-instruction tracing.
func (vm *VM) SetTraceExecution(on bool) {
	vm.config.TraceExecution = on
}

// SetPrintCode toggles the listing printed after each successful compile.
func (vm *VM) SetPrintCode(on bool) {
	vm.config.PrintCode = on
}

// Config returns the VM's effective configuration.
func (vm *VM) Config() Config {
	return vm.config
}

// Reset drops the active chunk and empties the stack.
func (vm *VM) Reset() {
	vm.chunk = nil
	vm.ip = 0
	vm.resetStack()
}

// StackDepth returns the number of live values on the stack.
func (vm *VM) StackDepth() int {
	return vm.stackTop
}

// Interpret compiles source into a fresh chunk and runs it. Compile
// diagnostics and runtime errors are written to the configured Stderr; the
// returned error carries the same information.
func (vm *VM) Interpret(source string) (InterpretResult, error) {
	chunk := NewChunk()
	if err := Compile(source, chunk, vm.config.Stderr); err != nil {
		return InterpretCompileError, err
	}

	if vm.config.PrintCode {
		chunk.DisassembleTo(vm.config.Stdout, "code")
	}

	if _, err := vm.Run(chunk); err != nil {
		vm.reportRuntimeError(err)
		return InterpretRuntimeError, err
	}
	return InterpretOK, nil
}

// Run executes chunk from its first byte until OP_RETURN and returns the
// value it printed.
func (vm *VM) Run(chunk *Chunk) (Value, error) {
	vm.chunk = chunk
	vm.ip = 0
	vm.resetStack()
	return vm.run()
}

func (vm *VM) run() (Value, error) {
	for {
		if vm.config.TraceExecution {
			vm.traceInstruction()
		}

		start := vm.ip
		b, err := vm.readByte()
		if err != nil {
			return 0, vm.runtimeError(start, "", ErrCodeExhausted)
		}
		op, err := DecodeOpcode(b)
		if err != nil {
			return 0, vm.runtimeError(start, "", err)
		}

		switch op {
		case OpConstant:
			var constant Value
			if constant, err = vm.readConstant(); err == nil {
				err = vm.push(constant)
			}
		case OpAdd, OpSubtract, OpMultiply, OpDivide:
			err = vm.binaryOp(op)
		case OpNegate:
			var v Value
			if v, err = vm.pop(); err == nil {
				err = vm.push(-v)
			}
		case OpReturn:
			v, err := vm.pop()
			if err != nil {
				return 0, vm.runtimeError(start, op.String(), err)
			}
			fmt.Fprintf(vm.config.Stdout, "%s\n", v)
			return v, nil
		}

		if err != nil {
			return 0, vm.runtimeError(start, op.String(), err)
		}
	}
}

func (vm *VM) binaryOp(op Opcode) error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}

	switch op {
	case OpAdd:
		return vm.push(a + b)
	case OpSubtract:
		return vm.push(a - b)
	case OpMultiply:
		return vm.push(a * b)
	default:
		return vm.push(a / b)
	}
}

func (vm *VM) readByte() (byte, error) {
	if vm.ip >= len(vm.chunk.Code) {
		return 0, ErrTruncatedCode
	}
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b, nil
}

func (vm *VM) readConstant() (Value, error) {
	idx, err := vm.readByte()
	if err != nil {
		return 0, err
	}
	if int(idx) >= len(vm.chunk.Constants) {
		return 0, fmt.Errorf("%w: %d", ErrConstantIndex, idx)
	}
	return vm.chunk.Constants[idx], nil
}

func (vm *VM) push(v Value) error {
	if vm.stackTop >= StackMax {
		return ErrStackOverflow
	}
	vm.stack[vm.stackTop] = v
	vm.stackTop++
	return nil
}

func (vm *VM) pop() (Value, error) {
	if vm.stackTop == 0 {
		return 0, ErrStackUnderflow
	}
	vm.stackTop--
	return vm.stack[vm.stackTop], nil
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
}

func (vm *VM) traceInstruction() {
	var b strings.Builder
	b.WriteString("          ")
	for _, v := range vm.stack[:vm.stackTop] {
		fmt.Fprintf(&b, "[ %s ]", v)
	}
	b.WriteString("\n")
	fmt.Fprint(vm.config.Stdout, b.String())

	if vm.ip < len(vm.chunk.Code) {
		vm.chunk.DisassembleInstruction(vm.config.Stdout, vm.ip)
	}
}

func (vm *VM) runtimeError(offset int, instruction string, err error) *RuntimeError {
	return &RuntimeError{
		Err:         err,
		Offset:      offset,
		Line:        vm.chunk.Line(offset),
		Instruction: instruction,
	}
}

func (vm *VM) reportRuntimeError(err error) {
	fmt.Fprintln(vm.config.Stderr, err)
	if rtErr, ok := err.(*RuntimeError); ok && rtErr.Line > 0 {
		fmt.Fprintf(vm.config.Stderr, "[line %d] in script\n", rtErr.Line)
	}
	vm.resetStack()
}
