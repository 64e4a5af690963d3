package lox

import (
	"errors"
	"fmt"
)

// Opcode is a single-byte instruction tag.
type Opcode byte

const (
	OpConstant Opcode = iota // push constants[operand]: OpConstant <index:u8>
	OpAdd                    // pop b, pop a, push a+b
	OpSubtract               // pop b, pop a, push a-b
	OpMultiply               // pop b, pop a, push a*b
	OpDivide                 // pop b, pop a, push a/b
	OpNegate                 // pop v, push -v
	OpReturn                 // pop v, print it, halt
)

// OpcodeInfo describes an opcode for the disassembler and the decoder.
type OpcodeInfo struct {
	Name       string
	OperandLen int
	StackPop   int
	StackPush  int
}

var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpConstant: {"OP_CONSTANT", 1, 0, 1},
	OpAdd:      {"OP_ADD", 0, 2, 1},
	OpSubtract: {"OP_SUBTRACT", 0, 2, 1},
	OpMultiply: {"OP_MULTIPLY", 0, 2, 1},
	OpDivide:   {"OP_DIVIDE", 0, 2, 1},
	OpNegate:   {"OP_NEGATE", 0, 1, 1},
	OpReturn:   {"OP_RETURN", 0, 1, 0},
}

// ErrUnknownOpcode is returned when a byte does not name any instruction.
var ErrUnknownOpcode = errors.New("unknown opcode")

// DecodeOpcode validates a raw code byte.
func DecodeOpcode(b byte) (Opcode, error) {
	op := Opcode(b)
	if _, ok := opcodeInfoTable[op]; !ok {
		return 0, fmt.Errorf("%w %d", ErrUnknownOpcode, b)
	}
	return op, nil
}

// Info returns the opcode's metadata. Unknown opcodes get a placeholder name.
func (op Opcode) Info() OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(%d)", byte(op))}
}

func (op Opcode) String() string {
	return op.Info().Name
}

// InstructionLen is the opcode byte plus its operand bytes.
func (op Opcode) InstructionLen() int {
	return 1 + op.Info().OperandLen
}

// binaryOpcodes maps binary operator tokens to the instruction they compile to.
var binaryOpcodes = map[TokenType]Opcode{
	tokenPlus:  OpAdd,
	tokenMinus: OpSubtract,
	tokenStar:  OpMultiply,
	tokenSlash: OpDivide,
}
