package lox

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

type parser struct {
	scanner *scanner
	source  string
	chunk   *Chunk
	diag    io.Writer

	current  Token
	previous Token

	hadError  bool
	panicMode bool

	diagnostics []Diagnostic
	rules       map[TokenType]parseRule
}

func newParser(source string, chunk *Chunk, diag io.Writer) *parser {
	if diag == nil {
		diag = io.Discard
	}
	p := &parser{
		scanner: newScanner(source),
		source:  source,
		chunk:   chunk,
		diag:    diag,
	}
	p.registerRules()
	return p
}

// Compile translates source into chunk, writing one line per diagnostic to
// diag. It returns a *CompileError if any diagnostic was raised; chunk
// contents are unspecified in that case.
func Compile(source string, chunk *Chunk, diag io.Writer) error {
	p := newParser(source, chunk, diag)

	p.advance()
	p.expression()
	p.consume(tokenEOF, "Expect end of expression.")
	p.endCompiler()

	if p.hadError {
		return &CompileError{Diagnostics: p.diagnostics}
	}
	return nil
}

func (p *parser) advance() {
	p.previous = p.current

	for {
		tok, err := p.scanner.scanToken()
		p.current = tok
		if err == nil {
			return
		}
		p.errorAtCurrent(scanErrorMessage(err))
	}
}

func scanErrorMessage(err error) string {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Err.Error()
	}
	return err.Error()
}

func (p *parser) consume(tt TokenType, message string) {
	if p.current.Type == tt {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *parser) expression() {
	p.parsePrecedence(precAssignment)
}

func (p *parser) parsePrecedence(prec precedence) {
	p.advance()
	prefix := p.getRule(p.previous.Type).prefix
	if prefix == nil {
		p.error("Expect expression.")
		return
	}
	prefix()

	for prec <= p.getRule(p.current.Type).precedence {
		p.advance()
		infix := p.getRule(p.previous.Type).infix
		if infix == nil {
			return
		}
		infix()
	}
}

func (p *parser) number() {
	value, err := strconv.ParseFloat(p.previous.Lexeme(p.source), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.error("Invalid number literal.")
		return
	}
	p.emitConstant(Value(value))
}

func (p *parser) grouping() {
	p.expression()
	p.consume(tokenRightParen, "Expect ')' after expression.")
}

func (p *parser) unary() {
	operator := p.previous.Type

	p.parsePrecedence(precUnary)

	if operator == tokenMinus {
		p.emitOp(OpNegate)
	}
}

func (p *parser) binary() {
	operator := p.previous.Type
	rule := p.getRule(operator)
	p.parsePrecedence(rule.precedence + 1)

	if op, ok := binaryOpcodes[operator]; ok {
		p.emitOp(op)
	}
}

func (p *parser) emitByte(b byte) {
	p.chunk.Write(b, p.previous.Line)
}

func (p *parser) emitOp(op Opcode) {
	p.emitByte(byte(op))
}

func (p *parser) emitConstant(value Value) {
	idx := p.makeConstant(value)
	p.emitOp(OpConstant)
	p.emitByte(idx)
}

func (p *parser) makeConstant(value Value) byte {
	idx := p.chunk.AddConstant(value)
	if idx >= MaxConstants {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

func (p *parser) endCompiler() {
	p.emitOp(OpReturn)
}

func (p *parser) error(message string) {
	p.errorAt(p.previous, message)
}

func (p *parser) errorAtCurrent(message string) {
	p.errorAt(p.current, message)
}

// errorAt reports a diagnostic unless one is already being reported. Panic
// mode is never cleared, so a compile surfaces at most one diagnostic.
func (p *parser) errorAt(tok Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true

	d := Diagnostic{Line: tok.Line, Message: message}
	if tok.Type == tokenEOF {
		d.Where = " at end"
	} else {
		d.Where = fmt.Sprintf(" at '%s'", tok.Lexeme(p.source))
	}

	fmt.Fprintln(p.diag, d.String())
	p.diagnostics = append(p.diagnostics, d)
	p.hadError = true
}
