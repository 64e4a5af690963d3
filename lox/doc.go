// Package lox implements a single-pass bytecode compiler and a stack-based
// virtual machine for arithmetic expressions:
//   - Numeric literals such as `3` and `1.25`.
//   - Binary `+ - * /` with the usual precedence and left associativity.
//   - Unary negation and parenthesised grouping.
//
// The scanner already recognises the keywords and punctuation of the full
// language; the compiler rejects anything that is not an expression. Source
// is compiled straight into a Chunk (code bytes, a per-byte line table and a
// constant pool) which the VM then executes. Compile errors are reported in
// the form `[line N] Error at 'x': message`, and a compile stops reporting
// after its first error.
package lox
