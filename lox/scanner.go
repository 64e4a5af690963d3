package lox

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrUnexpectedCharacter = errors.New("Unexpected character.") //nolint:staticcheck // diagnostic text
	ErrUnterminatedString  = errors.New("Unterminated string.")  //nolint:staticcheck // diagnostic text
)

// ScanError reports a lexical error. Token covers the offending input and
// has type tokenError.
type ScanError struct {
	Err   error
	Token Token
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("[line %d] %v", e.Token.Line, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

type scanner struct {
	source string

	start   int
	current int
	line    int
}

func newScanner(source string) *scanner {
	return &scanner{source: source, line: 1}
}

// scanToken returns the next token. Once the input is exhausted every call
// returns an EOF token. On error the offending input has been consumed, so
// the following call resumes after it.
func (s *scanner) scanToken() (Token, error) {
	s.skipWhitespace()
	s.start = s.current

	if s.atEnd() {
		return s.makeToken(tokenEOF), nil
	}

	c := s.advance()
	switch {
	case isAlpha(c):
		return s.identifier(), nil
	case isDigit(c):
		return s.number(), nil
	}

	switch c {
	case '(':
		return s.makeToken(tokenLeftParen), nil
	case ')':
		return s.makeToken(tokenRightParen), nil
	case '{':
		return s.makeToken(tokenLeftBrace), nil
	case '}':
		return s.makeToken(tokenRightBrace), nil
	case ';':
		return s.makeToken(tokenSemicolon), nil
	case ',':
		return s.makeToken(tokenComma), nil
	case '.':
		return s.makeToken(tokenDot), nil
	case '-':
		return s.makeToken(tokenMinus), nil
	case '+':
		return s.makeToken(tokenPlus), nil
	case '/':
		return s.makeToken(tokenSlash), nil
	case '*':
		return s.makeToken(tokenStar), nil
	case '!':
		return s.makeToken(s.pick('=', tokenBangEqual, tokenBang)), nil
	case '=':
		return s.makeToken(s.pick('=', tokenEqualEqual, tokenEqual)), nil
	case '<':
		return s.makeToken(s.pick('=', tokenLessEqual, tokenLess)), nil
	case '>':
		return s.makeToken(s.pick('=', tokenGreaterEqual, tokenGreater)), nil
	case '"':
		return s.stringLiteral()
	}

	// Consume the rest of a multi-byte rune so the error covers one character.
	if c >= utf8.RuneSelf {
		_, width := utf8.DecodeRuneInString(s.source[s.start:])
		s.current = s.start + width
	}
	return s.errorToken(ErrUnexpectedCharacter)
}

func (s *scanner) atEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *scanner) match(expected byte) bool {
	if s.atEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *scanner) pick(next byte, long, short TokenType) TokenType {
	if s.match(next) {
		return long
	}
	return short
}

func (s *scanner) makeToken(tt TokenType) Token {
	return Token{Type: tt, Start: s.start, Length: s.current - s.start, Line: s.line}
}

func (s *scanner) errorToken(err error) (Token, error) {
	tok := s.makeToken(tokenError)
	return tok, &ScanError{Err: err, Token: tok}
}

func (s *scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.current++
		case '\n':
			s.line++
			s.current++
		case '/':
			if s.peekNext() != '/' {
				return
			}
			for s.peek() != '\n' && !s.atEnd() {
				s.current++
			}
		default:
			return
		}
	}
}

func (s *scanner) stringLiteral() (Token, error) {
	line := s.line
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.current++
	}

	if s.atEnd() {
		tok := Token{Type: tokenError, Start: s.start, Length: s.current - s.start, Line: line}
		return tok, &ScanError{Err: ErrUnterminatedString, Token: tok}
	}

	// closing quote
	s.current++
	return Token{Type: tokenString, Start: s.start, Length: s.current - s.start, Line: line}, nil
}

func (s *scanner) number() Token {
	for isDigit(s.peek()) {
		s.current++
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.current++
		for isDigit(s.peek()) {
			s.current++
		}
	}

	return s.makeToken(tokenNumber)
}

func (s *scanner) identifier() Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.current++
	}
	return s.makeToken(s.identifierType())
}

// identifierType resolves keywords by their first character and then the
// exact remaining suffix.
func (s *scanner) identifierType() TokenType {
	switch s.source[s.start] {
	case 'a':
		return s.checkKeyword(1, "nd", tokenAnd)
	case 'c':
		return s.checkKeyword(1, "lass", tokenClass)
	case 'e':
		return s.checkKeyword(1, "lse", tokenElse)
	case 'f':
		if s.current-s.start > 1 {
			switch s.source[s.start+1] {
			case 'a':
				return s.checkKeyword(2, "lse", tokenFalse)
			case 'o':
				return s.checkKeyword(2, "r", tokenFor)
			case 'u':
				return s.checkKeyword(2, "n", tokenFun)
			}
		}
	case 'i':
		return s.checkKeyword(1, "f", tokenIf)
	case 'n':
		return s.checkKeyword(1, "il", tokenNil)
	case 'o':
		return s.checkKeyword(1, "r", tokenOr)
	case 'p':
		return s.checkKeyword(1, "rint", tokenPrint)
	case 'r':
		return s.checkKeyword(1, "eturn", tokenReturn)
	case 's':
		return s.checkKeyword(1, "uper", tokenSuper)
	case 't':
		if s.current-s.start > 1 {
			switch s.source[s.start+1] {
			case 'h':
				return s.checkKeyword(2, "is", tokenThis)
			case 'r':
				return s.checkKeyword(2, "ue", tokenTrue)
			}
		}
	case 'v':
		return s.checkKeyword(1, "ar", tokenVar)
	case 'w':
		return s.checkKeyword(1, "hile", tokenWhile)
	}
	return tokenIdentifier
}

func (s *scanner) checkKeyword(offset int, rest string, tt TokenType) TokenType {
	if s.current-s.start == offset+len(rest) && s.source[s.start+offset:s.current] == rest {
		return tt
	}
	return tokenIdentifier
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
