package lox

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenEOF TokenType = "EOF"

	// Emitted in place of a token when scanning fails.
	tokenError TokenType = "ERROR"

	tokenLeftParen  TokenType = "("
	tokenRightParen TokenType = ")"
	tokenLeftBrace  TokenType = "{"
	tokenRightBrace TokenType = "}"
	tokenComma      TokenType = ","
	tokenDot        TokenType = "."
	tokenMinus      TokenType = "-"
	tokenPlus       TokenType = "+"
	tokenSemicolon  TokenType = ";"
	tokenSlash      TokenType = "/"
	tokenStar       TokenType = "*"

	tokenBang         TokenType = "!"
	tokenBangEqual    TokenType = "!="
	tokenEqual        TokenType = "="
	tokenEqualEqual   TokenType = "=="
	tokenGreater      TokenType = ">"
	tokenGreaterEqual TokenType = ">="
	tokenLess         TokenType = "<"
	tokenLessEqual    TokenType = "<="

	tokenIdentifier TokenType = "IDENT"
	tokenString     TokenType = "STRING"
	tokenNumber     TokenType = "NUMBER"

	tokenAnd    TokenType = "AND"
	tokenClass  TokenType = "CLASS"
	tokenElse   TokenType = "ELSE"
	tokenFalse  TokenType = "FALSE"
	tokenFor    TokenType = "FOR"
	tokenFun    TokenType = "FUN"
	tokenIf     TokenType = "IF"
	tokenNil    TokenType = "NIL"
	tokenOr     TokenType = "OR"
	tokenPrint  TokenType = "PRINT"
	tokenReturn TokenType = "RETURN"
	tokenSuper  TokenType = "SUPER"
	tokenThis   TokenType = "THIS"
	tokenTrue   TokenType = "TRUE"
	tokenVar    TokenType = "VAR"
	tokenWhile  TokenType = "WHILE"
)

// Token is a classified span of source text. The lexeme is not stored;
// slice it out of the source with Lexeme.
type Token struct {
	Type   TokenType
	Start  int
	Length int
	Line   int
}

// Lexeme returns the source text the token covers.
func (t Token) Lexeme(source string) string {
	end := t.Start + t.Length
	if t.Start < 0 || end > len(source) || t.Start > end {
		return ""
	}
	return source[t.Start:end]
}
