package lox

type precedence int

const (
	precNone precedence = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

type parseFn func()

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

func (p *parser) registerRules() {
	p.rules = map[TokenType]parseRule{
		tokenLeftParen: {prefix: p.grouping},
		tokenMinus:     {prefix: p.unary, infix: p.binary, precedence: precTerm},
		tokenPlus:      {infix: p.binary, precedence: precTerm},
		tokenSlash:     {infix: p.binary, precedence: precFactor},
		tokenStar:      {infix: p.binary, precedence: precFactor},
		tokenNumber:    {prefix: p.number},
	}
}

// getRule returns the rule for tt. Token types without an entry have no
// handlers and precNone.
func (p *parser) getRule(tt TokenType) parseRule {
	return p.rules[tt]
}
