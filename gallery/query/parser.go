package query

import (
	"fmt"
	"strings"
)

// Parsed is the result of parsing a search string
type Parsed struct {
	Expr Expr
	// TagQueries lists every tag term in source order, lowercased,
	// with group-tag pairs joined as "group-tag".
	TagQueries []string
	// Terms carries the same tag terms with their group/tag structure intact.
	Terms        []TagTerm
	PartialMatch bool
}

// TagTerm is one tag term seen while parsing
type TagTerm struct {
	Group   string
	Tag     string
	Grouped bool
}

// String returns the lowercased form recorded in Parsed.TagQueries.
func (t TagTerm) String() string {
	if t.Grouped {
		return strings.ToLower(t.Group) + "-" + strings.ToLower(t.Tag)
	}
	return strings.ToLower(t.Tag)
}

// Source renders the term as query text that parses back to the same term.
// Both parts are quoted so that keywords, spaces and hyphens survive.
func (t TagTerm) Source() string {
	if t.Grouped {
		return quote(t.Group) + "-" + quote(t.Tag)
	}
	return quote(t.Tag)
}

func quote(s string) string {
	return `"` + s + `"`
}

// Parse parses a search string into an expression AST.
// The input must not be blank; see planner.ParseSearchQuery for the
// entry point that short-circuits empty queries.
func Parse(input string) (*Parsed, error) {
	p := &parser{tokens: Lex(input), pos: 0}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, &SyntaxError{Msg: err.Error()}
	}
	if !p.match(TokEOF) {
		return nil, &SyntaxError{Msg: fmt.Sprintf("Unexpected token: %s", p.current().Kind)}
	}

	return &Parsed{
		Expr:         expr,
		TagQueries:   p.tagQueries,
		Terms:        p.terms,
		PartialMatch: p.partialMatch,
	}, nil
}

type parser struct {
	tokens       []Token
	pos          int
	tagQueries   []string
	terms        []TagTerm
	partialMatch bool
}

// parseExpression handles Term ((AND | OR | implicit AND) Term)*, left-associative.
func (p *parser) parseExpression() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for !p.match(TokEOF) && !p.match(TokRParen) {
		op := OpAnd
		switch p.current().Kind {
		case TokAnd:
			p.advance()
		case TokOr:
			op = OpOr
			p.advance()
		}

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseTerm() (Expr, error) {
	tok := p.current()

	switch tok.Kind {
	case TokEOF:
		return nil, fmt.Errorf("Unexpected end of query")

	case TokNot:
		p.advance()
		operand, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return Unary{Operand: operand}, nil

	case TokLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.match(TokRParen) {
			return nil, fmt.Errorf("Missing closing parenthesis")
		}
		p.advance()
		return expr, nil

	case TokIdent, TokQuoted:
		next := p.peek(1)

		// field:value
		if next.Kind == TokColon {
			return p.parseFieldQuery()
		}

		// field>value shorthand
		if tok.Kind == TokIdent && next.Kind.isComparison() {
			return p.parseComparison()
		}

		// group-tag
		if next.Kind == TokHyphen && p.peek(2).Kind.isLiteral() {
			return p.parseGroupTag(), nil
		}

		return p.parseTagQuery(), nil
	}

	return nil, fmt.Errorf("Unexpected token: %s", tok.Kind)
}

func (p *parser) parseFieldQuery() (Expr, error) {
	field := p.current().Value
	p.advance()

	if !p.match(TokColon) {
		return nil, fmt.Errorf("Expected colon after field name %s", field)
	}
	p.advance()

	op := CmpEq
	if p.current().Kind.isComparison() {
		op = cmpOpFor(p.current().Kind)
		p.advance()
	}

	return p.parseFieldValue(field, op)
}

func (p *parser) parseComparison() (Expr, error) {
	field := p.current().Value
	p.advance()

	op := cmpOpFor(p.current().Kind)
	p.advance()

	return p.parseFieldValue(field, op)
}

func (p *parser) parseFieldValue(field string, op CmpOp) (Expr, error) {
	tok := p.current()
	if tok.Kind == TokEOF {
		return nil, fmt.Errorf("Expected value after operator for field %s", field)
	}
	if !tok.Kind.isLiteral() {
		return nil, fmt.Errorf("Expected string or identifier after operator for field %s", field)
	}
	p.advance()

	if strings.EqualFold(field, "match") && strings.EqualFold(tok.Value, "partial") {
		p.partialMatch = true
		return MatchPartial{}, nil
	}

	return FieldQuery{Field: field, Op: op, Value: tok.Value}, nil
}

func (p *parser) parseGroupTag() Expr {
	groupTok := p.current()
	p.advance() // group
	p.advance() // hyphen
	tagTok := p.current()
	p.advance()

	term := TagTerm{
		Group:   literalValue(groupTok),
		Tag:     literalValue(tagTok),
		Grouped: true,
	}
	p.record(term)

	return GroupTagQuery{Group: term.Group, Tag: term.Tag}
}

func (p *parser) parseTagQuery() Expr {
	value := strings.ToLower(p.current().Value)
	p.advance()

	p.record(TagTerm{Tag: value})
	return TagQuery{Value: value}
}

func (p *parser) record(term TagTerm) {
	p.terms = append(p.terms, term)
	p.tagQueries = append(p.tagQueries, term.String())
}

// literalValue lowercases bare words; quoted strings keep their case.
func literalValue(tok Token) string {
	if tok.Kind == TokQuoted {
		return tok.Value
	}
	return strings.ToLower(tok.Value)
}

func (p *parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Kind: TokEOF}
}

func (p *parser) peek(offset int) Token {
	pos := p.pos + offset
	if pos < len(p.tokens) {
		return p.tokens[pos]
	}
	return Token{Kind: TokEOF}
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *parser) match(kind TokenKind) bool {
	return p.current().Kind == kind
}
