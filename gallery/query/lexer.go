package query

import (
	"strings"
)

// Token represents a lexical token
type Token struct {
	Kind  TokenKind
	Value string
}

// TokenKind is the type of token
type TokenKind int

const (
	TokLParen TokenKind = iota
	TokRParen
	TokQuoted
	TokGte
	TokLte
	TokGt
	TokLt
	TokEq
	TokColon
	TokHyphen
	TokAnd
	TokOr
	TokNot
	TokIdent
	TokEOF
)

// String returns the name used for the kind in syntax error messages.
func (k TokenKind) String() string {
	switch k {
	case TokLParen:
		return "LPAREN"
	case TokRParen:
		return "RPAREN"
	case TokQuoted:
		return "QUOTED_STRING"
	case TokGte:
		return "GTE"
	case TokLte:
		return "LTE"
	case TokGt:
		return "GT"
	case TokLt:
		return "LT"
	case TokEq:
		return "EQ"
	case TokColon:
		return "COLON"
	case TokHyphen:
		return "HYPHEN"
	case TokAnd:
		return "AND"
	case TokOr:
		return "OR"
	case TokNot:
		return "NOT"
	case TokIdent:
		return "IDENTIFIER"
	case TokEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// isLiteral reports whether the kind carries a user value (bare word or quoted string).
func (k TokenKind) isLiteral() bool {
	return k == TokIdent || k == TokQuoted
}

// isComparison reports whether the kind is one of the field comparison operators.
func (k TokenKind) isComparison() bool {
	switch k {
	case TokGt, TokLt, TokGte, TokLte, TokEq:
		return true
	}
	return false
}

// Lexer tokenizes a search string
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a new lexer for the input string
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: []rune(input),
		pos:   0,
	}
}

// Lex tokenizes the entire input. The returned slice always ends with a TokEOF token.
// Scanning never fails: an unterminated quoted string runs to the end of input.
func Lex(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.Next()
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}

	return tokens
}

// Next returns the next token
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Kind: TokEOF}
	}

	ch := l.input[l.pos]

	// Two-character tokens first
	if ch == '>' && l.peek(1) == '=' {
		l.pos += 2
		return Token{Kind: TokGte, Value: ">="}
	}
	if ch == '<' && l.peek(1) == '=' {
		l.pos += 2
		return Token{Kind: TokLte, Value: "<="}
	}

	switch ch {
	case '(':
		l.pos++
		return Token{Kind: TokLParen, Value: "("}
	case ')':
		l.pos++
		return Token{Kind: TokRParen, Value: ")"}
	case '"':
		return l.scanString()
	case '>':
		l.pos++
		return Token{Kind: TokGt, Value: ">"}
	case '<':
		l.pos++
		return Token{Kind: TokLt, Value: "<"}
	case '=':
		l.pos++
		return Token{Kind: TokEq, Value: "="}
	case ':':
		l.pos++
		return Token{Kind: TokColon, Value: ":"}
	case '-':
		l.pos++
		return Token{Kind: TokHyphen, Value: "-"}
	}

	return l.scanWord()
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) peek(offset int) rune {
	pos := l.pos + offset
	if pos < len(l.input) {
		return l.input[pos]
	}
	return 0
}

// scanString captures everything up to the next quote verbatim. No escapes.
func (l *Lexer) scanString() Token {
	l.pos++ // consume opening quote
	start := l.pos

	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.pos++
	}
	value := string(l.input[start:l.pos])

	if l.pos < len(l.input) {
		l.pos++ // consume closing quote
	}
	return Token{Kind: TokQuoted, Value: value}
}

func (l *Lexer) scanWord() Token {
	start := l.pos

	for l.pos < len(l.input) && !isDelimiter(l.input[l.pos]) {
		l.pos++
	}

	value := string(l.input[start:l.pos])

	switch strings.ToUpper(value) {
	case "AND":
		return Token{Kind: TokAnd, Value: "AND"}
	case "OR":
		return Token{Kind: TokOr, Value: "OR"}
	case "NOT":
		return Token{Kind: TokNot, Value: "NOT"}
	}

	return Token{Kind: TokIdent, Value: value}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDelimiter(ch rune) bool {
	if isSpace(ch) {
		return true
	}
	switch ch {
	case '(', ')', '"', '>', '<', '=', ':', '-':
		return true
	}
	return false
}
