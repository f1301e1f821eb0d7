package query

import (
	"testing"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...TokenKind) []Token {
	t.Helper()
	tokens := Lex(input)
	got := kinds(tokens)
	want = append(want, TokEOF)
	if len(got) != len(want) {
		t.Fatalf("Lex(%q): expected %d tokens, got %d: %v", input, len(want), len(got), tokens)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lex(%q): token %d expected %s, got %s", input, i, want[i], got[i])
		}
	}
	return tokens
}

func TestLexFieldQuery(t *testing.T) {
	tokens := expectKinds(t, "year:>=2000", TokIdent, TokColon, TokGte, TokIdent)
	if tokens[0].Value != "year" || tokens[3].Value != "2000" {
		t.Errorf("unexpected values: %v", tokens)
	}
}

func TestLexComparisonOperators(t *testing.T) {
	expectKinds(t, "> >= < <= =", TokGt, TokGte, TokLt, TokLte, TokEq)
}

func TestLexKeywordsAreCaseInsensitive(t *testing.T) {
	tokens := expectKinds(t, "a and b Or not c", TokIdent, TokAnd, TokIdent, TokOr, TokNot, TokIdent)
	if tokens[1].Value != "AND" {
		t.Errorf("expected normalized AND, got %q", tokens[1].Value)
	}
}

func TestLexIdentifierKeepsCase(t *testing.T) {
	tokens := expectKinds(t, "Monet", TokIdent)
	if tokens[0].Value != "Monet" {
		t.Errorf("expected Monet, got %q", tokens[0].Value)
	}
}

func TestLexQuotedString(t *testing.T) {
	tokens := expectKinds(t, `"group A"-"tag B"`, TokQuoted, TokHyphen, TokQuoted)
	if tokens[0].Value != "group A" || tokens[2].Value != "tag B" {
		t.Errorf("unexpected quoted values: %v", tokens)
	}
}

func TestLexQuotedStringIsVerbatim(t *testing.T) {
	tokens := expectKinds(t, `"AND (x) -y:z"`, TokQuoted)
	if tokens[0].Value != "AND (x) -y:z" {
		t.Errorf("expected verbatim content, got %q", tokens[0].Value)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	tokens := expectKinds(t, `tag "open ended`, TokIdent, TokQuoted)
	if tokens[1].Value != "open ended" {
		t.Errorf("expected content to end of input, got %q", tokens[1].Value)
	}
}

func TestLexHyphenSplitsWords(t *testing.T) {
	tokens := expectKinds(t, "style-baroque", TokIdent, TokHyphen, TokIdent)
	if tokens[0].Value != "style" || tokens[2].Value != "baroque" {
		t.Errorf("unexpected values: %v", tokens)
	}
}

func TestLexParensAndWhitespace(t *testing.T) {
	expectKinds(t, "\t( a\n)  ", TokLParen, TokIdent, TokRParen)
}

func TestLexEmpty(t *testing.T) {
	expectKinds(t, "")
	expectKinds(t, "   \t\n")
}

func TestTokenKindString(t *testing.T) {
	cases := map[TokenKind]string{
		TokLParen: "LPAREN",
		TokRParen: "RPAREN",
		TokQuoted: "QUOTED_STRING",
		TokHyphen: "HYPHEN",
		TokIdent:  "IDENTIFIER",
		TokGte:    "GTE",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("expected %s, got %s", want, k.String())
		}
	}
}
