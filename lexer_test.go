package velac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	var diags []Diagnostic
	l := NewLexer(FileID(0), "test.vl", []byte(src), func(d Diagnostic) { diags = append(diags, d) })
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	assert.Empty(t, diags, "unexpected diagnostics: %v", diags)
	return toks
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	toks := lexAll(t, "func add foo_bar")
	require.Len(t, toks, 4)
	assert.True(t, toks[0].IsKeyword(KwFunc))
	assert.Equal(t, TokIdentifier, toks[1].Kind)
	assert.Equal(t, "add", toks[1].Text())
	assert.Equal(t, "foo_bar", toks[2].Text())
}

func TestLexIntegerRadixPrefixes(t *testing.T) {
	toks := lexAll(t, "0b1010 0o17 0xFF 42")
	require.Len(t, toks, 5)
	for _, tok := range toks[:4] {
		assert.Equal(t, TokIntLiteral, tok.Kind)
	}
	assert.Equal(t, "0xFF", toks[2].Text())
}

func TestLexIntegerLiteralWithWidthSuffix(t *testing.T) {
	toks := lexAll(t, "2u64 5i8 9l")
	require.Len(t, toks, 4)
	assert.Equal(t, TokIntLiteral, toks[0].Kind)
	assert.Equal(t, "2u64", toks[0].Text())
	assert.Equal(t, TokIntLiteral, toks[1].Kind)
	assert.Equal(t, "5i8", toks[1].Text())
	assert.Equal(t, TokIntLiteral, toks[2].Kind)
	assert.Equal(t, "9l", toks[2].Text())
}

func TestLexFloatAndDoubleLiterals(t *testing.T) {
	toks := lexAll(t, "3.14 2.5f 1e10")
	require.Len(t, toks, 4)
	assert.Equal(t, TokDoubleLiteral, toks[0].Kind)
	assert.Equal(t, TokFloatLiteral, toks[1].Kind)
	assert.Equal(t, TokDoubleLiteral, toks[2].Kind)
}

func TestLexStringEscapesAndCounts(t *testing.T) {
	toks := lexAll(t, `"hi\n"`)
	require.Len(t, toks, 2)
	tok := toks[0]
	assert.Equal(t, TokStringLiteral, tok.Kind)
	assert.Equal(t, "hi\n", tok.StringValue)
	assert.Equal(t, 3, tok.NumLower)
	assert.Equal(t, 3, tok.NumBytes)
}

func TestLexTripleQuotedStringStripsLeadingNewline(t *testing.T) {
	toks := lexAll(t, "\"\"\"\nhello\"\"\"")
	require.Len(t, toks, 2)
	assert.Equal(t, "hello", toks[0].StringValue)
}

func TestLexUnterminatedStringReportsDiagnostic(t *testing.T) {
	var diags []Diagnostic
	l := NewLexer(FileID(0), "test.vl", []byte(`"unterminated`), func(d Diagnostic) { diags = append(diags, d) })
	l.Next()
	require.NotEmpty(t, diags)
	assert.Equal(t, DiagnosticError, diags[0].Severity)
}

func TestLexOperatorsAreSingleRune(t *testing.T) {
	toks := lexAll(t, "-> == &&")
	// `->`, `==`, `&&` are each composed by the parser from two
	// single-rune TokOp tokens; the lexer never emits a multi-rune op.
	for _, tok := range toks {
		if tok.Kind == TokOp {
			assert.Len(t, tok.Lexeme, 1)
		}
	}
}

func TestLexSkipsLineAndBlockComments(t *testing.T) {
	toks := lexAll(t, "a // comment\nb /* block */ c")
	var idents []string
	for _, tok := range toks {
		if tok.Kind == TokIdentifier {
			idents = append(idents, tok.Text())
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, idents)
}
