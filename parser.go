package velac

import "fmt"

// Parser is a recursive-descent parser driving a Lexer. It records
// diagnostics but never aborts the file on the first error,
// resynchronizing at `;`/`}` boundaries per spec.md §4.3.
type Parser struct {
	lex    *Lexer
	sink   DiagnosticSink
	file   string
	fileID FileID

	tok    Token
	lookahead []Token // pending tokens already pulled from the lexer
}

func NewParser(lex *Lexer, fileID FileID, filename string, sink DiagnosticSink) *Parser {
	p := &Parser{lex: lex, sink: sink, file: filename, fileID: fileID}
	p.tok = p.lex.Next()
	return p
}

func (p *Parser) diag(sev DiagnosticSeverity, sp Span, format string, args ...any) {
	if p.sink == nil {
		return
	}
	p.sink(Diagnostic{Severity: sev, File: p.file, Span: sp, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) next() Token {
	if len(p.lookahead) > 0 {
		p.tok = p.lookahead[0]
		p.lookahead = p.lookahead[1:]
	} else {
		p.tok = p.lex.Next()
	}
	return p.tok
}

// peek returns the next token without consuming it.
func (p *Parser) peek() Token { return p.peekN(1) }

// peekN returns the token n positions ahead of the current one
// (n=1 is the immediate lookahead), pulling from the lexer as needed
// and buffering the result so later peeks/next calls see it.
func (p *Parser) peekN(n int) Token {
	for len(p.lookahead) < n {
		p.lookahead = append(p.lookahead, p.lex.Next())
	}
	return p.lookahead[n-1]
}

type parserState struct {
	cur       cursorState
	tok       Token
	lookahead []Token
}

func (p *Parser) snapshot() parserState {
	return parserState{cur: p.lex.Snapshot(), tok: p.tok, lookahead: append([]Token(nil), p.lookahead...)}
}

func (p *Parser) restore(s parserState) {
	p.lex.Restore(s.cur)
	p.tok = s.tok
	p.lookahead = s.lookahead
}

// adjacent reports whether b's span starts exactly where a's span
// ends, i.e. there is no whitespace/comment between them. Used to
// decide whether `ident<` opens a speculative generic-argument list
// (spec.md §4.3).
func adjacent(a, b Token) bool {
	return a.Span.End.Cursor == b.Span.Start.Cursor
}

func (p *Parser) expectPunct(b byte) (Token, bool) {
	if p.tok.IsPunct(b) {
		t := p.tok
		p.next()
		return t, true
	}
	p.diag(DiagnosticError, p.tok.Span, "expected `%c`, found `%s`", b, p.tok.Text())
	return p.tok, false
}

func (p *Parser) expectOp(b byte) (Token, bool) {
	if p.tok.IsOp(b) {
		t := p.tok
		p.next()
		return t, true
	}
	p.diag(DiagnosticError, p.tok.Span, "expected `%c`, found `%s`", b, p.tok.Text())
	return p.tok, false
}

func (p *Parser) expectKeyword(k KeywordKind) bool {
	if p.tok.IsKeyword(k) {
		p.next()
		return true
	}
	p.diag(DiagnosticError, p.tok.Span, "expected keyword, found `%s`", p.tok.Text())
	return false
}

func (p *Parser) expectIdentifier() (string, Span, bool) {
	if p.tok.Is(TokIdentifier) {
		name, sp := p.tok.Text(), p.tok.Span
		p.next()
		return name, sp, true
	}
	p.diag(DiagnosticError, p.tok.Span, "expected identifier, found `%s`", p.tok.Text())
	return "", p.tok.Span, false
}

// synchronize skips tokens until a statement/declaration boundary
// (`;` or `}`) so parsing of later constructs can still be reported,
// per spec.md §4.3 and §7.
func (p *Parser) synchronize() {
	for {
		if p.tok.Is(TokEOF) {
			return
		}
		if p.tok.IsPunct(';') {
			p.next()
			return
		}
		if p.tok.IsPunct('}') {
			return
		}
		p.next()
	}
}

// ParseFile parses one complete source file into a SourceFile AST
// root: module/namespace/import directives followed by top-level
// declarations, per spec.md §4.3.
func ParseFile(fileID FileID, filename string, source []byte, sink DiagnosticSink) *SourceFile {
	lines := NewLineIndex(fileID, source)
	lex := NewLexer(fileID, filename, source, sink)
	p := NewParser(lex, fileID, filename, sink)

	f := &SourceFile{ID: fileID, Path: filename, Source: source, Lines: lines}

	if p.tok.IsKeyword(KwModule) {
		f.Module = p.parseModuleDecl()
	}
	if p.tok.IsKeyword(KwNamespace) {
		f.Namespace = p.parseNamespaceDecl()
	}
	for p.tok.IsKeyword(KwImport) {
		f.Imports = append(f.Imports, p.parseImportDecl()...)
	}

	for !p.tok.Is(TokEOF) {
		before := p.tok
		d := p.parseDeclaration(f)
		if d != nil {
			f.Decls = append(f.Decls, d)
		}
		if p.tok == before {
			// Parser made no progress; force it forward to avoid an
			// infinite loop on a token no declaration rule accepts.
			p.diag(DiagnosticError, p.tok.Span, "unexpected token `%s`", p.tok.Text())
			p.next()
		}
	}
	return f
}

func (p *Parser) parseDottedPath() ([]string, Span) {
	var parts []string
	name, sp, _ := p.expectIdentifier()
	parts = append(parts, name)
	end := sp
	for p.tok.IsPunct('.') {
		p.next()
		name, s2, _ := p.expectIdentifier()
		parts = append(parts, name)
		end = s2
	}
	return parts, Span{File: sp.File, Start: sp.Start, End: end.End}
}

func (p *Parser) parseModuleDecl() *ModuleDecl {
	start := p.tok.Span
	p.next() // `module`
	path, _ := p.parseDottedPath()
	end := p.tok.Span
	p.expectPunct(';')
	return &ModuleDecl{Path: path, Span: Span{File: start.File, Start: start.Start, End: end.End}}
}

func (p *Parser) parseNamespaceDecl() *NamespaceDecl {
	start := p.tok.Span
	p.next() // `namespace`
	name, sp, _ := p.expectIdentifier()
	p.expectPunct(';')
	return &NamespaceDecl{Name: name, Span: Span{File: start.File, Start: start.Start, End: sp.End}}
}

// parseImportDecl parses `import a.b, c.*, d.**;` into one ImportSpec
// per comma-separated entry.
func (p *Parser) parseImportDecl() []ImportSpec {
	p.next() // `import`
	var specs []ImportSpec
	for {
		start := p.tok.Span
		var path []string
		wildcard := ImportNone

		name, sp, _ := p.expectIdentifier()
		path = append(path, name)
		end := sp

		for p.tok.IsPunct('.') {
			p.next() // consume '.'
			if p.tok.IsOp('*') {
				firstStar := p.tok
				p.next()
				if p.tok.IsOp('*') && adjacent(firstStar, p.tok) {
					end = p.tok.Span
					p.next()
					wildcard = ImportDescendants
				} else {
					end = firstStar.Span
					wildcard = ImportChildren
				}
				break
			}
			name, s2, _ := p.expectIdentifier()
			path = append(path, name)
			end = s2
		}

		specs = append(specs, ImportSpec{Path: path, Wildcard: wildcard, Span: Span{File: start.File, Start: start.Start, End: end.End}})
		if p.tok.IsPunct(',') {
			p.next()
			continue
		}
		break
	}
	p.expectPunct(';')
	return specs
}
