package velac

// parseStatement parses one statement, per spec.md §4.3's for-loop and
// general-purpose statement grammar. On error it resynchronizes at the
// next `;`/`}` and returns a NoOpStmt so the surrounding block can
// keep going.
func (p *Parser) parseStatement() Statement {
	switch {
	case p.tok.IsPunct('{'):
		return p.parseBlock()
	case p.tok.IsKeyword(KwLet), p.tok.IsKeyword(KwVar), p.tok.IsKeyword(KwConst):
		s := p.parseLocalDecl()
		p.expectPunct(';')
		return s
	case p.tok.IsKeyword(KwIf):
		return p.parseIf()
	case p.tok.IsKeyword(KwWhile):
		return p.parseWhile()
	case p.tok.IsKeyword(KwFor):
		return p.parseFor()
	case p.tok.IsKeyword(KwBreak):
		sp := p.tok.Span
		p.next()
		p.expectPunct(';')
		return &BreakStmt{stmtBase{span: sp}}
	case p.tok.IsKeyword(KwContinue):
		sp := p.tok.Span
		p.next()
		p.expectPunct(';')
		return &ContinueStmt{stmtBase{span: sp}}
	case p.tok.IsKeyword(KwReturn):
		start := p.tok.Span
		p.next()
		var val Expression
		if !p.tok.IsPunct(';') {
			val = p.parseExpression()
		}
		end := p.tok.Span
		p.expectPunct(';')
		return &ReturnStmt{stmtBase: stmtBase{span: joinSpan(start, end)}, Value: val}
	case p.tok.IsKeyword(KwAssert):
		start := p.tok.Span
		p.next()
		cond := p.parseExpression()
		var msg Expression
		if p.tok.IsPunct(',') {
			p.next()
			msg = p.parseExpression()
		}
		end := p.tok.Span
		p.expectPunct(';')
		return &AssertStmt{stmtBase: stmtBase{span: joinSpan(start, end)}, Cond: cond, Message: msg}
	case p.tok.IsKeyword(KwFree):
		start := p.tok.Span
		p.next()
		target := p.parseExpression()
		end := p.tok.Span
		p.expectPunct(';')
		return &FreeStmt{stmtBase: stmtBase{span: joinSpan(start, end)}, Target: target}
	case p.tok.IsPunct(';'):
		sp := p.tok.Span
		p.next()
		return &NoOpStmt{stmtBase{span: sp}}
	default:
		start := p.tok.Span
		e := p.parseExpression()
		end := p.tok.Span
		p.expectPunct(';')
		return &ExprStmt{stmtBase: stmtBase{span: joinSpan(start, end)}, Expr: e}
	}
}

func (p *Parser) parseBlock() *BlockStmt {
	start := p.tok.Span
	p.expectPunct('{')
	var stmts []Statement
	for !p.tok.IsPunct('}') && !p.tok.Is(TokEOF) {
		before := p.tok
		stmts = append(stmts, p.parseStatement())
		if p.tok == before {
			p.synchronize()
		}
	}
	end := p.tok.Span
	p.expectPunct('}')
	return &BlockStmt{stmtBase: stmtBase{span: joinSpan(start, end)}, Stmts: stmts}
}

// parseLocalDecl parses `let|var|const [Type] name [= init] (, name
// [= init])*` without the trailing `;` (callers add it, since for-loop
// init clauses share this parse but terminate on `;` differently).
func (p *Parser) parseLocalDecl() *LocalDeclStmt {
	start := p.tok.Span
	isConst := p.tok.IsKeyword(KwConst)
	p.next() // let|var|const

	// A declared type is present unless the declarator list starts
	// with a bare `name =`/`name,`/`name;` (`let`/`var` type
	// inference from the initializer), per spec.md §4.3.
	var declaredType TypeExpr
	bareDeclarator := p.tok.Is(TokIdentifier) &&
		(p.peek().IsOp('=') || p.peek().IsPunct(',') || p.peek().IsPunct(';'))
	if looksLikeTypeStart(p.tok) && !bareDeclarator {
		declaredType = p.parseType()
	}

	var declarators []Declarator
	for {
		name, sp, _ := p.expectIdentifier()
		d := Declarator{Name: name, Span: sp}
		if p.tok.IsOp('=') && !p.peek().IsOp('=') {
			p.next()
			d.Init = p.parseAssignment()
		}
		declarators = append(declarators, d)
		if p.tok.IsPunct(',') {
			p.next()
			continue
		}
		break
	}
	end := p.tok.Span
	return &LocalDeclStmt{stmtBase: stmtBase{span: joinSpan(start, end)}, Const: isConst, DeclaredType: declaredType, Declarators: declarators}
}

func looksLikeTypeStart(t Token) bool {
	if t.Is(TokKeyword) {
		return primitiveTypeKeywords[t.Keyword]
	}
	return t.Is(TokIdentifier)
}

func (p *Parser) parseIf() Statement {
	start := p.tok.Span
	p.next()
	p.expectPunct('(')
	cond := p.parseExpression()
	p.expectPunct(')')
	then := p.parseStatement()
	var elseStmt Statement
	if p.tok.IsKeyword(KwElse) {
		p.next()
		elseStmt = p.parseStatement()
	}
	end := then.Span()
	if elseStmt != nil {
		end = elseStmt.Span()
	}
	return &IfStmt{stmtBase: stmtBase{span: joinSpan(start, end)}, Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhile() Statement {
	start := p.tok.Span
	p.next()
	p.expectPunct('(')
	cond := p.parseExpression()
	p.expectPunct(')')
	body := p.parseStatement()
	return &WhileStmt{stmtBase: stmtBase{span: joinSpan(start, body.Span())}, Cond: cond, Body: body}
}

// parseFor parses both the C-style `for (init; cond; step) body` and
// the for-each `for const|var name : container body` forms, per
// spec.md §4.3. The for-each header may also be written in parentheses.
func (p *Parser) parseFor() Statement {
	start := p.tok.Span
	p.next()
	paren := p.tok.IsPunct('(')
	if paren {
		p.next()
	}

	if p.tok.IsKeyword(KwConst) || p.tok.IsKeyword(KwVar) {
		isConst := p.tok.IsKeyword(KwConst)
		p.next()
		name, _, _ := p.expectIdentifier()
		p.expectPunct(':')
		container := p.parseExpression()
		if paren {
			p.expectPunct(')')
		}
		body := p.parseStatement()
		return &ForStmt{
			stmtBase: stmtBase{span: joinSpan(start, body.Span())},
			ForEach:  true, IterConst: isConst, IterName: name, Container: container, Body: body,
		}
	}

	if !paren {
		p.expectPunct('(')
	}
	var initStmt Statement
	if !p.tok.IsPunct(';') {
		if p.tok.IsKeyword(KwLet) {
			initStmt = p.parseLocalDecl()
		} else {
			s := p.tok.Span
			e := p.parseExpression()
			initStmt = &ExprStmt{stmtBase: stmtBase{span: joinSpan(s, e.Span())}, Expr: e}
		}
	}
	p.expectPunct(';')
	var cond Expression
	if !p.tok.IsPunct(';') {
		cond = p.parseExpression()
	}
	p.expectPunct(';')
	var step Expression
	if !p.tok.IsPunct(')') {
		step = p.parseExpression()
	}
	p.expectPunct(')')
	body := p.parseStatement()
	return &ForStmt{
		stmtBase: stmtBase{span: joinSpan(start, body.Span())},
		Init:     initStmt, Cond: cond, Step: step, Body: body,
	}
}
