package velac

// parseDeclaration parses one top-level declaration. Unrecognized
// input is reported and skipped to the next resynchronization point
// rather than aborting the file (spec.md §4.3, §7).
func (p *Parser) parseDeclaration(f *SourceFile) Declaration {
	vis := VisPrivate
	if p.tok.IsKeyword(KwPublic) {
		vis = VisPublic
		p.next()
	} else if p.tok.IsKeyword(KwPrivate) {
		p.next()
	}

	extern := false
	if p.tok.IsKeyword(KwExtern) {
		extern = true
		p.next()
	}

	switch {
	case p.tok.IsKeyword(KwFunc):
		return p.parseFunctionDecl(f, vis, extern, FuncFree, nil)
	case p.tok.IsKeyword(KwStruct):
		return p.parseStructDecl(f, vis)
	case p.tok.IsKeyword(KwClass):
		return p.parseClassDecl(f, vis)
	case p.tok.IsKeyword(KwTypedef):
		return p.parseTypedefDecl(f, vis)
	case p.tok.IsKeyword(KwEnum):
		return p.parseEnumDecl(f, vis)
	case p.tok.IsKeyword(KwExprdef):
		return p.parseMacroDecl(f, vis)
	case p.tok.IsKeyword(KwConst), looksLikeTypeStart(p.tok):
		return p.parseGlobalVarDecl(f, vis)
	default:
		p.diag(DiagnosticError, p.tok.Span, "expected a declaration, found `%s`", p.tok.Text())
		p.synchronize()
		return nil
	}
}

// parseGenericParams parses an optional `<T, U>` parameter-name list
// on a struct/class/function declaration.
func (p *Parser) parseGenericParams() []string {
	if !p.tok.IsOp('<') {
		return nil
	}
	p.next()
	var names []string
	for !p.tok.IsOp('>') {
		name, _, _ := p.expectIdentifier()
		names = append(names, name)
		if p.tok.IsPunct(',') {
			p.next()
			continue
		}
		break
	}
	p.expectOp('>')
	return names
}

func (p *Parser) parseParamList() (params []Param, varargs bool, varargsElem TypeExpr) {
	p.expectPunct('(')
	if p.tok.IsPunct(')') {
		p.next()
		return nil, false, nil
	}
	sawDefault := false
	for {
		if p.tok.IsPunct('.') {
			dot1 := p.tok
			p.next()
			if p.tok.IsPunct('.') && adjacent(dot1, p.tok) {
				dot2 := p.tok
				p.next()
				if p.tok.IsPunct('.') && adjacent(dot2, p.tok) {
					p.next()
					varargs = true
					varargsElem = p.parseType()
					break
				}
			}
		}

		start := p.tok.Span
		t := p.parseType()
		name, nsp, _ := p.expectIdentifier()
		param := Param{Name: name, DeclaredType: t, Span: joinSpan(start, nsp)}
		if p.tok.IsOp('=') && !p.peek().IsOp('=') {
			p.next()
			param.Default = p.parseAssignment()
			sawDefault = true
		} else if sawDefault {
			p.diag(DiagnosticError, param.Span, "parameter `%s` must have a default value: once one parameter has a default, all following ones must too", name)
		}
		params = append(params, param)
		if p.tok.IsPunct(',') {
			p.next()
			continue
		}
		break
	}
	p.expectPunct(')')
	return params, varargs, varargsElem
}

// parseFunctionDecl parses `func name<T>(params) -> ret { body }` or
// its header-only `;`-terminated form, and (when receiver != nil) the
// `method`/`constructor` member forms sharing the same shape.
func (p *Parser) parseFunctionDecl(f *SourceFile, vis Visibility, extern bool, kind FunctionKind, receiver *ClassDecl) *FunctionDecl {
	start := p.tok.Span
	p.next() // func|method|constructor

	var name string
	var nameSpan Span
	if kind == FuncConstructor {
		name, nameSpan = receiver.DeclName(), start
	} else {
		name, nameSpan, _ = p.expectIdentifier()
	}

	generics := p.parseGenericParams()
	params, varargs, varargsElem := p.parseParamList()

	var ret TypeExpr
	if p.tok.IsOp('-') && p.peek().IsOp('>') && adjacent(p.tok, p.peek()) {
		p.next()
		p.next()
		ret = p.parseType()
	}

	var body *BlockStmt
	end := nameSpan
	if p.tok.IsPunct('{') {
		body = p.parseBlock()
		end = body.Span()
	} else {
		end = p.tok.Span
		p.expectPunct(';')
	}

	return &FunctionDecl{
		declBase:      declBase{name: name, span: joinSpan(start, end), vis: vis, file: f},
		Kind:          kind,
		GenericParams: generics,
		Params:        params,
		ReturnType:    ret,
		Varargs:       varargs,
		VarargsElem:   varargsElem,
		Extern:        extern,
		Body:          body,
		Receiver:      receiver,
		IsEntryPoint:  kind == FuncFree && name == "main",
	}
}

func (p *Parser) parseStructDecl(f *SourceFile, vis Visibility) *StructDecl {
	start := p.tok.Span
	p.next() // struct
	name, _, _ := p.expectIdentifier()
	generics := p.parseGenericParams()

	if p.tok.IsPunct(';') {
		end := p.tok.Span
		p.next()
		return &StructDecl{declBase: declBase{name: name, span: joinSpan(start, end), vis: vis, file: f}, GenericParams: generics}
	}

	p.expectPunct('{')
	var fields []Field
	for !p.tok.IsPunct('}') && !p.tok.Is(TokEOF) {
		fields = append(fields, p.parseField())
	}
	end := p.tok.Span
	p.expectPunct('}')
	return &StructDecl{
		declBase: declBase{name: name, span: joinSpan(start, end), vis: vis, file: f},
		GenericParams: generics, Fields: fields, HasBody: true,
	}
}

func (p *Parser) parseField() Field {
	start := p.tok.Span
	t := p.parseType()
	name, nsp, _ := p.expectIdentifier()
	p.expectPunct(';')
	return Field{Name: name, DeclaredType: t, Span: joinSpan(start, nsp)}
}

func (p *Parser) parseClassDecl(f *SourceFile, vis Visibility) *ClassDecl {
	start := p.tok.Span
	p.next() // class
	name, _, _ := p.expectIdentifier()
	generics := p.parseGenericParams()

	cd := &ClassDecl{declBase: declBase{name: name, span: start, vis: vis, file: f}, GenericParams: generics}

	p.expectPunct('{')
	for !p.tok.IsPunct('}') && !p.tok.Is(TokEOF) {
		memberVis := VisPrivate
		if p.tok.IsKeyword(KwPublic) {
			memberVis = VisPublic
			p.next()
		} else if p.tok.IsKeyword(KwPrivate) {
			p.next()
		}
		switch {
		case p.tok.IsKeyword(KwMethod):
			cd.Methods = append(cd.Methods, p.parseFunctionDecl(f, memberVis, false, FuncMethod, cd))
		case p.tok.IsKeyword(KwConstructor):
			cd.Constructor = p.parseFunctionDecl(f, memberVis, false, FuncConstructor, cd)
		case looksLikeTypeStart(p.tok):
			cd.Fields = append(cd.Fields, p.parseField())
		default:
			p.diag(DiagnosticError, p.tok.Span, "expected a field or method, found `%s`", p.tok.Text())
			p.synchronize()
		}
	}
	end := p.tok.Span
	p.expectPunct('}')
	cd.span = joinSpan(start, end)
	return cd
}

func (p *Parser) parseTypedefDecl(f *SourceFile, vis Visibility) *TypedefDecl {
	start := p.tok.Span
	p.next() // typedef
	name, _, _ := p.expectIdentifier()
	p.expectOp('=')
	target := p.parseType()
	end := p.tok.Span
	p.expectPunct(';')
	return &TypedefDecl{declBase: declBase{name: name, span: joinSpan(start, end), vis: vis, file: f}, Target: target}
}

func (p *Parser) parseEnumDecl(f *SourceFile, vis Visibility) *EnumDecl {
	start := p.tok.Span
	p.next() // enum
	name, _, _ := p.expectIdentifier()
	p.expectPunct('{')
	var values []EnumValue
	for !p.tok.IsPunct('}') && !p.tok.Is(TokEOF) {
		vname, vsp, _ := p.expectIdentifier()
		var init Expression
		if p.tok.IsOp('=') && !p.peek().IsOp('=') {
			p.next()
			init = p.parseAssignment()
		}
		values = append(values, EnumValue{Name: vname, Init: init, Span: vsp})
		if p.tok.IsPunct(',') {
			p.next()
			continue
		}
		break
	}
	end := p.tok.Span
	p.expectPunct('}')
	return &EnumDecl{declBase: declBase{name: name, span: joinSpan(start, end), vis: vis, file: f}, Values: values}
}

// parseMacroDecl parses the `exprdef` alias facility: `exprdef name =
// expr;`, spec.md §1's "tiny preprocessor/macro substitution" escape
// hatch.
func (p *Parser) parseMacroDecl(f *SourceFile, vis Visibility) *MacroDecl {
	start := p.tok.Span
	p.next() // exprdef
	name, _, _ := p.expectIdentifier()
	p.expectOp('=')
	expr := p.parseExpression()
	end := p.tok.Span
	p.expectPunct(';')
	return &MacroDecl{declBase: declBase{name: name, span: joinSpan(start, end), vis: vis, file: f}, Expr: expr}
}

func (p *Parser) parseGlobalVarDecl(f *SourceFile, vis Visibility) *GlobalVarDecl {
	start := p.tok.Span
	isConst := p.tok.IsKeyword(KwConst)
	if isConst {
		p.next()
	}
	t := p.parseType()
	name, _, _ := p.expectIdentifier()
	var init Expression
	if p.tok.IsOp('=') && !p.peek().IsOp('=') {
		p.next()
		init = p.parseAssignment()
	}
	end := p.tok.Span
	p.expectPunct(';')
	return &GlobalVarDecl{
		declBase: declBase{name: name, span: joinSpan(start, end), vis: vis, file: f},
		Const:    isConst, DeclaredType: t, Init: init,
	}
}
