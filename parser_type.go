package velac

// parseType parses the full type grammar of spec.md §4.3: an element
// type, wrapped by any number of pointer/optional/array postfixes,
// optionally followed by a backtrackable function-type suffix.
func (p *Parser) parseType() TypeExpr {
	elem := p.parseComplexType()
	if p.tok.IsPunct('(') {
		snap := p.snapshot()
		if ft, ok := p.tryParseFunctionType(elem); ok {
			return ft
		}
		p.restore(snap)
	}
	return elem
}

func (p *Parser) tryParseFunctionType(ret TypeExpr) (*FunctionTypeExpr, bool) {
	start := ret.Span()
	if _, ok := p.expectPunct('('); !ok {
		return nil, false
	}

	var params []TypeExpr
	varargs := false
	var varElem TypeExpr

	if !p.tok.IsPunct(')') {
		for {
			if p.tok.IsPunct('.') {
				dot1 := p.tok
				p.next()
				if !p.tok.IsPunct('.') || !adjacent(dot1, p.tok) {
					return nil, false
				}
				dot2 := p.tok
				p.next()
				if !p.tok.IsPunct('.') || !adjacent(dot2, p.tok) {
					return nil, false
				}
				p.next()
				varargs = true
				varElem = p.parseType()
				break
			}
			params = append(params, p.parseType())
			if p.tok.IsPunct(',') {
				p.next()
				continue
			}
			break
		}
	}

	end := p.tok.Span
	if _, ok := p.expectPunct(')'); !ok {
		return nil, false
	}
	return &FunctionTypeExpr{
		typeBase: typeBase{span: Span{File: start.File, Start: start.Start, End: end.End}},
		Return:   ret, Params: params, Varargs: varargs, VarElem: varElem,
	}, true
}

func (p *Parser) parseComplexType() TypeExpr {
	elem := p.parsePrimaryType()
	for {
		switch {
		case p.tok.IsOp('*'):
			sp := Span{File: elem.Span().File, Start: elem.Span().Start, End: p.tok.Span.End}
			p.next()
			elem = &PointerTypeExpr{typeBase: typeBase{span: sp}, Elem: elem}
		case p.tok.IsPunct('?'):
			sp := Span{File: elem.Span().File, Start: elem.Span().Start, End: p.tok.Span.End}
			p.next()
			elem = &OptionalTypeExpr{typeBase: typeBase{span: sp}, Elem: elem}
		case p.tok.IsPunct('['):
			start := elem.Span()
			p.next()
			var length Expression
			if !p.tok.IsPunct(']') {
				length = p.parseExpression()
			}
			end := p.tok.Span
			p.expectPunct(']')
			elem = &ArrayTypeExpr{typeBase: typeBase{span: Span{File: start.File, Start: start.Start, End: end.End}}, Elem: elem, Length: length}
		default:
			return elem
		}
	}
}

func (p *Parser) parsePrimaryType() TypeExpr {
	sp := p.tok.Span
	if p.tok.Is(TokKeyword) {
		switch p.tok.Keyword {
		case KwVoid:
			p.next()
			return &VoidTypeExpr{typeBase{span: sp}}
		case KwBool:
			p.next()
			return &BoolTypeExpr{typeBase{span: sp}}
		case KwAny:
			p.next()
			return &AnyTypeExpr{typeBase{span: sp}}
		case KwString:
			p.next()
			return &StringTypeExpr{typeBase: typeBase{span: sp}}
		case KwI8, KwI16, KwI32, KwI64, KwU8, KwU16, KwU32, KwU64:
			width, signed := intKeywordInfo(p.tok.Keyword)
			p.next()
			return &IntTypeExpr{typeBase{span: sp}, width, signed}
		case KwF16, KwF32, KwF64, KwF80, KwF128:
			prec := floatKeywordPrecision(p.tok.Keyword)
			p.next()
			return &FloatTypeExpr{typeBase{span: sp}, prec}
		}
	}
	if p.tok.Is(TokIdentifier) {
		name, nsp, _ := p.expectIdentifier()
		nt := &NamedTypeExpr{typeBase: typeBase{span: nsp}, Name: name}
		if p.tok.IsOp('<') && adjacent(Token{Span: nsp}, p.tok) {
			if args, end, ok := p.tryParseTypeArgList(); ok {
				nt.TypeArgs = args
				nt.span = Span{File: nsp.File, Start: nsp.Start, End: end}
			}
		}
		return nt
	}
	p.diag(DiagnosticError, sp, "expected a type, found `%s`", p.tok.Text())
	p.next()
	return &VoidTypeExpr{typeBase{span: sp}}
}

func intKeywordInfo(k KeywordKind) (width int, signed bool) {
	switch k {
	case KwI8:
		return 8, true
	case KwI16:
		return 16, true
	case KwI32:
		return 32, true
	case KwI64:
		return 64, true
	case KwU8:
		return 8, false
	case KwU16:
		return 16, false
	case KwU32:
		return 32, false
	case KwU64:
		return 64, false
	}
	return 32, true
}

func floatKeywordPrecision(k KeywordKind) FloatPrecision {
	switch k {
	case KwF16:
		return PrecisionHalf
	case KwF32:
		return PrecisionSingle
	case KwF64:
		return PrecisionDouble
	case KwF80:
		return PrecisionDecimal
	case KwF128:
		return PrecisionQuad
	}
	return PrecisionDouble
}

// tryParseTypeArgList speculatively parses `< Type (, Type)* >` and
// reports failure instead of diagnosing, so the caller can backtrack:
// the grammar only commits to generic-args-as-a-type-list once it
// parses cleanly (spec.md §4.3's `ident<` ambiguity with comparison).
func (p *Parser) tryParseTypeArgList() ([]TypeExpr, Location, bool) {
	snap := p.snapshot()
	p.next() // `<`

	var args []TypeExpr
	if !p.tok.IsOp('>') {
		for {
			args = append(args, p.parseTypeArgCandidate())
			if p.tok.IsPunct(',') {
				p.next()
				continue
			}
			break
		}
	}
	if !p.tok.IsOp('>') {
		p.restore(snap)
		return nil, Location{}, false
	}
	end := p.tok.Span.End
	p.next()
	return args, end, true
}

// parseTypeArgCandidate parses one type in a speculative argument
// list without emitting diagnostics on failure (the caller discards
// the whole attempt on any failure).
func (p *Parser) parseTypeArgCandidate() TypeExpr {
	savedSink := p.sink
	p.sink = nil
	t := p.parseType()
	p.sink = savedSink
	return t
}
