package velac

import "golang.org/x/exp/slices"

// argInfinite marks a candidate parameter that cannot accept an
// argument at all, eliminating the candidate from consideration.
const argInfinite = 1 << 30

// scoreArgument ranks how well actual converts into a declared
// parameter type: 0 for an exact structural match, 2 for an implicit
// conversion, argInfinite when neither applies (spec.md §4.6's
// overload scoring table; score 1, "generic-bind", is assigned by the
// generic-candidate path in resolveOverload instead, since it
// depends on unification rather than a fixed parameter type).
func scoreArgument(param, actual *TypeID, actualIsConstant bool) int {
	if compareTypes(param, actual) {
		return 0
	}
	if canConvertImplicit(actual, param, actualIsConstant) {
		return 2
	}
	return argInfinite
}

// visibilityPenalty implements the "2n+1" cross-module overload
// penalty: 0 for a same-file candidate, otherwise 2n+1 where n is how
// many dependency hops away the candidate's module sits, so a nearer
// visible overload always outranks a farther one when both convert
// equally well.
func visibilityPenalty(candidate Declaration, fromFile *SourceFile) int {
	if candidate.OwningFile() == fromFile {
		return 0
	}
	declModule := candidate.OwningFile().OwningModule
	for n, dep := range fromFile.Dependencies {
		if dep == declModule {
			return 2*n + 1
		}
	}
	return 2*len(fromFile.Dependencies) + 1
}

type overloadCandidate struct {
	fn       *FunctionDecl
	instance *GenericInstance // non-nil when fn is a generic original resolved via deduction
	score    int
}

// collectFreeFunctionCandidates gathers every free function (same-file
// first, then visible dependencies) with the given name, per spec.md
// §4.6's identifier lookup order.
func (r *Resolver) collectFreeFunctionCandidates(f *SourceFile, name string) []*FunctionDecl {
	var out []*FunctionDecl
	for _, d := range f.Decls {
		if fn, ok := d.(*FunctionDecl); ok && fn.Kind == FuncFree && fn.DeclName() == name {
			out = append(out, fn)
		}
	}
	for _, dep := range f.Dependencies {
		for _, df := range dep.Files {
			if df == f {
				continue
			}
			for _, d := range df.Decls {
				if fn, ok := d.(*FunctionDecl); ok && fn.Kind == FuncFree && fn.DeclName() == name && Visible(fn, f) {
					out = append(out, fn)
				}
			}
		}
	}
	return out
}

func collectMethodCandidates(classType *TypeID, name string) []*FunctionDecl {
	cd, ok := classType.Decl.(*ClassDecl)
	if !ok {
		return nil
	}
	var out []*FunctionDecl
	for _, m := range cd.Methods {
		if m.DeclName() == name {
			out = append(out, m)
		}
	}
	return out
}

// resolveOverload scores every non-generic candidate directly and
// every generic candidate via deduceTypeArgs + instantiation, then
// picks the strict single smallest-scoring candidate (spec.md §4.6:
// "strict smaller top score wins, else ambiguous").
func (r *Resolver) resolveOverload(f *SourceFile, fromFile *SourceFile, span Span, name string, candidates []*FunctionDecl, argTypes []*TypeID, argConst []bool, explicitTypeArgs []*TypeID) (*FunctionDecl, *GenericInstance) {
	var scored []overloadCandidate

	for _, fn := range candidates {
		if len(fn.GenericParams) == 0 {
			if fn.Varargs {
				if len(argTypes) < len(fn.Params) {
					continue
				}
			} else if len(argTypes) != len(fn.Params) {
				continue
			}
			score := visibilityPenalty(fn, fromFile)
			ok := true
			for i := range fn.Params {
				s := scoreArgument(fn.Params[i].ResolvedType, argTypes[i], argConst[i])
				if s >= argInfinite {
					ok = false
					break
				}
				score += s
			}
			if fn.Varargs {
				for i := len(fn.Params); i < len(argTypes); i++ {
					if fn.VarargsElem != nil && scoreArgument(fn.VarargsElem, argTypes[i], argConst[i]) >= argInfinite {
						ok = false
						break
					}
				}
			}
			if ok {
				scored = append(scored, overloadCandidate{fn: fn, score: score})
			}
			continue
		}

		// Generic candidate: deduce (or take the explicit) type
		// arguments, then instantiate before scoring so its concrete
		// parameter types exist to score against.
		var bound map[string]*TypeID
		if len(explicitTypeArgs) == len(fn.GenericParams) && len(explicitTypeArgs) > 0 {
			bound = make(map[string]*TypeID, len(fn.GenericParams))
			for i, g := range fn.GenericParams {
				bound[g] = explicitTypeArgs[i]
			}
		} else {
			declTypes := make([]TypeExpr, len(fn.Params))
			for i, p := range fn.Params {
				declTypes[i] = p.DeclaredType
			}
			var ok bool
			bound, ok = deduceTypeArgs(declTypes, argTypes, fn.GenericParams)
			if !ok {
				continue
			}
		}
		args := make([]*TypeID, len(fn.GenericParams))
		for i, g := range fn.GenericParams {
			args[i] = bound[g]
		}
		inst := r.instantiateFunction(f, fn, args)
		if inst == nil || len(argTypes) != len(inst.Func.Params) {
			continue
		}
		score := visibilityPenalty(fn, fromFile) + len(fn.Params) // flat "generic-bind" = 1 per parameter
		ok := true
		for i := range inst.Func.Params {
			s := scoreArgument(inst.Func.Params[i].ResolvedType, argTypes[i], argConst[i])
			if s >= argInfinite {
				ok = false
				break
			}
			score += s
		}
		if ok {
			scored = append(scored, overloadCandidate{fn: fn, instance: inst, score: score})
		}
	}

	if len(scored) == 0 {
		r.diag(DiagnosticError, fromFile.Path, span, "no overload of `%s` matches the given arguments", name)
		return nil, nil
	}
	slices.SortStableFunc(scored, func(a, b overloadCandidate) int { return a.score - b.score })
	if len(scored) > 1 && scored[0].score == scored[1].score {
		r.diag(DiagnosticError, fromFile.Path, span, "call to `%s` is ambiguous between multiple equally-good overloads", name)
		return nil, nil
	}
	best := scored[0]
	if best.instance != nil {
		return best.instance.Func, best.instance
	}
	return best.fn, nil
}
