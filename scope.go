package velac

// LocalVar is one bound local variable or parameter, referenced from
// Declarator/Param/IdentifierExpr once the resolver has run.
type LocalVar struct {
	Name  string
	Type  *TypeID
	Const bool
	Span  Span
}

// Scope is one lexical block. Locals are kept in declaration order so
// shadowing diagnostics can report the earlier declaration's span.
type Scope struct {
	Parent *Scope
	Locals []*LocalVar
}

func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent}
}

// Declare appends a new local, returning the prior declaration of the
// same name in this exact scope if one exists (the caller decides
// whether that's a shadowing warning or a duplicate-definition error;
// shadowing an outer scope's local is always fine).
func (s *Scope) Declare(v *LocalVar) *LocalVar {
	for _, existing := range s.Locals {
		if existing.Name == v.Name {
			s.Locals = append(s.Locals, v)
			return existing
		}
	}
	s.Locals = append(s.Locals, v)
	return nil
}

// Lookup walks from this scope upward, stopping at (not including) the
// global scope, per spec.md §4.6's identifier lookup step 1.
func (s *Scope) Lookup(name string) *LocalVar {
	for sc := s; sc != nil && sc.Parent != nil; sc = sc.Parent {
		for i := len(sc.Locals) - 1; i >= 0; i-- {
			if sc.Locals[i].Name == name {
				return sc.Locals[i]
			}
		}
	}
	return nil
}

// LoopScope is a Scope that is also a break/continue target: While
// and the two For forms each push one, and BreakStmt/ContinueStmt
// bind to the nearest enclosing LoopScope.
type LoopScope struct {
	Scope
}

func NewLoopScope(parent *Scope) *LoopScope {
	return &LoopScope{Scope: Scope{Parent: parent}}
}
