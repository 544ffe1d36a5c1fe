package velac

import "strings"

// Module is one node of the module tree built from files' `module
// a.b.c;` declarations (spec.md §4.5): path components create a chain
// of nested modules on first mention, each keeping its own files and
// named children.
type Module struct {
	Name     string
	Path     []string
	Parent   *Module
	Children map[string]*Module
	Files    []*SourceFile
}

func (m *Module) PathString() string { return strings.Join(m.Path, ".") }

// Descendants returns every module transitively reachable through
// Children, not including m itself (used for `**` wildcard imports).
func (m *Module) Descendants() []*Module {
	var out []*Module
	var walk func(*Module)
	walk = func(n *Module) {
		for _, c := range n.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(m)
	return out
}

// ModuleGraph owns every Module node, keyed by dotted path, plus the
// implicit root module that files with no `module` declaration belong
// to.
type ModuleGraph struct {
	root    *Module
	byPath  map[string]*Module
}

func NewModuleGraph() *ModuleGraph {
	root := &Module{Name: "", Children: make(map[string]*Module)}
	return &ModuleGraph{root: root, byPath: map[string]*Module{"": root}}
}

// GetOrCreate returns the module at path, creating any missing
// ancestors along the way.
func (g *ModuleGraph) GetOrCreate(path []string) *Module {
	key := strings.Join(path, ".")
	if m, ok := g.byPath[key]; ok {
		return m
	}
	cur := g.root
	for i, seg := range path {
		if cur.Children == nil {
			cur.Children = make(map[string]*Module)
		}
		child, ok := cur.Children[seg]
		if !ok {
			child = &Module{Name: seg, Path: append([]string(nil), path[:i+1]...), Parent: cur, Children: make(map[string]*Module)}
			cur.Children[seg] = child
			g.byPath[child.PathString()] = child
		}
		cur = child
	}
	return cur
}

// Lookup returns the module at path if it has already been created,
// without creating it.
func (g *ModuleGraph) Lookup(path []string) (*Module, bool) {
	m, ok := g.byPath[strings.Join(path, ".")]
	return m, ok
}

// BindFile attaches f to its declared module (or the implicit root
// module when f has none), per spec.md §4.6 resolver stage 1.
func (g *ModuleGraph) BindFile(f *SourceFile) {
	var mod *Module
	if f.Module != nil {
		mod = g.GetOrCreate(f.Module.Path)
	} else {
		mod = g.root
	}
	mod.Files = append(mod.Files, f)
	f.OwningModule = mod
}

// ResolveImports expands f.Imports into f.Dependencies: the module's
// own module (always included, for same-module visibility) plus each
// imported module, with `*` expanding to immediate children and `**`
// to all descendants.
func (g *ModuleGraph) ResolveImports(f *SourceFile, sink DiagnosticSink, fileName string) {
	seen := map[*Module]bool{f.OwningModule: true}
	deps := []*Module{f.OwningModule}
	add := func(m *Module) {
		if m != nil && !seen[m] {
			seen[m] = true
			deps = append(deps, m)
		}
	}

	for _, spec := range f.Imports {
		target, ok := g.Lookup(spec.Path)
		if !ok {
			if sink != nil {
				sink(Diagnostic{Severity: DiagnosticError, File: fileName, Span: spec.Span,
					Message: "unknown module `" + strings.Join(spec.Path, ".") + "`"})
			}
			continue
		}
		switch spec.Wildcard {
		case ImportNone:
			add(target)
		case ImportChildren:
			add(target)
			for _, c := range target.Children {
				add(c)
			}
		case ImportDescendants:
			add(target)
			for _, c := range target.Descendants() {
				add(c)
			}
		}
	}
	f.Dependencies = deps
}

// Visible implements spec.md §4.5's visibility rule: a declaration is
// visible at a lookup site if it's in the lookup site's file, or it's
// public and lives in a module in the site's dependency set.
func Visible(decl Declaration, fromFile *SourceFile) bool {
	if decl.OwningFile() == fromFile {
		return true
	}
	if decl.DeclVisibility() != VisPublic {
		return false
	}
	declModule := decl.OwningFile().OwningModule
	for _, dep := range fromFile.Dependencies {
		if dep == declModule {
			return true
		}
	}
	return false
}
