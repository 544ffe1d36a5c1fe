package velac

import (
	"fmt"
	"strconv"
	"strings"
)

// structHash is the stable 32-bit string hash spec.md §6 names:
// multiply by 31, seed 7.
func structHash(name string) uint32 {
	h := uint32(7)
	for i := 0; i < len(name); i++ {
		h = h*31 + uint32(name[i])
	}
	return h
}

func floatMangleWidth(p FloatPrecision) int {
	switch p {
	case PrecisionSingle:
		return 32
	default: // PrecisionDouble; half/decimal/quad never reach here post-downgrade
		return 64
	}
}

// mangleType renders one TypeID per spec.md §6's type-mangle grammar.
// Aliases mangle as their unwrapped target so two names for the same
// shape produce the same external symbol.
func mangleType(t *TypeID) string {
	t = unwrap(t)
	switch t.Kind {
	case TypeVoid:
		return "v"
	case TypeInteger:
		if t.Signed {
			return fmt.Sprintf("i%d", t.Width)
		}
		return fmt.Sprintf("u%d", t.Width)
	case TypeFloat:
		return fmt.Sprintf("f%d", floatMangleWidth(t.Precision))
	case TypeBool:
		return "b"
	case TypeString:
		return "s"
	case TypeStruct:
		return fmt.Sprintf("x%d", structHash(t.Name))
	case TypeClass:
		return fmt.Sprintf("X%d", structHash(t.Name))
	case TypePointer:
		return "p" + mangleType(t.Elem)
	case TypeOptional:
		return "o" + mangleType(t.Elem)
	case TypeArray:
		return "a" + mangleType(t.Elem)
	case TypeFunction:
		var sb strings.Builder
		sb.WriteByte('f')
		sb.WriteString(mangleType(t.Return))
		sb.WriteString(strconv.Itoa(len(t.Params)))
		for _, p := range t.Params {
			sb.WriteString(mangleType(p))
		}
		return sb.String()
	case TypeTuple:
		// Not enumerated in spec.md §6's grammar (tuples never cross
		// an ABI boundary as a parameter type in practice); mangled
		// the same shape as a function's parameter list for
		// determinism and to keep every TypeID mangleable.
		var sb strings.Builder
		sb.WriteByte('t')
		sb.WriteString(strconv.Itoa(len(t.Elems)))
		for _, e := range t.Elems {
			sb.WriteString(mangleType(e))
		}
		return sb.String()
	case TypeUnion:
		var sb strings.Builder
		sb.WriteString("union")
		for _, ft := range t.FieldTypes {
			sb.WriteString(mangleType(ft))
		}
		return fmt.Sprintf("x%d", structHash(sb.String()))
	default: // TypeAny
		return "s"
	}
}

// mangleFunction computes f's deterministic external symbol per
// spec.md §6. f.InstanceArgs, when non-nil, appends the mangled type
// arguments of the generic instantiation f was cloned for.
func mangleFunction(f *FunctionDecl) string {
	if f.IsEntryPoint {
		return "main"
	}
	if f.Extern {
		return f.DeclName()
	}

	modPath := ""
	if sf := f.OwningFile(); sf != nil && sf.OwningModule != nil {
		modPath = strings.Join(sf.OwningModule.Path, "_")
	}

	var sb strings.Builder
	sb.WriteString(modPath)
	sb.WriteString("__")
	sb.WriteString(f.DeclName())

	if len(f.Params) > 0 {
		sb.WriteByte('_')
		sb.WriteString(strconv.Itoa(len(f.Params)))
		for _, p := range f.Params {
			sb.WriteString(mangleType(p.ResolvedType))
		}
	}

	if len(f.InstanceArgs) > 0 {
		sb.WriteByte('_')
		for _, name := range f.GenericParams {
			if t, ok := f.InstanceArgs[name]; ok {
				sb.WriteString(mangleType(t))
			}
		}
	}

	return sb.String()
}

// mangleGlobal computes the external symbol for a module-level
// variable, following the same `<module_path>__<name>` scheme a
// zero-parameter function would get.
func mangleGlobal(g *GlobalVarDecl) string {
	modPath := ""
	if sf := g.OwningFile(); sf != nil && sf.OwningModule != nil {
		modPath = strings.Join(sf.OwningModule.Path, "_")
	}
	return modPath + "__" + g.DeclName()
}
