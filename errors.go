package velac

import "fmt"

// LexError is raised when the lexer encounters an unterminated
// string/char literal or an unrecognized byte. The lexer recovers by
// skipping one byte, so a single bad file can surface many of these.
type LexError struct {
	Message string
	Span    Span
}

func (e LexError) Error() string { return fmt.Sprintf("%s @ %s", e.Message, e.Span) }

// ParseError is raised when the parser can't complete a production:
// unexpected token, missing delimiter, malformed declaration. The
// parser resynchronizes at `;` or `}` and keeps going, so ParseErrors
// accumulate rather than aborting the file.
type ParseError struct {
	Message    string
	Production string
	Span       Span
}

func (e ParseError) Error() string { return fmt.Sprintf("%s @ %s", e.Message, e.Span) }

// backtrackingError is an internal sentinel returned by speculative
// parses (ambiguous `ident<` generic-argument lists, type-vs-
// expression disambiguation). It is caught by the speculative-parse
// helper and turned into a snapshot restore, never surfaced to the
// diagnostic sink.
type backtrackingError struct {
	Message string
	Span    Span
}

func (e backtrackingError) Error() string { return fmt.Sprintf("%s @ %s", e.Message, e.Span) }

func isBacktracking(err error) bool {
	_, ok := err.(backtrackingError)
	return ok
}

// ResolveErrorKind discriminates the resolve-time error taxonomy from
// spec.md §7.
type ResolveErrorKind int

const (
	ErrUndefinedIdentifier ResolveErrorKind = iota
	ErrUndefinedType
	ErrAmbiguousOverload
	ErrNoMatchingOverload
	ErrVisibilityViolation
	ErrWrongArgumentCount
	ErrIncompatibleTypes
	ErrNonLvalueAssignment
	ErrAssignmentToConstant
	ErrDereferenceOfNonPointer
	ErrInvalidCast
	ErrTypeArgumentCountMismatch
	ErrDuplicateDefinition
	ErrArrayLengthNotConstant
	ErrConstructorOnNonClass
	ErrGenericArgumentMismatch
	ErrMissingEntryPoint
)

// ResolveError is raised by the resolver. Resolution of sibling
// constructs continues after one is recorded; see Resolver.diag.
type ResolveError struct {
	Kind    ResolveErrorKind
	Message string
	Span    Span
}

func (e ResolveError) Error() string { return fmt.Sprintf("%s @ %s", e.Message, e.Span) }
