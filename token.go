package velac

// TokenKind classifies a lexeme. Multi-character operators (`==`,
// `&&`, `->`, `??`, compound assignments, ...) are composed by the
// parser out of single-character punctuation/operator tokens, per
// spec.md §4.2 — the lexer only ever emits one-rune operator/punct
// tokens plus the handful of genuinely lexical kinds below.
type TokenKind int

const (
	TokNul TokenKind = iota // sentinel: no more tokens (has_next() == false)
	TokEOF

	TokIdentifier
	TokKeyword

	TokIntLiteral
	TokFloatLiteral
	TokDoubleLiteral
	TokStringLiteral
	TokCharLiteral

	TokPunct // single-char punctuation: ( ) { } [ ] , ; : . ?
	TokOp    // single-char operator: + - * / % < > = ! & | ^ ~
)

// KeywordKind distinguishes which reserved word an identifier-shaped
// TokKeyword token names.
type KeywordKind int

const (
	KwNone KeywordKind = iota
	KwFunc
	KwMethod
	KwConstructor
	KwStruct
	KwClass
	KwTypedef
	KwEnum
	KwExprdef
	KwModule
	KwNamespace
	KwImport
	KwLet
	KwVar
	KwConst
	KwIf
	KwElse
	KwWhile
	KwFor
	KwBreak
	KwContinue
	KwReturn
	KwAssert
	KwFree
	KwNull
	KwTrue
	KwFalse
	KwSizeof
	KwMalloc
	KwSnew
	KwExtern
	KwPublic
	KwPrivate
	KwVoid
	KwBool
	KwAny
	KwString
	KwI8
	KwI16
	KwI32
	KwI64
	KwU8
	KwU16
	KwU32
	KwU64
	KwF16
	KwF32
	KwF64
	KwF80
	KwF128
)

var keywords = map[string]KeywordKind{
	"func":        KwFunc,
	"method":      KwMethod,
	"constructor": KwConstructor,
	"struct":      KwStruct,
	"class":       KwClass,
	"typedef":     KwTypedef,
	"enum":        KwEnum,
	"exprdef":     KwExprdef,
	"module":      KwModule,
	"namespace":   KwNamespace,
	"import":      KwImport,
	"let":         KwLet,
	"var":         KwVar,
	"const":       KwConst,
	"if":          KwIf,
	"else":        KwElse,
	"while":       KwWhile,
	"for":         KwFor,
	"break":       KwBreak,
	"continue":    KwContinue,
	"return":      KwReturn,
	"assert":      KwAssert,
	"free":        KwFree,
	"null":        KwNull,
	"true":        KwTrue,
	"false":       KwFalse,
	"sizeof":      KwSizeof,
	"malloc":      KwMalloc,
	"snew":        KwSnew,
	"extern":      KwExtern,
	"public":      KwPublic,
	"private":     KwPrivate,
	"void":        KwVoid,
	"bool":        KwBool,
	"any":         KwAny,
	"string":      KwString,
	"i8":          KwI8,
	"i16":         KwI16,
	"i32":         KwI32,
	"i64":         KwI64,
	"u8":          KwU8,
	"u16":         KwU16,
	"u32":         KwU32,
	"u64":         KwU64,
	"f16":         KwF16,
	"f32":         KwF32,
	"f64":         KwF64,
	"f80":         KwF80,
	"f128":        KwF128,
}

// primitiveTypeKeywords is the subset of keywords recognized as a
// builtin-cast callee per spec.md §4.6 ("A 'call' whose callee is a
// primitive-type keyword is promoted to a cast expression").
var primitiveTypeKeywords = map[KeywordKind]bool{
	KwVoid: true, KwBool: true, KwString: true, KwAny: true,
	KwI8: true, KwI16: true, KwI32: true, KwI64: true,
	KwU8: true, KwU16: true, KwU32: true, KwU64: true,
	KwF16: true, KwF32: true, KwF64: true, KwF80: true, KwF128: true,
}

// Token is a classified lexeme. Lexeme slices borrow the file's
// source buffer; Text() materializes an owned copy only when needed
// (identifiers that get stored in the AST, string contents).
type Token struct {
	Kind    TokenKind
	Keyword KeywordKind
	Lexeme  []byte // borrowed slice into the file's buffer
	Span    Span

	// StringValue holds the decoded contents of a string/char
	// literal (escapes resolved); Lexeme still holds the raw,
	// undecoded source text for error messages.
	StringValue string

	// NumLower / NumBytes record the lower-character-count and
	// byte-length of a string literal (spec.md §4.2: "both
	// lower-character-count and byte-length are reported").
	NumLower int
	NumBytes int
}

func (t Token) Text() string { return string(t.Lexeme) }

func (t Token) Is(k TokenKind) bool { return t.Kind == k }

func (t Token) IsKeyword(k KeywordKind) bool {
	return t.Kind == TokKeyword && t.Keyword == k
}

func (t Token) IsPunct(b byte) bool {
	return t.Kind == TokPunct && len(t.Lexeme) == 1 && t.Lexeme[0] == b
}

func (t Token) IsOp(b byte) bool {
	return t.Kind == TokOp && len(t.Lexeme) == 1 && t.Lexeme[0] == b
}
