package velac

// Source is one named input buffer handed to Compile; Path is used
// both for diagnostics and for FileID assignment order.
type Source struct {
	Path string
	Text []byte
}

// Compile runs the whole pipeline spec.md §2 describes: lex+parse
// every source into an AST, bind files into the module graph, run the
// whole-program resolver, and snapshot the result into a Program a
// backend can query. It returns the Program built so far even on
// failure, since partial results are useful for tooling (diagnostics,
// an IDE's "best effort" outline) — callers check the returned bool
// to learn whether the compile succeeded.
func Compile(sources []Source, cfg *Config, sink DiagnosticSink) (*Program, bool) {
	if cfg == nil {
		cfg = NewConfig()
	}

	files := make([]*SourceFile, len(sources))
	for i, src := range sources {
		files[i] = ParseFile(FileID(i), src.Path, src.Text, sink)
	}

	resolver := NewResolver(cfg, sink)
	ok := resolver.Resolve(files)

	program := &Program{
		files:      files,
		registry:   resolver.reg,
		entryPoint: resolver.entryPoint,
		modules:    resolver.graph,
	}
	return program, ok
}
