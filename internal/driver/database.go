package driver

import (
	"context"
	"strconv"

	"nyanc/internal/analyzer"
	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/lexer"
	"nyanc/internal/parser"
	"nyanc/internal/source"
	"nyanc/internal/token"
	"nyanc/internal/trace"
)

// Lexer turns one file's text into a token stream, reporting lexical errors.
type Lexer interface {
	Lex(file source.FileID, text string, r diag.Reporter) token.Stream
}

// Parser fills tree from ts and returns the root module. It must always
// return a root and must allocate nodes only in tree.
type Parser interface {
	Parse(ts token.Stream, tree *ast.Tree, env parser.Env) ast.ModuleID
}

// Parsed is the cache entry of one file.
type Parsed = analyzer.Parsed

// Database is the state of one compilation session: sources, interned
// strings, diagnostics, the type side table and the memoized parses.
type Database struct {
	bag     *diag.Bag
	strs    *source.Interner
	types   *analyzer.TypeMap
	sources *source.Manager
	cache   *astCache
	tracer  trace.Tracer
	span    uint64 // родитель файловых спанов и точек запросов
	lexer   Lexer
	parser  Parser

	maxSyntaxErrors uint
}

var _ analyzer.DB = (*Database)(nil)

type config struct {
	tracer          trace.Tracer
	traceParent     uint64
	lexer           Lexer
	parser          Parser
	maxDiagnostics  int
	maxSyntaxErrors uint
	read            source.ReadFunc
}

// Option configures a Database.
type Option func(*config)

func WithTracer(t trace.Tracer) Option { return func(c *config) { c.tracer = t } }

// WithTracing takes the tracer and the open span from ctx, so the
// database's file spans nest under the caller's session span.
func WithTracing(ctx context.Context) Option {
	return func(c *config) {
		c.tracer = trace.FromContext(ctx)
		c.traceParent = trace.ParentID(ctx)
	}
}
func WithLexer(l Lexer) Option { return func(c *config) { c.lexer = l } }
func WithParser(p Parser) Option { return func(c *config) { c.parser = p } }

// WithMaxDiagnostics caps the shared diagnostics bag (0 = unlimited).
func WithMaxDiagnostics(n int) Option { return func(c *config) { c.maxDiagnostics = n } }

// WithMaxSyntaxErrors caps syntax errors reported per file (0 = unlimited).
func WithMaxSyntaxErrors(n uint) Option { return func(c *config) { c.maxSyntaxErrors = n } }

// WithReadFunc replaces the file reader of the source manager.
func WithReadFunc(read source.ReadFunc) Option { return func(c *config) { c.read = read } }

// New creates an empty session.
func New(opts ...Option) *Database {
	cfg := config{
		tracer: trace.Nop,
		lexer:  lexer.Frontend{},
		parser: parser.Frontend{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tracer == nil {
		cfg.tracer = trace.Nop
	}

	var smOpts []source.ManagerOption
	if cfg.read != nil {
		smOpts = append(smOpts, source.WithReadFunc(cfg.read))
	}
	return &Database{
		bag:             diag.NewBag(cfg.maxDiagnostics),
		strs:            source.NewInterner(),
		types:           analyzer.NewTypeMap(),
		sources:         source.NewManager(smOpts...),
		cache:           newASTCache(),
		tracer:          cfg.tracer,
		span:            cfg.traceParent,
		lexer:           cfg.lexer,
		parser:          cfg.parser,
		maxSyntaxErrors: cfg.maxSyntaxErrors,
	}
}

// Load reads an entry file into the session.
func (db *Database) Load(path string) (source.FileID, error) {
	sp := trace.Begin(db.tracer, trace.ScopeFile, "load", db.span).With("input", path)
	id, err := db.sources.Load(path)
	if err != nil {
		sp.End(err.Error())
		return id, err
	}
	canonical, _ := db.sources.Path(id)
	sp.With("path", canonical).With("file", strconv.FormatUint(uint64(id), 10)).End("")
	return id, nil
}

// AddVirtual registers in-memory text (stdin, tests) as a file.
func (db *Database) AddVirtual(name, text string) source.FileID {
	return db.sources.AddVirtual(name, text)
}

// AST returns the parse of file, lexing and parsing it on first request
// only. Concurrent first requests share one parse. Syntax errors end up in
// Diagnostics; the result always has a root module.
func (db *Database) AST(file source.FileID) Parsed {
	if p, ok := db.cache.get(file); ok {
		trace.Point(db.tracer, trace.ScopeQuery, "ast.hit", db.span, "", "file", strconv.FormatUint(uint64(file), 10))
		return p
	}
	// чужой FileID должен паниковать здесь, а не внутри singleflight
	f := db.sources.File(file)
	return db.cache.do(file, func() Parsed { return db.parse(f) })
}

func (db *Database) parse(f *source.File) Parsed {
	sp := trace.Begin(db.tracer, trace.ScopeFile, "ast", db.span).With("path", f.Path)

	tree := ast.NewTree(f.ID, ast.Hints{})
	tree.Strings = db.strs
	rep := diag.BagReporter{Bag: db.bag}
	ts := db.lexer.Lex(f.ID, f.Text, rep)
	root := db.parser.Parse(ts, tree, parser.Env{
		File:      f.ID,
		Reporter:  rep,
		Strings:   db.strs,
		MaxErrors: db.maxSyntaxErrors,
	})

	sp.With("nodes", strconv.Itoa(tree.NodeCount())).End("")
	return Parsed{Tree: tree, Root: root}
}

// InternString interns text in the session interner.
func (db *Database) InternString(text string) source.Symbol {
	return db.strs.Intern(text)
}

// Diagnostics is the shared sink every stage reports into.
func (db *Database) Diagnostics() *diag.Bag { return db.bag }

func (db *Database) Sources() *source.Manager { return db.sources }
func (db *Database) Interner() *source.Interner { return db.strs }
func (db *Database) TypeMap() *analyzer.TypeMap { return db.types }
func (db *Database) Tracer() trace.Tracer { return db.tracer }
func (db *Database) Reporter() diag.BagReporter { return diag.BagReporter{Bag: db.bag} }
