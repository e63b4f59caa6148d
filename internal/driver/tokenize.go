package driver

import (
	"nyanc/internal/source"
	"nyanc/internal/token"
	"nyanc/internal/trace"
)

// Tokenize lexes file into a slice ending with EOF. Lexical errors go to
// Diagnostics. Unlike AST the result is not cached.
func (db *Database) Tokenize(file source.FileID) []token.Token {
	f := db.sources.File(file)
	sp := trace.Begin(db.tracer, trace.ScopeFile, "tokenize", db.span).With("path", f.Path)
	toks := token.Collect(db.lexer.Lex(f.ID, f.Text, db.Reporter()))
	sp.End("")
	return toks
}

// Parsed files so far, in FileID order.
func (db *Database) ParsedFiles() []source.FileID {
	return db.cache.files()
}

// ParsedCount is the number of files with a cached parse.
func (db *Database) ParsedCount() int {
	return db.cache.len()
}
