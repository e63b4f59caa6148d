package analyzer

import (
	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/source"
)

// Parsed is a cached parse: the file's syntax arena and its root module.
// The same Tree pointer is returned for every request of one file.
type Parsed struct {
	Tree *ast.Tree
	Root ast.ModuleID
}

// DB is everything analysis may ask of a compilation session.
type DB interface {
	// AST parses file at most once per session and returns the cached result.
	AST(file source.FileID) Parsed
	// ResolveModule locates `segments.ny` next to anchor without parsing it.
	ResolveModule(anchor source.FileID, segments []string) (source.FileID, bool)
	InternString(text string) source.Symbol
	Diagnostics() *diag.Bag
}
