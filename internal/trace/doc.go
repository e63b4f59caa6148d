// Package trace records what a nyanc session did: begin/end spans and
// instant points, filtered by Level and Scope.
//
//	nyanc parse --trace=- --trace-level=detail main.ny
//
// A command opens a session span with Start; the database parents its file
// spans (load, ast, tokenize) and query points (ast.hit, resolve) under it.
// LevelPhase shows the session only, LevelDetail adds files and LevelDebug
// adds queries. LevelError records file events into a Ring that the CLI
// dumps, narrowed to the failing files, when a command fails.
package trace
