// Package parser is an error-tolerant recursive-descent parser for ny.
//
// Parse consumes a token.Stream and fills an ast.Tree. Syntax errors are
// reported and recovered from (items resync to the next item keyword,
// statements to ';' or '}'), so the resulting module is always present and
// covers as much of the input as could be understood.
package parser
