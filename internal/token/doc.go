// Package token defines lexical token kinds and trivia for ny sources.
// Invariants:
//   - Token.Text is the exact source slice (strings share the file text).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments and whitespace are leading Trivia and never appear in the
//     main token stream.
//   - Built-in type names (int, str, bool, ...) are identifiers.
package token
