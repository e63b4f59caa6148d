// Package analyzer holds the consumers of a compilation session: the DB
// contract they are written against, the expression TypeMap, and the
// import-graph walk that reports missing modules, self-imports and cycles.
package analyzer
