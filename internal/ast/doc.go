// Package ast holds the arena-backed syntax tree of one ny module.
//
// Every node lives in a per-kind Arena owned by a Tree; ids are 1-based
// indices, zero meaning "absent". Because the Tree of a file is built once
// and never rebuilt, ids stay valid for the whole session and can key side
// tables such as inferred types.
package ast
