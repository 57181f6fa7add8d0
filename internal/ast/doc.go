// Package ast provides the node types for the functional assembly IR that
// wattle lowers to WebAssembly text.
//
// This package contains type definitions only. All other internal packages
// import ast; ast imports nothing internal. This keeps the tree model the
// foundational layer with no circular dependencies.
//
// Node is a sealed interface using the marker method pattern: only types in
// this package implement it, which enables exhaustive type switches in the
// lowering backend. The four instruction-level kinds (Instruction,
// FunctionalInstruction, StackAssignment, Label) are part of the closed set
// even though no backend supports them: keeping them in the variant forces
// every backend to reject them deliberately instead of missing a case.
//
// All nodes are immutable value types owned by the caller. The lowering
// backend never mutates a tree and holds no node across calls.
package ast
