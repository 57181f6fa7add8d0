// Package wat lowers the functional assembly IR to the WebAssembly text
// format.
//
// ARCHITECTURE:
//
// Lowering is a single depth-first pass with no intermediate structure
// between the input tree and the output text:
//
//	[ast tree] → [Generator] → [Emitter buffer] → WAT string
//
// The Generator dispatches over the sealed ast.Node variant, one case per
// kind, and writes S-expression fragments through an indentation-aware
// Emitter. The type mapper collapses every supported IR type to i64; the
// builtin table replaces a fixed set of two-argument calls with native
// instructions.
//
// FAILURE SEMANTICS:
//
// Every rejected construct is a hard failure: the first violated
// precondition aborts the whole translation and the caller receives no
// text. Errors are typed (LoweringError) with codes for unsupported
// constructs, shape violations, and unknown types. There is no partial
// output, no recovery, and no degraded mode.
//
// CONCURRENCY:
//
// A translation is synchronous and single-threaded. The Emitter buffer is
// the only mutable state and is exclusively owned by one Generator for the
// duration of one Assemble call; concurrent translations each need their
// own pair.
package wat
