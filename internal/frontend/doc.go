// Package frontend loads structured IR documents into ast trees.
//
// The lowering core never parses source text; externally-produced trees
// reach it serialized as YAML or JSON documents (YAML is a JSON superset,
// so one decoder serves both). Loading is three steps:
//
//  1. Unmarshal the document into generic values.
//  2. Validate the result against the embedded CUE schema (schema.cue).
//  3. Build immutable ast nodes from the validated document.
//
// Schema validation covers document shape only. Semantic constraints the
// backend owns (supported type names, switch case counts, builtin
// arities) are deliberately NOT encoded in the schema, so that the
// backend remains the single authority on what it rejects.
//
// The package also defines the canonical JSON form of a document
// (EncodeDocument + MarshalCanonical) and the content-addressed module ID
// derived from it, which keys the artifact cache.
package frontend
