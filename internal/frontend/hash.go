package frontend

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/wattle-lang/wattle/internal/ast"
)

// DomainModule is the domain prefix for module content hashes. The
// version suffix enables future algorithm migration.
const DomainModule = "wattle/module/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ModuleID computes the content-addressed identity of an IR tree.
//
// The ID is derived from the canonical JSON of the tree's document form,
// so it is stable across YAML/JSON formatting differences, key order, and
// process restarts. Two trees with the same ID lower to byte-identical
// output, which is what lets the artifact cache serve it.
func ModuleID(root ast.Block) (string, error) {
	canonical, err := MarshalCanonical(EncodeDocument(root))
	if err != nil {
		return "", fmt.Errorf("module id: %w", err)
	}
	return hashWithDomain(DomainModule, canonical), nil
}
