package semantics

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintVersion prefixes every stored fingerprint. Bump it whenever
// CompileProfileText's output format changes: a new prefix can never equal a
// stored digest, so every user gets exactly one forced recomputation.
const FingerprintVersion = "v1"

// Fingerprint digests the compiled semantic profile text. Equal fingerprints
// mean the embedding input is unchanged and recomputation can be skipped.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return FingerprintVersion + ":" + hex.EncodeToString(sum[:])
}
