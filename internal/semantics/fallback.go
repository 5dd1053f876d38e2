package semantics

import (
	"crypto/sha256"
	"strings"
)

// DefaultEmbeddingDim matches the external provider's dimension so similarity
// never has to care which strategy produced a stored vector.
const DefaultEmbeddingDim = 1536

// keywordDims pins a dimension to a strong positive value when the keyword
// appears in the lower-cased input. This gives the pseudo-embedding a
// detectable semantic signal on top of hash noise, and gives tests a handle.
var keywordDims = []struct {
	Keyword string
	Dim     int
}{
	{"adventurous", 12},
	{"outdoor", 47},
	{"travel", 83},
	{"family", 129},
	{"career", 204},
	{"creative", 310},
	{"sports", 402},
	{"music", 517},
	{"cooking", 611},
	{"reading", 777},
}

const keywordPinValue = 0.9

// PseudoEmbed deterministically maps text to a dim-length vector with values
// in roughly [-1, 1). Identical text always yields an identical vector, so
// the fingerprint-to-vector relationship holds even without an external
// embedding service.
func PseudoEmbed(text string, dim int) []float32 {
	if dim <= 0 {
		dim = DefaultEmbeddingDim
	}
	lower := strings.ToLower(text)
	digest := sha256.Sum256([]byte(lower))

	vec := make([]float32, dim)
	for i := 0; i < dim; i++ {
		b := digest[i%len(digest)]
		vec[i] = float32(b)/127.5 - 1.0
	}

	for _, kd := range keywordDims {
		if kd.Dim < dim && strings.Contains(lower, kd.Keyword) {
			vec[kd.Dim] = keywordPinValue
		}
	}
	return vec
}

// KeywordDim reports the pinned dimension index for a fallback keyword, for
// callers (and tests) that need to inspect the signal.
func KeywordDim(keyword string) (int, bool) {
	for _, kd := range keywordDims {
		if kd.Keyword == keyword {
			return kd.Dim, true
		}
	}
	return 0, false
}
