package semantics

import "math"

// CosineSimilarity returns the cosine of two vectors in [-1, 1]. Mismatched
// lengths or a zero-norm side return 0: this is a ranking signal, not a
// correctness-critical computation, so degrading beats raising.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
