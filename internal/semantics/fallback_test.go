package semantics

import "testing"

func TestPseudoEmbedDeterministic(t *testing.T) {
	text := "Bio: I love long walks. Interests: astronomy"
	a := PseudoEmbed(text, DefaultEmbeddingDim)
	b := PseudoEmbed(text, DefaultEmbeddingDim)
	if len(a) != DefaultEmbeddingDim || len(b) != DefaultEmbeddingDim {
		t.Fatalf("dimensions %d/%d, want %d", len(a), len(b), DefaultEmbeddingDim)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vectors differ at dim %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPseudoEmbedValueRange(t *testing.T) {
	vec := PseudoEmbed("range check text", 256)
	for i, v := range vec {
		if v < -1.0 || v > 1.0 {
			t.Fatalf("dim %d value %v outside [-1, 1]", i, v)
		}
	}
}

func TestPseudoEmbedKeywordSignal(t *testing.T) {
	dim, ok := KeywordDim("travel")
	if !ok {
		t.Fatal("travel keyword not mapped")
	}

	with := PseudoEmbed("I love to travel the world", DefaultEmbeddingDim)
	without := PseudoEmbed("I love staying home with tea", DefaultEmbeddingDim)

	if with[dim] != keywordPinValue {
		t.Fatalf("travel dim %d = %v, want pinned %v", dim, with[dim], float32(keywordPinValue))
	}
	if with[dim] <= without[dim] {
		t.Fatalf("travel dim %d: with=%v not greater than without=%v", dim, with[dim], without[dim])
	}
}

func TestPseudoEmbedKeywordCaseInsensitive(t *testing.T) {
	dim, _ := KeywordDim("cooking")
	vec := PseudoEmbed("COOKING is my passion", DefaultEmbeddingDim)
	if vec[dim] != keywordPinValue {
		t.Fatalf("cooking dim %d = %v, want pinned %v", dim, vec[dim], float32(keywordPinValue))
	}
}

func TestPseudoEmbedSmallDimSkipsOutOfRangePins(t *testing.T) {
	// dim 8 is smaller than every mapped index except none; pins must not panic.
	vec := PseudoEmbed("travel family career", 8)
	if len(vec) != 8 {
		t.Fatalf("dim %d, want 8", len(vec))
	}
}

func TestPseudoEmbedIdenticalTextHighSimilarity(t *testing.T) {
	text := "Two users with identical psychometric scores and identical bios"
	a := PseudoEmbed(text, DefaultEmbeddingDim)
	b := PseudoEmbed(text, DefaultEmbeddingDim)
	if sim := CosineSimilarity(a, b); sim < 0.99 {
		t.Fatalf("identical text cosine = %v, want >= 0.99", sim)
	}
}
