package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kindredapp/kindred-backend/internal/semantics"
)

type fakeOpenAIClient struct {
	vec []float32
	err error
}

func (f *fakeOpenAIClient) Embed(_ context.Context, inputs []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(inputs))
	for i := range inputs {
		out[i] = f.vec
	}
	return out, nil
}

func (f *fakeOpenAIClient) EmbedOne(ctx context.Context, input string) ([]float32, error) {
	vecs, err := f.Embed(ctx, []string{input})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func TestFallbackProviderDeterministic(t *testing.T) {
	provider := NewEmbeddingProvider(testLogger(), nil, 128)

	a, err := provider.Embed(context.Background(), "identical input")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := provider.Embed(context.Background(), "identical input")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(a) != 128 || len(b) != 128 {
		t.Fatalf("dims %d/%d, want 128", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("fallback not deterministic at dim %d", i)
		}
	}
}

func TestExternalProviderPassthrough(t *testing.T) {
	want := make([]float32, 32)
	want[0] = 0.5
	client := &fakeOpenAIClient{vec: want}
	provider := NewEmbeddingProvider(testLogger(), client, 32)

	got, err := provider.Embed(context.Background(), "some profile text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 32 || got[0] != 0.5 {
		t.Fatalf("external vector not returned verbatim: %v", got[:2])
	}
}

func TestExternalProviderFallsBackOnError(t *testing.T) {
	client := &fakeOpenAIClient{err: errors.New("503 from provider")}
	provider := NewEmbeddingProvider(testLogger(), client, 64)

	got, err := provider.Embed(context.Background(), "some profile text")
	if err != nil {
		t.Fatalf("provider failure must not surface, got %v", err)
	}
	want := semantics.PseudoEmbed("some profile text", 64)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fallback vector mismatch at dim %d", i)
		}
	}
}

func TestExternalProviderFallsBackOnDimensionMismatch(t *testing.T) {
	client := &fakeOpenAIClient{vec: make([]float32, 48)}
	provider := NewEmbeddingProvider(testLogger(), client, 64)

	got, err := provider.Embed(context.Background(), "text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 64 {
		t.Fatalf("dim %d leaked through, want constant 64", len(got))
	}
}

func TestProviderDimensionInvariance(t *testing.T) {
	external := NewEmbeddingProvider(testLogger(), &fakeOpenAIClient{vec: make([]float32, 64)}, 64)
	fallback := NewEmbeddingProvider(testLogger(), nil, 64)

	a, _ := external.Embed(context.Background(), "text one")
	b, _ := fallback.Embed(context.Background(), "text two")
	if len(a) != len(b) {
		t.Fatalf("strategies disagree on dimension: %d vs %d", len(a), len(b))
	}
	// Similarity never special-cases the source.
	if sim := semantics.CosineSimilarity(a, b); sim < -1 || sim > 1 {
		t.Fatalf("cross-strategy similarity %v outside [-1, 1]", sim)
	}
}
