package services

import (
	"context"

	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/semantics"
)

// EmbeddingProvider turns text into a fixed-dimension vector. Both strategies
// return vectors of Dim() length, so similarity code never cares which one
// produced a stored vector. The provider layer never hard-fails the pipeline:
// an external error degrades to the deterministic generator.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dim() int
}

// NewEmbeddingProvider selects the strategy at construction time. A nil
// client means "never configured" (expected; logged once at Info); a non-nil
// client that fails at call time is "configured but erroring" and logs a Warn
// per failure so it can alert, while still degrading to the fallback.
func NewEmbeddingProvider(log *logger.Logger, client OpenAIClient, dim int) EmbeddingProvider {
	if dim <= 0 {
		dim = semantics.DefaultEmbeddingDim
	}
	if client == nil {
		providerLog := log.With("service", "EmbeddingProvider", "strategy", "fallback")
		providerLog.Info("No embedding service configured, using deterministic fallback generator", "dim", dim)
		return &fallbackProvider{log: providerLog, dim: dim}
	}
	providerLog := log.With("service", "EmbeddingProvider", "strategy", "external")
	return &externalProvider{
		log:      providerLog,
		client:   client,
		dim:      dim,
		fallback: &fallbackProvider{log: providerLog, dim: dim},
	}
}

type fallbackProvider struct {
	log *logger.Logger
	dim int
}

func (p *fallbackProvider) Embed(_ context.Context, text string) ([]float32, error) {
	return semantics.PseudoEmbed(text, p.dim), nil
}

func (p *fallbackProvider) Dim() int { return p.dim }

type externalProvider struct {
	log      *logger.Logger
	client   OpenAIClient
	dim      int
	fallback *fallbackProvider
}

func (p *externalProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := p.client.EmbedOne(ctx, text)
	if err != nil {
		p.log.Warn("External embedding call failed, degrading to fallback generator", "error", err)
		return p.fallback.Embed(ctx, text)
	}
	if len(vec) != p.dim {
		// A mixed-dimension store would poison similarity; discard and degrade.
		p.log.Warn("External embedding has unexpected dimension, degrading to fallback generator",
			"got", len(vec), "want", p.dim)
		return p.fallback.Embed(ctx, text)
	}
	return vec, nil
}

func (p *externalProvider) Dim() int { return p.dim }
