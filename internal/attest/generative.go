package attest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Donmaston09/crts/internal/cache"
	"github.com/Donmaston09/crts/internal/llm"
	"github.com/Donmaston09/crts/internal/model"
)

// Limiter gates backend calls. Satisfied by worker.Limiter.
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// Generative is the remote claim source. Its candidates are whatever the
// backend asserted; they carry no guarantee until validated.
type Generative struct {
	provider llm.Provider
	cache    cache.Cache // Optional; keyed by prompt hash
	cacheTTL time.Duration
	limiter  Limiter // Optional
}

// NewGenerative creates the remote claim source. cache and limiter may be
// nil to disable payload caching and rate limiting respectively.
func NewGenerative(provider llm.Provider, c cache.Cache, ttl time.Duration, limiter Limiter) *Generative {
	return &Generative{
		provider: provider,
		cache:    c,
		cacheTTL: ttl,
		limiter:  limiter,
	}
}

// Name returns the backing provider's name
func (g *Generative) Name() string {
	return g.provider.Name()
}

// Generate asks the backend for a synthesis plus candidate claims. The
// prompt is bounded (top documents, truncated abstracts) and the response
// is cached so a repeated query does not re-spend quota.
func (g *Generative) Generate(ctx context.Context, query string, ranked []model.RankedDocument) (string, model.Attestations, error) {
	docs := Documents(ranked)
	prompt := llm.BuildPrompt(query, docs)
	key := cache.Key(g.provider.Name() + "\x00" + prompt)

	if g.cache != nil {
		if raw, ok := g.cache.Get(key); ok {
			var resp llm.SynthesizeResponse
			if err := json.Unmarshal(raw, &resp); err == nil {
				return resp.Synthesis, candidates(resp.Candidates), nil
			}
			// Unreadable entry: drop it and call the backend.
			_ = g.cache.Delete(key)
		}
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx, g.provider.Name()); err != nil {
			return "", nil, err
		}
	}

	resp, err := g.provider.Synthesize(ctx, llm.SynthesizeRequest{
		Query:     query,
		Documents: docs,
		Prompt:    prompt,
	})
	if err != nil {
		return "", nil, err
	}

	if g.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			_ = g.cache.Set(key, raw, g.cacheTTL)
		}
	}

	return resp.Synthesis, candidates(resp.Candidates), nil
}

// candidates converts backend candidates into unvalidated records.
func candidates(in []llm.Candidate) model.Attestations {
	out := make(model.Attestations, 0, len(in))
	for _, c := range in {
		out = append(out, model.AttestationRecord{
			Claim:         c.Claim,
			DocumentID:    c.DocumentID,
			SourceText:    c.SourceText,
			DocumentTitle: c.DocumentTitle,
		})
	}
	return out
}
