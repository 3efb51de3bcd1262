// Package pipeline orchestrates the complete scoring run: conflict
// detection, evidence prioritisation, attestation, guideline alignment
// and the CRTS composite, in that fixed order. The generative backend,
// when configured, runs strictly inside the attestation stage; nothing
// it produces can reach the score without passing validation.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Donmaston09/crts/internal/align"
	"github.com/Donmaston09/crts/internal/attest"
	"github.com/Donmaston09/crts/internal/cache"
	"github.com/Donmaston09/crts/internal/conflict"
	"github.com/Donmaston09/crts/internal/llm"
	"github.com/Donmaston09/crts/internal/model"
	"github.com/Donmaston09/crts/internal/network"
	"github.com/Donmaston09/crts/internal/rank"
	"github.com/Donmaston09/crts/internal/score"
)

// Pipeline orchestrates the scoring of one query against a document set.
type Pipeline struct {
	tagger    *conflict.Tagger
	ranker    *rank.Ranker
	generator *attest.Generator
	config    *model.Config
}

// NewPipeline creates a pipeline from configuration. limiter gates
// generative backend calls and may be nil.
func NewPipeline(cfg *model.Config, limiter attest.Limiter) (*Pipeline, error) {
	var generative attest.Source
	if cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("configuring generative backend: %w", err)
		}
		var payloadCache cache.Cache
		if cfg.Cache.Enabled {
			payloadCache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		}
		generative = attest.NewGenerative(provider, payloadCache, cfg.Cache.TTL, limiter)
	}

	return &Pipeline{
		tagger:    conflict.NewTagger(),
		ranker:    rank.NewRanker(cfg.Rank),
		generator: attest.NewGenerator(generative),
		config:    cfg,
	}, nil
}

// Score runs the full pipeline for one query and returns the report.
// Guideline chunks may be empty; alignment then reports every claim as
// unaligned rather than being skipped.
func (p *Pipeline) Score(ctx context.Context, query string, docs []model.Document, chunks []model.GuidelineChunk) (*model.Report, error) {
	if query == "" {
		return nil, fmt.Errorf("empty query")
	}

	summary := p.tagger.Tag(docs)
	ranked := p.ranker.Rank(docs, query)

	result := p.generator.Generate(ctx, query, ranked)

	alignment := align.Align(result.Attestations.Claims(), chunks, p.config.Align.Threshold)

	orderedDocs := attest.Documents(ranked)
	edges := network.Edges(orderedDocs, p.config.Align.NetworkThreshold)

	surfaced := score.EstimateSurfacedRisks(result.Synthesis, summary.RiskCount)
	crts := score.Compute(result.Attestations, summary, alignment, surfaced, p.config.KSeconds, p.config.Weights)

	return &model.Report{
		Query:           query,
		GeneratedAt:     time.Now().UTC(),
		Documents:       ranked,
		Conflict:        summary,
		Synthesis:       result.Synthesis,
		Attestations:    result.Attestations,
		Alignment:       alignment,
		GuidelineChunks: len(chunks),
		Network:         edges,
		SurfacedRisks:   surfaced,
		CRTS:            crts,
		Warnings:        result.Warnings,
		Principles:      model.DefaultPrinciples(),
	}, nil
}
