package worker

import (
	"context"
	"sort"

	"github.com/Donmaston09/crts/internal/model"
)

// Scorer scores one query against a fixed document and guideline set.
type Scorer interface {
	Score(ctx context.Context, query string, docs []model.Document, chunks []model.GuidelineChunk) (*model.Report, error)
}

// ScoreJob scores a single query from a batch.
type ScoreJob struct {
	Index  int // Position in the input batch
	Query  string
	Scorer Scorer
	Docs   []model.Document
	Chunks []model.GuidelineChunk
}

// Execute executes the score job
func (j *ScoreJob) Execute(ctx context.Context) Result {
	report, err := j.Scorer.Score(ctx, j.Query, j.Docs, j.Chunks)
	return &ScoreResult{
		Index:  j.Index,
		Query:  j.Query,
		Report: report,
		Error:  err,
	}
}

// ScoreResult is the outcome of one query in a batch.
type ScoreResult struct {
	Index  int
	Query  string
	Report *model.Report
	Error  error
}

// GetError returns the error from the score result
func (r *ScoreResult) GetError() error {
	return r.Error
}

// BatchProcessor scores multiple queries concurrently against the same
// evidence corpus.
type BatchProcessor struct {
	scorer      Scorer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(scorer Scorer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		scorer:      scorer,
		concurrency: concurrency,
	}
}

// ProcessQueries scores the queries concurrently. Results come back in
// input order regardless of completion order.
func (b *BatchProcessor) ProcessQueries(ctx context.Context, queries []string, docs []model.Document, chunks []model.GuidelineChunk) []*ScoreResult {
	if len(queries) == 0 {
		return []*ScoreResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Drain results while submitting. The pool's channels are bounded,
	// so submission stalls once workers back up behind an unread
	// results channel.
	collected := make(chan []*ScoreResult, 1)
	go func() {
		results := make([]*ScoreResult, 0, len(queries))
		for result := range pool.Results() {
			results = append(results, result.(*ScoreResult))
		}
		collected <- results
	}()

	for i, query := range queries {
		pool.Submit(&ScoreJob{
			Index:  i,
			Query:  query,
			Scorer: b.scorer,
			Docs:   docs,
			Chunks: chunks,
		})
	}

	pool.Close()
	scoreResults := <-collected
	sort.Slice(scoreResults, func(i, j int) bool {
		return scoreResults[i].Index < scoreResults[j].Index
	})

	return scoreResults
}
