package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Donmaston09/crts/internal/model"
	"github.com/Donmaston09/crts/internal/pipeline"
	"github.com/Donmaston09/crts/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <queries-file>",
	Short: "Score multiple queries from a file in parallel",
	Long: `Batch scores multiple queries concurrently against one shared
evidence corpus and guideline set:
- Read queries from the input file (one per line, # for comments)
- Score queries in parallel with a configurable worker count
- Write an individual JSON and Markdown report per query
- Optionally append every score to CSV/JSONL audit logs

Example:
  crts batch queries.txt --docs pubmed.json
  crts batch queries.txt --docs docs.json --guidelines nice.yaml --concurrency 8
  crts batch queries.txt --docs docs.json --log-csv crts_log.csv --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Input flags
	batchCmd.Flags().StringVar(&docsPath, "docs", "", "evidence documents file (JSON or YAML, required)")
	batchCmd.Flags().StringVar(&guidelinesPath, "guidelines", "", "guideline chunks file (JSON or YAML, optional)")
	_ = batchCmd.MarkFlagRequired("docs")

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Output flags
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./crts-reports", "output directory for reports")
	batchCmd.Flags().StringVar(&logCSV, "log-csv", "", "append every score to a CSV audit log (optional)")
	batchCmd.Flags().StringVar(&logJSONL, "log-jsonl", "", "append every score to a JSONL audit log (optional)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Scoring flags
	batchCmd.Flags().Float64Var(&alpha, "alpha", 0.30, "weight of Source Fidelity")
	batchCmd.Flags().Float64Var(&beta, "beta", 0.30, "weight of Conflict Reporting Rate")
	batchCmd.Flags().Float64Var(&gamma, "gamma", 0.20, "weight of Audit Responsiveness")
	batchCmd.Flags().Float64Var(&delta, "delta", 0.20, "weight of Guideline Alignment")
	batchCmd.Flags().Float64Var(&kSeconds, "k-seconds", 5.0, "audit window in seconds for AR*")
	batchCmd.Flags().Float64Var(&alignThreshold, "threshold", 0.15, "claim-to-guideline similarity cutoff")
	batchCmd.Flags().Float64Var(&networkThreshold, "network-threshold", 0.25, "document similarity edge cutoff")

	// Backend flags
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching of backend payloads")
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable the generative synthesis backend")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "generative backend (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "backend model name (provider default if empty)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	queries, err := pipeline.LoadQueries(file)
	if err != nil {
		return err
	}
	docs, err := pipeline.LoadDocuments(docsPath)
	if err != nil {
		return err
	}
	var chunks []model.GuidelineChunk
	if guidelinesPath != "" {
		if chunks, err = pipeline.LoadGuidelines(guidelinesPath); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Batch: %d queries, %d documents, %d guideline chunks, %d workers\n",
		len(queries), len(docs), len(chunks), concurrency)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(cfg, backendLimiter(cfg))
	if err != nil {
		return err
	}

	sinks, err := openSinks()
	if err != nil {
		return err
	}
	if sinks != nil {
		defer func() { _ = sinks.Close() }()
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	results := processor.ProcessQueries(ctx, queries, docs, chunks)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Query, result.Error)
			continue
		}
		successCount++

		slug := sanitizeFilename(result.Query)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderToFile(renderer.JSON, result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Query, err)
			continue
		}
		if err := renderToFile(renderer.Markdown, result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Query, err)
			continue
		}

		if sinks != nil {
			if err := sinks.Log(result.Query, result.Report.CRTS); err != nil {
				return fmt.Errorf("audit log: %w", err)
			}
		}

		fmt.Fprintf(os.Stderr, "OK   %s (CRTS %.2f)\n", result.Query, result.Report.CRTS.CRTS)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d total, %d succeeded, %d failed, reports in %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

func renderToFile(render func(w io.Writer, report *model.Report) error, report *model.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f, report); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeFilename turns a query into a safe file name.
func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '/', r == '\\', r == ':', r == '.':
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "query"
	}
	if len(out) > 100 {
		out = out[:100]
	}
	return out
}
