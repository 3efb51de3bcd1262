package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Donmaston09/crts/internal/attest"
	"github.com/Donmaston09/crts/internal/model"
	"github.com/Donmaston09/crts/internal/pipeline"
	"github.com/Donmaston09/crts/internal/sink"
	"github.com/Donmaston09/crts/internal/worker"
)

var (
	docsPath       string
	guidelinesPath string
	outJSON        string
	outMD          string
	logCSV         string
	logJSONL       string
	timeout        time.Duration
	noCache        bool
	noFooter       bool
	llmEnabled     bool
	llmProvider    string
	llmModel       string

	alpha            float64
	beta             float64
	gamma            float64
	delta            float64
	kSeconds         float64
	alignThreshold   float64
	networkThreshold float64
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <query>",
	Short: "Score a single query and generate a transparency report",
	Long: `Score runs the full pipeline for one clinical query:
- Tag documents with supportive and risk-signalling evidence terms
- Prioritise documents by relevance, study quality, safety and recency
- Attest every synthesised claim to a verbatim source sentence
- Align verified claims to guideline text
- Aggregate into the Clinical RAG Transparency Score (CRTS)

Example:
  crts score "metformin cardiovascular safety" --docs pubmed.json
  crts score "warfarin interactions" --docs docs.json --guidelines nice.yaml --md report.md
  crts score "statin myopathy" --docs docs.json --llm --llm-provider openai
  crts score "ace inhibitors" --docs docs.json --log-csv crts_log.csv --log-jsonl crts_log.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	// Input flags
	scoreCmd.Flags().StringVar(&docsPath, "docs", "", "evidence documents file (JSON or YAML, required)")
	scoreCmd.Flags().StringVar(&guidelinesPath, "guidelines", "", "guideline chunks file (JSON or YAML, optional)")
	_ = scoreCmd.MarkFlagRequired("docs")

	// Output flags
	scoreCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	scoreCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	scoreCmd.Flags().StringVar(&logCSV, "log-csv", "", "append the score to a CSV audit log (optional)")
	scoreCmd.Flags().StringVar(&logJSONL, "log-jsonl", "", "append the score to a JSONL audit log (optional)")
	scoreCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Scoring flags
	scoreCmd.Flags().Float64Var(&alpha, "alpha", 0.30, "weight of Source Fidelity")
	scoreCmd.Flags().Float64Var(&beta, "beta", 0.30, "weight of Conflict Reporting Rate")
	scoreCmd.Flags().Float64Var(&gamma, "gamma", 0.20, "weight of Audit Responsiveness")
	scoreCmd.Flags().Float64Var(&delta, "delta", 0.20, "weight of Guideline Alignment")
	scoreCmd.Flags().Float64Var(&kSeconds, "k-seconds", 5.0, "audit window in seconds for AR*")
	scoreCmd.Flags().Float64Var(&alignThreshold, "threshold", 0.15, "claim-to-guideline similarity cutoff")
	scoreCmd.Flags().Float64Var(&networkThreshold, "network-threshold", 0.25, "document similarity edge cutoff")

	// Backend flags
	scoreCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall scoring timeout")
	scoreCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching of backend payloads")
	scoreCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable the generative synthesis backend")
	scoreCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "generative backend (openai, anthropic, ollama)")
	scoreCmd.Flags().StringVar(&llmModel, "llm-model", "", "backend model name (provider default if empty)")
}

func runScore(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
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

	if verbose {
		fmt.Fprintf(os.Stderr, "Query: %s\n", query)
		fmt.Fprintf(os.Stderr, "Documents: %d\n", len(docs))
		fmt.Fprintf(os.Stderr, "Guideline chunks: %d\n", len(chunks))
		if cfg.LLM.Provider != "" {
			fmt.Fprintf(os.Stderr, "Backend: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg, backendLimiter(cfg))
	if err != nil {
		return err
	}

	report, err := p.Score(ctx, query, docs, chunks)
	if err != nil {
		return fmt.Errorf("score failed: %w", err)
	}

	if err := writeOutputs(cfg, report); err != nil {
		return err
	}

	sinks, err := openSinks()
	if err != nil {
		return err
	}
	if sinks != nil {
		defer func() { _ = sinks.Close() }()
		if err := sinks.Log(report.Query, report.CRTS); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	renderer.Summary(os.Stdout, report)

	return nil
}

// buildConfig assembles the effective configuration from flags and
// environment.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Weights = model.Weights{Alpha: alpha, Beta: beta, Gamma: gamma, Delta: delta}
	cfg.KSeconds = kSeconds
	cfg.Align.Threshold = alignThreshold
	cfg.Align.NetworkThreshold = networkThreshold
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

// backendLimiter gates generative calls; nil when no backend is in play.
func backendLimiter(cfg *model.Config) attest.Limiter {
	if cfg.LLM.Provider == "" {
		return nil
	}
	return worker.NewLimiter(cfg.Concurrency.BackendRPS, cfg.Concurrency.BackendBurst)
}

// writeOutputs renders the report to the configured files.
func writeOutputs(cfg *model.Config, report *model.Report) error {
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	if outJSON != "" {
		f, err := os.Create(outJSON)
		if err != nil {
			return fmt.Errorf("create %s: %w", outJSON, err)
		}
		if err := renderer.JSON(f, report); err != nil {
			f.Close()
			return fmt.Errorf("write JSON: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", outJSON, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outJSON)
		}
	}

	if outMD != "" {
		f, err := os.Create(outMD)
		if err != nil {
			return fmt.Errorf("create %s: %w", outMD, err)
		}
		if err := renderer.Markdown(f, report); err != nil {
			f.Close()
			return fmt.Errorf("write Markdown: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", outMD, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outMD)
		}
	}

	return nil
}

// openSinks opens the configured audit logs; nil when none are set.
func openSinks() (sink.Sink, error) {
	var sinks sink.Multi
	if logCSV != "" {
		s, err := sink.NewCSVSink(logCSV)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if logJSONL != "" {
		s, err := sink.NewJSONLSink(logJSONL)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 0 {
		return nil, nil
	}
	return sinks, nil
}
