package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Donmaston09/crts/internal/align"
	"github.com/Donmaston09/crts/internal/model"
	"github.com/Donmaston09/crts/internal/network"
)

// Renderer writes reports as JSON, Markdown or a console summary.
// Markdown and summary output iterate attestations in insertion order,
// so renders are reproducible byte for byte apart from the timestamp.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// JSON writes the full report as indented JSON.
func (r *Renderer) JSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// Markdown writes a human-readable audit document.
func (r *Renderer) Markdown(w io.Writer, report *model.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Transparency Report\n\n")
	fmt.Fprintf(&b, "**Query:** %s\n\n", report.Query)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	crts := report.CRTS
	fmt.Fprintf(&b, "## CRTS: %.2f\n\n", crts.CRTS)
	fmt.Fprintf(&b, "| Component | Value | Weight |\n")
	fmt.Fprintf(&b, "|-----------|-------|--------|\n")
	fmt.Fprintf(&b, "| Source Fidelity (SF) | %.2f | %.2f |\n", crts.SF, crts.Weights.Alpha)
	fmt.Fprintf(&b, "| Conflict Reporting Rate (CRR) | %.2f | %.2f |\n", crts.CRR, crts.Weights.Beta)
	fmt.Fprintf(&b, "| Audit Responsiveness (AR*) | %.2f | %.2f |\n", crts.AR, crts.Weights.Gamma)
	fmt.Fprintf(&b, "| Guideline Alignment (GA) | %.2f | %.2f |\n", crts.GA, crts.Weights.Delta)
	fmt.Fprintf(&b, "\nAudit latency L = %.0f s/claim\n\n", crts.L)

	fmt.Fprintf(&b, "## Synthesis\n\n%s\n\n", report.Synthesis)

	fmt.Fprintf(&b, "## Attestation Map\n\n")
	if len(report.Attestations) == 0 {
		fmt.Fprintf(&b, "No verifiable claims were produced.\n\n")
	}
	for _, rec := range report.Attestations {
		fmt.Fprintf(&b, "- **Claim:** %s\n", rec.Claim)
		fmt.Fprintf(&b, "  - Document: %s", rec.DocumentID)
		if rec.DocumentTitle != "" {
			fmt.Fprintf(&b, " (%s)", rec.DocumentTitle)
		}
		fmt.Fprintf(&b, "\n  - Source: %q\n", rec.SourceText)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Conflict Signals\n\n")
	if report.Conflict.Detected {
		fmt.Fprintf(&b, "Conflicting evidence detected: %d supportive, %d risk-signalling document(s); %d risk mention(s) surfaced in the synthesis.\n\n",
			report.Conflict.SupportiveCount, report.Conflict.RiskCount, report.SurfacedRisks)
	} else {
		fmt.Fprintf(&b, "No conflicting evidence detected.\n\n")
	}

	fmt.Fprintf(&b, "## Guideline Alignment\n\n")
	if report.GuidelineChunks == 0 {
		fmt.Fprintf(&b, "No guideline corpus was loaded; every claim is reported as unaligned.\n\n")
	}
	for _, claim := range report.Attestations.Claims() {
		res := report.Alignment[claim]
		if res == nil {
			fmt.Fprintf(&b, "- %s: not aligned\n", claim)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s p.%s (%.2f)\n", claim, res.Source, res.Page, res.Score)
	}
	b.WriteString("\n")

	if prov := align.Provenance(report.Alignment); len(prov) > 0 {
		fmt.Fprintf(&b, "### Guideline Provenance\n\n")
		for _, e := range prov {
			fmt.Fprintf(&b, "- %s p.%s", e.Source, e.Page)
			if e.LastModified != "" {
				fmt.Fprintf(&b, ", modified %s", e.LastModified)
			}
			if e.Hash != "" {
				fmt.Fprintf(&b, ", sha %s", e.Hash)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(report.Network) > 0 {
		fmt.Fprintf(&b, "## Evidence Network\n\n")
		docs := make([]model.Document, 0, len(report.Documents))
		for _, rd := range report.Documents {
			docs = append(docs, rd.Document)
		}
		for _, node := range network.Nodes(docs, report.Conflict.DocTags) {
			fmt.Fprintf(&b, "- %s [%s]: %s\n", node.DocumentID, node.Class, node.Title)
		}
		b.WriteString("\n")
		for _, edge := range report.Network {
			fmt.Fprintf(&b, "- %s -- %s (%.2f)\n", edge.SourceID, edge.TargetID, edge.Similarity)
		}
		b.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(&b, "## Warnings\n\n")
		for _, warning := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\n")
		fmt.Fprintf(&b, "*This report measures traceability, not clinical correctness. ")
		fmt.Fprintf(&b, "Every component is re-derivable from the recorded inputs and the run is deterministic given the same documents and guidelines.*\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary writes the one-screen console view.
func (r *Renderer) Summary(w io.Writer, report *model.Report) {
	crts := report.CRTS
	fmt.Fprintf(w, "Query: %s\n", report.Query)
	fmt.Fprintf(w, "CRTS:  %.2f  (SF %.2f | CRR %.2f | AR* %.2f | GA %.2f, L=%.0fs)\n",
		crts.CRTS, crts.SF, crts.CRR, crts.AR, crts.GA, crts.L)
	fmt.Fprintf(w, "Claims: %d attested, %d guideline-aligned\n",
		len(report.Attestations), alignedCount(report.Alignment))
	if report.Conflict.Detected {
		fmt.Fprintf(w, "Conflict: %d supportive vs %d risk document(s), %d surfaced\n",
			report.Conflict.SupportiveCount, report.Conflict.RiskCount, report.SurfacedRisks)
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}

func alignedCount(alignment model.Alignment) int {
	n := 0
	for _, res := range alignment {
		if res != nil {
			n++
		}
	}
	return n
}
