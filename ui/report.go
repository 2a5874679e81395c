package ui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"convsig/domain/outcome"
)

// handleAnalyzeReport runs an analysis and returns a human-readable HTML
// summary rendered from markdown, for embedding in the reporting surface.
func (s *Server) handleAnalyzeReport(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := s.service.Analyze(c.Request.Context(), req.Successful, req.Failed)
	if err != nil {
		internalError(c, err)
		return
	}

	md := renderMarkdownSummary(result)
	html := markdown.ToHTML([]byte(md), nil, nil)
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// renderMarkdownSummary builds the markdown analysis summary.
func renderMarkdownSummary(r outcome.OutcomeAnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Outcome Analysis %s\n\n", r.AnalysisID)
	fmt.Fprintf(&b, "- Sample size: %d\n", r.SampleSize)
	fmt.Fprintf(&b, "- Confidence score: %.2f\n", r.ConfidenceScore)
	fmt.Fprintf(&b, "- Combined p-value: %.4g\n", r.StatisticalEvidence.PValue)
	fmt.Fprintf(&b, "- Cache hit: %v\n\n", r.CacheHit)

	if len(r.PrimaryFactors) == 0 {
		b.WriteString("No factor cleared the correlation threshold; the groups show no reliable outcome difference.\n")
		return b.String()
	}

	b.WriteString("## Primary factors\n\n")
	b.WriteString("| Factor | Strength | Confidence | p-value |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, f := range r.PrimaryFactors {
		fmt.Fprintf(&b, "| %s | %+.3f | %.2f | %.4g |\n", f.Factor, f.Strength, f.Confidence, f.Significance)
	}
	b.WriteString("\n")

	if len(r.CausalityIndicators) > 0 {
		b.WriteString("## Causality indicators (heuristic)\n\n")
		for _, ind := range r.CausalityIndicators {
			fmt.Fprintf(&b, "- **%s** (%s): strength %.2f, dose-response %.2f\n",
				ind.Factor, ind.Direction, ind.Strength, ind.DoseResponseScore)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Per-metric tests\n\n")
	b.WriteString("| Test | Statistic | p-value | Adjusted p | Effect size |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for i, t := range r.TestResults {
		adjusted := "-"
		if i < len(r.Correction.AdjustedPValues) {
			adjusted = fmt.Sprintf("%.4g", r.Correction.AdjustedPValues[i])
		}
		fmt.Fprintf(&b, "| %s | %.3f | %.4g | %s | %.3f |\n",
			t.TestType, t.Statistic, t.PValue, adjusted, t.EffectSize)
	}

	return b.String()
}
