package report

import (
	"fmt"
	"io"
	"strings"

	"hypotest/domain/stats"
)

// MarkdownRenderer writes the narrative as a markdown document.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a markdown renderer
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Format returns "markdown"
func (r *MarkdownRenderer) Format() string { return FormatMarkdown }

// Render writes the markdown document to w.
func (r *MarkdownRenderer) Render(w io.Writer, rep *stats.Report) error {
	doc, err := markdownDocument(rep)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, doc)
	return err
}

func markdownDocument(rep *stats.Report) (string, error) {
	if err := validate(rep); err != nil {
		return "", err
	}

	var b strings.Builder
	res := rep.Result

	b.WriteString("# One-sample t-test\n\n")
	if !rep.RunID.IsEmpty() {
		fmt.Fprintf(&b, "Run `%s`\n\n", rep.RunID)
	}

	b.WriteString("| | n | mean | sd |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	switch {
	case rep.Population == nil:
		fmt.Fprintf(&b, "| population | - | %.4f | - |\n", rep.PopulationMean)
	case overridden(rep):
		fmt.Fprintf(&b, "| population | %d | %.4f | %.4f |\n", rep.Population.Count, rep.Population.Mean, rep.Population.StdDev)
		fmt.Fprintf(&b, "| reference | - | %.4f | - |\n", rep.PopulationMean)
	default:
		fmt.Fprintf(&b, "| population | %d | %.4f | %.4f |\n", rep.Population.Count, rep.PopulationMean, rep.Population.StdDev)
	}
	fmt.Fprintf(&b, "| sample | %d | %.4f | %.4f |\n\n", rep.Sample.Count, rep.Sample.Mean, rep.Sample.StdDev)

	fmt.Fprintf(&b, "**H0:** the sample mean equals the population mean %.4f.\n\n", rep.PopulationMean)
	fmt.Fprintf(&b, "**t** = %.4f, **df** = %d, **p** = %s (two-tailed)\n\n", res.Statistic, res.DegreesOfFreedom, formatP(res.PValue))

	b.WriteString("| confidence | α | t* | interval | population mean | decision |\n")
	b.WriteString("|---:|---:|---:|---|---|---|\n")
	for i, d := range rep.Decisions {
		ci := rep.Intervals[i]
		fmt.Fprintf(&b, "| %s | %s | ±%.4f | [%.4f, %.4f] | %s | %s |\n",
			percent(d.ConfidenceLevel), trimFloat(d.SignificanceLevel), d.CriticalValue,
			ci.Lower, ci.Upper, capture(ci, rep.PopulationMean), verdict(d))
	}
	b.WriteString("\n")

	for _, d := range rep.Decisions {
		fmt.Fprintf(&b, "- At %s confidence: %s, so we %s.\n", percent(d.ConfidenceLevel), comparison(res.PValue, d, "α"), verdict(d))
	}

	return b.String(), nil
}
