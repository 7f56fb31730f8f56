package report

import (
	"fmt"
	"io"
	"strings"

	"hypotest/domain/stats"
)

// TextRenderer writes a plain console narrative.
type TextRenderer struct{}

// NewTextRenderer creates a text renderer
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Format returns "text"
func (r *TextRenderer) Format() string { return FormatText }

// Render writes the narrative to w.
func (r *TextRenderer) Render(w io.Writer, rep *stats.Report) error {
	if err := validate(rep); err != nil {
		return err
	}

	var b strings.Builder
	res := rep.Result

	if rep.RunID.IsEmpty() {
		b.WriteString("One-sample t-test\n\n")
	} else {
		fmt.Fprintf(&b, "One-sample t-test (run %s)\n\n", rep.RunID)
	}
	switch {
	case rep.Population == nil:
		fmt.Fprintf(&b, "Population mean: %.4f (given)\n", rep.PopulationMean)
	case overridden(rep):
		fmt.Fprintf(&b, "Population mean: %.4f (n=%d, generated)\n", rep.Population.Mean, rep.Population.Count)
		fmt.Fprintf(&b, "Reference mean:  %.4f (given)\n", rep.PopulationMean)
	default:
		fmt.Fprintf(&b, "Population mean: %.4f (n=%d)\n", rep.PopulationMean, rep.Population.Count)
	}
	fmt.Fprintf(&b, "Sample mean:     %.4f (n=%d, sd=%.4f)\n\n", rep.Sample.Mean, rep.Sample.Count, rep.Sample.StdDev)

	fmt.Fprintf(&b, "H0: the sample mean equals the population mean %.4f\n", rep.PopulationMean)
	fmt.Fprintf(&b, "t = %.4f, df = %d, p = %s (two-tailed)\n", res.Statistic, res.DegreesOfFreedom, formatP(res.PValue))

	for i, d := range rep.Decisions {
		ci := rep.Intervals[i]
		fmt.Fprintf(&b, "\nAt %s confidence (alpha = %s):\n", percent(d.ConfidenceLevel), trimFloat(d.SignificanceLevel))
		fmt.Fprintf(&b, "  critical values: ±%.4f\n", d.CriticalValue)
		fmt.Fprintf(&b, "  %s, %s.\n", comparison(res.PValue, d, "alpha"), verdict(d))
		fmt.Fprintf(&b, "  interval [%.4f, %.4f] %s the population mean.\n", ci.Lower, ci.Upper, capture(ci, rep.PopulationMean))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
