// Package report turns a finished one-sample t-test into a narrative.
// Renderers only format; every number they print comes from the Report.
package report

import (
	"fmt"
	"sort"
	"strings"

	"hypotest/domain/core"
	"hypotest/domain/stats"
	"hypotest/internal/errors"
	"hypotest/ports"
)

// Supported format names
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ForFormat returns the renderer registered under name.
func ForFormat(name string) (ports.ReporterPort, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatText:
		return NewTextRenderer(), nil
	case FormatMarkdown, "md":
		return NewMarkdownRenderer(), nil
	case FormatHTML:
		return NewHTMLRenderer(), nil
	}
	return nil, errors.InvalidInputf(core.ErrUnsupportedFormat, "format %q (want one of %s)", name, strings.Join(Formats(), ", "))
}

// Formats lists the supported format names.
func Formats() []string {
	names := []string{FormatText, FormatMarkdown, FormatHTML}
	sort.Strings(names)
	return names
}

func validate(r *stats.Report) error {
	if r == nil {
		return errors.InvalidInput("nil report")
	}
	if len(r.Intervals) != len(r.Decisions) {
		return errors.InternalError(fmt.Sprintf("report has %d intervals but %d decisions", len(r.Intervals), len(r.Decisions)))
	}
	return nil
}

// overridden reports whether the tested mean was given rather than taken
// from the generated population.
func overridden(r *stats.Report) bool {
	return r.Population != nil && r.Population.Mean != r.PopulationMean
}

// verdict describes a decision in words.
func verdict(d stats.Decision) string {
	if d.RejectNull {
		return "reject the null hypothesis"
	}
	return "fail to reject the null hypothesis"
}

// comparison renders the p-value against alpha, e.g. "p = 0.0131 < α = 0.05".
func comparison(p float64, d stats.Decision, alpha string) string {
	op := ">="
	if d.RejectNull {
		op = "<"
	}
	return fmt.Sprintf("p = %s %s %s = %s", formatP(p), op, alpha, trimFloat(d.SignificanceLevel))
}

func capture(ci stats.Interval, mean float64) string {
	if ci.Contains(mean) {
		return "captures"
	}
	return "does not capture"
}

func percent(level float64) string {
	return trimFloat(level*100) + "%"
}

func trimFloat(x float64) string {
	s := fmt.Sprintf("%.4f", x)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func formatP(p float64) string {
	if p > 0 && p < 1e-4 {
		return fmt.Sprintf("%.3g", p)
	}
	return fmt.Sprintf("%.4f", p)
}
