package ports

import (
	"io"

	"hypotest/domain/stats"
)

// ReporterPort narrates a finished analysis
type ReporterPort interface {
	// Format returns the renderer's format name (text, markdown, html)
	Format() string
	Render(w io.Writer, report *stats.Report) error
}
