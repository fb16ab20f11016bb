package render

import (
	"context"
	"io"
	"log/slog"
)

// Pipeline is one fetch -> decode -> render pass over a Source. Any failure
// is logged exactly once and nothing is rendered; there is no retry and no
// partial output.
type Pipeline struct {
	source Source
	logger *slog.Logger
}

// NewPipeline builds a pipeline over a source. A nil logger falls back to
// slog.Default.
func NewPipeline(source Source, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{source: source, logger: logger}
}

// Load fetches and validates the ranking without rendering it.
func (p *Pipeline) Load(ctx context.Context) ([]TeamRanking, error) {
	data, err := p.source.Fetch(ctx)
	if err != nil {
		p.logger.Error("Ranking render pass failed", "error", err)
		return nil, err
	}
	records, err := Decode(data)
	if err != nil {
		p.logger.Error("Ranking render pass failed", "error", err)
		return nil, err
	}
	return records, nil
}

// Run executes one pass, appending rows through the given renderer. On
// failure the renderer is never invoked, so the target keeps whatever
// content it already had.
func (p *Pipeline) Run(ctx context.Context, r *TableRenderer) error {
	records, err := p.Load(ctx)
	if err != nil {
		return err
	}
	return r.Render(records)
}

// RunPage executes one pass and writes a complete HTML document.
func (p *Pipeline) RunPage(ctx context.Context, w io.Writer) error {
	records, err := p.Load(ctx)
	if err != nil {
		return err
	}
	return RenderPage(w, records)
}
