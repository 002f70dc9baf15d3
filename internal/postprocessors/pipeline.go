// Package postprocessors turns raw knowledge documents into the chunks the
// ingest pipeline embeds and stores. The chunker is the mandatory first
// stage; further processors can reshape or annotate its output.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
)

// Pipeline runs a document through an ordered chain of PostProcessors.
// Ingestion builds one pipeline per run, with the chunker at the front.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a pipeline that applies the given processors in order.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process feeds the document through every processor in order. The first
// processor sees nil chunks and is expected to produce them; later stages
// receive and may reshape the chunks of the previous stage.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	var chunks []domain.Chunk

	for _, processor := range p.processors {
		var err error
		chunks, err = processor.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return chunks, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
