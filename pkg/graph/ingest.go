package graph

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"papergraph/internal/util"
	"papergraph/pkg/extract"
	"papergraph/pkg/logger"
	"papergraph/pkg/metadata"
	"papergraph/pkg/store"
)

// Full text shorter than this many words is considered too thin for analysis
// and the paper's abstract is used instead.
const defaultMinWords = 100

const defaultLimit = 100

const defaultPause = 100 * time.Millisecond

// TextExtractor produces the raw text of a document, or "" when the document
// is unreadable.
type TextExtractor interface {
	ExtractText(path string) string
}

// FactExtractor turns analysis text into structured facts, degrading to an
// empty result on failure.
type FactExtractor interface {
	ExtractFacts(ctx context.Context, text string) extract.Result
}

// Pipeline drives the per-document ingestion flow: identify, look up
// metadata, extract text, select the analysis input, extract facts and
// upsert into the graph. Documents are processed strictly one at a time.
type Pipeline struct {
	upserter *Upserter
	texts    TextExtractor
	facts    FactExtractor
	meta     *metadata.Table
	pdfDir   string
	limit    int
	minWords int
	pause    time.Duration
}

// PipelineParams configures a new ingestion pipeline. Store, Texts, Facts and
// Metadata are required; the remaining fields fall back to package defaults.
type PipelineParams struct {
	Store    store.GraphStore
	Texts    TextExtractor
	Facts    FactExtractor
	Metadata *metadata.Table

	PDFDir   string
	Limit    int
	MinWords int
	Pause    time.Duration
}

// NewPipeline creates an ingestion pipeline with the given collaborators.
func NewPipeline(params PipelineParams) *Pipeline {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	minWords := params.MinWords
	if minWords <= 0 {
		minWords = defaultMinWords
	}
	pause := params.Pause
	if pause < 0 {
		pause = defaultPause
	}

	return &Pipeline{
		upserter: NewUpserter(params.Store),
		texts:    params.Texts,
		facts:    params.Facts,
		meta:     params.Metadata,
		pdfDir:   params.PDFDir,
		limit:    limit,
		minWords: minWords,
		pause:    pause,
	}
}

// Stats summarizes one ingestion run.
type Stats struct {
	Processed int
	Skipped   int
}

// Run walks the PDF directory and ingests documents until the directory is
// exhausted, the processing limit is reached, or ctx is canceled. Reaching
// the limit is a normal terminal condition. The returned error is non-nil
// only for store failures or cancellation; per-document problems degrade or
// skip and the run continues.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	stats := Stats{}

	paths, err := p.collectPDFs()
	if err != nil {
		return stats, err
	}

	logger.Info("[Ingest] Starting run", "pdf_count", len(paths), "limit", p.limit)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if stats.Processed >= p.limit {
			logger.Info("[Ingest] Reached processing limit", "limit", p.limit)
			break
		}

		processed, err := p.processDocument(ctx, path)
		if err != nil {
			return stats, err
		}
		if !processed {
			stats.Skipped++
			continue
		}
		stats.Processed++

		if p.pause > 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(p.pause):
			}
		}
	}

	logger.Info("[Ingest] Run finished", "processed", stats.Processed, "skipped", stats.Skipped)
	return stats, nil
}

func (p *Pipeline) collectPDFs() ([]string, error) {
	paths := make([]string, 0)
	err := filepath.WalkDir(p.pdfDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk pdf directory %s: %w", p.pdfDir, err)
	}
	return paths, nil
}

// processDocument runs one file through the pipeline. The bool reports
// whether the document counted as processed (false means skipped).
func (p *Pipeline) processDocument(ctx context.Context, path string) (bool, error) {
	filename := filepath.Base(path)
	arxivID := util.ArxivIDFromFilename(filename)

	rec, ok := p.meta.Lookup(arxivID)
	if !ok {
		logger.Info("[Ingest] Skipping file without metadata", "file", filename, "arxiv_id", arxivID)
		return false, nil
	}

	logger.Info("[Ingest] Processing", "file", filename, "arxiv_id", arxivID)

	fullText := p.texts.ExtractText(path)

	analysisText := p.selectAnalysisInput(fullText, rec)
	if analysisText == "" {
		logger.Info("[Ingest] Skipping paper without usable text", "arxiv_id", arxivID)
		return false, nil
	}

	facts := p.facts.ExtractFacts(ctx, analysisText)

	if err := p.upserter.UpsertPaperFacts(ctx, rec, facts); err != nil {
		return false, fmt.Errorf("failed to ingest paper %s: %w", arxivID, err)
	}

	return true, nil
}

// selectAnalysisInput chooses between the extracted full text and the
// abstract: the full text wins when it exceeds the word-count floor,
// otherwise the abstract is the fallback. The choice is sanitized before it
// reaches the model payload.
func (p *Pipeline) selectAnalysisInput(fullText string, rec metadata.Record) string {
	if util.CountWords(fullText) > p.minWords {
		return util.SanitizeForModel(fullText)
	}
	return util.SanitizeForModel(rec.Abstract)
}
