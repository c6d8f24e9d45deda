package graph

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"papergraph/pkg/extract"
	"papergraph/pkg/metadata"
)

// fakeTexts serves canned extraction text per file basename.
type fakeTexts struct {
	byFile map[string]string
}

func (f *fakeTexts) ExtractText(path string) string {
	return f.byFile[filepath.Base(path)]
}

// fakeFacts records every analysis input it receives and returns the same
// canned result for all of them.
type fakeFacts struct {
	inputs []string
	result extract.Result
}

func (f *fakeFacts) ExtractFacts(ctx context.Context, text string) extract.Result {
	f.inputs = append(f.inputs, text)
	return f.result
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func loadTable(t *testing.T, lines ...string) *metadata.Table {
	t.Helper()
	path := writeTempFile(t, t.TempDir(), "metadata.json", strings.Join(lines, "\n"))
	table, err := metadata.Load(path)
	if err != nil {
		t.Fatalf("metadata.Load() error = %v", err)
	}
	return table
}

const metadataLine = `{"id": "2001.00001", "title": "T", "abstract": "A causes B.", "authors": "Jane Doe", "categories": "cs.AI", "versions": [{"version": "v1", "created": "Wed, 1 Jan 2020 00:00:00 GMT"}]}`

func TestPipelineUsesAbstractForThinFullText(t *testing.T) {
	pdfDir := t.TempDir()
	writeTempFile(t, pdfDir, "2001.00001v1.pdf", "")

	texts := &fakeTexts{byFile: map[string]string{
		"2001.00001v1.pdf": "too short",
	}}
	facts := &fakeFacts{}

	p := NewPipeline(PipelineParams{
		Store:    newFakeGraphStore(),
		Texts:    texts,
		Facts:    facts,
		Metadata: loadTable(t, metadataLine),
		PDFDir:   pdfDir,
		MinWords: 5,
	})

	stats, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Processed != 1 || stats.Skipped != 0 {
		t.Fatalf("stats = %+v, want 1 processed", stats)
	}
	if len(facts.inputs) != 1 || facts.inputs[0] != "A causes B." {
		t.Errorf("analysis input = %q, want the abstract", facts.inputs)
	}
}

func TestPipelineUsesFullTextAboveFloor(t *testing.T) {
	pdfDir := t.TempDir()
	writeTempFile(t, pdfDir, "2001.00001v1.pdf", "")

	texts := &fakeTexts{byFile: map[string]string{
		"2001.00001v1.pdf": "the café   experiment showed six distinct outcomes overall",
	}}
	facts := &fakeFacts{}

	p := NewPipeline(PipelineParams{
		Store:    newFakeGraphStore(),
		Texts:    texts,
		Facts:    facts,
		Metadata: loadTable(t, metadataLine),
		PDFDir:   pdfDir,
		MinWords: 5,
	})

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := "the caf experiment showed six distinct outcomes overall"
	if len(facts.inputs) != 1 || facts.inputs[0] != want {
		t.Errorf("analysis input = %q, want sanitized full text %q", facts.inputs, want)
	}
}

func TestPipelineAcceptsUppercaseExtension(t *testing.T) {
	pdfDir := t.TempDir()
	writeTempFile(t, pdfDir, "2001.00001.PDF", "")

	facts := &fakeFacts{}
	p := NewPipeline(PipelineParams{
		Store:    newFakeGraphStore(),
		Texts:    &fakeTexts{},
		Facts:    facts,
		Metadata: loadTable(t, metadataLine),
		PDFDir:   pdfDir,
	})

	stats, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Processed != 1 || stats.Skipped != 0 {
		t.Fatalf("stats = %+v, want 1 processed", stats)
	}
	if len(facts.inputs) != 1 {
		t.Errorf("fact extraction calls = %d, want 1", len(facts.inputs))
	}
}

func TestPipelineSkipsFileWithoutMetadata(t *testing.T) {
	pdfDir := t.TempDir()
	writeTempFile(t, pdfDir, "9999.99999v1.pdf", "")

	facts := &fakeFacts{}
	p := NewPipeline(PipelineParams{
		Store:    newFakeGraphStore(),
		Texts:    &fakeTexts{},
		Facts:    facts,
		Metadata: loadTable(t, metadataLine),
		PDFDir:   pdfDir,
	})

	stats, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Processed != 0 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 1 skipped", stats)
	}
	if len(facts.inputs) != 0 {
		t.Errorf("fact extraction ran for a file without metadata")
	}
}

func TestPipelineSkipsPaperWithoutUsableText(t *testing.T) {
	pdfDir := t.TempDir()
	writeTempFile(t, pdfDir, "2001.00002v1.pdf", "")

	// Abstract is empty, PDF text is empty.
	line := `{"id": "2001.00002", "title": "T2", "abstract": "", "authors": "Jane Doe", "categories": "cs.AI"}`
	facts := &fakeFacts{}
	p := NewPipeline(PipelineParams{
		Store:    newFakeGraphStore(),
		Texts:    &fakeTexts{},
		Facts:    facts,
		Metadata: loadTable(t, line),
		PDFDir:   pdfDir,
	})

	stats, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Processed != 0 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 1 skipped", stats)
	}
	if len(facts.inputs) != 0 {
		t.Errorf("fact extraction ran without usable text")
	}
}

func TestPipelineStopsAtProcessingLimit(t *testing.T) {
	pdfDir := t.TempDir()
	lines := make([]string, 0, 3)
	texts := &fakeTexts{byFile: make(map[string]string)}
	for _, id := range []string{"2001.00001", "2001.00002", "2001.00003"} {
		name := id + "v1.pdf"
		writeTempFile(t, pdfDir, name, "")
		lines = append(lines, `{"id": "`+id+`", "title": "T", "abstract": "A causes B.", "authors": "Jane Doe", "categories": "cs.AI"}`)
		texts.byFile[name] = ""
	}

	p := NewPipeline(PipelineParams{
		Store:    newFakeGraphStore(),
		Texts:    texts,
		Facts:    &fakeFacts{},
		Metadata: loadTable(t, lines...),
		PDFDir:   pdfDir,
		Limit:    2,
	})

	stats, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Processed != 2 {
		t.Errorf("processed = %d, want the limit of 2", stats.Processed)
	}
}

func TestPipelineCanceledContext(t *testing.T) {
	pdfDir := t.TempDir()
	writeTempFile(t, pdfDir, "2001.00001v1.pdf", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(PipelineParams{
		Store:    newFakeGraphStore(),
		Texts:    &fakeTexts{},
		Facts:    &fakeFacts{},
		Metadata: loadTable(t, metadataLine),
		PDFDir:   pdfDir,
	})

	if _, err := p.Run(ctx); err == nil {
		t.Fatalf("Run() with canceled context returned nil error")
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	pdfDir := t.TempDir()
	writeTempFile(t, pdfDir, "2001.00001v1.pdf", "")

	fake := newFakeGraphStore()
	facts := &fakeFacts{result: extract.Result{
		CausalRelationships: []extract.CausalRelationship{
			{Cause: "A", Effect: "B", Why: "mechanism"},
		},
	}}

	p := NewPipeline(PipelineParams{
		Store:    fake,
		Texts:    &fakeTexts{}, // unreadable PDF, abstract fallback
		Facts:    facts,
		Metadata: loadTable(t, metadataLine),
		PDFDir:   pdfDir,
	})

	stats, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Processed != 1 {
		t.Fatalf("stats = %+v, want 1 processed", stats)
	}

	if _, ok := fake.papers["2001.00001"]; !ok {
		t.Errorf("paper node missing")
	}
	if !fake.hasRel("AUTHORED", "Jane Doe", "2001.00001") {
		t.Errorf("AUTHORED edge missing")
	}
	if !fake.hasRel("HAS_CATEGORY", "2001.00001", "cs.AI") ||
		!fake.hasRel("HAS_PRIMARY_CATEGORY", "2001.00001", "cs.AI") {
		t.Errorf("category edges missing")
	}
	if !fake.hasRel("IDENTIFIES_CAUSE", "2001.00001", "A") ||
		!fake.hasRel("IDENTIFIES_EFFECT", "2001.00001", "B") {
		t.Errorf("causal provenance edges missing")
	}
	if got := fake.causalWhy["A|B"]; got != "mechanism" {
		t.Errorf("CAUSES why = %q, want %q", got, "mechanism")
	}
}
