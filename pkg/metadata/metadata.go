// Package metadata loads the newline-delimited arXiv metadata snapshot into an
// in-memory table keyed by paper identifier. Records are parsed into a typed
// form once at load time; malformed lines are skipped with a warning.
package metadata

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"papergraph/pkg/logger"
)

// rawRecord mirrors one line of the Kaggle arxiv-metadata-oai-snapshot file.
type rawRecord struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Abstract   string       `json:"abstract"`
	Authors    string       `json:"authors"`
	Categories string       `json:"categories"`
	DOI        string       `json:"doi"`
	JournalRef string       `json:"journal-ref"`
	Versions   []rawVersion `json:"versions"`
}

type rawVersion struct {
	Version string `json:"version"`
	Created string `json:"created"`
	URL     string `json:"url"`
}

// Record is the typed, normalized form of one metadata line. All derived
// fields (author list, category list, primary category, version timestamps)
// are computed once at load time rather than at every access.
type Record struct {
	ID         string
	Title      string
	Abstract   string
	DOI        string
	JournalRef string

	Authors         []string
	Categories      []string
	PrimaryCategory string

	Published string
	Updated   string
	URL       string
}

func normalize(raw rawRecord) (Record, error) {
	if strings.TrimSpace(raw.ID) == "" {
		return Record{}, fmt.Errorf("record has no id")
	}

	rec := Record{
		ID:         strings.TrimSpace(raw.ID),
		Title:      strings.TrimSpace(raw.Title),
		Abstract:   strings.TrimSpace(raw.Abstract),
		DOI:        strings.TrimSpace(raw.DOI),
		JournalRef: strings.TrimSpace(raw.JournalRef),
	}

	for _, name := range strings.Split(raw.Authors, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		rec.Authors = append(rec.Authors, name)
	}

	rec.Categories = strings.Fields(raw.Categories)
	if len(rec.Categories) > 0 {
		rec.PrimaryCategory = rec.Categories[0]
	}

	if len(raw.Versions) > 0 {
		rec.Published = raw.Versions[0].Created
		last := raw.Versions[len(raw.Versions)-1]
		rec.Updated = last.Created
		rec.URL = last.URL
	}

	return rec, nil
}

// Table is an in-memory index of metadata records by paper identifier.
// Lookups are O(1) after load.
type Table struct {
	records map[string]Record
	skipped int
}

// Load streams the metadata file line by line and returns the indexed table.
// Individual malformed lines are logged and skipped; only an unreadable file
// is an error. The file is never read wholesale, so arbitrarily large
// snapshots are fine.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer f.Close()

	table := &Table{records: make(map[string]Record)}

	scanner := bufio.NewScanner(f)
	// Abstract-bearing lines run long; the default 64K token limit is too small.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw rawRecord
		if err := json.Unmarshal(line, &raw); err != nil {
			logger.Warn("[Metadata] Skipping malformed line", "line", lineNo, "err", err)
			table.skipped++
			continue
		}

		rec, err := normalize(raw)
		if err != nil {
			logger.Warn("[Metadata] Skipping invalid record", "line", lineNo, "err", err)
			table.skipped++
			continue
		}

		table.records[rec.ID] = rec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	return table, nil
}

// Lookup returns the record for the given paper identifier.
func (t *Table) Lookup(id string) (Record, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// Len returns the number of loaded records.
func (t *Table) Len() int {
	return len(t.records)
}

// Skipped returns the number of lines dropped during load.
func (t *Table) Skipped() int {
	return t.skipped
}
