package graph

import (
	"context"
	"fmt"

	"papergraph/pkg/extract"
	"papergraph/pkg/logger"
	"papergraph/pkg/metadata"
	"papergraph/pkg/store"
)

// Upserter converts a paper record plus its extracted facts into idempotent
// node and relationship upserts against the graph store. Every node is
// upserted by its natural key before any relationship referencing it, and
// relationship writes are match-or-create, so re-ingesting the same corpus
// never grows the graph.
type Upserter struct {
	store store.GraphStore
}

// NewUpserter creates an upsert engine over the given store.
func NewUpserter(s store.GraphStore) *Upserter {
	return &Upserter{store: s}
}

// UpsertPaperFacts applies one paper and its extraction result to the graph:
// the Paper node and its attributes, Author and Category links, the three
// mention kinds, and the causal assertions. Incomplete causal items (missing
// cause or effect description) are skipped with a warning. A store failure
// stops the sequence and is returned to the caller.
func (u *Upserter) UpsertPaperFacts(ctx context.Context, rec metadata.Record, facts extract.Result) error {
	paper := store.Paper{
		ArxivID:    rec.ID,
		Title:      rec.Title,
		Summary:    rec.Abstract,
		Published:  rec.Published,
		Updated:    rec.Updated,
		URL:        rec.URL,
		DOI:        rec.DOI,
		JournalRef: rec.JournalRef,
	}
	if err := u.store.UpsertPaper(ctx, paper); err != nil {
		return fmt.Errorf("failed to upsert paper: %w", err)
	}

	for _, name := range rec.Authors {
		if err := u.store.LinkAuthor(ctx, rec.ID, name); err != nil {
			return fmt.Errorf("failed to upsert author: %w", err)
		}
	}

	for _, term := range rec.Categories {
		if err := u.store.LinkCategory(ctx, rec.ID, term, false); err != nil {
			return fmt.Errorf("failed to upsert category: %w", err)
		}
	}
	if rec.PrimaryCategory != "" {
		if err := u.store.LinkCategory(ctx, rec.ID, rec.PrimaryCategory, true); err != nil {
			return fmt.Errorf("failed to upsert primary category: %w", err)
		}
	}

	mentions := []struct {
		kind  store.MentionKind
		names []string
	}{
		{store.MentionEquation, facts.Equations},
		{store.MentionMethodology, facts.Methodologies},
		{store.MentionTechnology, facts.Technologies},
	}
	for _, m := range mentions {
		for _, name := range m.names {
			if name == "" {
				continue
			}
			if err := u.store.LinkMention(ctx, rec.ID, m.kind, name); err != nil {
				return fmt.Errorf("failed to upsert %s mention: %w", m.kind.Label(), err)
			}
		}
	}

	for _, rel := range facts.CausalRelationships {
		if rel.Cause == "" || rel.Effect == "" {
			logger.Warn("[Graph] Skipping incomplete causal relationship",
				"arxiv_id", rec.ID,
				"cause", rel.Cause,
				"effect", rel.Effect,
			)
			continue
		}
		link := store.CausalLink{
			Cause:  rel.Cause,
			Effect: rel.Effect,
			Why:    rel.Why,
		}
		if err := u.store.LinkCausal(ctx, rec.ID, link); err != nil {
			return fmt.Errorf("failed to upsert causal relationship: %w", err)
		}
	}

	return nil
}
