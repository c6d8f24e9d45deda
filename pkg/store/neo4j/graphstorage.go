// Package neo4j implements store.GraphStore against a Neo4j server over bolt.
// All node writes are Cypher MERGE by natural key and all relationship writes
// are MERGE on the full pattern, so repeated ingestion runs leave the graph
// unchanged.
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"papergraph/pkg/store"
)

// GraphStorage is the Neo4j-backed implementation of store.GraphStore.
type GraphStorage struct {
	driver neo4j.DriverWithContext
}

// NewGraphStorageParams holds the connection settings for a Neo4j server.
type NewGraphStorageParams struct {
	URI      string
	Username string
	Password string
}

// NewGraphStorage connects to Neo4j and verifies connectivity before
// returning the storage handle.
func NewGraphStorage(ctx context.Context, params NewGraphStorageParams) (*GraphStorage, error) {
	driver, err := neo4j.NewDriverWithContext(
		params.URI,
		neo4j.BasicAuth(params.Username, params.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", params.URI, err)
	}

	return &GraphStorage{driver: driver}, nil
}

// Close releases the underlying driver and its connection pool.
func (s *GraphStorage) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *GraphStorage) write(ctx context.Context, query string, params map[string]any) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}

var constraintStatements = []string{
	"CREATE CONSTRAINT IF NOT EXISTS FOR (p:Paper) REQUIRE p.arxiv_id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (a:Author) REQUIRE a.name IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (c:Category) REQUIRE c.term IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (e:Equation) REQUIRE e.name IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (m:Methodology) REQUIRE m.name IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (t:Technology) REQUIRE t.name IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (c:Cause) REQUIRE c.description IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (f:Effect) REQUIRE f.description IS UNIQUE",
}

// EnsureConstraints creates the uniqueness constraints for all node types.
// Uses IF NOT EXISTS, so it is safe to run on every startup.
func (s *GraphStorage) EnsureConstraints(ctx context.Context) error {
	for _, stmt := range constraintStatements {
		if err := s.write(ctx, stmt, nil); err != nil {
			return fmt.Errorf("failed to create constraint: %w", err)
		}
	}
	return nil
}

// Reset removes every node and relationship from the graph.
func (s *GraphStorage) Reset(ctx context.Context) error {
	return s.write(ctx, "MATCH (n) DETACH DELETE n", nil)
}

// UpsertPaper creates or updates the Paper node keyed by arxiv_id. Property
// values reflect the latest call; the node itself is never duplicated.
func (s *GraphStorage) UpsertPaper(ctx context.Context, paper store.Paper) error {
	query := `
		MERGE (p:Paper {arxiv_id: $arxiv_id})
		SET p.title = $title,
		    p.summary = $summary,
		    p.published = $published,
		    p.updated = $updated,
		    p.url = $url,
		    p.doi = $doi,
		    p.journal_ref = $journal_ref
	`
	err := s.write(ctx, query, map[string]any{
		"arxiv_id":    paper.ArxivID,
		"title":       paper.Title,
		"summary":     paper.Summary,
		"published":   paper.Published,
		"updated":     paper.Updated,
		"url":         paper.URL,
		"doi":         paper.DOI,
		"journal_ref": paper.JournalRef,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert paper %s: %w", paper.ArxivID, err)
	}
	return nil
}

// LinkAuthor upserts the Author node by name and the AUTHORED edge to the paper.
func (s *GraphStorage) LinkAuthor(ctx context.Context, arxivID string, name string) error {
	query := `
		MATCH (p:Paper {arxiv_id: $arxiv_id})
		MERGE (a:Author {name: $name})
		MERGE (a)-[:AUTHORED]->(p)
	`
	err := s.write(ctx, query, map[string]any{
		"arxiv_id": arxivID,
		"name":     name,
	})
	if err != nil {
		return fmt.Errorf("failed to link author %q to paper %s: %w", name, arxivID, err)
	}
	return nil
}

// LinkCategory upserts the Category node by term and the HAS_CATEGORY edge.
// When primary is true the HAS_PRIMARY_CATEGORY edge is merged instead; a
// primary category is expected to also be linked via a plain HAS_CATEGORY
// call, keeping it present in the paper's category set.
func (s *GraphStorage) LinkCategory(ctx context.Context, arxivID string, term string, primary bool) error {
	relType := "HAS_CATEGORY"
	if primary {
		relType = "HAS_PRIMARY_CATEGORY"
	}
	query := fmt.Sprintf(`
		MATCH (p:Paper {arxiv_id: $arxiv_id})
		MERGE (c:Category {term: $term})
		MERGE (p)-[:%s]->(c)
	`, relType)
	err := s.write(ctx, query, map[string]any{
		"arxiv_id": arxivID,
		"term":     term,
	})
	if err != nil {
		return fmt.Errorf("failed to link category %q to paper %s: %w", term, arxivID, err)
	}
	return nil
}

// LinkMention upserts the fact node (Equation, Methodology or Technology) by
// name and the matching MENTIONS_* edge from the paper.
func (s *GraphStorage) LinkMention(ctx context.Context, arxivID string, kind store.MentionKind, name string) error {
	label := kind.Label()
	relType := kind.RelType()
	if label == "" || relType == "" {
		return fmt.Errorf("unknown mention kind %d", kind)
	}

	// label and relType come from the MentionKind enum, not user input
	query := fmt.Sprintf(`
		MATCH (p:Paper {arxiv_id: $arxiv_id})
		MERGE (n:%s {name: $name})
		MERGE (p)-[:%s]->(n)
	`, label, relType)
	err := s.write(ctx, query, map[string]any{
		"arxiv_id": arxivID,
		"name":     name,
	})
	if err != nil {
		return fmt.Errorf("failed to link %s %q to paper %s: %w", label, name, arxivID, err)
	}
	return nil
}

// LinkCausal upserts the Cause and Effect nodes by description, the
// IDENTIFIES_CAUSE / IDENTIFIES_EFFECT edges from the paper, and the CAUSES
// edge between them. The why explanation is first-write-wins: a second paper
// asserting the same (cause, effect) pair does not overwrite it.
func (s *GraphStorage) LinkCausal(ctx context.Context, arxivID string, link store.CausalLink) error {
	query := `
		MATCH (p:Paper {arxiv_id: $arxiv_id})
		MERGE (c:Cause {description: $cause})
		MERGE (e:Effect {description: $effect})
		MERGE (p)-[:IDENTIFIES_CAUSE]->(c)
		MERGE (p)-[:IDENTIFIES_EFFECT]->(e)
		MERGE (c)-[r:CAUSES]->(e)
		ON CREATE SET r.why = $why
	`
	err := s.write(ctx, query, map[string]any{
		"arxiv_id": arxivID,
		"cause":    link.Cause,
		"effect":   link.Effect,
		"why":      link.Why,
	})
	if err != nil {
		return fmt.Errorf("failed to link causal %q -> %q for paper %s: %w", link.Cause, link.Effect, arxivID, err)
	}
	return nil
}
