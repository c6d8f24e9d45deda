package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"papergraph/pkg/store"
)

// Causes and effects are separate node types, so a chain exists when some
// cause's description matches an earlier effect's description. The join is on
// description rather than node identity.
const causalChainsQuery = `
	MATCH (c1:Cause)-[r1:CAUSES]->(e1:Effect)
	MATCH (c2:Cause)-[r2:CAUSES]->(e2:Effect)
	WHERE c2.description = e1.description
	RETURN
		c1.description AS initial_cause,
		e1.description AS intermediate_effect,
		e2.description AS final_effect,
		r1.why AS why1,
		r2.why AS why2
	LIMIT $limit
`

// elementId ordering reports each unordered cause pair exactly once.
const sharedEffectsQuery = `
	MATCH (c1:Cause)-[r1:CAUSES]->(e:Effect)
	MATCH (c2:Cause)-[r2:CAUSES]->(e)
	WHERE elementId(c1) < elementId(c2)
	RETURN
		e.description AS shared_effect,
		c1.description AS cause_a,
		c2.description AS cause_b,
		r1.why AS why_a,
		r2.why AS why_b
	LIMIT $limit
`

// CausalChains returns depth-2 causal chains: an initial cause whose effect
// also acts as the cause of a further effect, with both why explanations.
func (s *GraphStorage) CausalChains(ctx context.Context, limit int) ([]store.CausalChain, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, causalChainsQuery, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to query causal chains: %w", err)
	}

	chains := make([]store.CausalChain, 0)
	for result.Next(ctx) {
		record := result.Record()
		chains = append(chains, store.CausalChain{
			InitialCause:       recordString(record, "initial_cause"),
			IntermediateEffect: recordString(record, "intermediate_effect"),
			FinalEffect:        recordString(record, "final_effect"),
			ExplanationStep1:   recordString(record, "why1"),
			ExplanationStep2:   recordString(record, "why2"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read causal chain results: %w", err)
	}
	return chains, nil
}

// SharedEffects returns effects asserted by at least two distinct causes.
// Each unordered cause pair appears exactly once.
func (s *GraphStorage) SharedEffects(ctx context.Context, limit int) ([]store.SharedEffect, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, sharedEffectsQuery, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to query shared effects: %w", err)
	}

	effects := make([]store.SharedEffect, 0)
	for result.Next(ctx) {
		record := result.Record()
		effects = append(effects, store.SharedEffect{
			SharedEffect: recordString(record, "shared_effect"),
			CauseA:       recordString(record, "cause_a"),
			CauseB:       recordString(record, "cause_b"),
			WhyAToEffect: recordString(record, "why_a"),
			WhyBToEffect: recordString(record, "why_b"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shared effect results: %w", err)
	}
	return effects, nil
}

func recordString(record *db.Record, key string) string {
	value, ok := record.Get(key)
	if !ok || value == nil {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return s
}
