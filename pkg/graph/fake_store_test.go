package graph

import (
	"context"
	"fmt"
	"sort"

	"papergraph/pkg/store"
)

// fakeGraphStore is an in-memory GraphStore with the same write semantics as
// the real one: nodes merged by natural key, relationships merged by full
// pattern, CAUSES why first-write-wins.
type fakeGraphStore struct {
	resets      int
	constraints int

	papers map[string]store.Paper
	nodes  map[string]map[string]bool // label -> key set
	rels   map[string]bool            // "TYPE|from|to"

	causalWhy   map[string]string // "cause|effect" -> why
	causalOrder []string
}

func newFakeGraphStore() *fakeGraphStore {
	return &fakeGraphStore{
		papers:    make(map[string]store.Paper),
		nodes:     make(map[string]map[string]bool),
		rels:      make(map[string]bool),
		causalWhy: make(map[string]string),
	}
}

func (f *fakeGraphStore) addNode(label, key string) {
	if f.nodes[label] == nil {
		f.nodes[label] = make(map[string]bool)
	}
	f.nodes[label][key] = true
}

func (f *fakeGraphStore) addRel(relType, from, to string) {
	f.rels[relType+"|"+from+"|"+to] = true
}

func (f *fakeGraphStore) nodeCount() int {
	total := len(f.papers)
	for _, keys := range f.nodes {
		total += len(keys)
	}
	return total
}

func (f *fakeGraphStore) relCount() int {
	return len(f.rels) + len(f.causalWhy)
}

func (f *fakeGraphStore) hasRel(relType, from, to string) bool {
	return f.rels[relType+"|"+from+"|"+to]
}

func (f *fakeGraphStore) EnsureConstraints(ctx context.Context) error {
	f.constraints++
	return nil
}

func (f *fakeGraphStore) Reset(ctx context.Context) error {
	f.resets++
	f.papers = make(map[string]store.Paper)
	f.nodes = make(map[string]map[string]bool)
	f.rels = make(map[string]bool)
	f.causalWhy = make(map[string]string)
	f.causalOrder = nil
	return nil
}

func (f *fakeGraphStore) UpsertPaper(ctx context.Context, paper store.Paper) error {
	if paper.ArxivID == "" {
		return fmt.Errorf("paper has no arxiv id")
	}
	f.papers[paper.ArxivID] = paper
	return nil
}

func (f *fakeGraphStore) LinkAuthor(ctx context.Context, arxivID string, name string) error {
	f.addNode("Author", name)
	f.addRel("AUTHORED", name, arxivID)
	return nil
}

func (f *fakeGraphStore) LinkCategory(ctx context.Context, arxivID string, term string, primary bool) error {
	f.addNode("Category", term)
	relType := "HAS_CATEGORY"
	if primary {
		relType = "HAS_PRIMARY_CATEGORY"
	}
	f.addRel(relType, arxivID, term)
	return nil
}

func (f *fakeGraphStore) LinkMention(ctx context.Context, arxivID string, kind store.MentionKind, name string) error {
	f.addNode(kind.Label(), name)
	f.addRel(kind.RelType(), arxivID, name)
	return nil
}

func (f *fakeGraphStore) LinkCausal(ctx context.Context, arxivID string, link store.CausalLink) error {
	f.addNode("Cause", link.Cause)
	f.addNode("Effect", link.Effect)
	f.addRel("IDENTIFIES_CAUSE", arxivID, link.Cause)
	f.addRel("IDENTIFIES_EFFECT", arxivID, link.Effect)

	key := link.Cause + "|" + link.Effect
	if _, exists := f.causalWhy[key]; !exists {
		f.causalWhy[key] = link.Why
		f.causalOrder = append(f.causalOrder, key)
	}
	return nil
}

type causalEdge struct {
	cause  string
	effect string
	why    string
}

func (f *fakeGraphStore) causalEdges() []causalEdge {
	edges := make([]causalEdge, 0, len(f.causalOrder))
	for _, key := range f.causalOrder {
		var cause, effect string
		for i := 0; i < len(key); i++ {
			if key[i] == '|' {
				cause, effect = key[:i], key[i+1:]
				break
			}
		}
		edges = append(edges, causalEdge{cause: cause, effect: effect, why: f.causalWhy[key]})
	}
	return edges
}

func (f *fakeGraphStore) CausalChains(ctx context.Context, limit int) ([]store.CausalChain, error) {
	edges := f.causalEdges()
	chains := make([]store.CausalChain, 0)
	for _, first := range edges {
		for _, second := range edges {
			if second.cause != first.effect {
				continue
			}
			if len(chains) >= limit {
				return chains, nil
			}
			chains = append(chains, store.CausalChain{
				InitialCause:       first.cause,
				IntermediateEffect: first.effect,
				FinalEffect:        second.effect,
				ExplanationStep1:   first.why,
				ExplanationStep2:   second.why,
			})
		}
	}
	return chains, nil
}

func (f *fakeGraphStore) SharedEffects(ctx context.Context, limit int) ([]store.SharedEffect, error) {
	byEffect := make(map[string][]causalEdge)
	for _, edge := range f.causalEdges() {
		byEffect[edge.effect] = append(byEffect[edge.effect], edge)
	}

	effectNames := make([]string, 0, len(byEffect))
	for name := range byEffect {
		effectNames = append(effectNames, name)
	}
	sort.Strings(effectNames)

	results := make([]store.SharedEffect, 0)
	for _, name := range effectNames {
		incoming := byEffect[name]
		for i := 0; i < len(incoming); i++ {
			for j := i + 1; j < len(incoming); j++ {
				if len(results) >= limit {
					return results, nil
				}
				results = append(results, store.SharedEffect{
					SharedEffect: name,
					CauseA:       incoming[i].cause,
					CauseB:       incoming[j].cause,
					WhyAToEffect: incoming[i].why,
					WhyBToEffect: incoming[j].why,
				})
			}
		}
	}
	return results, nil
}

func (f *fakeGraphStore) Close(ctx context.Context) error {
	return nil
}
