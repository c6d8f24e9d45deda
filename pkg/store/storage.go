// Package store defines the property-graph storage contract for the paper
// knowledge graph and the record types that cross it.
package store

import "context"

// Paper holds the node properties of a single paper, keyed by its arXiv
// identifier. Empty fields are written as empty strings rather than omitted.
type Paper struct {
	ArxivID    string
	Title      string
	Summary    string
	Published  string
	Updated    string
	URL        string
	DOI        string
	JournalRef string
}

// MentionKind selects which extracted-fact node type a mention edge targets.
type MentionKind int

const (
	MentionEquation MentionKind = iota
	MentionMethodology
	MentionTechnology
)

// Label returns the node label for the mention kind.
func (k MentionKind) Label() string {
	switch k {
	case MentionEquation:
		return "Equation"
	case MentionMethodology:
		return "Methodology"
	case MentionTechnology:
		return "Technology"
	}
	return ""
}

// RelType returns the relationship type linking a paper to the mention kind.
func (k MentionKind) RelType() string {
	switch k {
	case MentionEquation:
		return "MENTIONS_EQUATION"
	case MentionMethodology:
		return "MENTIONS_METHODOLOGY"
	case MentionTechnology:
		return "MENTIONS_TECHNOLOGY"
	}
	return ""
}

// CausalLink is one cause-effect assertion extracted from a paper, with the
// model's explanation of why the cause leads to the effect.
type CausalLink struct {
	Cause  string
	Effect string
	Why    string
}

// CausalChain is one row of the depth-2 causal chain query: an initial cause
// whose effect itself acts as the cause of a further effect.
type CausalChain struct {
	InitialCause       string `json:"initial_cause"`
	IntermediateEffect string `json:"intermediate_effect"`
	FinalEffect        string `json:"final_effect"`
	ExplanationStep1   string `json:"explanation_step1"`
	ExplanationStep2   string `json:"explanation_step2"`
}

// SharedEffect is one row of the shared-effect query: two distinct causes
// pointing at the same effect, reported once per unordered cause pair.
type SharedEffect struct {
	SharedEffect string `json:"shared_effect"`
	CauseA       string `json:"cause_a"`
	CauseB       string `json:"cause_b"`
	WhyAToEffect string `json:"why_a_to_effect"`
	WhyBToEffect string `json:"why_b_to_effect"`
}

// GraphStore is the persistence contract for the paper knowledge graph.
//
// Every node write is an upsert by the node's natural key (Paper.arxiv_id,
// Author.name, Category.term, Equation/Methodology/Technology.name,
// Cause/Effect.description), and every relationship write is match-or-create
// on the full pattern including type and endpoints. Repeating any call with
// identical input must not grow the graph.
type GraphStore interface {
	// EnsureConstraints creates the uniqueness constraints backing the
	// natural-key upserts. Safe to call repeatedly.
	EnsureConstraints(ctx context.Context) error

	// Reset deletes every node and relationship in the graph. Destructive and
	// non-recoverable; callers must treat it as an explicit opt-in step.
	Reset(ctx context.Context) error

	UpsertPaper(ctx context.Context, paper Paper) error
	LinkAuthor(ctx context.Context, arxivID string, name string) error
	LinkCategory(ctx context.Context, arxivID string, term string, primary bool) error
	LinkMention(ctx context.Context, arxivID string, kind MentionKind, name string) error
	LinkCausal(ctx context.Context, arxivID string, link CausalLink) error

	CausalChains(ctx context.Context, limit int) ([]CausalChain, error)
	SharedEffects(ctx context.Context, limit int) ([]SharedEffect, error)

	Close(ctx context.Context) error
}
