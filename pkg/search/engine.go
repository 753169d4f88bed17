// Package search is the query engine over a metadata store: it plans
// full-text highlighting, runs subject selection through a store and
// assembles the selected subjects into result graphs per the requested
// metadata mode.
package search

import (
	"context"
	"fmt"

	"github.com/stelehq/stele/pkg/common"
	"github.com/stelehq/stele/pkg/logger"
	"github.com/stelehq/stele/pkg/schema"
	"github.com/stelehq/stele/pkg/store"
)

// Engine ties a store and a property mapping into the search surface.
// Engines are cheap and stateless; one per store is enough.
type Engine struct {
	store   store.MetadataStore
	mapping *schema.Mapping
	tracer  Tracer
}

type EngineOption func(*Engine)

// WithMapping overrides the default well-known property mapping.
func WithMapping(mapping *schema.Mapping) EngineOption {
	return func(e *Engine) {
		if mapping != nil {
			e.mapping = mapping
		}
	}
}

// WithTracer attaches a tracer receiving the engine's trace events.
func WithTracer(tracer Tracer) EngineOption {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

func New(st store.MetadataStore, opts ...EngineOption) *Engine {
	e := &Engine{
		store:   st,
		mapping: schema.DefaultMapping(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Search runs a term search and returns the lazy result stream. The
// returned Results must be closed; cfg.Count is populated once the stream
// is exhausted.
func (e *Engine) Search(ctx context.Context, terms []common.SearchTerm, cfg *common.SearchConfig) (*Results, error) {
	if cfg == nil {
		cfg = &common.SearchConfig{}
	}
	mode, err := common.ParseMode(cfg.MetadataMode)
	if err != nil {
		return nil, err
	}
	specs, err := PlanHighlights(terms, cfg)
	if err != nil {
		return nil, err
	}
	if e.tracer != nil && len(specs) > 0 {
		queries := make([]string, len(specs))
		for i, spec := range specs {
			queries[i] = spec.Query
		}
		e.tracer.Record(TraceEvent{Kind: TraceEventHighlightedTerms, Queries: queries})
	}

	logger.Debug("[Search][Search] Selecting subjects",
		"terms", len(terms), "highlights", len(specs), "mode", mode.String())

	cur, err := e.store.SelectSubjects(ctx, terms, specs, cfg)
	if err != nil {
		return nil, fmt.Errorf("select subjects: %w", err)
	}
	return e.newResults(ctx, cur, cfg, mode, specs), nil
}

// SearchRaw runs a caller-supplied subject query through the store. Raw
// results carry no highlights; metadata assembly works as for Search.
func (e *Engine) SearchRaw(ctx context.Context, query string, params []any, cfg *common.SearchConfig) (*Results, error) {
	if cfg == nil {
		cfg = &common.SearchConfig{}
	}
	mode, err := common.ParseMode(cfg.MetadataMode)
	if err != nil {
		return nil, err
	}

	logger.Debug("[Search][SearchRaw] Selecting subjects", "params", len(params), "mode", mode.String())

	cur, err := e.store.SelectSubjectsRaw(ctx, query, params, cfg)
	if err != nil {
		return nil, fmt.Errorf("select subjects raw: %w", err)
	}
	return e.newResults(ctx, cur, cfg, mode, nil), nil
}

// Subject assembles the graph of a single subject addressed by its key or
// by any value of its identifier property.
func (e *Engine) Subject(ctx context.Context, id string, cfg *common.SearchConfig) (*common.Graph, error) {
	if cfg == nil {
		cfg = &common.SearchConfig{}
	}
	mode, err := common.ParseMode(cfg.MetadataMode)
	if err != nil {
		return nil, err
	}

	subject := id
	statements, err := e.store.SubjectStatements(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("subject statements: %w", err)
	}
	if len(statements) == 0 {
		// Not a subject key; try it as an identifier value.
		aliases, err := e.store.RelatedSubjects(ctx, id, e.mapping.IdentifierProperty(), store.Inward)
		if err != nil {
			return nil, fmt.Errorf("resolve identifier: %w", err)
		}
		if len(aliases) > 0 {
			subject = aliases[0]
		}
	}

	return e.assemble(ctx, subject, mode, e.parentProperty(cfg), nil, nil)
}

func (e *Engine) parentProperty(cfg *common.SearchConfig) string {
	if cfg.MetadataParentProperty != "" {
		return cfg.MetadataParentProperty
	}
	return e.mapping.ParentProperty()
}

// assemble builds one result graph: the subject's own statements plus the
// synthetic highlight statements when the mode includes self, and the
// statements of every subject reached by the mode's traversals.
func (e *Engine) assemble(
	ctx context.Context,
	subject string,
	mode common.Mode,
	parentProperty string,
	highlights []store.HighlightHit,
	specs []common.HighlightSpec,
) (*common.Graph, error) {
	g := common.NewGraph(subject)
	recordSubjects(e.tracer, TraceEventAssembledSubjects, subject)

	if mode.Self {
		statements, err := e.store.SubjectStatements(ctx, subject)
		if err != nil {
			return nil, fmt.Errorf("subject statements: %w", err)
		}
		g.Statements = statements
	}
	// Highlight hits belong to the matched subject in every mode, even
	// when its own statements are not assembled.
	g.Statements = append(g.Statements, e.highlightStatements(subject, highlights, specs)...)

	visited := map[string]bool{subject: true}
	if mode.Ancestors != 0 {
		if err := e.traverse(ctx, g, subject, parentProperty, store.Outward, mode.Ancestors, visited); err != nil {
			return nil, err
		}
	}
	if depth := mode.DescendantDepth(); depth != 0 {
		if err := e.traverse(ctx, g, subject, parentProperty, store.Inward, depth, visited); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// traverse walks the relation property level by level up to depth
// (UnboundedDepth for no limit), loading each newly reached subject's
// statements into the graph. The visited set guards against relation
// cycles.
func (e *Engine) traverse(
	ctx context.Context,
	g *common.Graph,
	from, property string,
	dir store.Direction,
	depth int,
	visited map[string]bool,
) error {
	frontier := []string{from}
	for level := 0; depth == common.UnboundedDepth || level < depth; level++ {
		var next []string
		for _, subject := range frontier {
			related, err := e.store.RelatedSubjects(ctx, subject, property, dir)
			if err != nil {
				return fmt.Errorf("related subjects: %w", err)
			}
			for _, id := range related {
				if visited[id] {
					continue
				}
				visited[id] = true
				statements, err := e.store.SubjectStatements(ctx, id)
				if err != nil {
					return fmt.Errorf("subject statements: %w", err)
				}
				g.AddRelated(id, statements)
				recordSubjects(e.tracer, TraceEventAssembledSubjects, id)
				next = append(next, id)
			}
		}
		if len(next) == 0 {
			return nil
		}
		frontier = next
	}
	return nil
}

// highlightStatements renders the highlight hits of one subject as
// synthetic statements under the mapping's indexed match properties.
func (e *Engine) highlightStatements(subject string, highlights []store.HighlightHit, specs []common.HighlightSpec) []common.Statement {
	var out []common.Statement
	for i, spec := range specs {
		if i >= len(highlights) || !highlights[i].Valid {
			continue
		}
		hit := highlights[i]
		out = append(out,
			common.Statement{
				Subject:  subject,
				Property: e.mapping.MatchValueProperty(spec.Index),
				Value:    hit.Fragment,
				Datatype: common.DatatypeString,
			},
			common.Statement{
				Subject:  subject,
				Property: e.mapping.MatchPropertyProperty(spec.Index),
				Value:    hit.Property,
				Datatype: common.DatatypeString,
			},
			common.Statement{
				Subject:  subject,
				Property: e.mapping.MatchQueryProperty(spec.Index),
				Value:    spec.Query,
				Datatype: common.DatatypeString,
			},
		)
	}
	return out
}
