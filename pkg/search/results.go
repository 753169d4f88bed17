package search

import (
	"context"

	"github.com/stelehq/stele/pkg/common"
	"github.com/stelehq/stele/pkg/store"
)

// Results is the lazy stream of one search invocation. Graph assembly
// happens per pull, so abandoned streams never pay for unread rows'
// metadata. Streams must be closed; Close releases the store's admission
// slot and is idempotent.
type Results struct {
	ctx    context.Context
	engine *Engine
	cur    store.SubjectCursor
	cfg    *common.SearchConfig
	mode   common.Mode
	specs  []common.HighlightSpec
	parent string

	graph *common.Graph
	err   error
	done  bool
}

func (e *Engine) newResults(
	ctx context.Context,
	cur store.SubjectCursor,
	cfg *common.SearchConfig,
	mode common.Mode,
	specs []common.HighlightSpec,
) *Results {
	return &Results{
		ctx:    ctx,
		engine: e,
		cur:    cur,
		cfg:    cfg,
		mode:   mode,
		specs:  specs,
		parent: e.parentProperty(cfg),
	}
}

// Next advances to the next result graph. It returns false once the
// stream is exhausted or failed; check Err afterwards. On clean
// exhaustion the config's Count is populated with the unpaginated total.
func (r *Results) Next() bool {
	if r.err != nil || r.done {
		return false
	}
	if !r.cur.Next() {
		r.done = true
		r.err = r.cur.Err()
		if r.err == nil {
			r.cfg.Count = r.cur.Total()
			recordTotal(r.engine.tracer, r.cfg.Count)
		}
		return false
	}

	hit := r.cur.Hit()
	recordSubjects(r.engine.tracer, TraceEventYieldedSubjects, hit.Subject)

	r.graph, r.err = r.engine.assemble(r.ctx, hit.Subject, r.mode, r.parent, hit.Highlights, r.specs)
	if r.err != nil {
		r.done = true
		return false
	}
	return true
}

// Graph returns the result assembled by the last successful Next.
func (r *Results) Graph() *common.Graph {
	return r.graph
}

func (r *Results) Err() error {
	return r.err
}

// Close releases the stream's admission slot. Safe to call more than once
// and at any point of consumption.
func (r *Results) Close() {
	r.cur.Close()
}
