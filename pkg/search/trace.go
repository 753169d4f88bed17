package search

import (
	"sort"
	"sync"
)

type TraceEventKind string

const (
	TraceEventYieldedSubjects   TraceEventKind = "yielded_subjects"
	TraceEventAssembledSubjects TraceEventKind = "assembled_subjects"
	TraceEventHighlightedTerms  TraceEventKind = "highlighted_terms"
	TraceEventTotal             TraceEventKind = "total"
)

// TraceEvent is an extensible event envelope for search tracing.
// Additive changes to this struct are backward compatible for implementers.
type TraceEvent struct {
	Kind TraceEventKind

	Subjects []string
	Queries  []string
	Total    int64
}

// Tracer is a sink for search tracing events.
//
// Implementers can forward events to logs, telemetry, or custom
// post-processing pipelines.
type Tracer interface {
	Record(event TraceEvent)
}

func recordSubjects(t Tracer, kind TraceEventKind, subjects ...string) {
	if t == nil {
		return
	}
	t.Record(TraceEvent{Kind: kind, Subjects: subjects})
}

func recordTotal(t Tracer, total int64) {
	if t == nil {
		return
	}
	t.Record(TraceEvent{Kind: TraceEventTotal, Total: total})
}

// SearchTrace collects which subjects a search run yielded and which it
// touched during graph assembly.
//
// SearchTrace is safe for concurrent use.
type SearchTrace struct {
	mu sync.Mutex

	yieldedSubjects   map[string]struct{}
	assembledSubjects map[string]struct{}
	highlightQueries  []string
	total             int64
}

type SearchTraceSnapshot struct {
	YieldedSubjects   []string
	AssembledSubjects []string
	HighlightQueries  []string
	Total             int64
}

func NewSearchTrace() *SearchTrace {
	return &SearchTrace{
		yieldedSubjects:   make(map[string]struct{}),
		assembledSubjects: make(map[string]struct{}),
	}
}

func (t *SearchTrace) Record(event TraceEvent) {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch event.Kind {
	case TraceEventYieldedSubjects:
		for _, id := range event.Subjects {
			if id == "" {
				continue
			}
			t.yieldedSubjects[id] = struct{}{}
		}
	case TraceEventAssembledSubjects:
		for _, id := range event.Subjects {
			if id == "" {
				continue
			}
			t.assembledSubjects[id] = struct{}{}
		}
	case TraceEventHighlightedTerms:
		t.highlightQueries = append(t.highlightQueries, event.Queries...)
	case TraceEventTotal:
		t.total = event.Total
	default:
		return
	}
}

func (t *SearchTrace) Snapshot() SearchTraceSnapshot {
	if t == nil {
		return SearchTraceSnapshot{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	s := SearchTraceSnapshot{
		YieldedSubjects:   make([]string, 0, len(t.yieldedSubjects)),
		AssembledSubjects: make([]string, 0, len(t.assembledSubjects)),
		HighlightQueries:  append([]string{}, t.highlightQueries...),
		Total:             t.total,
	}
	for id := range t.yieldedSubjects {
		s.YieldedSubjects = append(s.YieldedSubjects, id)
	}
	for id := range t.assembledSubjects {
		s.AssembledSubjects = append(s.AssembledSubjects, id)
	}
	sort.Strings(s.YieldedSubjects)
	sort.Strings(s.AssembledSubjects)
	return s
}
