package memory

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/stelehq/stele/pkg/common"
	"github.com/stelehq/stele/pkg/schema"
	"github.com/stelehq/stele/pkg/store"
)

// DefaultMaxConcurrent mirrors the database store's admission default.
const DefaultMaxConcurrent = 10

// MetadataMemStore is an in-memory statement table implementing the full
// store contract. It backs tests and small embedded deployments; the
// database store is the production implementation.
type MetadataMemStore struct {
	mu         sync.RWMutex
	statements []common.Statement
	mapping    *schema.Mapping
	sem        *semaphore.Weighted
}

type MetadataMemStoreOption func(*MetadataMemStore)

// WithMaxConcurrent caps the number of result streams open at once.
func WithMaxConcurrent(n int64) MetadataMemStoreOption {
	return func(s *MetadataMemStore) {
		s.sem = semaphore.NewWeighted(n)
	}
}

func NewMetadataMemStore(mapping *schema.Mapping, opts ...MetadataMemStoreOption) *MetadataMemStore {
	if mapping == nil {
		mapping = schema.DefaultMapping()
	}
	s := &MetadataMemStore{
		mapping: mapping,
		sem:     semaphore.NewWeighted(DefaultMaxConcurrent),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends statements to the table.
func (s *MetadataMemStore) Add(statements ...common.Statement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statements = append(s.statements, statements...)
}

func (s *MetadataMemStore) acquire() error {
	if !s.sem.TryAcquire(1) {
		return store.ErrTooManyRequests
	}
	return nil
}

// SelectSubjects evaluates the terms against the statement table and
// returns the ordered, paged subject stream. The admission slot is held
// until the cursor is closed.
func (s *MetadataMemStore) SelectSubjects(
	ctx context.Context,
	terms []common.SearchTerm,
	specs []common.HighlightSpec,
	cfg *common.SearchConfig,
) (store.SubjectCursor, error) {
	if err := common.ValidateTerms(terms); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &common.SearchConfig{}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []string
	for _, subject := range s.subjects() {
		if s.matchesAll(subject, terms) {
			matched = append(matched, subject)
		}
	}

	s.orderSubjects(matched, cfg.OrderKeys())
	total := int64(len(matched))
	matched = page(matched, cfg.Limit, cfg.Offset)

	hits := make([]store.SubjectHit, 0, len(matched))
	for _, subject := range matched {
		hit := store.SubjectHit{Subject: subject}
		if len(specs) > 0 {
			hit.Highlights = make([]store.HighlightHit, len(specs))
			for i, spec := range specs {
				hit.Highlights[i] = s.highlight(subject, spec)
			}
		}
		hits = append(hits, hit)
	}

	return &subjectCursor{hits: hits, total: total, sem: s.sem}, nil
}

// SelectSubjectsRaw is a database-only operation.
func (s *MetadataMemStore) SelectSubjectsRaw(context.Context, string, []any, *common.SearchConfig) (store.SubjectCursor, error) {
	return nil, store.ErrRawQueryUnsupported
}

func (s *MetadataMemStore) SubjectStatements(ctx context.Context, subject string) ([]common.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var statements []common.Statement
	for _, st := range s.statements {
		if st.Subject == subject {
			statements = append(statements, st)
		}
	}
	sort.Slice(statements, func(i, j int) bool {
		if statements[i].Property != statements[j].Property {
			return statements[i].Property < statements[j].Property
		}
		return statements[i].Value < statements[j].Value
	})
	return statements, nil
}

func (s *MetadataMemStore) RelatedSubjects(ctx context.Context, subject, property string, dir store.Direction) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	var related []string
	for _, st := range s.statements {
		if st.Property != property {
			continue
		}
		var id string
		switch dir {
		case store.Outward:
			if st.Subject != subject {
				continue
			}
			id = st.Value
		case store.Inward:
			if st.Value != subject {
				continue
			}
			id = st.Subject
		default:
			continue
		}
		if !seen[id] {
			seen[id] = true
			related = append(related, id)
		}
	}
	sort.Strings(related)
	return related, nil
}

// subjects returns the distinct subject identifiers in insertion order of
// first appearance. Callers hold the read lock.
func (s *MetadataMemStore) subjects() []string {
	seen := map[string]bool{}
	var out []string
	for _, st := range s.statements {
		if !seen[st.Subject] {
			seen[st.Subject] = true
			out = append(out, st.Subject)
		}
	}
	return out
}

// orderSubjects sorts in place by the order keys, missing values last,
// subject identifier as the final tiebreak.
func (s *MetadataMemStore) orderSubjects(subjects []string, keys []common.OrderKey) {
	sort.SliceStable(subjects, func(i, j int) bool {
		for _, key := range keys {
			vi, oki := s.propertyValue(subjects[i], key.Property)
			vj, okj := s.propertyValue(subjects[j], key.Property)
			if oki != okj {
				return oki
			}
			if !oki {
				continue
			}
			if vi == vj {
				continue
			}
			if key.Descending {
				return vi > vj
			}
			return vi < vj
		}
		return subjects[i] < subjects[j]
	})
}

// propertyValue returns the smallest value a subject carries for a
// property. Callers hold the read lock.
func (s *MetadataMemStore) propertyValue(subject, property string) (string, bool) {
	found := false
	var min string
	for _, st := range s.statements {
		if st.Subject != subject || st.Property != property {
			continue
		}
		if !found || st.Value < min {
			min = st.Value
			found = true
		}
	}
	return min, found
}

func page(subjects []string, limit, offset int) []string {
	if offset > 0 {
		if offset >= len(subjects) {
			return nil
		}
		subjects = subjects[offset:]
	}
	if limit > 0 && limit < len(subjects) {
		subjects = subjects[:limit]
	}
	return subjects
}

type subjectCursor struct {
	hits    []store.SubjectHit
	total   int64
	pos     int
	release sync.Once
	sem     *semaphore.Weighted
}

func (c *subjectCursor) Next() bool {
	if c.pos >= len(c.hits) {
		return false
	}
	c.pos++
	return true
}

func (c *subjectCursor) Hit() store.SubjectHit {
	if c.pos == 0 || c.pos > len(c.hits) {
		return store.SubjectHit{}
	}
	return c.hits[c.pos-1]
}

func (c *subjectCursor) Err() error { return nil }

func (c *subjectCursor) Total() int64 { return c.total }

func (c *subjectCursor) Close() {
	c.release.Do(func() {
		c.sem.Release(1)
	})
}
