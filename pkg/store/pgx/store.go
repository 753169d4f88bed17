// Package pgx implements the metadata store query surface on PostgreSQL.
//
// Statements live in a single statements(subject, property, value,
// datatype, lang) table. Search terms compile to one SQL predicate over
// that table, full-text matching and highlighting ride on the native
// tsvector machinery, and the unpaginated total is computed with a window
// function in the same round trip as the page itself.
package pgx

import (
	"context"
	"sync"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/semaphore"

	"github.com/stelehq/stele/pkg/schema"
	"github.com/stelehq/stele/pkg/store"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
}

// DefaultMaxConcurrent is the default number of concurrently running
// searches admitted before SelectSubjects fails fast.
const DefaultMaxConcurrent = 10

// MetadataDBStore implements store.MetadataStore on PostgreSQL. A weighted
// semaphore sized to the connection budget guards admission: when it is
// saturated, selection fails immediately with store.ErrTooManyRequests
// instead of queuing on the pool.
type MetadataDBStore struct {
	conn    pgxIConn
	mapping *schema.Mapping
	sem     *semaphore.Weighted
}

type MetadataDBStoreOption func(*MetadataDBStore)

// WithMaxConcurrent caps the number of concurrently admitted searches.
func WithMaxConcurrent(n int64) MetadataDBStoreOption {
	return func(s *MetadataDBStore) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(n)
		}
	}
}

// NewMetadataDBStoreWithConnection creates a MetadataDBStore using an
// existing database connection or pool. The mapping supplies the store's
// well-known property identifiers.
func NewMetadataDBStoreWithConnection(
	conn pgxIConn,
	mapping *schema.Mapping,
	opts ...MetadataDBStoreOption,
) *MetadataDBStore {
	if mapping == nil {
		mapping = schema.DefaultMapping()
	}
	s := &MetadataDBStore{
		conn:    conn,
		mapping: mapping,
		sem:     semaphore.NewWeighted(DefaultMaxConcurrent),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

func (s *MetadataDBStore) acquire() error {
	if !s.sem.TryAcquire(1) {
		return store.ErrTooManyRequests
	}
	return nil
}

// subjectCursor streams the scanned hits of one selection. The admission
// slot is held until Close.
type subjectCursor struct {
	hits  []store.SubjectHit
	total int64
	pos   int
	err   error

	release sync.Once
	sem     *semaphore.Weighted
}

func (c *subjectCursor) Next() bool {
	if c.err != nil || c.pos >= len(c.hits) {
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

func (c *subjectCursor) Err() error { return c.err }

func (c *subjectCursor) Total() int64 { return c.total }

func (c *subjectCursor) Close() {
	c.release.Do(func() {
		if c.sem != nil {
			c.sem.Release(1)
		}
	})
}
