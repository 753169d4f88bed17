package store

import (
	"context"
	"errors"

	"github.com/stelehq/stele/pkg/common"
)

var (
	// ErrTooManyRequests is returned synchronously when the store's
	// connection budget is saturated. It is never retried internally;
	// backoff policy belongs to the caller.
	ErrTooManyRequests = errors.New("too many concurrent requests")

	// ErrRawQueryUnsupported is returned by stores that cannot execute a
	// caller-supplied raw subject query.
	ErrRawQueryUnsupported = errors.New("raw subject queries are not supported by this store")
)

// Direction selects which way a relation property is traversed.
type Direction int

const (
	// Outward follows the relation from subject to object: the related
	// subjects are the values the subject points at (its ancestors, for
	// the parent property).
	Outward Direction = iota
	// Inward follows the relation against its direction: the related
	// subjects are those pointing at the subject (its children).
	Inward
)

// HighlightHit is the highlight output of one indexed full-text term for
// one subject. Fragment carries the selector-wrapped text, already bounded
// and delimited per the term's spec; Property names the statement property
// the fragments were taken from.
type HighlightHit struct {
	Valid    bool
	Fragment string
	Property string
}

// SubjectHit is one row of a subject selection: the subject identifier and
// the highlight outputs aligned positionally with the request's highlight
// specs.
type SubjectHit struct {
	Subject    string
	Highlights []HighlightHit
}

// SubjectCursor is a forward-only, single-pass cursor over selected
// subjects. Close releases the underlying admission slot and is safe to
// call more than once; abandoning a cursor without Close leaks the slot.
// Total is only meaningful once Next has returned false with a nil Err.
type SubjectCursor interface {
	Next() bool
	Hit() SubjectHit
	Err() error
	Close()
	// Total is the number of matching subjects ignoring limit and offset.
	Total() int64
}

// MetadataStore is the query surface of a statement-oriented metadata
// store. Implementations translate abstract search terms into their native
// query form; the Postgres implementation lives in pkg/store/pgx, an
// in-memory implementation in pkg/store/memory.
type MetadataStore interface {
	// SelectSubjects runs a term search with the config's ordering and
	// paging applied, computing the unpaginated total alongside. Pool
	// saturation surfaces as ErrTooManyRequests before any query is run.
	SelectSubjects(ctx context.Context, terms []common.SearchTerm, specs []common.HighlightSpec, cfg *common.SearchConfig) (SubjectCursor, error)

	// SelectSubjectsRaw runs a caller-supplied query yielding subject
	// identifiers in its first column, with ordering and paging applied
	// around it.
	SelectSubjectsRaw(ctx context.Context, query string, params []any, cfg *common.SearchConfig) (SubjectCursor, error)

	// SubjectStatements fetches all statements of one subject. A subject
	// that no longer exists yields an empty slice, not an error.
	SubjectStatements(ctx context.Context, subject string) ([]common.Statement, error)

	// RelatedSubjects resolves the subjects related to subject through
	// property in the given direction, one traversal level at a time.
	RelatedSubjects(ctx context.Context, subject, property string, dir Direction) ([]string, error)
}
