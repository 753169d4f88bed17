package pgx

import (
	"context"
	"fmt"

	"github.com/stelehq/stele/pkg/common"
	"github.com/stelehq/stele/pkg/store"
)

// SubjectStatements loads every statement of one subject, ordered for
// stable graph output.
func (s *MetadataDBStore) SubjectStatements(ctx context.Context, subject string) ([]common.Statement, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT subject, property, value, datatype, COALESCE(lang, '')
		FROM statements
		WHERE subject = $1
		ORDER BY property, value`, subject)
	if err != nil {
		return nil, fmt.Errorf("subject statements: %w", err)
	}
	defer rows.Close()

	var statements []common.Statement
	for rows.Next() {
		var st common.Statement
		if err := rows.Scan(&st.Subject, &st.Property, &st.Value, &st.Datatype, &st.Lang); err != nil {
			return nil, fmt.Errorf("statement scan: %w", err)
		}
		statements = append(statements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("statement rows: %w", err)
	}
	return statements, nil
}

// RelatedSubjects resolves one hop along a relation property. Outward
// follows the subject's own relation statements to their targets, inward
// finds the subjects whose relation statements point at it.
func (s *MetadataDBStore) RelatedSubjects(ctx context.Context, subject, property string, dir store.Direction) ([]string, error) {
	var sql string
	switch dir {
	case store.Outward:
		sql = `SELECT DISTINCT value FROM statements
			WHERE subject = $1 AND property = $2
			ORDER BY value`
	case store.Inward:
		sql = `SELECT DISTINCT subject FROM statements
			WHERE value = $1 AND property = $2
			ORDER BY subject`
	default:
		return nil, fmt.Errorf("unknown relation direction %d", dir)
	}

	rows, err := s.conn.Query(ctx, sql, subject, property)
	if err != nil {
		return nil, fmt.Errorf("related subjects: %w", err)
	}
	defer rows.Close()

	var related []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("related subject scan: %w", err)
		}
		related = append(related, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("related subject rows: %w", err)
	}
	return related, nil
}
