package pgx

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/stelehq/stele/pkg/common"
	"github.com/stelehq/stele/pkg/logger"
	"github.com/stelehq/stele/pkg/store"
)

// queryBuilder accumulates positional parameters while SQL text is built.
type queryBuilder struct {
	args []any
}

func (b *queryBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// SelectSubjects compiles the terms into SQL, runs the selection and scans
// the full page eagerly so the connection is not held across graph
// assembly. The admission slot stays held until the cursor is closed.
func (s *MetadataDBStore) SelectSubjects(
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

	sql, args, err := s.buildSubjectQuery(terms, specs, cfg)
	if err != nil {
		return nil, err
	}

	if err := s.acquire(); err != nil {
		return nil, err
	}
	cur, err := s.runSubjectQuery(ctx, sql, args, len(specs))
	if err != nil {
		s.sem.Release(1)
		return nil, err
	}
	return cur, nil
}

// SelectSubjectsRaw wraps a caller-supplied subject query with ordering,
// paging and the total-count window. The raw query must yield subject
// identifiers in a single column; its positional parameters keep their
// numbering, appended parameters continue after them.
func (s *MetadataDBStore) SelectSubjectsRaw(
	ctx context.Context,
	query string,
	params []any,
	cfg *common.SearchConfig,
) (store.SubjectCursor, error) {
	if cfg == nil {
		cfg = &common.SearchConfig{}
	}
	b := &queryBuilder{args: append([]any{}, params...)}

	var sb strings.Builder
	sb.WriteString("SELECT m.subject, count(*) OVER () AS total_count")
	sb.WriteString("\nFROM (")
	sb.WriteString(query)
	sb.WriteString(") m(subject)")
	appendOrderJoins(&sb, b, cfg)
	appendOrderAndPage(&sb, b, cfg)

	if err := s.acquire(); err != nil {
		return nil, err
	}
	cur, err := s.runSubjectQuery(ctx, sb.String(), b.args, 0)
	if err != nil {
		s.sem.Release(1)
		return nil, err
	}
	return cur, nil
}

func (s *MetadataDBStore) runSubjectQuery(ctx context.Context, sql string, args []any, specCount int) (*subjectCursor, error) {
	logger.Debug("[Store][Select] Running subject query", "params", len(args))

	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("subject query: %w", err)
	}
	defer rows.Close()

	cur := &subjectCursor{sem: s.sem}
	for rows.Next() {
		hit := store.SubjectHit{}

		dest := make([]any, 0, 2+2*specCount)
		dest = append(dest, &hit.Subject, &cur.total)
		fragments := make([]*string, specCount)
		properties := make([]*string, specCount)
		for i := 0; i < specCount; i++ {
			dest = append(dest, &fragments[i], &properties[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("subject row scan: %w", err)
		}

		if specCount > 0 {
			hit.Highlights = make([]store.HighlightHit, specCount)
			for i := 0; i < specCount; i++ {
				if fragments[i] == nil || properties[i] == nil {
					continue
				}
				hit.Highlights[i] = store.HighlightHit{
					Valid:    true,
					Fragment: *fragments[i],
					Property: *properties[i],
				}
			}
		}
		cur.hits = append(cur.hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("subject rows: %w", err)
	}

	return cur, nil
}

// buildSubjectQuery translates the terms into one SELECT over the
// statements table: conjunction across terms, disjunction across each
// term's property list, highlight laterals per indexed full-text term and
// ordering laterals per orderBy entry.
func (s *MetadataDBStore) buildSubjectQuery(
	terms []common.SearchTerm,
	specs []common.HighlightSpec,
	cfg *common.SearchConfig,
) (string, []any, error) {
	b := &queryBuilder{}

	var sb strings.Builder
	sb.WriteString("SELECT m.subject, count(*) OVER () AS total_count")
	for _, spec := range specs {
		fmt.Fprintf(&sb, ",\n\thl%d.fragment, hl%d.property", spec.Index, spec.Index)
	}
	sb.WriteString("\nFROM (SELECT DISTINCT subject FROM statements) m")

	for _, spec := range specs {
		appendHighlightJoin(&sb, b, spec)
	}
	appendOrderJoins(&sb, b, cfg)

	conditions := make([]string, 0, len(terms))
	for _, term := range terms {
		cond, err := s.termPredicate(b, term)
		if err != nil {
			return "", nil, err
		}
		conditions = append(conditions, cond)
	}
	if len(conditions) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(conditions, "\n\tAND "))
	}

	appendOrderAndPage(&sb, b, cfg)

	return sb.String(), b.args, nil
}

func (s *MetadataDBStore) termPredicate(b *queryBuilder, term common.SearchTerm) (string, error) {
	if term.Operator == common.OpFullText {
		q := b.bind(term.Value)
		return fmt.Sprintf(
			"EXISTS (SELECT 1 FROM statements t WHERE t.subject = m.subject AND t.property = ANY(%s) AND to_tsvector('simple', t.value) @@ websearch_to_tsquery('simple', %s))",
			b.bind(term.Properties), q,
		), nil
	}

	if term.Negate {
		// Inverse relation: subjects that term.Value points at.
		return fmt.Sprintf(
			"EXISTS (SELECT 1 FROM statements t WHERE t.property = ANY(%s) AND t.subject = %s AND t.value = m.subject)",
			b.bind(term.Properties), b.bind(term.Value),
		), nil
	}

	regular := make([]string, 0, len(term.Properties))
	anyIdentifier := false
	for _, p := range term.Properties {
		if s.mapping.IsAnyIdentifier(p) {
			anyIdentifier = true
			continue
		}
		regular = append(regular, p)
	}

	branches := make([]string, 0, 2)
	if len(regular) > 0 {
		props := b.bind(regular)
		branches = append(branches, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM statements t WHERE t.subject = m.subject AND t.property = ANY(%s) AND %s)",
			props, comparisonPredicate(b, term),
		))
	}
	if anyIdentifier {
		branches = append(branches, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM statements t WHERE t.subject = m.subject AND t.property = %s AND t.value = %s)",
			b.bind(s.mapping.IdentifierProperty()), b.bind(term.Value),
		))
	}

	if len(branches) == 1 {
		return branches[0], nil
	}
	return "(" + strings.Join(branches, " OR ") + ")", nil
}

// comparisonPredicate builds the per-statement value comparison of an
// equality or relational term. A declared datatype that does not match the
// stored one makes the comparison pass; the CASE keeps the typed cast from
// ever being evaluated against a differently typed value.
func comparisonPredicate(b *queryBuilder, term common.SearchTerm) string {
	op := string(term.Operator)

	if term.Operator == common.OpEqual {
		if term.Datatype == "" {
			return fmt.Sprintf("t.value = %s", b.bind(term.Value))
		}
		return fmt.Sprintf(
			"CASE WHEN t.datatype <> %s THEN TRUE ELSE t.value = %s END",
			b.bind(string(term.Datatype)), b.bind(term.Value),
		)
	}

	if term.Datatype != "" {
		return fmt.Sprintf(
			"CASE WHEN t.datatype <> %s THEN TRUE ELSE %s END",
			b.bind(string(term.Datatype)),
			castComparison(b, term.Datatype, op, term.Value),
		)
	}

	inferred := common.InferDatatype(term.Value)
	if inferred == common.DatatypeString {
		return fmt.Sprintf("t.value %s %s", op, b.bind(term.Value))
	}
	// Typed comparison where the stored datatype agrees, text comparison
	// elsewhere so untyped rows never break the cast.
	return fmt.Sprintf(
		"CASE WHEN t.datatype = %s THEN %s ELSE t.value %s %s END",
		b.bind(string(inferred)),
		castComparison(b, inferred, op, term.Value),
		op, b.bind(term.Value),
	)
}

func castComparison(b *queryBuilder, datatype common.Datatype, op, value string) string {
	placeholder := b.bind(value)
	switch datatype {
	case common.DatatypeNumber:
		return fmt.Sprintf("t.value::numeric %s %s::numeric", op, placeholder)
	case common.DatatypeDate:
		return fmt.Sprintf("t.value::date %s %s::date", op, placeholder)
	case common.DatatypeDateTime:
		return fmt.Sprintf("t.value::timestamptz %s %s::timestamptz", op, placeholder)
	default:
		return fmt.Sprintf("t.value %s %s", op, placeholder)
	}
}

func appendHighlightJoin(sb *strings.Builder, b *queryBuilder, spec common.HighlightSpec) {
	q := b.bind(spec.Query)
	props := b.bind(spec.Properties)
	opts := b.bind(headlineOptions(spec))
	fmt.Fprintf(sb, `
LEFT JOIN LATERAL (
	SELECT t.property, ts_headline('simple', t.value, websearch_to_tsquery('simple', %s), %s) AS fragment
	FROM statements t
	WHERE t.subject = m.subject AND t.property = ANY(%s)
		AND to_tsvector('simple', t.value) @@ websearch_to_tsquery('simple', %s)
	ORDER BY ts_rank(to_tsvector('simple', t.value), websearch_to_tsquery('simple', %s)) DESC
	LIMIT 1
) hl%d ON TRUE`, q, opts, props, q, q, spec.Index)
}

// headlineOptions renders one highlight spec as a ts_headline option
// string. Selector and delimiter values are quoted so commas and spaces
// survive the option parser.
func headlineOptions(spec common.HighlightSpec) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "StartSel=%s, StopSel=%s, MinWords=%d, MaxWords=%d",
		quoteOption(spec.StartSel), quoteOption(spec.StopSel), spec.MinWords, spec.MaxWords)
	if spec.MaxFragments > 0 {
		fmt.Fprintf(&sb, ", MaxFragments=%d, FragmentDelimiter=%s",
			spec.MaxFragments, quoteOption(spec.FragmentDelimiter))
	}
	return sb.String()
}

func quoteOption(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func appendOrderJoins(sb *strings.Builder, b *queryBuilder, cfg *common.SearchConfig) {
	for i, key := range cfg.OrderKeys() {
		fmt.Fprintf(sb, `
LEFT JOIN LATERAL (
	SELECT t.value FROM statements t
	WHERE t.subject = m.subject AND t.property = %s
	ORDER BY t.value LIMIT 1
) o%d ON TRUE`, b.bind(key.Property), i+1)
	}
}

func appendOrderAndPage(sb *strings.Builder, b *queryBuilder, cfg *common.SearchConfig) {
	entries := make([]string, 0, len(cfg.OrderKeys())+1)
	for i, key := range cfg.OrderKeys() {
		dir := "ASC"
		if key.Descending {
			dir = "DESC"
		}
		entries = append(entries, fmt.Sprintf("o%d.value %s NULLS LAST", i+1, dir))
	}
	entries = append(entries, "m.subject ASC")
	sb.WriteString("\nORDER BY ")
	sb.WriteString(strings.Join(entries, ", "))

	if cfg.Limit > 0 {
		fmt.Fprintf(sb, "\nLIMIT %s", b.bind(cfg.Limit))
	}
	if cfg.Offset > 0 {
		fmt.Fprintf(sb, "\nOFFSET %s", b.bind(cfg.Offset))
	}
}
