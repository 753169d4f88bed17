package memory

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/stelehq/stele/pkg/common"
)

// matchesAll reports whether a subject satisfies every term. Callers hold
// the read lock.
func (s *MetadataMemStore) matchesAll(subject string, terms []common.SearchTerm) bool {
	for _, term := range terms {
		if !s.matchesTerm(subject, term) {
			return false
		}
	}
	return true
}

func (s *MetadataMemStore) matchesTerm(subject string, term common.SearchTerm) bool {
	if term.Operator == common.OpFullText {
		query := tokenize(term.Value)
		for _, st := range s.statements {
			if st.Subject != subject || !slices.Contains(term.Properties, st.Property) {
				continue
			}
			if containsAllWords(tokenize(st.Value), query) {
				return true
			}
		}
		return false
	}

	if term.Negate {
		// Inverse relation: the term's value names a subject whose
		// relation statements point at the candidate.
		for _, st := range s.statements {
			if st.Subject == term.Value && slices.Contains(term.Properties, st.Property) && st.Value == subject {
				return true
			}
		}
		return false
	}

	for _, st := range s.statements {
		if st.Subject != subject {
			continue
		}
		for _, p := range term.Properties {
			if s.mapping.IsAnyIdentifier(p) {
				if st.Property == s.mapping.IdentifierProperty() && st.Value == term.Value {
					return true
				}
				continue
			}
			if st.Property == p && compareStatement(st, term) {
				return true
			}
		}
	}
	return false
}

// compareStatement evaluates an equality or relational term against one
// statement. A declared term datatype that disagrees with the statement's
// datatype makes the comparison pass.
func compareStatement(st common.Statement, term common.SearchTerm) bool {
	if term.Datatype != "" {
		if st.Datatype != term.Datatype {
			return true
		}
		if term.Operator == common.OpEqual {
			return st.Value == term.Value
		}
		return typedCompare(term.Datatype, term.Operator, st.Value, term.Value)
	}

	if term.Operator == common.OpEqual {
		return st.Value == term.Value
	}

	inferred := common.InferDatatype(term.Value)
	if st.Datatype == inferred {
		return typedCompare(inferred, term.Operator, st.Value, term.Value)
	}
	return textCompare(term.Operator, st.Value, term.Value)
}

func typedCompare(datatype common.Datatype, op common.Operator, stored, operand string) bool {
	switch datatype {
	case common.DatatypeNumber:
		a, errA := strconv.ParseFloat(stored, 64)
		b, errB := strconv.ParseFloat(operand, 64)
		if errA != nil || errB != nil {
			return textCompare(op, stored, operand)
		}
		switch op {
		case common.OpLessOrEqual:
			return a <= b
		case common.OpGreaterOrEqual:
			return a >= b
		}
		return a == b
	case common.DatatypeDate, common.DatatypeDateTime:
		a, errA := parseTemporal(stored)
		b, errB := parseTemporal(operand)
		if errA != nil || errB != nil {
			return textCompare(op, stored, operand)
		}
		switch op {
		case common.OpLessOrEqual:
			return !a.After(b)
		case common.OpGreaterOrEqual:
			return !a.Before(b)
		}
		return a.Equal(b)
	default:
		return textCompare(op, stored, operand)
	}
}

func textCompare(op common.Operator, stored, operand string) bool {
	switch op {
	case common.OpLessOrEqual:
		return stored <= operand
	case common.OpGreaterOrEqual:
		return stored >= operand
	}
	return stored == operand
}

func parseTemporal(value string) (time.Time, error) {
	if t, err := time.Parse(common.DateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// tokenize lowercases a string and splits it into word tokens.
func tokenize(value string) []string {
	return strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func containsAllWords(words, query []string) bool {
	for _, q := range query {
		if !slices.Contains(words, q) {
			return false
		}
	}
	return len(query) > 0
}
