package memory

import (
	"slices"
	"strings"

	"github.com/stelehq/stele/pkg/common"
	"github.com/stelehq/stele/pkg/store"
)

// highlight renders one highlight spec against a subject. The highest
// scoring matching value wins; subjects without a matching value in the
// spec's properties yield an invalid hit. Callers hold the read lock.
func (s *MetadataMemStore) highlight(subject string, spec common.HighlightSpec) store.HighlightHit {
	query := tokenize(spec.Query)
	if len(query) == 0 {
		return store.HighlightHit{}
	}

	best := -1
	var bestStatement common.Statement
	for _, st := range s.statements {
		if st.Subject != subject || !slices.Contains(spec.Properties, st.Property) {
			continue
		}
		words := tokenize(st.Value)
		if !containsAllWords(words, query) {
			continue
		}
		score := 0
		for _, w := range words {
			if slices.Contains(query, w) {
				score++
			}
		}
		if score > best {
			best = score
			bestStatement = st
		}
	}
	if best < 0 {
		return store.HighlightHit{}
	}

	return store.HighlightHit{
		Valid:    true,
		Property: bestStatement.Property,
		Fragment: renderFragment(bestStatement.Value, query, spec),
	}
}

func renderFragment(value string, query []string, spec common.HighlightSpec) string {
	words := strings.Fields(value)
	var matches []int
	for i, w := range words {
		if wordMatches(w, query) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return value
	}

	if spec.MaxFragments > 0 {
		return renderFragments(words, matches, query, spec)
	}

	// Single headline window: cover the matches, clamp to MaxWords,
	// widen to MinWords.
	lo := matches[0]
	hi := matches[len(matches)-1] + 1
	if spec.MaxWords > 0 && hi-lo > spec.MaxWords {
		hi = lo + spec.MaxWords
	}
	for hi-lo < spec.MinWords && hi < len(words) {
		hi++
	}
	for hi-lo < spec.MinWords && lo > 0 {
		lo--
	}
	return renderWindow(words[lo:hi], query, spec)
}

func renderFragments(words []string, matches []int, query []string, spec common.HighlightSpec) string {
	maxWords := spec.MaxWords
	if maxWords <= 0 {
		maxWords = len(words)
	}

	var fragments []string
	covered := -1
	for _, m := range matches {
		if len(fragments) == spec.MaxFragments {
			break
		}
		if m < covered {
			continue
		}
		hi := m + maxWords
		if hi > len(words) {
			hi = len(words)
		}
		fragments = append(fragments, renderWindow(words[m:hi], query, spec))
		covered = hi
	}
	return strings.Join(fragments, spec.FragmentDelimiter)
}

func renderWindow(words []string, query []string, spec common.HighlightSpec) string {
	out := make([]string, len(words))
	for i, w := range words {
		if wordMatches(w, query) {
			out[i] = spec.StartSel + w + spec.StopSel
		} else {
			out[i] = w
		}
	}
	return strings.Join(out, " ")
}

// wordMatches checks a raw word, punctuation included, against the query
// token set.
func wordMatches(word string, query []string) bool {
	for _, token := range tokenize(word) {
		if slices.Contains(query, token) {
			return true
		}
	}
	return false
}
