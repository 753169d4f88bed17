package search

import (
	"fmt"

	"github.com/stelehq/stele/pkg/common"
)

// PlanHighlights derives the per-term highlight specs of a request. The
// i-th full-text term (1-based, declaration order) gets spec index i; the
// scalar-or-list highlight parameters of cfg are consumed positionally.
//
// Each parameter list must be empty, a single value, or exactly one value
// per full-text term. A single value applies to the first full-text term,
// later terms keep the defaults. The effective queries are written back to
// cfg.FTSQuery so callers see what was actually highlighted.
func PlanHighlights(terms []common.SearchTerm, cfg *common.SearchConfig) ([]common.HighlightSpec, error) {
	var fulltext []common.SearchTerm
	for _, term := range terms {
		if term.Operator == common.OpFullText {
			fulltext = append(fulltext, term)
		}
	}
	if len(fulltext) == 0 {
		return nil, nil
	}
	if cfg == nil {
		cfg = &common.SearchConfig{}
	}

	k := len(fulltext)
	for name, n := range map[string]int{
		"ftsQuery":             len(cfg.FTSQuery),
		"ftsStartSel":          len(cfg.FTSStartSel),
		"ftsStopSel":           len(cfg.FTSStopSel),
		"ftsMinWords":          len(cfg.FTSMinWords),
		"ftsMaxWords":          len(cfg.FTSMaxWords),
		"ftsMaxFragments":      len(cfg.FTSMaxFragments),
		"ftsFragmentDelimiter": len(cfg.FTSFragmentDelimiter),
	} {
		if n != 0 && n != 1 && n != k {
			return nil, fmt.Errorf("%w: %s carries %d values for %d full-text terms",
				common.ErrHighlightMismatch, name, n, k)
		}
	}

	specs := make([]common.HighlightSpec, 0, k)
	effective := make(common.Scalars, 0, k)
	for i, term := range fulltext {
		spec := common.DefaultHighlightSpec(i+1, term.Value, term.Properties)
		if v, ok := pick(cfg.FTSQuery, i); ok && v != "" {
			spec.Query = v
		}
		if v, ok := pick(cfg.FTSStartSel, i); ok {
			spec.StartSel = v
		}
		if v, ok := pick(cfg.FTSStopSel, i); ok {
			spec.StopSel = v
		}
		if v, ok := pick(cfg.FTSMinWords, i); ok {
			spec.MinWords = v
		}
		if v, ok := pick(cfg.FTSMaxWords, i); ok {
			spec.MaxWords = v
		}
		if v, ok := pick(cfg.FTSMaxFragments, i); ok {
			spec.MaxFragments = v
		}
		if v, ok := pick(cfg.FTSFragmentDelimiter, i); ok {
			spec.FragmentDelimiter = v
		}
		specs = append(specs, spec)
		effective = append(effective, spec.Query)
	}
	cfg.FTSQuery = effective

	return specs, nil
}

// pick reads position i of a scalar-or-list parameter. A single-valued
// list only covers position 0.
func pick[T any](list []T, i int) (T, bool) {
	if i < len(list) {
		return list[i], true
	}
	var zero T
	return zero, false
}
