package common

import (
	"encoding/json"
	"strings"
)

// DescendingMarker prefixes an orderBy entry to reverse its comparison
// direction.
const DescendingMarker = "^"

// Scalars is a string list that also accepts a single JSON scalar. The
// highlight parameters of SearchConfig are scalar-or-list by contract; the
// ambiguity is resolved here at the decoding boundary.
type Scalars []string

func (s *Scalars) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = Scalars{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = Scalars(many)
	return nil
}

// Ints is an int list that also accepts a single JSON number.
type Ints []int

func (s *Ints) UnmarshalJSON(data []byte) error {
	var one int
	if err := json.Unmarshal(data, &one); err == nil {
		*s = Ints{one}
		return nil
	}
	var many []int
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = Ints(many)
	return nil
}

// SearchConfig shapes one search invocation: paging, ordering, metadata
// assembly, and full-text highlighting. It is read-only to the engine
// for the duration of the invocation, with two exceptions: the highlight
// planner may record the effective full-text queries in FTSQuery, and
// Count is written once after the result stream has been fully consumed.
type SearchConfig struct {
	// Limit caps the number of yielded subjects; 0 means unlimited.
	Limit int `json:"limit,omitempty"`
	// Offset skips the first n subjects of the ordered result.
	Offset int `json:"offset,omitempty"`
	// OrderBy lists property identifiers, each optionally prefixed with
	// "^" for descending order. Later entries break ties of earlier ones.
	OrderBy []string `json:"orderBy,omitempty"`

	// MetadataMode is a 4-slot directional-depth descriptor (or one of the
	// named aliases understood by ParseMode) controlling how much of a
	// subject's neighborhood is assembled into its graph.
	MetadataMode string `json:"metadataMode,omitempty"`
	// MetadataParentProperty is the relation property followed for
	// ancestor and descendant traversal.
	MetadataParentProperty string `json:"metadataParentProperty,omitempty"`

	// Full-text highlight parameters, scalar-or-list. A single value
	// applies to the first full-text term; a list is consumed positionally
	// (1-based index i pairs with the highlight output properties
	// suffixed i).
	FTSQuery             Scalars `json:"ftsQuery,omitempty"`
	FTSStartSel          Scalars `json:"ftsStartSel,omitempty"`
	FTSStopSel           Scalars `json:"ftsStopSel,omitempty"`
	FTSMinWords          Ints    `json:"ftsMinWords,omitempty"`
	FTSMaxWords          Ints    `json:"ftsMaxWords,omitempty"`
	FTSMaxFragments      Ints    `json:"ftsMaxFragments,omitempty"`
	FTSFragmentDelimiter Scalars `json:"ftsFragmentDelimiter,omitempty"`

	// Count is output only: the total number of matching subjects ignoring
	// Limit and Offset, populated once the result stream is exhausted.
	Count int64 `json:"count"`
}

// OrderKey is one resolved orderBy entry.
type OrderKey struct {
	Property   string
	Descending bool
}

// OrderKeys resolves the raw orderBy entries, stripping the descending
// marker. Empty entries are dropped.
func (c *SearchConfig) OrderKeys() []OrderKey {
	if c == nil {
		return nil
	}
	keys := make([]OrderKey, 0, len(c.OrderBy))
	for _, entry := range c.OrderBy {
		prop, desc := strings.CutPrefix(entry, DescendingMarker)
		if prop == "" {
			continue
		}
		keys = append(keys, OrderKey{Property: prop, Descending: desc})
	}
	return keys
}
