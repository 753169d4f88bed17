package common

// Store-native highlight defaults, applied when the caller leaves a
// parameter unset.
const (
	DefaultStartSel          = "<b>"
	DefaultStopSel           = "</b>"
	DefaultMinWords          = 15
	DefaultMaxWords          = 35
	DefaultMaxFragments      = 0
	DefaultFragmentDelimiter = " ... "
)

// HighlightSpec is the per-term highlight directive produced by the
// highlight planner. Index is 1-based and stable for the invocation: the
// i-th full-text term of the request, in declaration order, feeds the
// highlight output properties suffixed i.
type HighlightSpec struct {
	Index      int
	Query      string
	Properties []string

	StartSel          string
	StopSel           string
	MinWords          int
	MaxWords          int
	MaxFragments      int
	FragmentDelimiter string
}

// DefaultHighlightSpec returns a spec carrying the store-native defaults
// for the given indexed term.
func DefaultHighlightSpec(index int, query string, properties []string) HighlightSpec {
	return HighlightSpec{
		Index:             index,
		Query:             query,
		Properties:        properties,
		StartSel:          DefaultStartSel,
		StopSel:           DefaultStopSel,
		MinWords:          DefaultMinWords,
		MaxWords:          DefaultMaxWords,
		MaxFragments:      DefaultMaxFragments,
		FragmentDelimiter: DefaultFragmentDelimiter,
	}
}
