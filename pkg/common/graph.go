package common

// Graph is one assembled search result: the matched subject, its own
// statements, optionally the statements of related subjects reached via
// the configured parent property, and the synthetic highlight statements
// of every full-text term that hit this subject.
//
// A graph is created per row during stream consumption and owned by the
// caller once yielded.
type Graph struct {
	Subject    string      `json:"subject"`
	Statements []Statement `json:"statements"`
	// Related maps a related subject's identifier to its statements. The
	// relation itself is visible through the parent-property statements of
	// the involved subjects.
	Related map[string][]Statement `json:"related,omitempty"`
}

// NewGraph returns an empty graph for the given subject.
func NewGraph(subject string) *Graph {
	return &Graph{Subject: subject, Statements: []Statement{}}
}

// AddRelated records the statements of a related subject.
func (g *Graph) AddRelated(subject string, statements []Statement) {
	if g.Related == nil {
		g.Related = make(map[string][]Statement)
	}
	g.Related[subject] = statements
}

// Empty reports whether the graph carries no statements at all. A subject
// deleted between selection and assembly yields an empty graph.
func (g *Graph) Empty() bool {
	return len(g.Statements) == 0 && len(g.Related) == 0
}
