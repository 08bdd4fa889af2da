package knowledge

import "fmt"

// WarningKind classifies a non-fatal registry finding.
type WarningKind string

const (
	WarnDuplicateEdge WarningKind = "duplicate-edge"
	WarnCycle         WarningKind = "cycle"
)

// Warning is a registry finding that does not stop rendering.
type Warning struct {
	Kind WarningKind
	Edge Edge
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnDuplicateEdge:
		return fmt.Sprintf("duplicate edge %s", w.Edge)
	case WarnCycle:
		return fmt.Sprintf("edge %s closes a prerequisite cycle", w.Edge)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Edge)
}

// Lint reports duplicate edges and the back edges of prerequisite cycles.
// Results are deterministic: duplicates in declaration order, then cycles
// in depth-first discovery order starting from the first registered topic.
func (r *Registry) Lint() []Warning {
	var out []Warning

	seen := make(map[Edge]bool, len(r.edges))
	for _, e := range r.edges {
		if seen[e] {
			out = append(out, Warning{Kind: WarnDuplicateEdge, Edge: e})
		}
		seen[e] = true
	}

	for _, e := range r.backEdges() {
		out = append(out, Warning{Kind: WarnCycle, Edge: e})
	}
	return out
}

func (r *Registry) children() map[string][]string {
	out := make(map[string][]string, len(r.topics))
	seen := make(map[Edge]bool, len(r.edges))
	for _, e := range r.edges {
		if seen[e] {
			continue
		}
		seen[e] = true
		out[e.From] = append(out[e.From], e.To)
	}
	return out
}

func (r *Registry) backEdges() []Edge {
	const (
		white = iota
		gray
		black
	)

	kids := r.children()
	color := make(map[string]int, len(r.topics))
	var back []Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range kids[node] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				back = append(back, Edge{From: node, To: child})
			}
		}
		color[node] = black
	}

	for _, t := range r.topics {
		if color[t.Code] == white {
			dfs(t.Code)
		}
	}
	return back
}
