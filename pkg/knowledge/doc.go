// Package knowledge holds the topic registry and prerequisite edges that a
// knowledge map is drawn from.
//
// # Overview
//
// A [Registry] is built once from a table of [Topic] records and a list of
// [Edge] pairs, validated, and never mutated afterwards. Every accessor
// returns copies, so callers can not change the registry through them.
//
//	reg, err := knowledge.New(topics, edges)
//	if err != nil {
//	    // every problem found is reported in one aggregated error
//	}
//	for _, c := range reg.Clusters() {
//	    fmt.Println(c.Division, len(c.Topics))
//	}
//
// # Validation
//
// [New] rejects:
//   - malformed or duplicate topic codes
//   - empty display names or divisions
//   - mastery levels outside 1..4
//   - edges whose endpoints are not registered
//   - self-loops
//
// Duplicate edges and prerequisite cycles are legal input for Graphviz, so
// they are reported by [Registry.Lint] as warnings instead.
//
// # Mastery Levels
//
// [Level] runs from [NotStarted] (1) to [Mastered] (4). Labels and colours
// for each level belong to the rendering profile, not to this package;
// [Level.String] only provides the canonical English label.
package knowledge
