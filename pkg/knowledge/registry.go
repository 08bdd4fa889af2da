package knowledge

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"

	"github.com/matzehuels/masterymap/pkg/errors"
)

// Topic is one node of the knowledge map.
type Topic struct {
	Code     string `json:"code" toml:"code"`
	Name     string `json:"name" toml:"name"`
	Division string `json:"division" toml:"division"`
	Level    Level  `json:"level" toml:"level"`
}

// Edge states that From should be learned before To.
type Edge struct {
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`
}

// String formats the edge as "from -> to".
func (e Edge) String() string { return e.From + " -> " + e.To }

// Cluster groups the topics of one division, in registry order.
type Cluster struct {
	Division string
	Topics   []Topic
}

// Registry is an immutable, validated set of topics and prerequisite edges.
//
// The zero value is an empty registry. Use New to build a populated one.
type Registry struct {
	topics []Topic
	index  map[string]int
	edges  []Edge
}

// New validates topics and edges and returns the registry built from them.
// All problems are collected and returned together as a multierror so a
// broken table can be fixed in one pass.
func New(topics []Topic, edges []Edge) (*Registry, error) {
	var result *multierror.Error

	index := make(map[string]int, len(topics))
	for i, t := range topics {
		if err := errors.ValidateTopicCode(t.Code); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if prev, dup := index[t.Code]; dup {
			result = multierror.Append(result, errors.New(errors.ErrCodeDuplicateTopic,
				"topic %q registered twice (rows %d and %d)", t.Code, prev+1, i+1))
			continue
		}
		// Indexed even when invalid so its edges are not also reported.
		index[t.Code] = i
		if err := validateTopic(t); err != nil {
			result = multierror.Append(result, err)
		}
	}

	for _, e := range edges {
		if e.From == e.To {
			result = multierror.Append(result, errors.New(errors.ErrCodeSelfLoop,
				"edge %s is a self-loop", e))
			continue
		}
		for _, code := range []string{e.From, e.To} {
			if _, ok := index[code]; !ok {
				result = multierror.Append(result, errors.New(errors.ErrCodeUnknownTopic,
					"edge %s references unknown topic %q", e, code))
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Registry{
		topics: slices.Clone(topics),
		index:  index,
		edges:  slices.Clone(edges),
	}, nil
}

// validateTopic checks everything but the code.
func validateTopic(t Topic) error {
	if err := errors.ValidateLabel(fmt.Sprintf("name of topic %q", t.Code), t.Name); err != nil {
		return err
	}
	if err := errors.ValidateLabel(fmt.Sprintf("division of topic %q", t.Code), t.Division); err != nil {
		return err
	}
	if !t.Level.Valid() {
		return errors.New(errors.ErrCodeInvalidLevel,
			"topic %q has mastery level %d (must be 1-4)", t.Code, int(t.Level))
	}
	return nil
}

// Len returns the number of topics.
func (r *Registry) Len() int { return len(r.topics) }

// Topics returns a copy of all topics in registration order.
func (r *Registry) Topics() []Topic { return slices.Clone(r.topics) }

// Edges returns a copy of all prerequisite edges in declaration order.
func (r *Registry) Edges() []Edge { return slices.Clone(r.edges) }

// Topic looks up a topic by code.
func (r *Registry) Topic(code string) (Topic, bool) {
	i, ok := r.index[code]
	if !ok {
		return Topic{}, false
	}
	return r.topics[i], true
}

// Divisions returns the distinct divisions in the order they are first seen
// when iterating topics.
func (r *Registry) Divisions() []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range r.topics {
		if !seen[t.Division] {
			seen[t.Division] = true
			out = append(out, t.Division)
		}
	}
	return out
}

// Clusters partitions topics by division. Clusters follow Divisions order
// and each keeps its topics in registration order.
func (r *Registry) Clusters() []Cluster {
	divs := r.Divisions()
	pos := make(map[string]int, len(divs))
	clusters := make([]Cluster, len(divs))
	for i, d := range divs {
		pos[d] = i
		clusters[i].Division = d
	}
	for _, t := range r.topics {
		c := &clusters[pos[t.Division]]
		c.Topics = append(c.Topics, t)
	}
	return clusters
}

// CountByLevel returns how many topics sit at each level.
func (r *Registry) CountByLevel() map[Level]int {
	counts := make(map[Level]int, len(Levels))
	for _, t := range r.topics {
		counts[t.Level]++
	}
	return counts
}
