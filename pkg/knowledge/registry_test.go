package knowledge

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"

	"github.com/matzehuels/masterymap/pkg/errors"
)

func sampleTopics() []Topic {
	return []Topic{
		{Code: "function", Name: "Functions", Division: "Algebra", Level: NeedsReview},
		{Code: "angle", Name: "Angles", Division: "Geometry", Level: Proficient},
		{Code: "poly", Name: "Polynomials", Division: "Algebra", Level: NeedsReview},
		{Code: "count", Name: "Counting", Division: "Combinatorics", Level: NotStarted},
		{Code: "area", Name: "Area", Division: "Geometry", Level: Mastered},
	}
}

func TestNew_Valid(t *testing.T) {
	edges := []Edge{{"function", "poly"}, {"angle", "area"}}
	reg, err := New(sampleTopics(), edges)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if reg.Len() != 5 {
		t.Errorf("Len() = %d, want 5", reg.Len())
	}
	if diff := cmp.Diff(edges, reg.Edges()); diff != "" {
		t.Errorf("Edges() mismatch (-want +got):\n%s", diff)
	}
	got, ok := reg.Topic("area")
	if !ok || got.Name != "Area" || got.Level != Mastered {
		t.Errorf("Topic(area) = %+v, %v", got, ok)
	}
	if _, ok := reg.Topic("missing"); ok {
		t.Error("Topic(missing) should not be found")
	}
}

func TestNew_CollectsAllProblems(t *testing.T) {
	topics := append(sampleTopics(),
		Topic{Code: "poly", Name: "Again", Division: "Algebra", Level: Proficient},
		Topic{Code: "bad code", Name: "Bad", Division: "Algebra", Level: Proficient},
		Topic{Code: "lvl", Name: "Level", Division: "Algebra", Level: 7},
		Topic{Code: "noname", Name: "", Division: "Algebra", Level: Proficient},
	)
	edges := []Edge{
		{"function", "function"},
		{"function", "ghost"},
		{"phantom", "poly"},
	}

	_, err := New(topics, edges)
	if err == nil {
		t.Fatal("New() should fail")
	}

	for _, want := range []string{
		string(errors.ErrCodeDuplicateTopic),
		string(errors.ErrCodeInvalidTopic),
		string(errors.ErrCodeInvalidLevel),
		string(errors.ErrCodeSelfLoop),
		`unknown topic "ghost"`,
		`unknown topic "phantom"`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q:\n%v", want, err)
		}
	}
}

func TestNew_InvalidTopicKeepsItsEdges(t *testing.T) {
	topics := append(sampleTopics(),
		Topic{Code: "lvl", Name: "Level", Division: "Algebra", Level: 7})
	edges := []Edge{{"function", "lvl"}, {"lvl", "poly"}, {"lvl", "area"}}

	_, err := New(topics, edges)
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("New() error = %T %v, want *multierror.Error", err, err)
	}
	if len(merr.Errors) != 1 {
		t.Fatalf("New() reported %d problems, want 1:\n%v", len(merr.Errors), err)
	}
	if !errors.Is(err, errors.ErrCodeInvalidLevel) {
		t.Errorf("New() error = %v, want %s", err, errors.ErrCodeInvalidLevel)
	}
}

func TestNew_SelfLoopOnly(t *testing.T) {
	_, err := New(sampleTopics(), []Edge{{"area", "area"}})
	if !errors.Is(err, errors.ErrCodeSelfLoop) {
		t.Errorf("New() error = %v, want %s", err, errors.ErrCodeSelfLoop)
	}
}

func TestRegistry_Immutable(t *testing.T) {
	topics := sampleTopics()
	edges := []Edge{{"function", "poly"}}
	reg, err := New(topics, edges)
	if err != nil {
		t.Fatal(err)
	}

	topics[0].Name = "changed"
	edges[0].To = "area"
	got := reg.Topics()
	got[1].Level = NotStarted

	if tp, _ := reg.Topic("function"); tp.Name != "Functions" {
		t.Errorf("registry changed through input slice: %q", tp.Name)
	}
	if reg.Edges()[0].To != "poly" {
		t.Error("registry changed through input edge slice")
	}
	if tp, _ := reg.Topic("angle"); tp.Level != Proficient {
		t.Error("registry changed through Topics() result")
	}
}

func TestRegistry_Divisions(t *testing.T) {
	reg, err := New(sampleTopics(), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Algebra", "Geometry", "Combinatorics"}
	if diff := cmp.Diff(want, reg.Divisions()); diff != "" {
		t.Errorf("Divisions() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Clusters(t *testing.T) {
	reg, err := New(sampleTopics(), nil)
	if err != nil {
		t.Fatal(err)
	}

	clusters := reg.Clusters()
	if len(clusters) != len(reg.Divisions()) {
		t.Fatalf("got %d clusters, want one per division (%d)", len(clusters), len(reg.Divisions()))
	}

	codes := func(ts []Topic) []string {
		var out []string
		for _, t := range ts {
			out = append(out, t.Code)
		}
		return out
	}
	want := map[string][]string{
		"Algebra":       {"function", "poly"},
		"Geometry":      {"angle", "area"},
		"Combinatorics": {"count"},
	}
	total := 0
	for _, c := range clusters {
		if diff := cmp.Diff(want[c.Division], codes(c.Topics)); diff != "" {
			t.Errorf("cluster %s mismatch (-want +got):\n%s", c.Division, diff)
		}
		for _, tp := range c.Topics {
			if tp.Division != c.Division {
				t.Errorf("topic %s in cluster %s has division %s", tp.Code, c.Division, tp.Division)
			}
		}
		total += len(c.Topics)
	}
	if total != reg.Len() {
		t.Errorf("clusters hold %d topics, want %d", total, reg.Len())
	}
}

func TestRegistry_CountByLevel(t *testing.T) {
	reg, err := New(sampleTopics(), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[Level]int{NotStarted: 1, NeedsReview: 2, Proficient: 1, Mastered: 1}
	if diff := cmp.Diff(want, reg.CountByLevel()); diff != "" {
		t.Errorf("CountByLevel() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_ZeroValue(t *testing.T) {
	var reg Registry
	if reg.Len() != 0 || len(reg.Clusters()) != 0 || len(reg.Lint()) != 0 {
		t.Error("zero Registry should be empty")
	}
	if _, ok := reg.Topic("x"); ok {
		t.Error("zero Registry should not find topics")
	}
}
