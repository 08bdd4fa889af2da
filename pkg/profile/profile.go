// Package profile defines named knowledge-map configurations.
//
// A [Profile] bundles everything that differs between renderings of the same
// curriculum: the mastery snapshot, the colour theme, the language of the
// status labels, the node shape, the prerequisite edge set, and whether a
// legend footer is stitched underneath the diagram.
//
// Three profiles are built in (see [Names]); others are loaded from TOML
// with [Load], optionally extending a built-in one.
package profile

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/masterymap/pkg/errors"
	"github.com/matzehuels/masterymap/pkg/knowledge"
)

// LabelMode selects how a topic node is labelled.
type LabelMode string

const (
	// LabelName shows the display name only.
	LabelName LabelMode = "name"
	// LabelNameStatus shows the display name with the status label below it.
	LabelNameStatus LabelMode = "name-status"
	// LabelRecord splits the node into a name field and a status field.
	// It requires the record shape.
	LabelRecord LabelMode = "record"
)

// Node shapes supported by the diagram builder.
const (
	ShapeBox    = "box"
	ShapeRecord = "record"
)

// Theme holds every colour and font used by the diagram and legend.
// Fill is indexed NotStarted..Mastered.
type Theme struct {
	Fill              []string `toml:"fill"`
	NodeBorder        string   `toml:"node_border"`
	MasteredBorder    string   `toml:"mastered_border"`
	Text              string   `toml:"text"`
	Edge              string   `toml:"edge"`
	EdgeWidth         float64  `toml:"edge_width"`
	ClusterBorder     string   `toml:"cluster_border"`
	ClusterBackground string   `toml:"cluster_background"`
	ClusterText       string   `toml:"cluster_text"`
	ClusterFont       string   `toml:"cluster_font"`
	Background        string   `toml:"background"`
	Font              string   `toml:"font"`
	TitleSize         int      `toml:"title_size"`
	ExampleFill       string   `toml:"example_fill"`
}

// LegendText is the wording of the legend's explanation row.
type LegendText struct {
	From        string `toml:"from"`
	To          string `toml:"to"`
	Explanation string `toml:"explanation"`
}

// fillFrom sets every empty text from def.
func (lt *LegendText) fillFrom(def LegendText) {
	if lt.From == "" {
		lt.From = def.From
	}
	if lt.To == "" {
		lt.To = def.To
	}
	if lt.Explanation == "" {
		lt.Explanation = def.Explanation
	}
}

// Profile is a named knowledge-map configuration.
type Profile struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Title       string `toml:"title"`
	Output      string `toml:"output"`

	// Legend stitches the legend footer under the diagram. When false the
	// diagram alone is the final image.
	Legend     bool       `toml:"legend"`
	LegendText LegendText `toml:"legend_text"`

	// Labels are the status names, indexed NotStarted..Mastered.
	Labels    []string  `toml:"labels"`
	LabelMode LabelMode `toml:"label_mode"`
	Shape     string    `toml:"shape"`
	Splines   string    `toml:"splines"`

	// Floor raises every mastery level below it before rendering.
	Floor knowledge.Level `toml:"floor"`

	Theme   Theme                      `toml:"theme"`
	Topics  []knowledge.Row            `toml:"topics"`
	Mastery map[string]knowledge.Level `toml:"mastery"`
	Edges   []knowledge.Edge           `toml:"edges"`
}

// Label returns the status label for l.
func (p *Profile) Label(l knowledge.Level) string { return p.Labels[l.Index()] }

// Fill returns the node fill colour for l.
func (p *Profile) Fill(l knowledge.Level) string { return p.Theme.Fill[l.Index()] }

// Validate checks that the profile can drive a rendering. It does not
// validate the topic table itself; that happens in [Profile.Registry].
func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.New(errors.ErrCodeInvalidProfile, "profile name is required")
	}
	if len(p.Labels) != len(knowledge.Levels) {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: need %d labels, got %d", p.Name, len(knowledge.Levels), len(p.Labels))
	}
	if len(p.Theme.Fill) != len(knowledge.Levels) {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: need %d fill colours, got %d", p.Name, len(knowledge.Levels), len(p.Theme.Fill))
	}
	if seen := dupes(p.Labels); seen != "" {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: label %q used for two levels", p.Name, seen)
	}
	if seen := dupes(p.Theme.Fill); seen != "" {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: fill %q used for two levels", p.Name, seen)
	}
	switch p.Shape {
	case ShapeBox, ShapeRecord:
	default:
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: unknown shape %q (must be box or record)", p.Name, p.Shape)
	}
	switch p.LabelMode {
	case LabelName, LabelNameStatus:
	case LabelRecord:
		if p.Shape != ShapeRecord {
			return errors.New(errors.ErrCodeInvalidProfile, "profile %q: label mode %q requires shape %q", p.Name, LabelRecord, ShapeRecord)
		}
	default:
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: unknown label mode %q", p.Name, p.LabelMode)
	}
	if p.Legend && (p.LegendText.From == "" || p.LegendText.To == "" || p.LegendText.Explanation == "") {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: legend needs from, to and explanation texts", p.Name)
	}
	if p.Floor != 0 && !p.Floor.Valid() {
		return errors.New(errors.ErrCodeInvalidProfile, "profile %q: floor %d is not a mastery level", p.Name, int(p.Floor))
	}
	if p.Output != "" {
		if err := errors.ValidateOutputPath(p.Output); err != nil {
			return err
		}
	}
	return nil
}

func dupes(values []string) string {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return v
		}
		seen[v] = true
	}
	return ""
}

// Registry joins the profile's topic table with its mastery snapshot and
// validates the result. A non-nil mapping replaces the profile's topic table.
func (p *Profile) Registry(mapping []knowledge.Row) (*knowledge.Registry, error) {
	rows := p.Topics
	if mapping != nil {
		rows = mapping
	}
	topics, err := knowledge.Join(rows, p.Mastery, p.Floor)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	reg, err := knowledge.New(topics, p.Edges)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return reg, nil
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Labels = slices.Clone(p.Labels)
	c.Theme.Fill = slices.Clone(p.Theme.Fill)
	c.Topics = slices.Clone(p.Topics)
	c.Mastery = maps.Clone(p.Mastery)
	c.Edges = slices.Clone(p.Edges)
	return &c
}
