package profile

import (
	"slices"

	"github.com/matzehuels/masterymap/pkg/errors"
	"github.com/matzehuels/masterymap/pkg/knowledge"
)

// Built-in profile names.
const (
	NameWeb      = "web"
	NameClassic  = "classic"
	NameEnhanced = "enhanced"
)

// Default is the profile used when none is named.
const Default = NameWeb

var builtins = map[string]func() *Profile{
	NameWeb:      webProfile,
	NameClassic:  classicProfile,
	NameEnhanced: enhancedProfile,
}

// Names returns the built-in profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Builtin returns a fresh copy of the named built-in profile.
func Builtin(name string) (*Profile, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeProfileNotFound, "unknown profile %q (built-in: %v)", name, Names())
	}
	return fn(), nil
}

var englishLabels = []string{"Not Started", "Needs Review", "Proficient", "Mastered"}

const defaultExampleFill = "#E0E0E0"

var defaultLegendText = LegendText{
	From:        "Topic A",
	To:          "Topic B",
	Explanation: `  Means: "Topic A" is a prerequisite for "Topic B"`,
}

// amc10Topics is the AMC10 curriculum grouped into four divisions.
var amc10Topics = []knowledge.Row{
	{Code: "misa", Name: "Miscellaneous Algebra", Division: "Algebra"},
	{Code: "complex", Name: "Complex Numbers", Division: "Algebra"},
	{Code: "trig", Name: "Trigonometry", Division: "Algebra"},
	{Code: "function", Name: "Functions", Division: "Algebra"},
	{Code: "log", Name: "Logarithms", Division: "Algebra"},
	{Code: "exp", Name: "Exponents", Division: "Algebra"},
	{Code: "equation", Name: "Equations", Division: "Algebra"},
	{Code: "poly", Name: "Polynomials", Division: "Algebra"},
	{Code: "seq", Name: "Sequences", Division: "Algebra"},
	{Code: "stats", Name: "Statistics", Division: "Combinatorics"},
	{Code: "circle", Name: "Circles", Division: "Geometry"},
	{Code: "angle", Name: "Angles", Division: "Geometry"},
	{Code: "coor", Name: "Coordinate Geometry", Division: "Geometry"},
	{Code: "length", Name: "Length", Division: "Geometry"},
	{Code: "3d", Name: "3D Geometry", Division: "Geometry"},
	{Code: "area", Name: "Area", Division: "Geometry"},
	{Code: "sim", Name: "Similarity", Division: "Geometry"},
	{Code: "base", Name: "Number Bases", Division: "Number Theory"},
	{Code: "mod", Name: "Modular Arithmetic", Division: "Number Theory"},
	{Code: "factor", Name: "Factoring", Division: "Number Theory"},
	{Code: "div", Name: "Divisibility", Division: "Number Theory"},
	{Code: "lcm", Name: "LCM/GCF", Division: "Number Theory"},
	{Code: "digit", Name: "Digits", Division: "Number Theory"},
	{Code: "Markov", Name: "Markov Chains", Division: "Combinatorics"},
	{Code: "Recursion", Name: "Recursion", Division: "Combinatorics"},
	{Code: "logic", Name: "Logic", Division: "Combinatorics"},
	{Code: "uniform", Name: "Uniform Probability", Division: "Combinatorics"},
	{Code: "geom", Name: "Geometric Probability", Division: "Combinatorics"},
	{Code: "game", Name: "Game Theory", Division: "Combinatorics"},
	{Code: "Expectation", Name: "Expected Value", Division: "Combinatorics"},
	{Code: "count", Name: "Counting", Division: "Combinatorics"},
	{Code: "prob", Name: "Probability", Division: "Combinatorics"},
}

// initialMastery is the diagnostic snapshot the first maps were drawn from.
func initialMastery() map[string]knowledge.Level {
	return map[string]knowledge.Level{
		"misa": 3, "complex": 2, "trig": 3, "function": 2, "log": 4, "exp": 4,
		"equation": 3, "poly": 3, "seq": 2, "stats": 3, "circle": 2, "angle": 3,
		"coor": 3, "length": 2, "3d": 1, "area": 2, "sim": 2, "base": 1,
		"mod": 1, "factor": 2, "div": 2, "lcm": 3, "digit": 1, "Markov": 1,
		"Recursion": 1, "logic": 3, "uniform": 2, "geom": 1, "game": 1,
		"Expectation": 1, "count": 2, "prob": 2,
	}
}

// revisedMastery is the later snapshot used by the web profile.
func revisedMastery() map[string]knowledge.Level {
	m := initialMastery()
	for _, code := range []string{"trig", "poly", "stats", "coor", "lcm"} {
		m[code] = knowledge.NeedsReview
	}
	return m
}

func webProfile() *Profile {
	return &Profile{
		Name:        NameWeb,
		Description: "Dashboard theme with soft fills, name-only labels and a legend footer",
		Output:      "student_knowledge_map_alex.png",
		Legend:      true,
		LegendText:  defaultLegendText,
		Labels:      slices.Clone(englishLabels),
		LabelMode:   LabelName,
		Shape:       ShapeBox,
		Theme: Theme{
			Fill:              []string{"#F7FAFC", "#FEE2E2", "#FEFCE8", "#E6FFFA"},
			NodeBorder:        "#E2E8F0",
			MasteredBorder:    "#E6FFFA",
			Text:              "#2D3748",
			Edge:              "#5A6A85",
			ClusterBorder:     "#E2E8F0",
			ClusterBackground: "transparent",
			ClusterText:       "#2D3748",
			Background:        "#FFFFFF",
			Font:              "Inter",
			TitleSize:         24,
			ExampleFill:       defaultExampleFill,
		},
		Topics:  slices.Clone(amc10Topics),
		Mastery: revisedMastery(),
		Edges: []knowledge.Edge{
			// Algebra
			{From: "function", To: "poly"},
			{From: "function", To: "trig"},
			{From: "function", To: "seq"},
			{From: "function", To: "equation"},
			{From: "equation", To: "poly"},
			{From: "complex", To: "poly"},
			{From: "complex", To: "trig"},
			{From: "exp", To: "log"},
			{From: "log", To: "equation"},
			{From: "misa", To: "equation"},
			// Number theory
			{From: "div", To: "factor"},
			{From: "factor", To: "lcm"},
			{From: "div", To: "mod"},
			{From: "mod", To: "base"},
			{From: "base", To: "digit"},
			// Geometry
			{From: "angle", To: "trig"},
			{From: "angle", To: "circle"},
			{From: "length", To: "area"},
			{From: "length", To: "sim"},
			{From: "area", To: "3d"},
			{From: "coor", To: "area"},
			{From: "coor", To: "sim"},
			{From: "coor", To: "circle"},
			// Counting and probability
			{From: "logic", To: "count"},
			{From: "count", To: "prob"},
			{From: "count", To: "Recursion"},
			{From: "count", To: "geom"},
			{From: "prob", To: "stats"},
			{From: "prob", To: "Expectation"},
			{From: "prob", To: "uniform"},
			{From: "prob", To: "game"},
			{From: "prob", To: "Markov"},
			// Bridges between divisions
			{From: "mod", To: "poly"},
			{From: "coor", To: "geom"},
			{From: "seq", To: "prob"},
		},
	}
}

func classicProfile() *Profile {
	return &Profile{
		Name:        NameClassic,
		Description: "Material palette with status text on every node and a legend footer",
		Title:       "AMC10 Personalized Learning Path - Alex",
		Output:      "student_knowledge_map_alex.png",
		Legend:      true,
		LegendText:  defaultLegendText,
		Labels:      slices.Clone(englishLabels),
		LabelMode:   LabelNameStatus,
		Shape:       ShapeBox,
		Theme: Theme{
			Fill:          []string{"#F5F5F5", "#FFCDD2", "#FFF9C4", "#C8E6C9"},
			ClusterBorder: "lightblue",
			ClusterFont:   "Helvetica-Bold",
			Font:          "Helvetica",
			TitleSize:     24,
			ExampleFill:   defaultExampleFill,
		},
		Topics:  slices.Clone(amc10Topics),
		Mastery: initialMastery(),
		Edges: []knowledge.Edge{
			{From: "exp", To: "log"}, {From: "poly", To: "function"}, {From: "equation", To: "poly"},
			{From: "trig", To: "function"}, {From: "complex", To: "poly"}, {From: "misa", To: "equation"},
			{From: "seq", To: "function"},
			{From: "div", To: "factor"}, {From: "factor", To: "mod"}, {From: "div", To: "lcm"},
			{From: "base", To: "digit"}, {From: "lcm", To: "factor"},
			{From: "angle", To: "trig"}, {From: "length", To: "area"}, {From: "area", To: "3d"},
			{From: "sim", To: "coor"}, {From: "circle", To: "coor"}, {From: "angle", To: "circle"},
			{From: "length", To: "sim"}, {From: "coor", To: "area"},
			{From: "logic", To: "count"}, {From: "count", To: "prob"}, {From: "prob", To: "Expectation"},
			{From: "prob", To: "uniform"}, {From: "count", To: "Recursion"}, {From: "count", To: "geom"},
			{From: "stats", To: "prob"}, {From: "prob", To: "game"}, {From: "uniform", To: "Expectation"},
			{From: "geom", To: "Expectation"},
		},
	}
}

func enhancedProfile() *Profile {
	return &Profile{
		Name:        NameEnhanced,
		Description: "Record nodes with Chinese status labels after the foundation course, no legend",
		Title:       "AMC10 知识图谱 (增强版)",
		Output:      "student_knowledge_map_enhanced.png",
		Legend:      false,
		LegendText:  defaultLegendText,
		Labels:      []string{"还未开始", "需要复习", "表现不错", "已掌握"},
		LabelMode:   LabelRecord,
		Shape:       ShapeRecord,
		Splines:     "ortho",
		Floor:       knowledge.Proficient,
		Theme: Theme{
			Fill:          []string{"#ECEFF1", "#EF9A9A", "#FFF59D", "#A5D6A7"},
			NodeBorder:    "#B0BEC5",
			Edge:          "#546E7A",
			EdgeWidth:     1.5,
			ClusterBorder: "#78909C",
			ClusterText:   "#37474F",
			Font:          "Inter",
			TitleSize:     20,
			ExampleFill:   defaultExampleFill,
		},
		Topics:  slices.Clone(amc10Topics),
		Mastery: initialMastery(),
		Edges: []knowledge.Edge{
			// Algebra
			{From: "equation", To: "poly"}, {From: "poly", To: "function"}, {From: "exp", To: "log"}, {From: "seq", To: "function"},
			// Number theory
			{From: "div", To: "factor"}, {From: "div", To: "lcm"}, {From: "factor", To: "mod"}, {From: "div", To: "base"}, {From: "div", To: "digit"},
			// Geometry
			{From: "angle", To: "trig"}, {From: "length", To: "area"}, {From: "area", To: "3d"}, {From: "sim", To: "length"}, {From: "sim", To: "area"},
			// Counting
			{From: "count", To: "prob"}, {From: "prob", To: "uniform"}, {From: "prob", To: "Expectation"}, {From: "count", To: "Recursion"},
			{From: "prob", To: "Markov"}, {From: "logic", To: "game"},
			// Across divisions
			{From: "equation", To: "coor"}, {From: "trig", To: "coor"}, {From: "circle", To: "coor"},
			{From: "area", To: "geom"}, {From: "count", To: "geom"}, {From: "trig", To: "complex"},
		},
	}
}
