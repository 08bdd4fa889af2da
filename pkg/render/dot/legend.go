package dot

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/masterymap/pkg/knowledge"
	"github.com/matzehuels/masterymap/pkg/profile"
)

// Node IDs used by the legend.
const (
	LegendFrom        = "node_A"
	LegendTo          = "node_B"
	LegendExplanation = "explanation_text"
)

// LegendSwatch returns the legend node ID of the swatch for l.
func LegendSwatch(l knowledge.Level) string {
	switch l {
	case knowledge.Mastered:
		return "legend_mastered"
	case knowledge.Proficient:
		return "legend_proficient"
	case knowledge.NeedsReview:
		return "legend_review"
	case knowledge.NotStarted:
		return "legend_not_started"
	}
	return fmt.Sprintf("legend_%d", int(l))
}

// Legend returns the DOT source of the legend footer.
//
// The first row shows an example arrow between two neutral nodes with the
// explanation text beside it, tied by an invisible edge that does not
// constrain ranking. The second row holds one filled swatch per level,
// strongest first, kept in line by invisible edges. An invisible edge from
// the example's source to the first swatch stacks the rows.
func Legend(p *profile.Profile) string {
	th := p.Theme
	lt := p.LegendText

	var buf bytes.Buffer
	buf.WriteString("digraph \"legend\" {\n")
	attrs{}.
		set("rankdir", "TB").
		set("charset", "UTF-8").
		set("ranksep", "0.3").
		set("nodesep", "0.2").
		writeStmts(&buf, "  ")
	if e := (attrs{}.set("color", th.Edge)); len(e) > 0 {
		fmt.Fprintf(&buf, "  edge [%s];\n", e)
	}

	example := func(label string) attrs {
		return attrs{}.
			set("label", label).
			set("shape", "box").
			set("style", "rounded,filled").
			set("fillcolor", th.ExampleFill).
			set("fontname", th.Font).
			set("fontcolor", th.Text)
	}

	buf.WriteString("\n  subgraph \"explanation_row\" {\n")
	buf.WriteString("    rank=\"same\";\n")
	fmt.Fprintf(&buf, "    %s [%s];\n", quote(LegendFrom), example(lt.From))
	fmt.Fprintf(&buf, "    %s [%s];\n", quote(LegendTo), example(lt.To))
	fmt.Fprintf(&buf, "    %s [%s];\n", quote(LegendExplanation), attrs{}.
		set("label", lt.Explanation).
		set("shape", "plaintext").
		set("fontsize", "12").
		set("fontname", th.Font).
		set("fontcolor", th.Text))
	fmt.Fprintf(&buf, "    %s -> %s;\n", quote(LegendFrom), quote(LegendTo))
	fmt.Fprintf(&buf, "    %s -> %s [style=\"invis\", constraint=\"false\"];\n", quote(LegendTo), quote(LegendExplanation))
	buf.WriteString("  }\n")

	buf.WriteString("\n  subgraph \"legend_row\" {\n")
	buf.WriteString("    rank=\"same\";\n")
	fmt.Fprintf(&buf, "    node [%s];\n", attrs{}.
		set("shape", "box").
		set("style", "filled").
		set("fontsize", "12").
		set("fontname", th.Font).
		set("fontcolor", th.Text))
	for _, l := range knowledge.Levels {
		fmt.Fprintf(&buf, "    %s [%s];\n", quote(LegendSwatch(l)), attrs{}.
			set("label", p.Label(l)).
			set("fillcolor", p.Fill(l)))
	}
	for i := 1; i < len(knowledge.Levels); i++ {
		fmt.Fprintf(&buf, "    %s -> %s [style=\"invis\"];\n",
			quote(LegendSwatch(knowledge.Levels[i-1])), quote(LegendSwatch(knowledge.Levels[i])))
	}
	buf.WriteString("  }\n\n")

	fmt.Fprintf(&buf, "  %s -> %s [style=\"invis\"];\n", quote(LegendFrom), quote(LegendSwatch(knowledge.Levels[0])))
	buf.WriteString("}\n")
	return buf.String()
}
