package dot

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/masterymap/pkg/knowledge"
	"github.com/matzehuels/masterymap/pkg/profile"
)

// Diagram returns the DOT source of the clustered prerequisite graph.
//
// Clusters follow the registry's division order and are named cluster_0,
// cluster_1, ... so that Graphviz draws a box around each. Nodes are keyed
// by topic code; their label, fill and border come from the profile. Edges
// are emitted in declaration order with the theme's uniform colour.
func Diagram(reg *knowledge.Registry, p *profile.Profile) string {
	th := p.Theme

	var buf bytes.Buffer
	buf.WriteString("digraph \"knowledge_map\" {\n")

	graph := attrs{}.
		set("rankdir", "TB").
		set("charset", "UTF-8").
		set("bgcolor", th.Background).
		set("fontname", th.Font).
		set("fontcolor", th.Text).
		set("splines", p.Splines)
	if p.Title != "" {
		graph = graph.
			set("label", p.Title).
			set("labelloc", "t").
			setInt("fontsize", th.TitleSize)
	}
	graph.writeStmts(&buf, "  ")

	node := attrs{}.
		set("shape", p.Shape).
		set("style", "rounded,filled").
		set("fontname", th.Font).
		set("fontcolor", th.Text).
		set("color", th.NodeBorder)
	fmt.Fprintf(&buf, "  node [%s];\n", node)

	edge := attrs{}.
		set("color", th.Edge).
		setFloat("penwidth", th.EdgeWidth)
	if len(edge) > 0 {
		fmt.Fprintf(&buf, "  edge [%s];\n", edge)
	}

	for i, c := range reg.Clusters() {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph %s {\n", quote(fmt.Sprintf("cluster_%d", i)))
		attrs{}.
			set("label", c.Division).
			set("style", "rounded").
			set("bgcolor", th.ClusterBackground).
			set("color", th.ClusterBorder).
			set("fontname", firstNonEmpty(th.ClusterFont, th.Font)).
			set("fontcolor", firstNonEmpty(th.ClusterText, th.Text)).
			writeStmts(&buf, "    ")
		for _, t := range c.Topics {
			fmt.Fprintf(&buf, "    %s [%s];\n", quote(t.Code), topicAttrs(t, p))
		}
		buf.WriteString("  }\n")
	}

	if edges := reg.Edges(); len(edges) > 0 {
		buf.WriteString("\n")
		for _, e := range edges {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func topicAttrs(t knowledge.Topic, p *profile.Profile) attrs {
	a := attrs{}.setRaw("label", topicLabel(t, p))
	a = a.set("fillcolor", p.Fill(t.Level))
	if t.Level == knowledge.Mastered {
		a = a.set("color", p.Theme.MasteredBorder)
	}
	return a
}

// topicLabel returns the escaped label text for t under the profile's
// label mode.
func topicLabel(t knowledge.Topic, p *profile.Profile) string {
	switch p.LabelMode {
	case profile.LabelNameStatus:
		return escape(t.Name+"\n"+p.Label(t.Level), "")
	case profile.LabelRecord:
		return "{ " + recordField(t.Name) + " | <status> " + recordField(p.Label(t.Level)) + " }"
	default:
		if p.Shape == profile.ShapeRecord {
			return recordField(t.Name)
		}
		return escape(t.Name, "")
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
