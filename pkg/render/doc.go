// Package render groups the two halves of drawing a knowledge map.
//
// The [dot] subpackage declares what to draw: the clustered prerequisite
// diagram and the legend footer, as deterministic Graphviz DOT strings.
// The [raster] subpackage draws them: it turns a DOT string into a PNG file
// using the bundled go-graphviz engine, a system dot binary, or a cached
// copy of an earlier render.
//
//	src := dot.Diagram(reg, p)
//	err := (&raster.Engine{}).Render(ctx, src, "knowledge_graph_part.png")
//
// [dot]: github.com/matzehuels/masterymap/pkg/render/dot
// [raster]: github.com/matzehuels/masterymap/pkg/render/raster
package render
