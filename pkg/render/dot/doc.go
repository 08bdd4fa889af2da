// Package dot builds the Graphviz DOT sources of a knowledge map.
//
// [Diagram] declares the clustered prerequisite graph: one cluster per
// division, one node per topic filled by mastery level, one arrow per edge.
// [Legend] declares the two-row footer that explains the arrow and the four
// mastery colours.
//
// Both builders are pure: the same registry and profile always produce
// byte-identical output. Rasterising the source is the job of a renderer
// (see package raster).
//
//	src := dot.Diagram(reg, prof)
//	err := renderer.Render(ctx, src, "knowledge_graph_part.png")
package dot
