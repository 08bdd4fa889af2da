// Package pkg holds the libraries behind the masterymap command.
//
// # Overview
//
// Masterymap draws a student's knowledge map: math topics as nodes,
// prerequisites as arrows, grouped into one box per division and coloured
// by how well the student has mastered each topic. A legend footer explains
// the arrows and colours. The pieces are:
//
//  1. [knowledge] - topics, mastery levels, the prerequisite edge list
//  2. [profile] - named configurations: snapshot, theme, labels, edges
//  3. [render/dot] - Graphviz sources for the diagram and the legend
//  4. [render/raster] - DOT to PNG through go-graphviz or a dot binary
//  5. [composite] - stitching the diagram above the legend
//  6. [pipeline] - the three stages with explicit per-stage results
//
// Supporting packages: [cache] (rendered images on disk), [errors] (coded
// errors), [observability] (stage and cache hooks), [buildinfo].
//
// # Data Flow
//
//	profile (built-in or TOML) [+ mapping CSV]
//	         ↓
//	    knowledge.Registry (validated, immutable)
//	         ↓
//	    dot.Diagram ──→ raster ──→ knowledge_graph_part.png ─┐
//	    dot.Legend  ──→ raster ──→ footer_part_aligned.png ──┤
//	                                                         ↓
//	                              composite ──→ student_knowledge_map.png
//
// # Quick Start
//
//	p, _ := profile.Builtin("web")
//	reg, _ := pipeline.Prepare(p, "")
//	res, err := pipeline.NewRunner(nil, logger).Execute(ctx, p, reg, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	if err := res.Err(); err != nil {
//	    // some stage failed; res.Stages says which
//	}
//
// [knowledge]: github.com/matzehuels/masterymap/pkg/knowledge
// [profile]: github.com/matzehuels/masterymap/pkg/profile
// [render/dot]: github.com/matzehuels/masterymap/pkg/render/dot
// [render/raster]: github.com/matzehuels/masterymap/pkg/render/raster
// [composite]: github.com/matzehuels/masterymap/pkg/composite
// [pipeline]: github.com/matzehuels/masterymap/pkg/pipeline
// [cache]: github.com/matzehuels/masterymap/pkg/cache
// [errors]: github.com/matzehuels/masterymap/pkg/errors
// [observability]: github.com/matzehuels/masterymap/pkg/observability
// [buildinfo]: github.com/matzehuels/masterymap/pkg/buildinfo
package pkg
