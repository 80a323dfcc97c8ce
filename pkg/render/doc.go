// Package render turns a composed [scene.Scene] into files.
//
// # SVG
//
// [RenderSVG] writes the scene as a standalone SVG document. Layers become
// groups carrying their transform and opacity; gradients are emitted once
// in a shared defs block; a photo underlay is embedded as a data URI.
//
//	svg := render.RenderSVG(sc, render.WithBackdrop("#ffffff"))
//
// # Rasterizers
//
// A [Rasterizer] paints a scene to PNG at a pixel scale. Two are provided:
//
//   - [Canvas] draws natively with fogleman/gg and needs nothing installed.
//   - [RSVG] renders the SVG through the external rsvg-convert tool.
//
// [NewRasterizer] selects one by name.
//
// # Format Conversion
//
// [ToPNG] and [ToPDF] convert any SVG via rsvg-convert (from librsvg).
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
package render
