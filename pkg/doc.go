// Package pkg provides the core libraries for Pisica, a cartoon cat avatar
// composer.
//
// # Overview
//
// A cat is described by an appearance (breed, fur and eye colors, four
// accessories and an optional photo underlay). The appearance is composed
// into a layered scene on a 720×600 stage and the scene is exported as PNG,
// SVG or PDF.
//
// # Architecture
//
// The data flow:
//
//	Flags / editor input
//	         ↓
//	    [appearance] Session (edits, reset, randomize, drag routing)
//	         ↓
//	    [scene] Compose (ordered layers, gradients, hit testing)
//	         ↓
//	    [export] Service → [render] (SVG, Canvas or rsvg-convert rasters)
//	         ↓
//	    pisica-mea.png / .svg / .pdf
//
// # Quick Start
//
//	s := appearance.NewSession(logger, nil)
//	s.SetBreed(geometry.Fluffy)
//	s.SetAccessoryVisible(appearance.Hat, true)
//
//	sc := scene.ComposeState(s.State())
//	svc := export.NewService(nil, nil, logger)
//	res, err := svc.Export(ctx, sc, export.Options{Formats: []string{"png"}})
//
// # Main Packages
//
// ## Domain
//
// [colorspace] - HSL colors, hex conversion and the hsl() string form.
//
// [geometry] - Path commands and the per-breed head and ear outlines.
//
// [drag] - Pointer-capture state machine that turns pointer moves into
// accessory offsets.
//
// [appearance] - The appearance state, its defaults, the randomization
// engine and the editing Session.
//
// [scene] - Pure composition of an appearance into paint-ordered layers.
//
// [photo] - Photo intake: media-type gate, decoding, object-contain fitting.
//
// ## Output
//
// [render] - SVG serialization and rasterizers (native canvas, rsvg-convert).
//
// [export] - Export options and the caching export service.
//
// ## Infrastructure
//
// [cache] - Raster cache (file, null) with versioned keys.
//
// [config] - TOML and environment settings.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Export and cache hooks.
//
// [buildinfo] - Version information set at build time.
//
// [colorspace]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/colorspace
// [geometry]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/geometry
// [drag]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/drag
// [appearance]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/appearance
// [scene]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/scene
// [photo]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/photo
// [render]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/render
// [export]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/export
// [cache]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pisica/pkg/buildinfo
package pkg
