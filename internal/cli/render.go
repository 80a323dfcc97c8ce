package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/pisica/pkg/appearance"
	"github.com/matzehuels/pisica/pkg/colorspace"
	"github.com/matzehuels/pisica/pkg/drag"
	"github.com/matzehuels/pisica/pkg/errors"
	"github.com/matzehuels/pisica/pkg/export"
	"github.com/matzehuels/pisica/pkg/geometry"
	"github.com/matzehuels/pisica/pkg/photo"
	"github.com/matzehuels/pisica/pkg/scene"
)

// =============================================================================
// Appearance Flags
// =============================================================================

// lookFlags describe a cat on the command line. They are shared by render
// and edit.
type lookFlags struct {
	breed     string
	fur       string
	secondary string
	eyes      string
	show      []string
	hide      []string
	colors    []string
	offsets   []string
	random    bool
	seed      uint64
	seedSet   bool
	photo     string
}

func (f *lookFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.breed, "breed", "", "breed: short, fluffy, siamese")
	fs.StringVar(&f.fur, "fur", "", "primary fur color (#rrggbb or hsl(h s% l%))")
	fs.StringVar(&f.secondary, "fur2", "", "secondary fur color (muzzle, ears, siamese points)")
	fs.StringVar(&f.eyes, "eyes", "", "eye color")
	fs.StringSliceVar(&f.show, "show", nil, "accessories to show: bow, hat, scarf, collar (comma-separated)")
	fs.StringSliceVar(&f.hide, "hide", nil, "accessories to hide, e.g. --hide bow,collar")
	fs.StringArrayVar(&f.colors, "accessory-color", nil, "accessory color as name=color, repeatable (e.g. hat=#ff0000)")
	fs.StringArrayVar(&f.offsets, "offset", nil, "accessory offset in stage pixels as name=x,y, repeatable (e.g. hat=10,-20)")
	fs.BoolVar(&f.random, "random", false, "start from a random cat")
	fs.Uint64Var(&f.seed, "seed", 0, "seed for --random (default: random)")
	fs.StringVar(&f.photo, "photo", "", "photo shown behind the cat")
}

// session builds a session from the flags. Explicit flags override a
// random start.
func (f *lookFlags) session(logger *log.Logger) (*appearance.Session, error) {
	var engine *appearance.Engine
	if f.seedSet {
		engine = appearance.NewSeededEngine(f.seed)
	}
	s := appearance.NewSession(logger, engine)
	if f.random || f.seedSet {
		s.Randomize()
	}
	if err := f.apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

// applyVisibility shows the --show accessories, then hides the --hide ones.
// Naming an accessory in both is an error.
func (f *lookFlags) applyVisibility(s *appearance.Session) error {
	shown := make(map[appearance.Accessory]bool, len(f.show))
	for _, name := range f.show {
		a, err := appearance.ParseAccessory(name)
		if err != nil {
			return err
		}
		shown[a] = true
		s.SetAccessoryVisible(a, true)
	}
	for _, name := range f.hide {
		a, err := appearance.ParseAccessory(name)
		if err != nil {
			return err
		}
		if shown[a] {
			return errors.New(errors.ErrCodeInvalidInput, "%s is in both --show and --hide", a)
		}
		s.SetAccessoryVisible(a, false)
	}
	return nil
}

func (f *lookFlags) apply(s *appearance.Session) error {
	if f.breed != "" {
		b, err := geometry.ParseBreed(f.breed)
		if err != nil {
			return err
		}
		s.SetBreed(b)
	}

	for _, c := range []struct {
		value string
		set   func(colorspace.Color)
	}{
		{f.fur, s.SetPrimaryFur},
		{f.secondary, s.SetSecondaryFur},
		{f.eyes, s.SetEyeColor},
	} {
		if c.value == "" {
			continue
		}
		col, err := colorspace.Parse(c.value)
		if err != nil {
			return err
		}
		c.set(col)
	}

	if err := f.applyVisibility(s); err != nil {
		return err
	}
	for _, kv := range f.colors {
		a, value, err := parseAssignment(kv)
		if err != nil {
			return err
		}
		col, err := colorspace.Parse(value)
		if err != nil {
			return err
		}
		s.SetAccessoryColor(a, col)
	}
	for _, kv := range f.offsets {
		a, value, err := parseAssignment(kv)
		if err != nil {
			return err
		}
		p, err := parseOffset(a, value)
		if err != nil {
			return err
		}
		s.SetAccessoryOffset(a, p)
	}

	if f.photo != "" {
		img, err := photo.Load(f.photo)
		if err != nil {
			return err
		}
		s.SetBackground(img)
	}
	return nil
}

// parseAssignment splits "accessory=value".
func parseAssignment(kv string) (appearance.Accessory, string, error) {
	name, value, ok := strings.Cut(kv, "=")
	if !ok {
		return 0, "", errors.New(errors.ErrCodeInvalidInput, "%q: want accessory=value", kv)
	}
	a, err := appearance.ParseAccessory(strings.TrimSpace(name))
	if err != nil {
		return 0, "", err
	}
	return a, strings.TrimSpace(value), nil
}

// parseOffset parses "x,y". Offsets may not move an accessory's anchor off
// the stage.
func parseOffset(a appearance.Accessory, s string) (drag.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return drag.Point{}, errors.New(errors.ErrCodeInvalidOffset, "%s offset %q: want x,y", a, s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil || math.IsNaN(x) || math.IsNaN(y) {
		return drag.Point{}, errors.New(errors.ErrCodeInvalidOffset, "%s offset %q: want two numbers", a, s)
	}
	if math.Abs(x) > scene.StageWidth/2 || math.Abs(y) > scene.StageHeight/2 {
		return drag.Point{}, errors.New(errors.ErrCodeInvalidOffset, "%s offset %g,%g is off the stage", a, x, y)
	}
	return drag.Point{X: x, Y: y}, nil
}

// =============================================================================
// Output Flags
// =============================================================================

// outputFlags override the [export] config section.
type outputFlags struct {
	formats    string
	dir        string
	filename   string
	scale      float64
	rasterizer string
	backdrop   string
	noCache    bool
}

func (f *outputFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): png (default), svg, pdf (comma-separated)")
	fs.StringVarP(&f.dir, "output", "o", "", "output directory (default: current directory)")
	fs.StringVar(&f.filename, "name", "", "file name of the PNG; other formats swap the extension (default: "+export.DefaultFilename+")")
	fs.Float64Var(&f.scale, "scale", 0, "pixel ratio of rasters (default: 2)")
	fs.StringVar(&f.rasterizer, "rasterizer", "", "PNG rasterizer: canvas (default), rsvg")
	fs.StringVar(&f.backdrop, "backdrop", "", "solid color behind the stage (default: transparent)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the raster cache")
}

// apply layers the changed flags over opts.
func (f *outputFlags) apply(fs *pflag.FlagSet, opts *export.Options) error {
	if fs.Changed("format") {
		formats, err := export.ParseFormats(f.formats)
		if err != nil {
			return err
		}
		opts.Formats = formats
	}
	if fs.Changed("output") {
		opts.Dir = f.dir
	}
	if fs.Changed("name") {
		opts.Filename = f.filename
	}
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	if fs.Changed("rasterizer") {
		opts.Rasterizer = f.rasterizer
	}
	if fs.Changed("backdrop") {
		col, err := colorspace.Parse(f.backdrop)
		if err != nil {
			return err
		}
		opts.Backdrop = col.Hex()
	}
	return opts.ValidateAndSetDefaults()
}

// =============================================================================
// Render Command
// =============================================================================

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		look lookFlags
		out  outputFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Build a cat from flags and export it",
		Long: `Build a cat from flags and export it.

The cat starts from the default look (or a random one with --random) and
every flag given overrides one attribute. Colors accept #rrggbb, #rgb or
hsl(h s% l%). Offsets are in stage pixels relative to each accessory's
resting place.

Rasters are cached locally, so exporting the same cat twice is instant.`,
		Example: `  pisica render --breed siamese --fur "#d8c8b0" --show hat,bow
  pisica render --random --seed 7 -f png,svg -o out/
  pisica render --photo garden.jpg --show scarf --offset scarf=0,40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			look.seedSet = cmd.Flags().Changed("seed")
			return c.runRender(cmd.Context(), cmd.Flags(), &look, &out)
		},
	}

	look.bind(cmd.Flags())
	out.bind(cmd.Flags())
	registerAppearanceCompletions(cmd)

	return cmd
}

// runRender composes the cat described by the flags and writes the files.
func (c *CLI) runRender(ctx context.Context, fs *pflag.FlagSet, look *lookFlags, out *outputFlags) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.ExportOptions()
	if err := out.apply(fs, &opts); err != nil {
		return err
	}

	sess, err := look.session(loggerFromContext(ctx))
	if err != nil {
		return err
	}
	st := sess.State()
	sc := scene.ComposeState(st)

	svc, err := c.newService(cfg, out.noCache)
	if err != nil {
		return fmt.Errorf("initialize export: %w", err)
	}
	defer svc.Cache.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Rendering cat...")
	spinner.Start()

	res, err := svc.Export(ctx, sc, opts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()

	if res.Skipped {
		printWarning("Nothing to export")
		return nil
	}
	prog.done(fmt.Sprintf("Exported %d file(s)", len(res.Artifacts)))

	printLook(st)
	printSuccess("Exported %s", strings.Join(opts.Formats, ", "))
	for _, a := range res.Artifacts {
		printArtifact(a.Path, a.Size, a.Cached)
	}
	return nil
}

// =============================================================================
// Summary
// =============================================================================

// label title-cases an enum name for display.
func label(s string) string {
	return cases.Title(language.English).String(s)
}

// printLook prints the appearance that was exported.
func printLook(st appearance.State) {
	printKeyValue("Breed", StyleHighlight.Render(label(st.Breed.String())))
	printKeyValue("Fur", swatch(st.PrimaryFur))
	printKeyValue("Secondary", swatch(st.SecondaryFur))
	printKeyValue("Eyes", swatch(st.EyeColor))
	for _, a := range appearance.Accessories() {
		acc := st.Accessory(a)
		if !acc.Visible {
			continue
		}
		printKeyValue(label(a.String()), swatch(acc.Color)+StyleDim.Render(fmt.Sprintf("  %+g,%+g", acc.Offset.X, acc.Offset.Y)))
	}
	if st.Background != nil {
		printDetail("Photo: %s (%s)", st.Background.Name, st.Background.MIME)
	}
}
