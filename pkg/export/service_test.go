package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/pisica/pkg/appearance"
	"github.com/matzehuels/pisica/pkg/cache"
	"github.com/matzehuels/pisica/pkg/errors"
	"github.com/matzehuels/pisica/pkg/render"
	"github.com/matzehuels/pisica/pkg/scene"
)

type fakeRasterizer struct {
	calls *atomic.Int32
	err   error
}

func (f fakeRasterizer) Name() string { return "fake" }

func (f fakeRasterizer) Rasterize(_ context.Context, _ scene.Scene, scale float64) ([]byte, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("PNG@" + strings.Repeat("x", int(scale))), nil
}

func newTestService(c cache.Cache, calls *atomic.Int32, err error) *Service {
	svc := NewService(c, nil, nil)
	svc.Rasterizer = func(string, string) (render.Rasterizer, error) {
		return fakeRasterizer{calls: calls, err: err}, nil
	}
	return svc
}

func defaultScene() scene.Scene { return scene.ComposeState(appearance.Default()) }

func TestExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	svc := newTestService(nil, &calls, nil)

	res, err := svc.Export(context.Background(), defaultScene(), Options{
		Formats: []string{FormatSVG, FormatPNG},
		Dir:     dir,
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(res.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(res.Artifacts))
	}

	svg, err := os.ReadFile(filepath.Join(dir, "pisica-mea.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("svg file starts with %.20q", svg)
	}
	png, err := os.ReadFile(filepath.Join(dir, "pisica-mea.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(png) != "PNG@xx" {
		t.Errorf("png file = %q, want default 2x raster", png)
	}
}

func TestExportEmptySceneIsNoop(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	svc := newTestService(nil, &calls, nil)

	res, err := svc.Export(context.Background(), scene.Scene{}, Options{Dir: dir})
	if err != nil {
		t.Fatalf("Export(empty) error = %v", err)
	}
	if !res.Skipped || len(res.Artifacts) != 0 {
		t.Errorf("result = %+v, want skipped", res)
	}
	if calls.Load() != 0 {
		t.Error("rasterizer called for empty scene")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("files written for empty scene: %d", len(entries))
	}
}

func TestExportUsesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var calls atomic.Int32
	svc := newTestService(fc, &calls, nil)
	opts := Options{Dir: t.TempDir()}

	first, err := svc.Export(context.Background(), defaultScene(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Export(context.Background(), defaultScene(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 {
		t.Errorf("rasterizer calls = %d, want 1", calls.Load())
	}
	if first.Artifacts[0].Cached || !second.Artifacts[0].Cached {
		t.Errorf("cached flags = %v, %v; want false, true", first.Artifacts[0].Cached, second.Artifacts[0].Cached)
	}

	// A visual change misses the cache.
	st := appearance.Default()
	st.Accessories[appearance.Hat].Visible = true
	if _, err := svc.Export(context.Background(), scene.ComposeState(st), opts); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Errorf("rasterizer calls after change = %d, want 2", calls.Load())
	}
}

func TestExportRasterizeError(t *testing.T) {
	var calls atomic.Int32
	svc := newTestService(nil, &calls, errors.New(errors.ErrCodeInternal, "boom"))

	_, err := svc.Export(context.Background(), defaultScene(), Options{Dir: t.TempDir()})
	if !errors.Is(err, errors.ErrCodeExportFailed) {
		t.Errorf("error = %v, want EXPORT_FAILED", err)
	}
}

func TestExportInvalidOptions(t *testing.T) {
	var calls atomic.Int32
	svc := newTestService(nil, &calls, nil)
	_, err := svc.Export(context.Background(), defaultScene(), Options{Formats: []string{"bmp"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestRequestSignalsCompletion(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	svc := newTestService(nil, &calls, nil)

	done := svc.Request(context.Background(), defaultScene(), Options{Dir: dir, Formats: []string{FormatSVG}})

	select {
	case res, ok := <-done:
		if !ok {
			t.Fatal("channel closed without a result")
		}
		if res.Err != nil {
			t.Fatalf("Request error = %v", res.Err)
		}
		if len(res.Artifacts) != 1 || res.Artifacts[0].Format != FormatSVG {
			t.Errorf("artifacts = %+v", res.Artifacts)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Request did not complete")
	}

	if _, ok := <-done; ok {
		t.Error("channel delivered more than one result")
	}
}

func TestRequestReportsError(t *testing.T) {
	var calls atomic.Int32
	svc := newTestService(nil, &calls, nil)
	res := <-svc.Request(context.Background(), defaultScene(), Options{Scale: -2})
	if !errors.Is(res.Err, errors.ErrCodeInvalidScale) {
		t.Errorf("Err = %v, want INVALID_SCALE", res.Err)
	}
}

func TestRenderDoesNotWrite(t *testing.T) {
	var calls atomic.Int32
	svc := newTestService(nil, &calls, nil)
	out, err := svc.Render(context.Background(), defaultScene(), Options{Formats: []string{FormatSVG, FormatPNG}, Scale: 3})
	if err != nil {
		t.Fatal(err)
	}
	if string(out[FormatPNG]) != "PNG@xxx" {
		t.Errorf("png = %q", out[FormatPNG])
	}
	if !strings.Contains(string(out[FormatSVG]), `id="head"`) {
		t.Error("svg missing head layer")
	}
	if _, err := os.Stat(DefaultFilename); !os.IsNotExist(err) {
		t.Error("Render wrote a file")
	}
}

func TestExportWithCanvas(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(nil, nil, nil)
	res, err := svc.Export(context.Background(), defaultScene(), Options{Dir: dir, Scale: 1})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	data, err := os.ReadFile(res.Artifacts[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("canvas export is not a PNG")
	}
}
