package scene

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pisica/pkg/appearance"
	"github.com/matzehuels/pisica/pkg/geometry"
	"github.com/matzehuels/pisica/pkg/photo"
)

func allVisible(b geometry.Breed) appearance.State {
	st := appearance.Default()
	st.Breed = b
	for _, a := range appearance.Accessories() {
		st.Accessories[a].Visible = true
	}
	return st
}

func TestComposeOrderSiamese(t *testing.T) {
	sc := ComposeState(allVisible(geometry.Siamese))

	want := []string{
		LayerShadow, LayerEars, LayerEarInner, LayerHead, LayerMask,
		LayerMuzzle, LayerNose, LayerMouth, LayerWhiskers, LayerEyes,
		LayerHat, LayerBow, LayerScarf, LayerCollar,
	}
	if diff := cmp.Diff(want, sc.Names()); diff != "" {
		t.Fatalf("layer order mismatch (-want +got):\n%s", diff)
	}

	mask := sc.Index(LayerMask)
	if !(sc.Index(LayerHead) < mask && mask < sc.Index(LayerEyes)) {
		t.Errorf("mask at %d not between head and eyes", mask)
	}
	collar := sc.Index(LayerCollar)
	for _, below := range []string{LayerScarf, LayerHat, LayerBow} {
		if sc.Index(below) >= collar {
			t.Errorf("%s painted above collar", below)
		}
	}
}

func TestComposeHiddenAccessoriesOmitted(t *testing.T) {
	st := appearance.Default() // bow and collar visible
	sc := ComposeState(st)

	for _, name := range []string{LayerHat, LayerScarf, LayerMask, LayerCheekFuzz, LayerBackground} {
		if sc.Index(name) != -1 {
			t.Errorf("layer %q present, want omitted", name)
		}
	}
	if sc.Index(LayerBow) == -1 || sc.Index(LayerCollar) == -1 {
		t.Error("visible accessories missing")
	}
	if sc.Index(LayerBow) > sc.Index(LayerCollar) {
		t.Error("bow painted above collar")
	}
}

func TestComposeCheekFuzzOnlyFluffy(t *testing.T) {
	for _, b := range geometry.Breeds() {
		sc := ComposeState(allVisible(b))
		if got, want := sc.Index(LayerCheekFuzz) >= 0, b == geometry.Fluffy; got != want {
			t.Errorf("%v: cheek fuzz present = %v, want %v", b, got, want)
		}
	}
}

func TestComposeBackgroundFirst(t *testing.T) {
	st := appearance.Default()
	st.Background = &photo.Image{Name: "cat.png", MIME: "image/png"}
	sc := ComposeState(st)

	if sc.Index(LayerBackground) != 0 {
		t.Fatalf("background at %d, want 0", sc.Index(LayerBackground))
	}
	l, _ := sc.Layer(LayerBackground)
	if l.Shapes[0].Image != st.Background {
		t.Error("background layer does not reference the photo")
	}
}

func TestComposeColors(t *testing.T) {
	st := appearance.Default()
	sc := ComposeState(st)

	head, _ := sc.Layer(LayerHead)
	if got := head.Shapes[0].Fill.Color; got != "#b48c64" {
		t.Errorf("head fill = %s, want #b48c64", got)
	}
	iris, ok := sc.Gradient(gradIrisL)
	if !ok {
		t.Fatal("iris gradient missing")
	}
	if got := iris.Stops[1].Color; got != st.EyeColor.Hex() {
		t.Errorf("iris stop = %s, want %s", got, st.EyeColor.Hex())
	}
	whiskers, _ := sc.Layer(LayerWhiskers)
	if whiskers.Opacity != 0.7 || len(whiskers.Shapes) != 6 {
		t.Errorf("whiskers opacity=%v shapes=%d", whiskers.Opacity, len(whiskers.Shapes))
	}
}

func TestComposeUsesProfile(t *testing.T) {
	p := geometry.ProfileFor(geometry.Fluffy)
	sc := Compose(appearance.Default(), p)
	head, _ := sc.Layer(LayerHead)
	if head.Shapes[0].Path.String() != p.Head.String() {
		t.Error("head layer does not use the given profile")
	}
}

func TestComposePure(t *testing.T) {
	st := allVisible(geometry.Fluffy)
	if diff := cmp.Diff(ComposeState(st), ComposeState(st)); diff != "" {
		t.Errorf("Compose not deterministic:\n%s", diff)
	}
}

func TestAccessoryPlacement(t *testing.T) {
	st := appearance.Default()
	st.Accessories[appearance.Hat].Visible = true
	sc := ComposeState(st)

	hat, _ := sc.Layer(LayerHat)
	b := hat.Bounds()
	center := geometry.Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
	want := geometry.Point{X: StageWidth / 2, Y: StageHeight/2 - 20}
	if math.Abs(center.X-want.X) > 1e-9 || math.Abs(center.Y-want.Y) > 1e-9 {
		t.Errorf("hat center = %v, want %v", center, want)
	}
	if math.Abs(b.W()-160) > 1e-9 {
		t.Errorf("hat width = %v, want 160", b.W())
	}
}

func TestCatCentered(t *testing.T) {
	sc := ComposeState(appearance.Default())
	head, _ := sc.Layer(LayerHead)
	tr := head.Transform
	mid := tr.Apply(geometry.Point{X: 0, Y: -12.5})
	if mid != (geometry.Point{X: StageWidth / 2, Y: StageHeight / 2}) {
		t.Errorf("cat box center maps to %v", mid)
	}
	if back := tr.Invert(mid); back != (geometry.Point{X: 0, Y: -12.5}) {
		t.Errorf("Invert() = %v", back)
	}
}

func TestHitTest(t *testing.T) {
	sc := ComposeState(appearance.Default())

	tests := []struct {
		name string
		p    geometry.Point
		want appearance.Accessory
		ok   bool
	}{
		{"overlap picks collar", geometry.Point{X: 360, Y: 322}, appearance.Collar, true},
		{"bow above collar", geometry.Point{X: 360, Y: 278}, appearance.Bow, true},
		{"empty corner", geometry.Point{X: 5, Y: 5}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sc.HitTest(tt.p)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("HitTest(%v) = %v, %v; want %v, %v", tt.p, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	if !(Scene{}).Empty() {
		t.Error("zero scene not empty")
	}
	if ComposeState(appearance.Default()).Empty() {
		t.Error("composed scene empty")
	}
}
