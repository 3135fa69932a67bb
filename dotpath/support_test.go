package dotpath_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/2x3systems/dotpath/dotpath"
)

func TestFormEdgeKey(t *testing.T) {
	a := dotpath.Vertex{X: 10, Y: 0}
	b := dotpath.Vertex{X: 0, Y: 10}

	ab := dotpath.FormEdgeKey(a, b)
	ba := dotpath.FormEdgeKey(b, a)
	if ab != ba {
		t.Fatalf("%v != %v", ab, ba)
	}
	if ab.A != b || ab.B != a {
		t.Errorf("key not ordered: %v", ab)
	}
	if got := ab.String(); got != "(0, 10)-(10, 0)" {
		t.Errorf("String() = %q", got)
	}
	if ab.IsLoop() || !dotpath.FormEdgeKey(a, a).IsLoop() {
		t.Error("IsLoop() wrong")
	}
}

func TestFormatTuple(t *testing.T) {
	for _, c := range []struct {
		x, y float64
		want string
	}{
		{0, 0, "(0, 0)"},
		{-5, 12, "(-5, 12)"},
		{1.5, 0.25, "(1.5, 0.25)"},
	} {
		if got := dotpath.FormatTuple(c.x, c.y); got != c.want {
			t.Errorf("FormatTuple(%v, %v) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
}

func TestTourKind(t *testing.T) {
	for kind, want := range map[dotpath.TourKind]string{
		dotpath.TourEmpty:   "empty",
		dotpath.TourCircuit: "circuit",
		dotpath.TourPath:    "path",
		dotpath.TourPartial: "partial",
		9:                   "TourKind(9)",
	} {
		if got := kind.String(); got != want {
			t.Errorf("%d: got %q", kind, got)
		}
	}
	if !dotpath.TourCircuit.IsEulerian() || !dotpath.TourPath.IsEulerian() || dotpath.TourPartial.IsEulerian() {
		t.Error("IsEulerian() wrong")
	}
}

func TestValidate(t *testing.T) {
	opts := dotpath.DefaultOptions
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}

	opts.Tolerance = math.NaN()
	if err := opts.Validate(); !errors.Is(err, dotpath.ErrBadTolerance) {
		t.Errorf("got %v", err)
	}

	opts = dotpath.DefaultOptions
	opts.Flatness = math.Inf(1)
	if err := opts.Validate(); !errors.Is(err, dotpath.ErrBadFlatness) {
		t.Errorf("got %v", err)
	}
}

func TestCatalogContextClose(t *testing.T) {
	ctx := dotpath.NewCatalogContext()
	ctx.Close()
	ctx.Close()

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context did not close")
	}
}
