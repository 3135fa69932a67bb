package libdot_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/2x3systems/dotpath/dotpath"
	"github.com/2x3systems/dotpath/libdot"
)

func TestLoadOptions(t *testing.T) {
	opts, err := libdot.LoadOptions(strings.NewReader("tolerance: 0.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, dotOpts(0.5, dotpath.DefaultOptions.Flatness), opts)

	opts, err = libdot.LoadOptions(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, dotpath.DefaultOptions, opts)

	opts, err = libdot.LoadOptions(strings.NewReader("tolerance: 2\nflatness: 0.01\n"))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, dotOpts(2, 0.01), opts)
}

func TestLoadOptionsErrors(t *testing.T) {
	if _, err := libdot.LoadOptions(strings.NewReader("tolerance: -1\n")); !errors.Is(err, dotpath.ErrBadTolerance) {
		t.Errorf("got %v", err)
	}
	if _, err := libdot.LoadOptions(strings.NewReader("flatness: 0\n")); !errors.Is(err, dotpath.ErrBadFlatness) {
		t.Errorf("got %v", err)
	}
	if _, err := libdot.LoadOptions(strings.NewReader("rounding: 3\n")); err == nil {
		t.Error("unknown field accepted")
	}
	if _, err := libdot.LoadOptions(strings.NewReader("tolerance: [1, 2]\n")); err == nil {
		t.Error("bad value accepted")
	}
}
