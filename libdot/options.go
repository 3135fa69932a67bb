package libdot

import (
	"io"

	"github.com/2x3systems/dotpath/dotpath"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadOptions reads YAML options over dotpath.DefaultOptions and validates the result.
//
//	tolerance: 0.5
//	flatness: 0.1
func LoadOptions(in io.Reader) (dotpath.Options, error) {
	opts := dotpath.DefaultOptions

	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return opts, errors.Wrap(err, "reading options")
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
