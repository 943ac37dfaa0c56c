// Package anchorfile reads and writes anchor sets as YAML documents:
//
//	weightingExponent1: 1
//	weightingExponent2: 2
//	anchors:
//	  - origin: [0, 0]
//	    target: [5, 0, 0]
//
// Coordinates take 2 or 3 components.  An anchor without a target is fixed in
// place.  Omitted exponents take their defaults.
package anchorfile

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"stretchwarp/stretch"
	"stretchwarp/vmath/vec3"
)

type document struct {
	WeightingExponent1 *float64 `yaml:"weightingExponent1,omitempty"`
	WeightingExponent2 *float64 `yaml:"weightingExponent2,omitempty"`
	Anchors            []anchor `yaml:"anchors"`
}

type anchor struct {
	Origin []float64 `yaml:"origin,flow"`
	Target []float64 `yaml:"target,flow,omitempty"`
}

// Load decodes a single document from r.  Unknown fields are an error.
func Load(r io.Reader) (*stretch.AnchorSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	doc := &document{}
	if err := dec.Decode(doc); err != nil && err != io.EOF {
		return nil, xerrors.Errorf("while decoding anchor document: %w", err)
	}

	return doc.toSet()
}

func LoadFile(path string) (*stretch.AnchorSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("while opening anchor file %q: %w", path, err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, xerrors.Errorf("while loading anchor file %q: %w", path, err)
	}
	return s, nil
}

func (d *document) toSet() (*stretch.AnchorSet, error) {
	s := stretch.New()
	if d.WeightingExponent1 != nil {
		s.SetWeightingExponent1(*d.WeightingExponent1)
	}
	if d.WeightingExponent2 != nil {
		s.SetWeightingExponent2(*d.WeightingExponent2)
	}

	for i, a := range d.Anchors {
		origin, err := vec3.FromSlice(a.Origin)
		if err != nil {
			return nil, xerrors.Errorf("while reading origin of anchor %d: %w", i, err)
		}

		target := origin
		if a.Target != nil {
			target, err = vec3.FromSlice(a.Target)
			if err != nil {
				return nil, xerrors.Errorf("while reading target of anchor %d: %w", i, err)
			}
		}

		s.AddAnchor(origin, target)
	}

	return s, nil
}

// Save writes s as a document with both exponents and full 3-component
// positions.
func Save(w io.Writer, s *stretch.AnchorSet) error {
	e1, e2 := s.WeightingExponent1(), s.WeightingExponent2()
	doc := &document{
		WeightingExponent1: &e1,
		WeightingExponent2: &e2,
		Anchors:            make([]anchor, 0, s.AnchorCount()),
	}

	for i := 0; i < s.AnchorCount(); i++ {
		a, err := s.Anchor(i)
		if err != nil {
			return xerrors.Errorf("while reading anchor %d: %w", i, err)
		}
		doc.Anchors = append(doc.Anchors, anchor{
			Origin: a.Origin().Slice(),
			Target: a.Target().Slice(),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return xerrors.Errorf("while encoding anchor document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return xerrors.Errorf("while flushing anchor document: %w", err)
	}
	return nil
}

// SaveFile replaces the file at path with the document for s.
func SaveFile(path string, s *stretch.AnchorSet) error {
	buf := &bytes.Buffer{}
	if err := Save(buf, s); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return xerrors.Errorf("while writing anchor file %q: %w", path, err)
	}
	return nil
}
