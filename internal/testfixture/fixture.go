// Package testfixture loads golden clip descriptions from YAML, in the
// shape of the teacher's pack/wad/twk "asyaml"/"fromyaml" actions: a
// yaml.v3 encoder with two-space indent for the canonical on-disk form, a
// plain decoder for reading it back.
package testfixture

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// BoneFixture is one bone's worth of per-segment sample data plus the
// metadata clip.BoneMetadata needs. Rotation/Translation/Scale are
// [sample][component] in real units, never normalized.
type BoneFixture struct {
	ParentIndex   int       `yaml:"parent_index"`
	Precision     float64   `yaml:"precision"`
	ShellDistance float64   `yaml:"shell_distance"`
	Rotation      [][]float32 `yaml:"rotation"`
	Translation   [][]float32 `yaml:"translation"`
	Scale         [][]float32 `yaml:"scale,omitempty"`
}

// Fixture is a whole golden clip: one segment's worth of bones plus the
// clip-wide fields clip.New requires.
type Fixture struct {
	SampleRate   float64       `yaml:"sample_rate"`
	ClipDuration float64       `yaml:"clip_duration"`
	HasScale     bool          `yaml:"has_scale"`
	Bones        []BoneFixture `yaml:"bones"`
}

// Load decodes a Fixture from r.
func Load(r io.Reader) (*Fixture, error) {
	var f Fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "testfixture: decode")
	}
	if len(f.Bones) == 0 {
		return nil, errors.New("testfixture: fixture has no bones")
	}
	return &f, nil
}

// Encode writes f back out in the two-space-indent canonical form.
func (f *Fixture) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(err, "testfixture: encode")
	}
	return enc.Close()
}
