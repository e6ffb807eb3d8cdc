package config

import (
	"slices"
	"strings"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/srg"
)

// Preset is a named parameter set, optionally with seed rows.
type Preset struct {
	Name        string  `toml:"name" json:"name"`
	Description string  `toml:"description" json:"description,omitempty"`
	N           int     `toml:"n" json:"n"`
	K           int     `toml:"k" json:"k"`
	Lambda      int     `toml:"lambda" json:"lambda"`
	Mu          int     `toml:"mu" json:"mu"`
	Seeds       [][]int `toml:"seeds" json:"seeds,omitempty"`
	BuiltIn     bool    `toml:"-" json:"built_in"`
}

// Spec returns the preset's graph parameters.
func (p Preset) Spec() srg.Spec {
	return srg.Spec{N: p.N, K: p.K, Lambda: p.Lambda, Mu: p.Mu}
}

// SeedRows converts the preset's seeds to a row set.
func (p Preset) SeedRows() (srg.RowSet, error) {
	rows, err := srg.RowSetFromInts(p.Seeds)
	if err != nil {
		return nil, srgerrors.Wrap(srgerrors.ErrCodeInvalidRow, err, "preset %q", p.Name)
	}
	return rows, nil
}

// Validate checks the name, the parameters and the seed rows.
func (p Preset) Validate() error {
	if err := srgerrors.ValidatePresetName(p.Name); err != nil {
		return err
	}
	rows, err := p.SeedRows()
	if err != nil {
		return err
	}
	if err := p.Spec().Validate(); err != nil {
		return srgerrors.Wrap(srgerrors.ErrCodeInvalidPreset, err, "preset %q", p.Name)
	}
	if err := srg.ValidateRows(p.Spec(), rows); err != nil {
		return srgerrors.Wrap(srgerrors.ErrCodeInvalidPreset, err, "preset %q seeds", p.Name)
	}
	return nil
}

var builtins = []Preset{
	{
		Name:        "c5",
		Description: "5-cycle",
		N:           5, K: 2, Lambda: 0, Mu: 1,
		Seeds: [][]int{{0, 1, 0, 0, 1}},
	},
	{
		Name:        "k33",
		Description: "complete bipartite graph K3,3",
		N:           6, K: 3, Lambda: 0, Mu: 3,
		Seeds: [][]int{{0, 1, 0, 0, 1, 1}},
	},
	{
		Name:        "paley9",
		Description: "Paley graph of order 9 (3x3 rook's graph)",
		N:           9, K: 4, Lambda: 1, Mu: 2,
	},
	{
		Name:        "petersen",
		Description: "Petersen graph",
		N:           10, K: 3, Lambda: 0, Mu: 1,
		Seeds: [][]int{{0, 1, 0, 0, 1, 1, 0, 0, 0, 0}},
	},
	{
		Name:        "clebsch",
		Description: "Clebsch graph (folded 5-cube)",
		N:           16, K: 5, Lambda: 0, Mu: 2,
		Seeds: [][]int{{0, 1, 0, 0, 1, 0, 0, 1, 0, 1, 0, 0, 0, 1, 0, 0}},
	},
}

// BuiltinPresets returns the presets that ship with srgsearch.
func BuiltinPresets() []Preset {
	out := make([]Preset, len(builtins))
	for i, p := range builtins {
		p.BuiltIn = true
		p.Seeds = slices.Clone(p.Seeds)
		out[i] = p
	}
	return out
}

// AllPresets returns the built-in presets followed by the configured ones.
// A configured preset replaces a built-in one with the same name.
func (c *Config) AllPresets() []Preset {
	all := BuiltinPresets()
	for _, p := range c.Presets {
		if i := slices.IndexFunc(all, func(b Preset) bool { return b.Name == p.Name }); i >= 0 {
			all[i] = p
			continue
		}
		all = append(all, p)
	}
	return all
}

// Preset looks up a preset by name (case-insensitive).
func (c *Config) Preset(name string) (Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range c.AllPresets() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, srgerrors.New(srgerrors.ErrCodeInvalidPreset, "unknown preset %q", name)
}
