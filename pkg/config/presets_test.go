package config

import (
	"testing"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
)

func TestBuiltinPresetsValid(t *testing.T) {
	for _, p := range BuiltinPresets() {
		t.Run(p.Name, func(t *testing.T) {
			if err := p.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
			if !p.BuiltIn {
				t.Error("BuiltIn should be set")
			}
		})
	}
}

func TestBuiltinPresetsAreCopies(t *testing.T) {
	a := BuiltinPresets()
	a[0].Seeds[0] = nil
	b := BuiltinPresets()
	if b[0].Seeds[0] == nil {
		t.Error("BuiltinPresets should return independent copies")
	}
}

func TestPresetLookup(t *testing.T) {
	cfg := Default()
	cfg.Presets = []Preset{
		{Name: "petersen", N: 10, K: 3, Lambda: 0, Mu: 1},
		{Name: "triangular-10", N: 10, K: 6, Lambda: 3, Mu: 4},
	}

	p, err := cfg.Preset("Clebsch")
	if err != nil {
		t.Fatalf("Preset() error: %v", err)
	}
	if p.N != 16 || p.K != 5 {
		t.Errorf("clebsch = %+v", p)
	}

	// Configured presets override built-ins of the same name.
	p, err = cfg.Preset("petersen")
	if err != nil {
		t.Fatal(err)
	}
	if p.BuiltIn || len(p.Seeds) != 0 {
		t.Errorf("petersen should come from config: %+v", p)
	}

	if _, err := cfg.Preset("triangular-10"); err != nil {
		t.Errorf("configured preset not found: %v", err)
	}

	if _, err := cfg.Preset("nope"); !srgerrors.Is(err, srgerrors.ErrCodeInvalidPreset) {
		t.Errorf("unknown preset error = %v", err)
	}

	if n := len(cfg.AllPresets()); n != len(BuiltinPresets())+1 {
		t.Errorf("AllPresets() = %d presets", n)
	}
}

func TestPresetSeedRows(t *testing.T) {
	p, err := Default().Preset("k33")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := p.SeedRows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].String() != "0 1 0 0 1 1" {
		t.Errorf("SeedRows() = %v", rows)
	}
}
