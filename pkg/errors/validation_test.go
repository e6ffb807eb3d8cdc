package errors

import (
	"strings"
	"testing"
)

func TestValidatePresetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "petersen", false},
		{"with digits", "paley9", false},
		{"with dash", "triangular-10", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"uppercase", "Petersen", true},
		{"leading dash", "-x", true},
		{"path", "../etc", true},
		{"space", "a b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePresetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePresetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPreset) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidPreset)
			}
		})
	}
}

func TestValidateStoreKey(t *testing.T) {
	valid := strings.Repeat("ab", 32)
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"digest", valid, false},

		{"empty", "", true},
		{"short", "abc123", true},
		{"uppercase", strings.ToUpper(valid), true},
		{"traversal", "../" + valid[:61], true},
		{"too long", valid + "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStoreKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStoreKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "results/petersen.json", false},
		{"absolute", "/tmp/out.txt", false},

		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRowText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"spaced", "0 1 0 0 1", false},
		{"packed", "01001", false},
		{"commas", "0,1,0,0,1", false},

		{"empty", "   ", true},
		{"digit two", "0 2 0", true},
		{"letters", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRowText(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRowText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBudget(t *testing.T) {
	tests := []struct {
		name          string
		iters, itLim  int64
		timeout, tLim int64
		wantErr       bool
	}{
		{"defaults", 0, 1000, 0, 5000, false},
		{"within", 500, 1000, 100, 5000, false},
		{"no limits", 1 << 40, 0, 1 << 40, 0, false},

		{"negative iterations", -1, 0, 0, 0, true},
		{"iterations over", 1001, 1000, 0, 0, true},
		{"negative timeout", 0, 0, -5, 0, true},
		{"timeout over", 0, 0, 6000, 5000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBudget(tt.iters, tt.itLim, tt.timeout, tt.tLim)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBudget() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
