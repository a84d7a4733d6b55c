package language

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
		wantErr  bool
	}{
		{"Japanese", Japanese, false},
		{"japanese", Japanese, false},
		{"  GERMAN ", German, false},
		{"auto", Auto, false},
		{"Klingon", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknown) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknown", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAllAndTargets(t *testing.T) {
	expected := []Language{Auto, English, Japanese, Chinese, Korean, Spanish, French, German}
	if !reflect.DeepEqual(All(), expected) {
		t.Errorf("All() = %v, want %v", All(), expected)
	}

	targets := Targets()
	if len(targets) != len(expected)-1 {
		t.Fatalf("Targets() has %d entries, want %d", len(targets), len(expected)-1)
	}
	for _, l := range targets {
		if l == Auto {
			t.Error("Targets() must not contain Auto")
		}
	}

	// Returned slices are copies
	targets[0] = "changed"
	if Targets()[0] != English {
		t.Error("Targets() exposed internal slice")
	}
}

func TestPairValidate(t *testing.T) {
	tests := []struct {
		name    string
		pair    Pair
		wantErr error
	}{
		{"default", DefaultPair(), nil},
		{"concrete", Pair{From: English, To: German}, nil},
		{"auto target", Pair{From: English, To: Auto}, ErrAutoTarget},
		{"lower case auto target", Pair{From: English, To: "auto"}, ErrAutoTarget},
		{"padded auto target", Pair{From: "english", To: " AUTO "}, ErrAutoTarget},
		{"lower case concrete", Pair{From: "english", To: "german"}, nil},
		{"unknown source", Pair{From: "Elvish", To: German}, ErrUnknown},
		{"unknown target", Pair{From: English, To: "Elvish"}, ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pair.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewPair(t *testing.T) {
	p, err := NewPair("auto", "japanese")
	if err != nil {
		t.Fatalf("NewPair() unexpected error: %v", err)
	}
	if p != DefaultPair() {
		t.Errorf("NewPair() = %v, want %v", p, DefaultPair())
	}

	if _, err := NewPair("English", "Auto"); !errors.Is(err, ErrAutoTarget) {
		t.Errorf("NewPair(English, Auto) error = %v, want ErrAutoTarget", err)
	}
}

func TestPairCanonical(t *testing.T) {
	p, err := Pair{From: "english", To: " GERMAN"}.Canonical()
	if err != nil {
		t.Fatalf("Canonical() unexpected error: %v", err)
	}
	if p != (Pair{From: English, To: German}) {
		t.Errorf("Canonical() = %v, want English -> German", p)
	}

	if _, err := (Pair{From: English, To: "auto"}).Canonical(); !errors.Is(err, ErrAutoTarget) {
		t.Errorf("Canonical() error = %v, want ErrAutoTarget", err)
	}
}

func TestEffectiveFrom(t *testing.T) {
	p := Pair{From: Auto, To: Japanese}
	if p.EffectiveFrom() != English {
		t.Errorf("EffectiveFrom() = %s, want English", p.EffectiveFrom())
	}
	if p.From != Auto {
		t.Error("EffectiveFrom() must not modify the pair")
	}

	p = Pair{From: French, To: Japanese}
	if p.EffectiveFrom() != French {
		t.Errorf("EffectiveFrom() = %s, want French", p.EffectiveFrom())
	}
}

func TestSwapped(t *testing.T) {
	if _, ok := (Pair{From: Auto, To: Japanese}).Swapped(); ok {
		t.Error("Swapped() should refuse Auto source")
	}

	got, ok := Pair{From: English, To: Japanese}.Swapped()
	if !ok {
		t.Fatal("Swapped() refused a concrete pair")
	}
	if got != (Pair{From: Japanese, To: English}) {
		t.Errorf("Swapped() = %v", got)
	}
}
