package normalization

import (
	"testing"
)

type testEnum string

const (
	testAlpha testEnum = "alpha"
	testBeta  testEnum = "beta"
	testGamma testEnum = "gamma"
)

func newTestNormalizer() *Normalizer[testEnum] {
	return New("test mode", map[string]testEnum{
		"gamma": testGamma,
		"alpha": testAlpha,
		"beta":  testBeta,
	}, testAlpha)
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		input    string
		expected testEnum
	}{
		{"exact match", "alpha", testAlpha},
		{"case insensitive", "BETA", testBeta},
		{"with spaces", "  GaMmA  ", testGamma},
		{"invalid input", "invalid", testAlpha},
		{"empty", "", testAlpha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	n := newTestNormalizer()

	got, err := n.Parse(" Beta ")
	if err != nil || got != testBeta {
		t.Fatalf("Parse(valid) = %v, %v", got, err)
	}

	got, err = n.Parse("")
	if err != nil || got != testAlpha {
		t.Fatalf("Parse(empty) = %v, %v; want default", got, err)
	}

	_, err = n.Parse("delta")
	if err == nil {
		t.Fatal("Parse(invalid) should return error")
	}
	if want := `invalid test mode "delta", valid options: [alpha beta gamma]`; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestKeysSorted(t *testing.T) {
	keys := newTestNormalizer().Keys()
	expected := []string{"alpha", "beta", "gamma"}
	if len(keys) != len(expected) {
		t.Fatalf("Keys() length = %d, want %d", len(keys), len(expected))
	}
	for i, key := range keys {
		if key != expected[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, key, expected[i])
		}
	}
}
