package main

import (
	"math"
	"testing"
)

// TestComputeBMI_ReferenceFixture verifies the two-decimal rounding on the
// reference body: 60kg at 165cm -> 60 / 1.65² = 22.0385... -> 22.04.
func TestComputeBMI_ReferenceFixture(t *testing.T) {
	if got := computeBMI(60, 165); got != 22.04 {
		t.Errorf("computeBMI(60, 165) = %v, want 22.04", got)
	}
}

// TestComputeBMI_Deterministic verifies the value is stable at its fixed
// precision: recomputing from identical inputs never drifts.
func TestComputeBMI_Deterministic(t *testing.T) {
	first := computeBMI(72.5, 178)
	second := computeBMI(72.5, 178)
	if first != second {
		t.Errorf("computeBMI not deterministic: %v vs %v", first, second)
	}
}

// TestClassifyBMI_Bands walks representative values through every band plus
// each boundary. Boundary values belong to the higher band (lower bound
// inclusive).
func TestClassifyBMI_Bands(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{12, "underweight"},
		{18.49, "underweight"},
		{18.5, "normal"}, // boundary -> higher band
		{22.04, "normal"},
		{23.99, "normal"},
		{24, "overweight"},
		{26.5, "overweight"},
		{27, "moderately_obese"},
		{29.99, "moderately_obese"},
		{30, "obese"},
		{34.9, "obese"},
		{35, "severely_obese"},
		{52, "severely_obese"},
	}

	for _, tc := range cases {
		if got := classifyBMI(tc.bmi).Key; got != tc.want {
			t.Errorf("classifyBMI(%v) = %q, want %q", tc.bmi, got, tc.want)
		}
	}
}

// TestClassifyBMI_BandsCarryText verifies every band exposes a label and an
// advisory tip — the client renders both verbatim.
func TestClassifyBMI_BandsCarryText(t *testing.T) {
	for _, entry := range bmiBands {
		if entry.Band.Label == "" || entry.Band.Tip == "" {
			t.Errorf("band %q is missing label or tip text", entry.Band.Key)
		}
	}
}

// TestComputeBMI_ZeroHeightDoesNotPanic verifies totality on degenerate
// input: zero height divides to +Inf, which classifies into the top band
// rather than panicking.
func TestComputeBMI_ZeroHeightDoesNotPanic(t *testing.T) {
	bmi := computeBMI(60, 0)
	if !math.IsInf(bmi, 1) {
		t.Errorf("computeBMI(60, 0) = %v, want +Inf", bmi)
	}
	if got := classifyBMI(bmi).Key; got != "severely_obese" {
		t.Errorf("classifyBMI(+Inf) = %q, want severely_obese", got)
	}
}
