package main

import "testing"

// referenceInputs is the worked example used throughout the derivation
// tests: female, 60kg, 165cm, 30y, light activity, weight-loss goal.
// BMR 1320.25 -> TDEE 1815 -> target 1315 -> P132/F37/C115.
func referenceInputs() profileInputs {
	return profileInputs{
		Gender:        "female",
		Age:           30,
		HeightCM:      165,
		WeightKG:      60,
		ActivityLevel: "light",
		Goal:          "lose",
	}
}

// TestDeriveProfile_EndToEnd verifies the full BMR -> TDEE -> target ->
// macros pipeline on the reference profile.
func TestDeriveProfile_EndToEnd(t *testing.T) {
	d := deriveProfile(referenceInputs())

	if d.TDEE != 1815 {
		t.Errorf("TDEE = %d, want 1815", d.TDEE)
	}
	if d.TargetCalories != 1315 {
		t.Errorf("TargetCalories = %d, want 1315", d.TargetCalories)
	}
	if d.TargetProteinG != 132 || d.TargetFatG != 37 || d.TargetCarbsG != 115 {
		t.Errorf("macros = P%d/F%d/C%d, want P132/F37/C115",
			d.TargetProteinG, d.TargetFatG, d.TargetCarbsG)
	}
}

// TestDeriveProfile_Idempotent verifies that identical inputs produce
// identical outputs, bit for bit.
func TestDeriveProfile_Idempotent(t *testing.T) {
	first := deriveProfile(referenceInputs())
	second := deriveProfile(referenceInputs())
	if first != second {
		t.Errorf("deriveProfile is not idempotent: %+v vs %+v", first, second)
	}
}

// TestDeriveProfile_WeightChangeRecomputesAllFields verifies the weight-only
// update contract: swapping the weight and carrying every other input over
// must move all five derived fields consistently (a loss goal keeps the
// -500 offset; the macro split keeps reconstructing the new target).
func TestDeriveProfile_WeightChangeRecomputesAllFields(t *testing.T) {
	in := referenceInputs()
	before := deriveProfile(in)

	in.WeightKG = 58
	after := deriveProfile(in)

	if after.TDEE >= before.TDEE {
		t.Errorf("TDEE should drop with weight: %d -> %d", before.TDEE, after.TDEE)
	}
	if after.TargetCalories != after.TDEE-500 {
		t.Errorf("TargetCalories = %d, want TDEE-500 = %d", after.TargetCalories, after.TDEE-500)
	}
	if after.TargetProteinG >= before.TargetProteinG {
		t.Errorf("protein target should drop with the calorie budget: %d -> %d",
			before.TargetProteinG, after.TargetProteinG)
	}
}

// TestDeriveProfile_UnknownActivityUsesSedentaryFallback verifies that an
// unmapped level flows through the pipeline as the sedentary multiplier
// instead of failing.
func TestDeriveProfile_UnknownActivityUsesSedentaryFallback(t *testing.T) {
	in := referenceInputs()
	in.ActivityLevel = "mystery"
	got := deriveProfile(in)

	in.ActivityLevel = "sedentary"
	want := deriveProfile(in)

	if got != want {
		t.Errorf("unknown activity level derived %+v, want sedentary-equivalent %+v", got, want)
	}
}

// TestInputsFromProfile_RoundTrip verifies the carry-over extraction used by
// weight-only updates.
func TestInputsFromProfile_RoundTrip(t *testing.T) {
	p := userProfile{
		Gender: "male", Age: 41, HeightCM: 182, WeightKG: 88.5,
		ActivityLevel: "moderate", Goal: "maintain",
	}
	in := inputsFromProfile(&p)
	want := profileInputs{
		Gender: "male", Age: 41, HeightCM: 182, WeightKG: 88.5,
		ActivityLevel: "moderate", Goal: "maintain",
	}
	if in != want {
		t.Errorf("inputsFromProfile = %+v, want %+v", in, want)
	}
}

// TestPopulateBMI verifies the computed-only fields are filled from the
// profile's raw height and weight.
func TestPopulateBMI(t *testing.T) {
	p := userProfile{WeightKG: 60, HeightCM: 165}
	populateBMI(&p)

	if p.BMI == nil || *p.BMI != 22.04 {
		t.Fatalf("BMI = %v, want 22.04", p.BMI)
	}
	if p.BMIBandKey == nil || *p.BMIBandKey != "normal" {
		t.Errorf("BMIBandKey = %v, want normal", p.BMIBandKey)
	}
	if p.BMITip == nil || *p.BMITip == "" {
		t.Error("BMITip should carry the band's advisory text")
	}
}
