package main

// profileInputs are the six raw attributes the derived metrics depend on.
// Everything else on the profile (name, target weight, weekly rate) passes
// through the derivation unchanged.
type profileInputs struct {
	Gender        string
	Age           int
	HeightCM      float64
	WeightKG      float64
	ActivityLevel string
	Goal          string
}

// derivedMetrics are the five computed profile fields. They are installed
// into the profile row atomically with whatever raw-input change triggered
// the recomputation.
type derivedMetrics struct {
	TDEE           int
	TargetCalories int
	TargetProteinG int
	TargetFatG     int
	TargetCarbsG   int
}

// deriveProfile runs the derivation pipeline: BMR → TDEE → target calories →
// macro split. Pure and idempotent — same inputs always produce the same
// output, and nothing is persisted here. Called on onboarding completion,
// profile edits, and weight-only updates (with the remaining inputs carried
// over from the existing profile).
func deriveProfile(in profileInputs) derivedMetrics {
	bmr := computeBMR(in.Gender, in.WeightKG, in.HeightCM, in.Age)
	tdee := computeTDEE(bmr, in.ActivityLevel)
	target := computeTargetCalories(tdee, in.Goal)
	protein, fat, carbs := computeMacros(target, in.Goal)

	return derivedMetrics{
		TDEE:           tdee,
		TargetCalories: target,
		TargetProteinG: protein,
		TargetFatG:     fat,
		TargetCarbsG:   carbs,
	}
}

// inputsFromProfile extracts the derivation inputs from an existing profile,
// so weight-only updates can swap the weight and carry everything else over.
func inputsFromProfile(p *userProfile) profileInputs {
	return profileInputs{
		Gender:        p.Gender,
		Age:           p.Age,
		HeightCM:      p.HeightCM,
		WeightKG:      p.WeightKG,
		ActivityLevel: p.ActivityLevel,
		Goal:          p.Goal,
	}
}

// populateBMI fills the computed-only BMI fields on the profile from its
// current height and weight.
func populateBMI(p *userProfile) {
	bmi := computeBMI(p.WeightKG, p.HeightCM)
	band := classifyBMI(bmi)
	p.BMI = &bmi
	p.BMIBandKey = &band.Key
	p.BMITip = &band.Tip
}
