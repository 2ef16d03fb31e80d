package main

import "math"

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used
// for input validation at the API boundary.
var activityMultipliers = map[string]float64{
	"sedentary":  1.2,
	"light":      1.375,
	"moderate":   1.55,
	"active":     1.725,
	"veryActive": 1.9,
}

// activityMultiplier returns the TDEE multiplier for a level. Unknown levels
// fall back to the sedentary multiplier rather than erroring, so the
// derivation pipeline stays total even if a bad value reaches it.
func activityMultiplier(level string) float64 {
	if mult, ok := activityMultipliers[level]; ok {
		return mult
	}
	return activityMultipliers["sedentary"]
}

// computeBMR computes basal metabolic rate via Mifflin-St Jeor:
// 10*weight + 6.25*height - 5*age, then +5 for male or -161 for female.
// Result is kcal/day, unrounded. No bounds-checking — callers validate.
func computeBMR(gender string, weightKG, heightCM float64, age int) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if gender == "male" {
		return base + 5
	}
	return base - 161
}

// computeTDEE scales BMR by the activity multiplier and rounds to a whole
// kcal/day figure.
func computeTDEE(bmr float64, activityLevel string) int {
	return int(math.Round(bmr * activityMultiplier(activityLevel)))
}

// computeTargetCalories applies the fixed goal offset: -500 kcal for loss,
// +300 for gain, TDEE as-is for maintenance or an unknown goal.
//
// These offsets approximate ~0.45 kg/week and are intentionally independent
// of the user's weekly_weight_loss_kg setting, which only drives the progress
// estimate in computeProgress. The two can disagree; that mirrors the product
// behavior and is not reconciled here.
func computeTargetCalories(tdee int, goal string) int {
	switch goal {
	case "lose":
		return tdee - 500
	case "gain":
		return tdee + 300
	default:
		return tdee
	}
}

// computeMacros splits target calories into protein/fat/carb gram targets.
// Lose and gain goals use a high-protein split (P40/F25/C35); maintenance and
// unknown goals use the balanced split (P20/F30/C50). Protein and carbs
// convert at 4 kcal/g, fat at 9 kcal/g.
func computeMacros(targetCalories int, goal string) (proteinG, fatG, carbsG int) {
	proteinRatio, fatRatio, carbsRatio := 0.2, 0.3, 0.5
	if goal == "lose" || goal == "gain" {
		proteinRatio, fatRatio, carbsRatio = 0.4, 0.25, 0.35
	}

	tc := float64(targetCalories)
	proteinG = int(math.Round(tc * proteinRatio / 4))
	fatG = int(math.Round(tc * fatRatio / 9))
	carbsG = int(math.Round(tc * carbsRatio / 4))
	return proteinG, fatG, carbsG
}
