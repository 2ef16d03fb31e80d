package main

import "math"

// bmiBand is one category on the BMI scale. Key is the stable machine value;
// Label and Tip are display strings the mobile client renders verbatim.
type bmiBand struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Tip   string `json:"tip"`
}

// bmiBands lists the scale from lowest to highest lower bound. Each band is
// a closed-open interval [Lower, next.Lower); a BMI exactly on a threshold
// belongs to the higher band. The thresholds match the labeled scale markers
// in the client UI (18.5 / 24 / 27 / 30 / 35).
var bmiBands = []struct {
	Lower float64
	Band  bmiBand
}{
	{math.Inf(-1), bmiBand{"underweight", "過輕", "體重過輕，建議增加營養攝取並諮詢專業意見。"}},
	{18.5, bmiBand{"normal", "正常", "體重在健康範圍內，繼續保持均衡飲食與運動習慣。"}},
	{24, bmiBand{"overweight", "過重", "體重略高於標準，建議調整飲食並增加活動量。"}},
	{27, bmiBand{"moderately_obese", "輕度肥胖", "建議控制熱量攝取並規律運動，必要時尋求協助。"}},
	{30, bmiBand{"obese", "中度肥胖", "健康風險提高，建議積極進行體重管理。"}},
	{35, bmiBand{"severely_obese", "重度肥胖", "建議尋求醫療專業協助，制定完整的減重計劃。"}},
}

// computeBMI returns weight(kg) / height(m)^2 rounded to two decimal places.
// Total over its inputs: a zero height yields +Inf, which classifyBMI maps to
// the top band. Bounds-checking belongs to the caller.
func computeBMI(weightKG, heightCM float64) float64 {
	heightM := heightCM / 100
	bmi := weightKG / (heightM * heightM)
	return math.Round(bmi*100) / 100
}

// classifyBMI maps a BMI value to its band. Deterministic: scans from the
// top so the first band whose lower bound is <= bmi wins.
func classifyBMI(bmi float64) bmiBand {
	for i := len(bmiBands) - 1; i >= 0; i-- {
		if bmi >= bmiBands[i].Lower {
			return bmiBands[i].Band
		}
	}
	// Unreachable for real numbers (the first lower bound is -Inf), but NaN
	// compares false against everything — treat it as underweight.
	return bmiBands[0].Band
}
