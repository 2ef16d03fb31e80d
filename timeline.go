package main

import "math"

// weightProgress summarizes distance to the target weight.
// RemainingKG keeps its sign: positive means still above target.
type weightProgress struct {
	RemainingKG    float64 `json:"remaining_kg"`
	EstimatedWeeks int     `json:"estimated_weeks"`
	GoalMet        bool    `json:"goal_met"`
	Overshot       bool    `json:"overshot"`
}

// recordWeight returns the collection with rec applied under the
// one-record-per-calendar-date rule: an existing record for the same date is
// dropped and fully replaced (not merged), otherwise rec is appended.
// Idempotent — applying the same record twice yields one entry for that day.
// The input slice is not modified.
func recordWeight(records []weightRecord, rec weightRecord) []weightRecord {
	out := make([]weightRecord, 0, len(records)+1)
	for _, r := range records {
		if r.Date.String() == rec.Date.String() {
			continue
		}
		out = append(out, r)
	}
	return append(out, rec)
}

// deleteWeightRecord removes the record with the given id. Deleting the sole
// remaining record is rejected (ok=false, collection returned unchanged) —
// at least one observation must survive once onboarding has completed.
// An unknown id on a larger collection is not an error; the caller detects
// no-op removals by comparing lengths.
func deleteWeightRecord(records []weightRecord, id string) ([]weightRecord, bool) {
	if len(records) == 1 && records[0].ID == id {
		return records, false
	}

	out := make([]weightRecord, 0, len(records))
	for _, r := range records {
		if r.ID == id {
			continue
		}
		out = append(out, r)
	}
	return out, true
}

// computeProgress reports how far currentKG is from targetKG and, when a
// positive weekly rate is set, how many weeks closing that distance takes at
// that rate. A zero or negative rate is valid input and simply yields no
// estimate, never a division by zero.
//
// The sign convention follows the loss direction: GoalMet means exactly on
// target, Overshot means below it. A gain goal reads Overshot as "lighter
// than target"; the mobile client interprets the flags per goal.
func computeProgress(currentKG, targetKG, weeklyRateKG float64) weightProgress {
	remaining := currentKG - targetKG

	p := weightProgress{
		RemainingKG: remaining,
		GoalMet:     remaining == 0,
		Overshot:    remaining < 0,
	}
	if weeklyRateKG > 0 {
		p.EstimatedWeeks = int(math.Ceil(math.Abs(remaining) / weeklyRateKG))
	}
	return p
}
