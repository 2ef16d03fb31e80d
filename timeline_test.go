package main

import (
	"testing"
	"time"
)

// makeRecord builds a weightRecord for a YYYY-MM-DD date string.
func makeRecord(id, date string, weightKG float64) weightRecord {
	t, _ := time.Parse("2006-01-02", date)
	return weightRecord{ID: id, Date: DateOnly{t}, WeightKG: weightKG}
}

/* ─── recordWeight tests ─────────────────────────────────────────────── */

// TestRecordWeight_InsertsNewDate verifies a record for an unseen date is
// appended without touching existing records.
func TestRecordWeight_InsertsNewDate(t *testing.T) {
	records := []weightRecord{makeRecord("a", "2026-08-29", 70)}
	out := recordWeight(records, makeRecord("b", "2026-08-30", 69.5))

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "b" {
		t.Errorf("unexpected ids: %s, %s", out[0].ID, out[1].ID)
	}
}

// TestRecordWeight_ReplacesSameDate verifies the one-record-per-day rule:
// a second record for an existing date fully replaces the first, keeping
// the collection at one entry for that day.
func TestRecordWeight_ReplacesSameDate(t *testing.T) {
	records := []weightRecord{
		makeRecord("a", "2026-08-29", 70),
		makeRecord("b", "2026-08-30", 69.5),
	}
	out := recordWeight(records, makeRecord("c", "2026-08-30", 68))

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2 (replacement, not append)", len(out))
	}
	for _, r := range out {
		if r.Date.String() == "2026-08-30" {
			if r.ID != "c" || r.WeightKG != 68 {
				t.Errorf("2026-08-30 record = %s/%v, want full replacement c/68", r.ID, r.WeightKG)
			}
		}
	}
}

// TestRecordWeight_ReplacementCarriesNewIdentity verifies a replacement is
// the new record wholesale: its id, created_at, and note win, and the old
// record's id is gone from the collection. A client deleting by the id it
// was handed back must always hit a stored record.
func TestRecordWeight_ReplacementCarriesNewIdentity(t *testing.T) {
	oldTime := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	newTime := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)

	note := "morning"
	old := makeRecord("a", "2026-08-30", 70)
	old.Note = &note
	old.CreatedAt = &oldTime

	next := makeRecord("b", "2026-08-30", 68)
	next.CreatedAt = &newTime

	out := recordWeight([]weightRecord{old}, next)
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	got := out[0]
	if got.ID != "b" {
		t.Errorf("id = %s, want the replacement's id b", got.ID)
	}
	if got.CreatedAt == nil || !got.CreatedAt.Equal(newTime) {
		t.Errorf("created_at = %v, want the replacement's %v", got.CreatedAt, newTime)
	}
	if got.Note != nil {
		t.Errorf("note = %q, want nil; old fields must not leak through", *got.Note)
	}
	for _, r := range out {
		if r.ID == "a" {
			t.Error("replaced record's id still present in the collection")
		}
	}
}

// TestRecordWeight_Idempotent verifies re-applying the same record yields
// one entry for that date, not two.
func TestRecordWeight_Idempotent(t *testing.T) {
	rec := makeRecord("a", "2026-08-30", 68)
	once := recordWeight(nil, rec)
	twice := recordWeight(once, rec)

	if len(twice) != 1 {
		t.Fatalf("got %d records after double insert, want 1", len(twice))
	}
	if twice[0].ID != "a" || twice[0].WeightKG != 68 {
		t.Errorf("record = %+v, want the original", twice[0])
	}
}

// TestRecordWeight_DoesNotMutateInput verifies the caller's slice survives
// unchanged — handlers hand the function a snapshot, not ownership.
func TestRecordWeight_DoesNotMutateInput(t *testing.T) {
	records := []weightRecord{makeRecord("a", "2026-08-30", 70)}
	recordWeight(records, makeRecord("b", "2026-08-30", 68))

	if records[0].ID != "a" || records[0].WeightKG != 70 {
		t.Errorf("input slice was mutated: %+v", records[0])
	}
}

/* ─── deleteWeightRecord tests ───────────────────────────────────────── */

// TestDeleteWeightRecord_RejectsLastRecord verifies the sole remaining
// record cannot be deleted.
func TestDeleteWeightRecord_RejectsLastRecord(t *testing.T) {
	records := []weightRecord{makeRecord("a", "2026-08-30", 70)}
	out, ok := deleteWeightRecord(records, "a")

	if ok {
		t.Error("expected ok=false when deleting the last record")
	}
	if len(out) != 1 {
		t.Errorf("collection changed on rejected delete: %d records", len(out))
	}
}

// TestDeleteWeightRecord_RemovesMatching verifies an N>1 delete drops
// exactly the matching id.
func TestDeleteWeightRecord_RemovesMatching(t *testing.T) {
	records := []weightRecord{
		makeRecord("a", "2026-08-28", 71),
		makeRecord("b", "2026-08-29", 70),
		makeRecord("c", "2026-08-30", 69),
	}
	out, ok := deleteWeightRecord(records, "b")

	if !ok {
		t.Fatal("expected ok=true")
	}
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	for _, r := range out {
		if r.ID == "b" {
			t.Error("deleted id still present")
		}
	}
}

// TestDeleteWeightRecord_UnknownID verifies an unknown id on a larger
// collection is a no-op with ok=true; callers detect it by length.
func TestDeleteWeightRecord_UnknownID(t *testing.T) {
	records := []weightRecord{
		makeRecord("a", "2026-08-29", 70),
		makeRecord("b", "2026-08-30", 69),
	}
	out, ok := deleteWeightRecord(records, "zzz")

	if !ok {
		t.Error("expected ok=true for unknown id")
	}
	if len(out) != len(records) {
		t.Errorf("got %d records, want %d", len(out), len(records))
	}
}

/* ─── computeProgress tests ──────────────────────────────────────────── */

// TestComputeProgress covers the distance/estimate/flag combinations,
// including the zero-rate guard.
func TestComputeProgress(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		target   float64
		rate     float64
		want     weightProgress
	}{
		{
			"above target, 0.5kg/week",
			68, 55, 0.5,
			weightProgress{RemainingKG: 13, EstimatedWeeks: 26},
		},
		{
			"partial-week distance rounds the estimate up",
			60.25, 55, 0.5,
			weightProgress{RemainingKG: 5.25, EstimatedWeeks: 11},
		},
		{
			"goal met exactly",
			55, 55, 0.5,
			weightProgress{RemainingKG: 0, EstimatedWeeks: 0, GoalMet: true},
		},
		{
			"overshot below target",
			54, 55, 0.5,
			weightProgress{RemainingKG: -1, EstimatedWeeks: 2, Overshot: true},
		},
		{
			"zero rate yields no estimate, no error",
			68, 55, 0,
			weightProgress{RemainingKG: 13},
		},
		{
			"negative rate treated as no rate",
			68, 55, -1,
			weightProgress{RemainingKG: 13},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := computeProgress(tc.current, tc.target, tc.rate)
			if got != tc.want {
				t.Errorf("computeProgress(%v, %v, %v) = %+v, want %+v",
					tc.current, tc.target, tc.rate, got, tc.want)
			}
		})
	}
}
