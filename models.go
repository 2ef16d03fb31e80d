package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// String returns the calendar-day form used for date equality checks —
// two records count as the same day when these strings match.
func (d DateOnly) String() string {
	return d.Time.Format("2006-01-02")
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// userProfile maps to user_profiles. One row per user, created at onboarding.
// The five derived fields (tdee through target_carbs_g) are always recomputed
// from the raw inputs in the same statement that mutates them — a stale
// derived value in the table is a bug, not a caching strategy.
type userProfile struct {
	UserID           int     `json:"user_id"               db:"user_id"`
	Name             string  `json:"name"                  db:"name"`
	Gender           string  `json:"gender"                db:"gender"`
	Age              int     `json:"age"                   db:"age"`
	HeightCM         float64 `json:"height_cm"             db:"height_cm"`
	WeightKG         float64 `json:"weight_kg"             db:"weight_kg"`
	ActivityLevel    string  `json:"activity_level"        db:"activity_level"`
	Goal             string  `json:"goal"                  db:"goal"`
	TargetWeightKG   float64 `json:"target_weight_kg"      db:"target_weight_kg"`
	WeeklyWeightLoss float64 `json:"weekly_weight_loss_kg" db:"weekly_weight_loss_kg"`

	// Derived fields — pure function of {gender, weight, height, age,
	// activity level, goal} via deriveProfile.
	TDEE           int `json:"tdee"             db:"tdee"`
	TargetCalories int `json:"target_calories"  db:"target_calories"`
	TargetProteinG int `json:"target_protein_g" db:"target_protein_g"`
	TargetFatG     int `json:"target_fat_g"     db:"target_fat_g"`
	TargetCarbsG   int `json:"target_carbs_g"   db:"target_carbs_g"`

	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`

	// Computed on read from height/weight; not stored.
	// db:"-" tells RowToStructByName to skip these during scanning.
	BMI        *float64 `json:"bmi,omitempty"          db:"-"`
	BMIBandKey *string  `json:"bmi_category,omitempty" db:"-"`
	BMITip     *string  `json:"bmi_tip,omitempty"      db:"-"`
}

// foodLog maps to food_logs. IDs are opaque UUID strings; created_at is the
// ordering timestamp within a day.
type foodLog struct {
	ID        string     `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	MealType  string     `json:"meal_type" db:"meal_type"`
	Name      string     `json:"name" db:"name"`
	PhotoURL  *string    `json:"photo_url" db:"photo_url"`
	Calories  int        `json:"calories" db:"calories"`
	ProteinG  float64    `json:"protein_g" db:"protein_g"`
	FatG      float64    `json:"fat_g" db:"fat_g"`
	CarbsG    float64    `json:"carbs_g" db:"carbs_g"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// weightRecord maps to weight_records. UNIQUE(user_id, date) backs the
// one-record-per-day rule; recordWeight applies the same rule in memory.
type weightRecord struct {
	ID        string     `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	WeightKG  float64    `json:"weight_kg" db:"weight_kg"`
	Note      *string    `json:"note" db:"note"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

/* ─── Request / response types ───────────────────────────────────────── */

// onboardingRequest is the request body for POST /api/onboarding. These are
// the raw profile inputs collected by the onboarding wizard; the five derived
// fields are computed server-side and never accepted from the client.
type onboardingRequest struct {
	Name             string  `json:"name"`
	Gender           string  `json:"gender"`
	Age              int     `json:"age"`
	HeightCM         float64 `json:"height_cm"`
	WeightKG         float64 `json:"weight_kg"`
	ActivityLevel    string  `json:"activity_level"`
	Goal             string  `json:"goal"`
	TargetWeightKG   float64 `json:"target_weight_kg"`
	WeeklyWeightLoss float64 `json:"weekly_weight_loss_kg"`
}

// updateWeightRequest is the request body for POST /api/profile/weight.
type updateWeightRequest struct {
	WeightKG float64 `json:"weight_kg"`
	Note     *string `json:"note"`
}

// createFoodLogRequest is the request body for POST /api/food-log.
type createFoodLogRequest struct {
	Date     string  `json:"date"`
	MealType string  `json:"meal_type"`
	Name     string  `json:"name"`
	PhotoURL *string `json:"photo_url"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

// upsertWeightRecordRequest is the request body for POST /api/weight-log.
type upsertWeightRecordRequest struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight_kg"`
	Note     *string `json:"note"`
}

// weightLogResponse is the response for GET /api/weight-log: the record
// collection plus the progress-to-goal block when a profile exists.
type weightLogResponse struct {
	Records  []weightRecord  `json:"records"`
	Progress *weightProgress `json:"progress,omitempty"`
}

// dailyFoodSummary is the response shape for GET /api/food-log.
// Target fields are zero and has_targets=false when no profile exists yet.
type dailyFoodSummary struct {
	Date           string    `json:"date"`
	Items          []foodLog `json:"items"`
	Calories       int       `json:"calories"`
	ProteinG       float64   `json:"protein_g"`
	FatG           float64   `json:"fat_g"`
	CarbsG         float64   `json:"carbs_g"`
	TargetCalories int       `json:"target_calories"`
	CaloriesLeft   int       `json:"calories_left"`
	HasTargets     bool      `json:"has_targets"`
}

// weekDaySummary is one day's entry in the GET /api/food-log/week-summary
// response. Days with no logged items have HasData=false and zero totals.
type weekDaySummary struct {
	Date           DateOnly `json:"date"`
	Calories       int      `json:"calories"`
	ProteinG       float64  `json:"protein_g"`
	FatG           float64  `json:"fat_g"`
	CarbsG         float64  `json:"carbs_g"`
	TargetCalories int      `json:"target_calories"`
	CaloriesLeft   int      `json:"calories_left"`
	HasData        bool     `json:"has_data"`
}

// weekDayDBRow is the shape of each row returned by the week-summary GROUP BY
// query. Used only for scanning; the final response uses weekDaySummary.
type weekDayDBRow struct {
	Date     DateOnly `db:"date"`
	Calories int      `db:"calories"`
	ProteinG float64  `db:"protein_g"`
	FatG     float64  `db:"fat_g"`
	CarbsG   float64  `db:"carbs_g"`
}
