package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// validGenders and validGoals guard the profile enums at the API boundary.
// The derivation core itself tolerates unknown values (falling back to its
// documented defaults), but persisting one would silently change the user's
// targets, so reject it here with an actionable 400 instead.
var validGenders = map[string]bool{"male": true, "female": true}
var validGoals = map[string]bool{"lose": true, "maintain": true, "gain": true}

// validateProfileInputs checks an onboarding/edit payload. Returns an empty
// string when the payload is acceptable, else the 400 message.
func validateProfileInputs(body *onboardingRequest) string {
	if body.Name == "" {
		return "name is required"
	}
	if !validGenders[body.Gender] {
		return "gender must be one of: male, female"
	}
	if body.Age <= 0 || body.Age > 130 {
		return "age must be between 1 and 130"
	}
	if body.HeightCM <= 0 || body.HeightCM > 300 {
		return "height_cm must be between 0 and 300"
	}
	if body.WeightKG <= 0 || body.WeightKG > 500 {
		return "weight_kg must be between 0 and 500"
	}
	if _, ok := activityMultipliers[body.ActivityLevel]; !ok {
		return "activity_level must be one of: sedentary, light, moderate, active, veryActive"
	}
	if !validGoals[body.Goal] {
		return "goal must be one of: lose, maintain, gain"
	}
	if body.TargetWeightKG <= 0 || body.TargetWeightKG > 500 {
		return "target_weight_kg must be between 0 and 500"
	}
	if body.WeeklyWeightLoss < 0 {
		return "weekly_weight_loss_kg must not be negative"
	}
	return ""
}

// completeOnboarding creates the user's profile from validated wizard inputs.
// POST /api/onboarding. Derives the five target fields server-side and
// synthesizes the initial weight record for today in the same transaction,
// so the timeline is never empty once a profile exists. 409 if the user
// already onboarded.
func (h *Handler) completeOnboarding(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body onboardingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProfileInputs(&body); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	var existing int
	err := h.db.QueryRow(c,
		"SELECT COUNT(*) FROM user_profiles WHERE user_id = $1", userID).Scan(&existing)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to check existing profile")
		return
	}
	if existing > 0 {
		apiError(c, http.StatusConflict, "profile already exists")
		return
	}

	d := deriveProfile(profileInputs{
		Gender:        body.Gender,
		Age:           body.Age,
		HeightCM:      body.HeightCM,
		WeightKG:      body.WeightKG,
		ActivityLevel: body.ActivityLevel,
		Goal:          body.Goal,
	})

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start transaction")
		return
	}
	defer tx.Rollback(c)

	rows, err := tx.Query(c,
		`INSERT INTO user_profiles
			(user_id, name, gender, age, height_cm, weight_kg, activity_level, goal,
			 target_weight_kg, weekly_weight_loss_kg,
			 tdee, target_calories, target_protein_g, target_fat_g, target_carbs_g)
		 VALUES
			(@userID, @name, @gender, @age, @heightCM, @weightKG, @activityLevel, @goal,
			 @targetWeightKG, @weeklyWeightLoss,
			 @tdee, @targetCalories, @targetProteinG, @targetFatG, @targetCarbsG)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "name": body.Name, "gender": body.Gender,
			"age": body.Age, "heightCM": body.HeightCM, "weightKG": body.WeightKG,
			"activityLevel": body.ActivityLevel, "goal": body.Goal,
			"targetWeightKG": body.TargetWeightKG, "weeklyWeightLoss": body.WeeklyWeightLoss,
			"tdee": d.TDEE, "targetCalories": d.TargetCalories,
			"targetProteinG": d.TargetProteinG, "targetFatG": d.TargetFatG,
			"targetCarbsG": d.TargetCarbsG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create profile")
		return
	}
	profile, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userProfile])
	if err != nil {
		log.Printf("[completeOnboarding] scan error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to create profile")
		return
	}

	// Initial observation: the onboarding weight becomes today's record.
	_, err = tx.Exec(c,
		`INSERT INTO weight_records (id, user_id, date, weight_kg)
		 VALUES (@id, @userID, @date, @weightKG)
		 ON CONFLICT (user_id, date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg`,
		pgx.NamedArgs{
			"id": uuid.New().String(), "userID": userID,
			"date": h.today(), "weightKG": body.WeightKG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create initial weight record")
		return
	}

	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to commit onboarding")
		return
	}

	populateBMI(&profile)
	c.JSON(http.StatusCreated, profile)
}

// getProfile returns the user's profile with derived fields and the current
// BMI value/band. GET /api/profile. 404 until onboarding completes.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	profile, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	populateBMI(&profile)
	c.JSON(http.StatusOK, profile)
}

// updateProfile replaces the raw profile inputs and rederives all five
// target fields in the same UPDATE. PUT /api/profile. The request carries the
// full input set — partial edits are a client concern (it always has the
// current profile loaded).
func (h *Handler) updateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body onboardingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProfileInputs(&body); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	d := deriveProfile(profileInputs{
		Gender:        body.Gender,
		Age:           body.Age,
		HeightCM:      body.HeightCM,
		WeightKG:      body.WeightKG,
		ActivityLevel: body.ActivityLevel,
		Goal:          body.Goal,
	})

	profile, err := queryOne[userProfile](h.db, c,
		`UPDATE user_profiles SET
			name = @name, gender = @gender, age = @age,
			height_cm = @heightCM, weight_kg = @weightKG,
			activity_level = @activityLevel, goal = @goal,
			target_weight_kg = @targetWeightKG, weekly_weight_loss_kg = @weeklyWeightLoss,
			tdee = @tdee, target_calories = @targetCalories,
			target_protein_g = @targetProteinG, target_fat_g = @targetFatG,
			target_carbs_g = @targetCarbsG,
			updated_at = now()
		 WHERE user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "name": body.Name, "gender": body.Gender,
			"age": body.Age, "heightCM": body.HeightCM, "weightKG": body.WeightKG,
			"activityLevel": body.ActivityLevel, "goal": body.Goal,
			"targetWeightKG": body.TargetWeightKG, "weeklyWeightLoss": body.WeeklyWeightLoss,
			"tdee": d.TDEE, "targetCalories": d.TargetCalories,
			"targetProteinG": d.TargetProteinG, "targetFatG": d.TargetFatG,
			"targetCarbsG": d.TargetCarbsG,
		})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "profile not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update profile")
		}
		return
	}

	populateBMI(&profile)
	c.JSON(http.StatusOK, profile)
}

// updateProfileWeight handles the weight-only update from the tracking view.
// POST /api/profile/weight. Rederives the profile from the new weight (all
// other inputs carried over) and upserts today's weight record in one
// transaction — readers never observe the new weight with stale targets, or
// a recomputed profile without its matching record.
func (h *Handler) updateProfileWeight(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body updateWeightRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.WeightKG <= 0 || body.WeightKG > 500 {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 500")
		return
	}

	profile, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	in := inputsFromProfile(&profile)
	in.WeightKG = body.WeightKG
	d := deriveProfile(in)

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start transaction")
		return
	}
	defer tx.Rollback(c)

	rows, err := tx.Query(c,
		`UPDATE user_profiles SET
			weight_kg = @weightKG,
			tdee = @tdee, target_calories = @targetCalories,
			target_protein_g = @targetProteinG, target_fat_g = @targetFatG,
			target_carbs_g = @targetCarbsG,
			updated_at = now()
		 WHERE user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "weightKG": body.WeightKG,
			"tdee": d.TDEE, "targetCalories": d.TargetCalories,
			"targetProteinG": d.TargetProteinG, "targetFatG": d.TargetFatG,
			"targetCarbsG": d.TargetCarbsG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userProfile])
	if err != nil {
		log.Printf("[updateProfileWeight] scan error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	recRows, err := tx.Query(c,
		`INSERT INTO weight_records (id, user_id, date, weight_kg, note)
		 VALUES (@id, @userID, @date, @weightKG, @note)
		 ON CONFLICT (user_id, date)
		 DO UPDATE SET weight_kg = EXCLUDED.weight_kg, note = EXCLUDED.note
		 RETURNING *`,
		pgx.NamedArgs{
			"id": uuid.New().String(), "userID": userID,
			"date": h.today(), "weightKG": body.WeightKG, "note": body.Note,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to record weight")
		return
	}
	record, err := pgx.CollectOneRow(recRows, pgx.RowToStructByName[weightRecord])
	if err != nil {
		log.Printf("[updateProfileWeight] record scan error: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to record weight")
		return
	}

	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to commit weight update")
		return
	}

	populateBMI(&updated)
	progress := computeProgress(updated.WeightKG, updated.TargetWeightKG, updated.WeeklyWeightLoss)
	c.JSON(http.StatusOK, gin.H{
		"profile":  updated,
		"record":   record,
		"progress": progress,
	})
}

// resetAllData wipes the user's profile, food logs and weight records.
// DELETE /api/reset. The full-reset path of the client's settings screen.
func (h *Handler) resetAllData(c *gin.Context) {
	userID := c.GetInt("user_id")

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start transaction")
		return
	}
	defer tx.Rollback(c)

	for _, table := range []string{"food_logs", "weight_records", "user_profiles"} {
		if _, err := tx.Exec(c,
			"DELETE FROM "+table+" WHERE user_id = $1", userID); err != nil {
			apiError(c, http.StatusInternalServerError, "failed to reset data")
			return
		}
	}

	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to commit reset")
		return
	}

	c.Status(http.StatusNoContent)
}
