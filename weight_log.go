package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// getWeightLog returns all weight records for the authenticated user plus the
// progress-to-goal block when a profile exists.
// GET /api/weight-log?order=asc|desc. Display lists use the default desc
// (newest first); the trend chart requests asc.
func (h *Handler) getWeightLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	order := c.DefaultQuery("order", "desc")
	if order != "asc" && order != "desc" {
		apiError(c, http.StatusBadRequest, "order must be asc or desc")
		return
	}

	sql := `SELECT * FROM weight_records WHERE user_id = @userID ORDER BY created_at DESC`
	if order == "asc" {
		sql = `SELECT * FROM weight_records WHERE user_id = @userID ORDER BY created_at ASC`
	}
	records, err := queryMany[weightRecord](h.db, c, sql, pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight records")
		return
	}
	// Ensure empty array (not null) in JSON
	if records == nil {
		records = []weightRecord{}
	}

	resp := weightLogResponse{Records: records}
	if profile, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID}); err == nil {
		p := computeProgress(profile.WeightKG, profile.TargetWeightKG, profile.WeeklyWeightLoss)
		resp.Progress = &p
	}

	c.JSON(http.StatusOK, resp)
}

// upsertWeightRecord creates or replaces the weight record for the given date.
// POST /api/weight-log. Body: { "date": "YYYY-MM-DD", "weight_kg": 68.2 }.
// At most one record exists per calendar date: posting the same date fully
// replaces that day's record wholesale: new id, new created_at, nothing
// merged from the old row. When the date is today, the profile weight and its five
// derived fields are recomputed in the same transaction.
// Responds with the stored record collection: 201 for a new date, 200 for a
// replacement.
func (h *Handler) upsertWeightRecord(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body upsertWeightRecordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		body.Date = h.today()
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.WeightKG <= 0 || body.WeightKG > 500 {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 500")
		return
	}

	records, err := queryMany[weightRecord](h.db, c,
		"SELECT * FROM weight_records WHERE user_id = @userID ORDER BY created_at DESC",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight records")
		return
	}

	date, _ := time.Parse("2006-01-02", body.Date)
	now := h.now()
	rec := weightRecord{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      DateOnly{date},
		WeightKG:  body.WeightKG,
		Note:      body.Note,
		CreatedAt: &now,
	}
	// recordWeight applies the one-record-per-date rule in memory; a same
	// length afterwards means an existing date was replaced, not added.
	updated := recordWeight(records, rec)
	replaced := len(updated) == len(records)

	tx, err := h.db.Begin(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start transaction")
		return
	}
	defer tx.Rollback(c)

	// The UNIQUE(user_id, date) constraint makes the DB apply the same rule.
	// On conflict every column takes the new row's value, id and created_at
	// included, so the ids the client sees always exist in storage.
	_, err = tx.Exec(c,
		`INSERT INTO weight_records (id, user_id, date, weight_kg, note, created_at)
		 VALUES (@id, @userID, @date, @weightKG, @note, @createdAt)
		 ON CONFLICT (user_id, date)
		 DO UPDATE SET id = EXCLUDED.id, weight_kg = EXCLUDED.weight_kg,
		               note = EXCLUDED.note, created_at = EXCLUDED.created_at`,
		pgx.NamedArgs{
			"id": rec.ID, "userID": userID, "date": body.Date,
			"weightKG": body.WeightKG, "note": body.Note, "createdAt": now,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to upsert weight record")
		return
	}

	// A record for today is also the current weight — cascade into the
	// profile's derived fields so they never go stale against the timeline.
	if body.Date == h.today() {
		if err := h.cascadeProfileWeight(c, tx, userID, body.WeightKG); err != nil {
			apiError(c, http.StatusInternalServerError, "failed to update profile weight")
			return
		}
	}

	// Respond with what the transaction actually stored, in list order.
	rows, err := tx.Query(c,
		"SELECT * FROM weight_records WHERE user_id = @userID ORDER BY created_at DESC",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight records")
		return
	}
	stored, err := pgx.CollectRows(rows, pgx.RowToStructByName[weightRecord])
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight records")
		return
	}

	if err := tx.Commit(c); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to commit weight record")
		return
	}

	status := http.StatusCreated
	if replaced {
		status = http.StatusOK
	}
	c.JSON(status, weightLogResponse{Records: stored})
}

// cascadeProfileWeight rederives and stores the profile's weight-dependent
// fields inside the caller's transaction. A missing profile is not an error:
// weight records can predate onboarding completion.
func (h *Handler) cascadeProfileWeight(c *gin.Context, tx pgx.Tx, userID int, weightKG float64) error {
	rows, err := tx.Query(c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return err
	}
	profile, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userProfile])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	in := inputsFromProfile(&profile)
	in.WeightKG = weightKG
	d := deriveProfile(in)

	_, err = tx.Exec(c,
		`UPDATE user_profiles SET
			weight_kg = @weightKG,
			tdee = @tdee, target_calories = @targetCalories,
			target_protein_g = @targetProteinG, target_fat_g = @targetFatG,
			target_carbs_g = @targetCarbsG,
			updated_at = now()
		 WHERE user_id = @userID`,
		pgx.NamedArgs{
			"userID": userID, "weightKG": weightKG,
			"tdee": d.TDEE, "targetCalories": d.TargetCalories,
			"targetProteinG": d.TargetProteinG, "targetFatG": d.TargetFatG,
			"targetCarbsG": d.TargetCarbsG,
		})
	return err
}

// deleteWeightRecordByID removes a weight record unless it is the sole
// remaining one — the timeline must keep at least one observation, so that
// deletion is rejected with 409. DELETE /api/weight-log/:id.
func (h *Handler) deleteWeightRecordByID(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	records, err := queryMany[weightRecord](h.db, c,
		"SELECT * FROM weight_records WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight records")
		return
	}

	remaining, ok := deleteWeightRecord(records, id)
	if !ok {
		apiError(c, http.StatusConflict, "cannot delete the last weight record")
		return
	}
	if len(remaining) == len(records) {
		apiError(c, http.StatusNotFound, "weight record not found")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM weight_records WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete weight record")
		return
	}
	if result.RowsAffected() == 0 {
		// Raced with another delete between the read and here.
		log.Printf("[deleteWeightRecordByID] record %s vanished before delete", id)
		apiError(c, http.StatusNotFound, "weight record not found")
		return
	}

	c.Status(http.StatusNoContent)
}
