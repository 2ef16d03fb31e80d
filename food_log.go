package main

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// validMealTypes is the set of allowed values for the food_logs meal_type
// enum. Reject unknown values with 400 rather than letting the DB return a
// cryptic 500.
var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

// defaultFoodName replaces an empty name on save, matching the entry form's
// placeholder behavior.
const defaultFoodName = "未知名稱"

// clampNonNegative coerces negative or non-finite numeric input to 0.
// Nutrition values are never negative; a nonsensical number degrades to
// "nothing logged" instead of corrupting totals.
func clampNonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// getDailyFoodSummary returns food log entries and computed totals for a date.
// GET /api/food-log?date=YYYY-MM-DD (defaults to today in the app timezone).
// Target fields come from the profile when one exists.
func (h *Handler) getDailyFoodSummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", h.today())

	// Validate date format before querying — an invalid value silently returns no rows.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := queryMany[foodLog](h.db, c,
		`SELECT * FROM food_logs
		 WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch food logs")
		return
	}
	// Ensure items is an empty array (not null) in JSON
	if items == nil {
		items = []foodLog{}
	}

	summary := dailyFoodSummary{Date: date, Items: items}
	for _, item := range items {
		summary.Calories += item.Calories
		summary.ProteinG += item.ProteinG
		summary.FatG += item.FatG
		summary.CarbsG += item.CarbsG
	}

	// Targets are optional: food logging works before onboarding completes.
	profile, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err == nil {
		summary.TargetCalories = profile.TargetCalories
		summary.CaloriesLeft = profile.TargetCalories - summary.Calories
		summary.HasTargets = true
	}

	c.JSON(http.StatusOK, summary)
}

// getFoodWeekSummary returns per-day totals for the Mon-Sun week containing
// week_start. Days with no logged items are included with has_data=false.
// GET /api/food-log/week-summary?week_start=YYYY-MM-DD (defaults to the
// current week). Any date in the week is accepted; it is normalized to its
// Monday.
func (h *Handler) getFoodWeekSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	start := c.DefaultQuery("week_start", h.today())
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid week_start, expected YYYY-MM-DD")
		return
	}
	start = weekStart(start)
	days := weekDays(start)

	targetCalories := 0
	if profile, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID}); err == nil {
		targetCalories = profile.TargetCalories
	}

	rows, err := queryMany[weekDayDBRow](h.db, c,
		`SELECT
			date,
			SUM(calories)            AS calories,
			COALESCE(SUM(protein_g), 0) AS protein_g,
			COALESCE(SUM(fat_g),     0) AS fat_g,
			COALESCE(SUM(carbs_g),   0) AS carbs_g
		 FROM food_logs
		 WHERE user_id = @userID AND date >= @weekStart AND date <= @weekEnd
		 GROUP BY date`,
		pgx.NamedArgs{"userID": userID, "weekStart": days[0], "weekEnd": days[6]})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch week data")
		return
	}

	// Index DB rows by date string for O(1) merge.
	rowByDate := make(map[string]weekDayDBRow, len(rows))
	for _, r := range rows {
		rowByDate[r.Date.String()] = r
	}

	// Build a full 7-day response, filling zeros for days with no data.
	result := make([]weekDaySummary, 7)
	for i, dateStr := range days {
		d, _ := time.Parse("2006-01-02", dateStr)
		day := weekDaySummary{
			Date:           DateOnly{d},
			TargetCalories: targetCalories,
		}
		if row, ok := rowByDate[dateStr]; ok {
			day.HasData = true
			day.Calories = row.Calories
			day.ProteinG = row.ProteinG
			day.FatG = row.FatG
			day.CarbsG = row.CarbsG
		}
		day.CaloriesLeft = targetCalories - day.Calories
		result[i] = day
	}

	c.JSON(http.StatusOK, result)
}

// createFoodLog inserts a new food log entry.
// POST /api/food-log. Defaults date to today; rejects future dates — meals
// cannot be logged ahead of the current Taipei calendar day. Empty names
// fall back to the placeholder; negative nutrition numbers coerce to 0.
func (h *Handler) createFoodLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createFoodLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.MealType == "" {
		apiError(c, http.StatusBadRequest, "meal_type is required")
		return
	}
	if !validMealTypes[body.MealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}
	if body.Date == "" {
		body.Date = h.today()
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if isFutureDate(body.Date, h.today()) {
		apiError(c, http.StatusBadRequest, "date must not be in the future")
		return
	}
	if body.Name == "" {
		body.Name = defaultFoodName
	}

	item, err := queryOne[foodLog](h.db, c,
		`INSERT INTO food_logs (id, user_id, date, meal_type, name, photo_url, calories, protein_g, fat_g, carbs_g)
		 VALUES (@id, @userID, @date, @mealType, @name, @photoURL, @calories, @proteinG, @fatG, @carbsG)
		 RETURNING *`,
		pgx.NamedArgs{
			"id": uuid.New().String(), "userID": userID, "date": body.Date,
			"mealType": body.MealType, "name": body.Name, "photoURL": body.PhotoURL,
			"calories": int(math.Round(clampNonNegative(body.Calories))),
			"proteinG": clampNonNegative(body.ProteinG),
			"fatG":     clampNonNegative(body.FatG),
			"carbsG":   clampNonNegative(body.CarbsG),
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create food log")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// updateFoodLog updates an existing food log entry in place by id.
// PUT /api/food-log/:id. Uses COALESCE so omitted fields keep their current
// value. The future-date rule re-applies when the date is being changed.
func (h *Handler) updateFoodLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		Date     *string  `json:"date"`
		MealType *string  `json:"meal_type"`
		Name     *string  `json:"name"`
		PhotoURL *string  `json:"photo_url"`
		Calories *float64 `json:"calories"`
		ProteinG *float64 `json:"protein_g"`
		FatG     *float64 `json:"fat_g"`
		CarbsG   *float64 `json:"carbs_g"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date != nil {
		if _, err := time.Parse("2006-01-02", *body.Date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		if isFutureDate(*body.Date, h.today()) {
			apiError(c, http.StatusBadRequest, "date must not be in the future")
			return
		}
	}
	if body.MealType != nil && !validMealTypes[*body.MealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
		return
	}
	if body.Name != nil && *body.Name == "" {
		*body.Name = defaultFoodName
	}

	var calories *int
	if body.Calories != nil {
		v := int(math.Round(clampNonNegative(*body.Calories)))
		calories = &v
	}
	for _, f := range []**float64{&body.ProteinG, &body.FatG, &body.CarbsG} {
		if *f != nil {
			v := clampNonNegative(**f)
			*f = &v
		}
	}

	item, err := queryOne[foodLog](h.db, c,
		`UPDATE food_logs SET
			date      = COALESCE(@date, date),
			meal_type = COALESCE(@mealType, meal_type),
			name      = COALESCE(@name, name),
			photo_url = COALESCE(@photoURL, photo_url),
			calories  = COALESCE(@calories, calories),
			protein_g = COALESCE(@proteinG, protein_g),
			fat_g     = COALESCE(@fatG, fat_g),
			carbs_g   = COALESCE(@carbsG, carbs_g),
			updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"date": body.Date, "mealType": body.MealType, "name": body.Name,
			"photoURL": body.PhotoURL, "calories": calories,
			"proteinG": body.ProteinG, "fatG": body.FatG, "carbsG": body.CarbsG,
		})
	if err != nil {
		apiError(c, http.StatusNotFound, "food log not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteFoodLog removes a food log entry. Returns 204 on success.
// DELETE /api/food-log/:id.
func (h *Handler) deleteFoodLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM food_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete food log")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "food log not found")
		return
	}

	c.Status(http.StatusNoContent)
}
