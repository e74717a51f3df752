package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/wellness-go-api/internal/wellness"
)

// bindCalcRequest parses a calculator body and, for "self" requests, seeds
// gender and birth date from the signed-in user. Returns ok=false after
// writing an error response.
func bindCalcRequest(c *gin.Context) (calcRequest, bool) {
	var body calcRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return body, false
	}
	if body.Self {
		u, ok := currentUser(c)
		if !ok {
			apiError(c, http.StatusUnauthorized, "login required to calculate for yourself")
			return body, false
		}
		if u.Gender != "" {
			body.Gender = u.Gender
		}
		if u.BirthDate != "" {
			body.BirthDate = u.BirthDate
		}
	}
	return body, true
}

// calcBMI returns BMI and its band.
// POST /api/calc/bmi. Body: { "heightCm", "weightKg", "birthDate"?, "self"? }.
func (h *Handler) calcBMI(c *gin.Context) {
	body, ok := bindCalcRequest(c)
	if !ok {
		return
	}
	res, err := wellness.CalculateBMI(body.Profile, h.clock.Now())
	if err != nil {
		failWith(c, err, "failed to calculate BMI")
		return
	}
	calculations.WithLabelValues("bmi").Inc()
	c.JSON(http.StatusOK, res)
}

// calcBMR returns BMR (Mifflin-St Jeor) and TDEE for the activity level.
// POST /api/calc/bmr. Body: { "gender", "birthDate", "heightCm", "weightKg",
// "activityLevel"?, "self"? }. activityLevel defaults to sedentary.
func (h *Handler) calcBMR(c *gin.Context) {
	body, ok := bindCalcRequest(c)
	if !ok {
		return
	}
	res, err := wellness.CalculateEnergy(body.Profile, body.ActivityLevel, h.clock.Now())
	if err != nil {
		failWith(c, err, "failed to calculate BMR")
		return
	}
	calculations.WithLabelValues("bmr").Inc()
	c.JSON(http.StatusOK, res)
}

// calcHeartRate returns max heart rate and training zones.
// POST /api/calc/heart-rate. Body: { "birthDate", "restingHr", "self"? }.
func (h *Handler) calcHeartRate(c *gin.Context) {
	body, ok := bindCalcRequest(c)
	if !ok {
		return
	}
	res, err := wellness.CalculateHeartRate(body.Profile, h.clock.Now())
	if err != nil {
		failWith(c, err, "failed to calculate heart rate zones")
		return
	}
	calculations.WithLabelValues("heart_rate").Inc()
	c.JSON(http.StatusOK, res)
}
