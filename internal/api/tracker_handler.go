package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitsage/coach-app/internal/domain"
	"fitsage/coach-app/internal/repository"
	"fitsage/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// TrackerHandler covers the record-submission surface: daily check-ins, food
// diary rollups, water logs, sessions, and weekly check-ins with progress
// photos. Every record is scoped to the authenticated user.
type TrackerHandler struct {
	trackerService service.TrackerService
	profileService service.ProfileService
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(trackerService service.TrackerService, profileService service.ProfileService) *TrackerHandler {
	return &TrackerHandler{
		trackerService: trackerService,
		profileService: profileService,
	}
}

// --- Request/Response Structs ---

type DailyCheckinRequest struct {
	Date           string   `json:"date" binding:"required"`
	WeightKg       *float64 `json:"weightKg,omitempty"`
	Steps          *int     `json:"steps,omitempty"`
	SleepHours     *float64 `json:"sleepHours,omitempty"`
	Trained        bool     `json:"trained"`
	DidCardio      bool     `json:"didCardio"`
	CalorieGoalMet bool     `json:"calorieGoalMet"`
}

type FoodDiaryDayRequest struct {
	Date          string  `json:"date" binding:"required"`
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
}

type WaterLogRequest struct {
	Date    string `json:"date" binding:"required"`
	TotalMl int    `json:"totalMl" binding:"required,min=1"`
}

type SessionLogRequest struct {
	Date            string               `json:"date" binding:"required"`
	Type            domain.SessionType   `json:"type" binding:"required,oneof=workout cardio"`
	Status          domain.SessionStatus `json:"status" binding:"omitempty,oneof=planned completed skipped"`
	Name            string               `json:"name,omitempty"`
	DurationMinutes int                  `json:"durationMinutes,omitempty"`
}

type WeeklyCheckinRequest struct {
	WeekStart        string  `json:"weekStart" binding:"required"`
	EnergyLevel      int     `json:"energyLevel" binding:"required,min=1,max=10"`
	MotivationLevel  int     `json:"motivationLevel" binding:"required,min=1,max=10"`
	StressLevel      int     `json:"stressLevel" binding:"required,min=1,max=10"`
	WentWell         string  `json:"wentWell,omitempty"`
	CouldImprove     string  `json:"couldImprove,omitempty"`
	NextWeekFocus    string  `json:"nextWeekFocus,omitempty"`
	AvgWeightKg      float64 `json:"avgWeightKg,omitempty"`
	AvgSleepHours    float64 `json:"avgSleepHours,omitempty"`
	AvgDailyCalories float64 `json:"avgDailyCalories,omitempty"`
	PhotoObjectKey   string  `json:"photoObjectKey,omitempty"`
}

type PhotoUploadURLRequest struct {
	WeekStart   string `json:"weekStart" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type PhotoUploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// --- Handler Methods ---

// SubmitDailyCheckin upserts the authenticated user's check-in for a date.
func (h *TrackerHandler) SubmitDailyCheckin(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req DailyCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	checkin := &domain.DailyCheckin{
		ID:             domain.DocID(userID, req.Date),
		UserID:         userID,
		Date:           req.Date,
		WeightKg:       req.WeightKg,
		Steps:          req.Steps,
		SleepHours:     req.SleepHours,
		Trained:        req.Trained,
		DidCardio:      req.DidCardio,
		CalorieGoalMet: req.CalorieGoalMet,
	}

	if err := h.trackerService.SubmitDailyCheckin(c.Request.Context(), checkin); err != nil {
		abortWithTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkin)
}

// SubmitFoodDiaryDay upserts the pre-summed food diary totals for a date.
func (h *TrackerHandler) SubmitFoodDiaryDay(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req FoodDiaryDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	day := &domain.FoodDiaryDay{
		ID:            domain.DocID(userID, req.Date),
		UserID:        userID,
		Date:          req.Date,
		TotalCalories: req.TotalCalories,
		TotalProtein:  req.TotalProtein,
		TotalCarbs:    req.TotalCarbs,
		TotalFat:      req.TotalFat,
	}

	if err := h.trackerService.SubmitFoodDiaryDay(c.Request.Context(), day); err != nil {
		abortWithTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// SubmitWaterLog upserts the water intake total for a date.
func (h *TrackerHandler) SubmitWaterLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req WaterLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	log := &domain.WaterLog{
		ID:      domain.DocID(userID, req.Date),
		UserID:  userID,
		Date:    req.Date,
		TotalMl: req.TotalMl,
	}

	if err := h.trackerService.SubmitWaterLog(c.Request.Context(), log); err != nil {
		abortWithTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// LogSession appends a workout or cardio session for a date.
func (h *TrackerHandler) LogSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SessionLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session := &domain.SessionLog{
		UserID:          userID,
		Date:            req.Date,
		Type:            req.Type,
		Status:          req.Status,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
	}

	id, err := h.trackerService.LogSession(c.Request.Context(), session)
	if err != nil {
		abortWithTrackerError(c, err)
		return
	}
	session.ID = id
	c.JSON(http.StatusCreated, session)
}

// SubmitWeeklyCheckin upserts the end-of-week reflection for a Monday week start.
func (h *TrackerHandler) SubmitWeeklyCheckin(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req WeeklyCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	checkin := &domain.WeeklyCheckin{
		ID:               domain.DocID(userID, req.WeekStart),
		UserID:           userID,
		WeekStart:        req.WeekStart,
		EnergyLevel:      req.EnergyLevel,
		MotivationLevel:  req.MotivationLevel,
		StressLevel:      req.StressLevel,
		WentWell:         req.WentWell,
		CouldImprove:     req.CouldImprove,
		NextWeekFocus:    req.NextWeekFocus,
		AvgWeightKg:      req.AvgWeightKg,
		AvgSleepHours:    req.AvgSleepHours,
		AvgDailyCalories: req.AvgDailyCalories,
		PhotoObjectKey:   req.PhotoObjectKey,
	}

	if err := h.trackerService.SubmitWeeklyCheckin(c.Request.Context(), checkin); err != nil {
		abortWithTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkin)
}

// RequestPhotoUploadURL returns a presigned PUT URL for a progress photo.
func (h *TrackerHandler) RequestPhotoUploadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	uploadURL, objectKey, err := h.trackerService.RequestPhotoUploadURL(c.Request.Context(), userID, req.WeekStart, req.ContentType)
	if err != nil {
		abortWithTrackerError(c, err)
		return
	}

	c.JSON(http.StatusOK, PhotoUploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}

// GetPhotoDownloadURL returns a temporary view URL for the photo attached to
// the weekly check-in identified by the weekStart path parameter.
func (h *TrackerHandler) GetPhotoDownloadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	weekStart := c.Param("weekStart")
	downloadURL, err := h.trackerService.GetPhotoDownloadURL(c.Request.Context(), userID, weekStart)
	if err != nil {
		abortWithTrackerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}

// GetProfile returns the authenticated user's coaching profile.
func (h *TrackerHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile replaces the authenticated user's coaching profile.
func (h *TrackerHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.profileService.UpdateProfile(c.Request.Context(), userID, profile); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidGoal),
			errors.Is(err, service.ErrInvalidExperience),
			errors.Is(err, service.ErrInvalidIntensity):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

func abortWithTrackerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrNotMonday),
		errors.Is(err, service.ErrInvalidContentType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoPhotoAttached), errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to save record")
	}
}
