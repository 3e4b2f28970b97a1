package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fitsage/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CoachHandler exposes the coaching message pipeline: on-demand weekly and
// daily message generation plus the stored message history.
type CoachHandler struct {
	coachService service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// --- Request/Response Structs ---

type WeeklyMessageRequest struct {
	WeekStart string `json:"weekStart" binding:"required"` // Monday, YYYY-MM-DD
}

type DailyMessageRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to today when empty
}

type WeeklyMessageResponse struct {
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	CoachName   string `json:"coachName"`
	WeekStart   string `json:"weekStart"`
	GeneratedAt string `json:"generatedAt"`
}

type DailyMessageResponse struct {
	Message string `json:"message"`
}

// --- Handler Methods ---

// GenerateWeeklyMessage runs the full weekly pipeline for the authenticated
// user and returns the generated message.
func (h *CoachHandler) GenerateWeeklyMessage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req WeeklyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	message, err := h.coachService.GenerateWeeklyMessage(c.Request.Context(), userID, req.WeekStart)
	if err != nil {
		abortWithGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, WeeklyMessageResponse{
		Subject:     message.Subject,
		Body:        message.Body,
		CoachName:   message.CoachName,
		WeekStart:   message.WeekStart,
		GeneratedAt: message.GeneratedAt.Format(time.RFC3339),
	})
}

// GenerateDailyMessage runs the lighter daily pipeline and returns the
// plain-text coaching nudge.
func (h *CoachHandler) GenerateDailyMessage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req DailyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	message, err := h.coachService.GenerateDailyMessage(c.Request.Context(), userID, req.Date)
	if err != nil {
		abortWithGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, DailyMessageResponse{Message: message})
}

// GetMessages returns the stored weekly messages for the authenticated user,
// most recent first.
func (h *CoachHandler) GetMessages(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
	}

	messages, err := h.coachService.GetMessages(c.Request.Context(), userID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// abortWithGenerationError maps pipeline errors to HTTP statuses: validation
// problems are 400s, a provider rate limit surfaces as 429, a provider auth
// failure as 502, anything else as 500.
func abortWithGenerationError(c *gin.Context, err error) {
	var rateLimited *service.RateLimitExceededError
	var authFailed *service.AuthenticationError

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotMonday),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrDateBeforeWeek):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &rateLimited):
		abortWithError(c, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &authFailed):
		abortWithError(c, http.StatusBadGateway, "Message provider rejected our credentials")
	default:
		abortWithError(c, http.StatusInternalServerError, "Message generation failed")
	}
}
