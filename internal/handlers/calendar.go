package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yungbote/contentforge-backend/internal/services"
)

type CalendarHandler struct {
	calendar services.CalendarService
}

func NewCalendarHandler(calendar services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// CreateEvent schedules an event extracted from natural-language
// instructions.
func (ch *CalendarHandler) CreateEvent(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req services.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	resp, err := ch.calendar.ScheduleEvent(c.Request.Context(), uid, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, resp)
}

func (ch *CalendarHandler) ListEvents(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var max int64
	if raw := c.Query("max_results"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		max = n
	}

	events, err := ch.calendar.UpcomingEvents(c.Request.Context(), uid, max)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}
