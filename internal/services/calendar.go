package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
	"github.com/yungbote/contentforge-backend/internal/platform/gcalendar"
	"github.com/yungbote/contentforge-backend/internal/platform/openai"
)

type EventRequest struct {
	Instructions string `json:"instructions" binding:"required"`
}

// eventDetails is the structured output of the scheduling call. Times
// are RFC 3339 strings as produced by the model.
type eventDetails struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Attendees   []string `json:"attendees"`
}

type EventResponse struct {
	EventID   string   `json:"event_id"`
	Summary   string   `json:"summary"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Attendees []string `json:"attendees,omitempty"`
	HTMLLink  string   `json:"html_link,omitempty"`
}

type CalendarService interface {
	ScheduleEvent(ctx context.Context, userID string, req EventRequest) (*EventResponse, error)
	UpcomingEvents(ctx context.Context, userID string, max int64) ([]gcalendar.Event, error)
}

type calendarService struct {
	log    *logger.Logger
	ai     openai.Client
	tokens TokenProvider

	// now is swappable so tests can pin the reference date.
	now func() time.Time
}

func NewCalendarService(log *logger.Logger, ai openai.Client, tokens TokenProvider) CalendarService {
	return &calendarService{
		log:    log.With("service", "CalendarService"),
		ai:     ai,
		tokens: tokens,
		now:    time.Now,
	}
}

func (cs *calendarService) ScheduleEvent(ctx context.Context, userID string, req EventRequest) (*EventResponse, error) {
	token, err := cs.tokens.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	user := fmt.Sprintf("Current date: %s\n\nRequest: %s", cs.now().UTC().Format(time.RFC3339), req.Instructions)

	var details eventDetails
	if err := cs.ai.GenerateJSON(ctx, calendarInstructions, user, "event_details", eventDetailsSchema(), &details); err != nil {
		return nil, fmt.Errorf("extract event details: %w", err)
	}

	start, end, err := parseEventTimes(details.StartTime, details.EndTime)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(details.Summary) == "" {
		return nil, fmt.Errorf("extracted event has no summary")
	}

	cal, err := gcalendar.New(ctx, cs.log, token)
	if err != nil {
		return nil, err
	}
	ev, err := cal.CreateEvent(ctx, gcalendar.EventInput{
		Summary:     details.Summary,
		Description: details.Description,
		Start:       start,
		End:         end,
		Attendees:   details.Attendees,
	})
	if err != nil {
		return nil, fmt.Errorf("create calendar event: %w", err)
	}
	cs.log.Info("Created calendar event", "eventID", ev.ID, "summary", ev.Summary, "start", ev.Start)

	return &EventResponse{
		EventID:   ev.ID,
		Summary:   ev.Summary,
		Start:     ev.Start,
		End:       ev.End,
		Attendees: details.Attendees,
		HTMLLink:  ev.HTMLLink,
	}, nil
}

func (cs *calendarService) UpcomingEvents(ctx context.Context, userID string, max int64) ([]gcalendar.Event, error) {
	token, err := cs.tokens.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	cal, err := gcalendar.New(ctx, cs.log, token)
	if err != nil {
		return nil, err
	}
	return cal.ListUpcoming(ctx, max)
}

// parseEventTimes parses the model's RFC 3339 timestamps. A missing end
// time defaults to one hour after the start.
func parseEventTimes(startStr, endStr string) (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, strings.TrimSpace(startStr))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid event start time %q: %w", startStr, err)
	}

	if strings.TrimSpace(endStr) == "" {
		return start, start.Add(time.Hour), nil
	}
	end, err = time.Parse(time.RFC3339, strings.TrimSpace(endStr))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid event end time %q: %w", endStr, err)
	}
	if !end.After(start) {
		end = start.Add(time.Hour)
	}
	return start, end, nil
}
