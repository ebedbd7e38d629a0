// Package gcalendar creates and lists calendar events for the
// authenticated user.
package gcalendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
)

type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

type Event struct {
	ID          string
	Summary     string
	Description string
	Start       string
	End         string
	HTMLLink    string
}

type Client struct {
	log *logger.Logger
	cal *calendar.Service
}

func New(ctx context.Context, log *logger.Logger, accessToken string) (*Client, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("access token required")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Client{
		log: log.With("service", "GoogleCalendarClient"),
		cal: svc,
	}, nil
}

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (Event, error) {
	if strings.TrimSpace(in.Summary) == "" {
		return Event{}, fmt.Errorf("event summary required")
	}

	ev := &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start: &calendar.EventDateTime{
			DateTime: in.Start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: in.End.Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}
	for _, a := range in.Attendees {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		ev.Attendees = append(ev.Attendees, &calendar.EventAttendee{Email: a})
	}

	created, err := c.cal.Events.Insert("primary", ev).Context(ctx).Do()
	if err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}
	c.log.Info("Created calendar event", "eventId", created.Id, "summary", in.Summary)
	return fromAPI(created), nil
}

// ListUpcoming returns up to max events from now on, expanded to single
// occurrences and sorted by start time.
func (c *Client) ListUpcoming(ctx context.Context, max int64) ([]Event, error) {
	if max <= 0 {
		max = 10
	}
	resp, err := c.cal.Events.List("primary").
		TimeMin(time.Now().UTC().Format(time.RFC3339)).
		MaxResults(max).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		out = append(out, fromAPI(item))
	}
	return out, nil
}

func fromAPI(ev *calendar.Event) Event {
	out := Event{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Description: ev.Description,
		HTMLLink:    ev.HtmlLink,
	}
	if ev.Start != nil {
		out.Start = ev.Start.DateTime
		if out.Start == "" {
			out.Start = ev.Start.Date
		}
	}
	if ev.End != nil {
		out.End = ev.End.DateTime
		if out.End == "" {
			out.End = ev.End.Date
		}
	}
	return out
}
