// Package gslides adapts compiled slide operations onto the Google
// Slides API. Like the docs adapter, a client lives for one request and
// is authorized with the caller's OAuth access token.
package gslides

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/slides/v1"

	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
	"github.com/yungbote/contentforge-backend/internal/slideops"
)

type Client struct {
	log    *logger.Logger
	slides *slides.Service
}

func New(ctx context.Context, log *logger.Logger, accessToken string) (*Client, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("access token required")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

	svc, err := slides.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create slides service: %w", err)
	}
	return &Client{
		log:    log.With("service", "GoogleSlidesClient"),
		slides: svc,
	}, nil
}

func (c *Client) CreatePresentation(ctx context.Context, title string) (string, error) {
	pres, err := c.slides.Presentations.Create(&slides.Presentation{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create presentation: %w", err)
	}
	c.log.Info("Created presentation", "presentationId", pres.PresentationId, "title", title)
	return pres.PresentationId, nil
}

// CreateSlide appends a blank slide with the given object id at
// insertionIndex.
func (c *Client) CreateSlide(ctx context.Context, presentationID, slideID string, insertionIndex int64) error {
	req := &slides.Request{
		CreateSlide: &slides.CreateSlideRequest{
			ObjectId:       slideID,
			InsertionIndex: insertionIndex,
			SlideLayoutReference: &slides.LayoutReference{
				PredefinedLayout: "BLANK",
			},
		},
	}
	if err := c.batchUpdate(ctx, presentationID, []*slides.Request{req}); err != nil {
		return fmt.Errorf("create slide %s: %w", slideID, err)
	}
	return nil
}

// DeleteObject removes a page element or slide by object id.
func (c *Client) DeleteObject(ctx context.Context, presentationID, objectID string) error {
	req := &slides.Request{
		DeleteObject: &slides.DeleteObjectRequest{ObjectId: objectID},
	}
	if err := c.batchUpdate(ctx, presentationID, []*slides.Request{req}); err != nil {
		return fmt.Errorf("delete object %s: %w", objectID, err)
	}
	return nil
}

// ApplyOperations translates compiled slide operations into one
// batchUpdate, preserving order.
func (c *Client) ApplyOperations(ctx context.Context, presentationID string, ops []slideops.Op) error {
	if len(ops) == 0 {
		return nil
	}
	requests := make([]*slides.Request, 0, len(ops))
	for _, op := range ops {
		requests = append(requests, translate(op)...)
	}
	if err := c.batchUpdate(ctx, presentationID, requests); err != nil {
		return fmt.Errorf("apply slide operations: %w", err)
	}
	c.log.Debug("Applied slide operations", "presentationId", presentationID, "requests", len(requests))
	return nil
}

func (c *Client) batchUpdate(ctx context.Context, presentationID string, reqs []*slides.Request) error {
	_, err := c.slides.Presentations.BatchUpdate(presentationID, &slides.BatchUpdatePresentationRequest{
		Requests: reqs,
	}).Context(ctx).Do()
	return err
}

func translate(op slideops.Op) []*slides.Request {
	switch v := op.(type) {
	case slideops.CreateShape:
		reqs := []*slides.Request{{
			CreateShape: &slides.CreateShapeRequest{
				ObjectId:          v.ID,
				ShapeType:         v.Shape,
				ElementProperties: elementProperties(v.SlideID, v.Pos, v.Size),
			},
		}}
		if v.Fill != nil {
			reqs = append(reqs, &slides.Request{
				UpdateShapeProperties: &slides.UpdateShapePropertiesRequest{
					ObjectId: v.ID,
					ShapeProperties: &slides.ShapeProperties{
						ShapeBackgroundFill: &slides.ShapeBackgroundFill{
							SolidFill: &slides.SolidFill{
								Color: &slides.OpaqueColor{RgbColor: rgb(*v.Fill)},
							},
						},
					},
					Fields: "shapeBackgroundFill",
				},
			})
		}
		return reqs

	case slideops.InsertText:
		return []*slides.Request{{
			InsertText: &slides.InsertTextRequest{
				ObjectId:       v.ShapeID,
				InsertionIndex: 0,
				Text:           v.Text,
			},
		}}

	case slideops.SetTextStyle:
		return []*slides.Request{{
			UpdateTextStyle: &slides.UpdateTextStyleRequest{
				ObjectId: v.ShapeID,
				Style: &slides.TextStyle{
					Bold:            v.Bold,
					FontSize:        &slides.Dimension{Magnitude: v.FontSizePT, Unit: "PT"},
					ForegroundColor: &slides.OptionalColor{OpaqueColor: &slides.OpaqueColor{RgbColor: rgb(v.Color)}},
				},
				TextRange: &slides.Range{Type: "ALL"},
				Fields:    "bold,fontSize,foregroundColor",
			},
		}}

	case slideops.CreateImage:
		return []*slides.Request{{
			CreateImage: &slides.CreateImageRequest{
				ObjectId:          v.ID,
				Url:               v.URL,
				ElementProperties: elementProperties(v.SlideID, v.Pos, v.Size),
			},
		}}

	default:
		return nil
	}
}

func elementProperties(slideID string, pos slideops.Position, size slideops.Size) *slides.PageElementProperties {
	return &slides.PageElementProperties{
		PageObjectId: slideID,
		Size: &slides.Size{
			Width:  &slides.Dimension{Magnitude: size.Width, Unit: "PT"},
			Height: &slides.Dimension{Magnitude: size.Height, Unit: "PT"},
		},
		Transform: &slides.AffineTransform{
			ScaleX:     1,
			ScaleY:     1,
			TranslateX: pos.Left,
			TranslateY: pos.Top,
			Unit:       "PT",
		},
	}
}

func rgb(c slideops.RGB) *slides.RgbColor {
	return &slides.RgbColor{Red: c.Red, Green: c.Green, Blue: c.Blue}
}

func PresentationURL(presentationID string) string {
	return "https://docs.google.com/presentation/d/" + presentationID + "/edit"
}
