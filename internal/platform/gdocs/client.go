// Package gdocs adapts compiled document operations onto the Google
// Docs API. Clients are built per request from the caller's OAuth
// access token; nothing is cached between requests.
package gdocs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/yungbote/contentforge-backend/internal/docops"
	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
)

// ExportFormat names a Drive export target.
type ExportFormat string

const (
	ExportPDF  ExportFormat = "pdf"
	ExportDOCX ExportFormat = "docx"
)

func (f ExportFormat) MimeType() string {
	switch f {
	case ExportDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/pdf"
	}
}

type Client struct {
	log   *logger.Logger
	docs  *docs.Service
	drive *drive.Service
}

// New builds Docs and Drive services authorized as the token's owner.
func New(ctx context.Context, log *logger.Logger, accessToken string) (*Client, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("access token required")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

	docsSvc, err := docs.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Client{
		log:   log.With("service", "GoogleDocsClient"),
		docs:  docsSvc,
		drive: driveSvc,
	}, nil
}

func (c *Client) CreateDocument(ctx context.Context, title string) (string, error) {
	doc, err := c.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	c.log.Info("Created document", "documentId", doc.DocumentId, "title", title)
	return doc.DocumentId, nil
}

// ApplyOperations translates compiled operations into one batchUpdate,
// preserving order. Bullet styling becomes a paragraph style update
// plus a createParagraphBullets request since the API models bullets
// separately from named styles.
func (c *Client) ApplyOperations(ctx context.Context, documentID string, ops []docops.Op) error {
	if len(ops) == 0 {
		return nil
	}
	requests := make([]*docs.Request, 0, len(ops))
	for _, op := range ops {
		requests = append(requests, translate(op)...)
	}

	_, err := c.docs.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update document %s: %w", documentID, err)
	}
	c.log.Debug("Applied document operations", "documentId", documentID, "requests", len(requests))
	return nil
}

func translate(op docops.Op) []*docs.Request {
	switch v := op.(type) {
	case docops.InsertText:
		return []*docs.Request{{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: int64(v.At)},
				Text:     v.Text,
			},
		}}
	case docops.SetParagraphStyle:
		return translateParagraphStyle(v)
	case docops.SetTextStyle:
		return translateTextStyle(v)
	default:
		return nil
	}
}

func translateParagraphStyle(v docops.SetParagraphStyle) []*docs.Request {
	rng := &docs.Range{StartIndex: int64(v.Start), EndIndex: int64(v.End)}

	if v.Style.Named == docops.StyleBullet {
		reqs := []*docs.Request{{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range: rng,
				ParagraphStyle: &docs.ParagraphStyle{
					NamedStyleType:  "NORMAL_TEXT",
					IndentStart:     pt(v.Style.IndentStartPT),
					IndentFirstLine: pt(v.Style.IndentFirstPT),
				},
				Fields: "namedStyleType,indentStart,indentFirstLine",
			},
		}}
		if v.Style.BulletPreset != "" {
			reqs = append(reqs, &docs.Request{
				CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
					Range:        rng,
					BulletPreset: v.Style.BulletPreset,
				},
			})
		}
		return reqs
	}

	style := &docs.ParagraphStyle{NamedStyleType: namedStyleType(v.Style.Named)}
	fields := "namedStyleType"
	if v.Style.SpaceAbovePT > 0 || v.Style.SpaceBelowPT > 0 {
		style.SpaceAbove = pt(v.Style.SpaceAbovePT)
		style.SpaceBelow = pt(v.Style.SpaceBelowPT)
		fields = "namedStyleType,spaceAbove,spaceBelow"
	}
	return []*docs.Request{{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          rng,
			ParagraphStyle: style,
			Fields:         fields,
		},
	}}
}

func translateTextStyle(v docops.SetTextStyle) []*docs.Request {
	style := &docs.TextStyle{Bold: v.Bold, Italic: v.Italic}
	var fields []string
	if v.Bold {
		fields = append(fields, "bold")
	}
	if v.Italic {
		fields = append(fields, "italic")
	}
	if v.Background != nil {
		style.BackgroundColor = &docs.OptionalColor{Color: &docs.Color{
			RgbColor: &docs.RgbColor{
				Red:   v.Background.Red,
				Green: v.Background.Green,
				Blue:  v.Background.Blue,
			},
		}}
		fields = append(fields, "backgroundColor")
	}
	if len(fields) == 0 {
		return nil
	}
	return []*docs.Request{{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     &docs.Range{StartIndex: int64(v.Start), EndIndex: int64(v.End)},
			TextStyle: style,
			Fields:    strings.Join(fields, ","),
		},
	}}
}

func namedStyleType(named string) string {
	if named == docops.StyleNormal {
		return "NORMAL_TEXT"
	}
	return named
}

func pt(magnitude float64) *docs.Dimension {
	return &docs.Dimension{Magnitude: magnitude, Unit: "PT"}
}

// Export downloads the document converted to the given format via the
// Drive API.
func (c *Client) Export(ctx context.Context, documentID string, format ExportFormat) ([]byte, error) {
	resp, err := c.drive.Files.Export(documentID, format.MimeType()).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("export document %s as %s: %w", documentID, format, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export body: %w", err)
	}
	return data, nil
}

func (c *Client) Delete(ctx context.Context, documentID string) error {
	if err := c.drive.Files.Delete(documentID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}
	return nil
}

func DocumentURL(documentID string) string {
	return "https://docs.google.com/document/d/" + documentID + "/edit"
}
