package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/contentforge-backend/internal/docops"
	"github.com/yungbote/contentforge-backend/internal/markup"
	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
	"github.com/yungbote/contentforge-backend/internal/platform/gcp"
	"github.com/yungbote/contentforge-backend/internal/platform/gdocs"
	"github.com/yungbote/contentforge-backend/internal/platform/openai"
)

type DocumentRequest struct {
	Topic         string   `json:"topic" binding:"required"`
	Context       string   `json:"context"`
	ExportFormats []string `json:"export_formats"`
}

type DocumentSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DocumentContent is the structured output of the generation call.
type DocumentContent struct {
	Title    string            `json:"title"`
	Sections []DocumentSection `json:"sections"`
	Summary  string            `json:"summary"`
	Keywords []string          `json:"keywords"`
}

type DocumentExport struct {
	Format   string `json:"format"`
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

type DocumentResponse struct {
	Content     DocumentContent  `json:"content"`
	DocumentID  string           `json:"document_id"`
	DocumentURL string           `json:"document_url"`
	Exports     []DocumentExport `json:"exports,omitempty"`
}

type DocumentService interface {
	Generate(ctx context.Context, userID string, req DocumentRequest) (*DocumentResponse, error)
}

type documentService struct {
	log    *logger.Logger
	ai     openai.Client
	tokens TokenProvider
	bucket gcp.BucketService
}

func NewDocumentService(log *logger.Logger, ai openai.Client, tokens TokenProvider, bucket gcp.BucketService) DocumentService {
	return &documentService{
		log:    log.With("service", "DocumentService"),
		ai:     ai,
		tokens: tokens,
		bucket: bucket,
	}
}

func (ds *documentService) Generate(ctx context.Context, userID string, req DocumentRequest) (*DocumentResponse, error) {
	token, err := ds.tokens.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := ds.generateContent(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate document content: %w", err)
	}

	ops := compileDocument(content)

	docsClient, err := gdocs.New(ctx, ds.log, token)
	if err != nil {
		return nil, err
	}
	documentID, err := docsClient.CreateDocument(ctx, content.Title)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	if err := docsClient.ApplyOperations(ctx, documentID, ops); err != nil {
		return nil, fmt.Errorf("populate document %s: %w", documentID, err)
	}
	ds.log.Info("Created document", "documentID", documentID, "title", content.Title, "sections", len(content.Sections))

	formats := req.ExportFormats
	if formats == nil {
		formats = []string{"pdf", "docx"}
	}
	exports, err := ds.export(ctx, docsClient, documentID, content.Title, userID, formats)
	if err != nil {
		return nil, err
	}

	return &DocumentResponse{
		Content:     *content,
		DocumentID:  documentID,
		DocumentURL: gdocs.DocumentURL(documentID),
		Exports:     exports,
	}, nil
}

func (ds *documentService) generateContent(ctx context.Context, req DocumentRequest) (*DocumentContent, error) {
	user := req.Topic
	if strings.TrimSpace(req.Context) != "" {
		user = fmt.Sprintf("%s\n\nAdditional context:\n%s", req.Topic, req.Context)
	}

	var content DocumentContent
	if err := ds.ai.GenerateJSON(ctx, documentInstructions, user, "document_content", documentContentSchema(), &content); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content.Title) == "" {
		return nil, fmt.Errorf("generated document has no title")
	}
	if len(content.Sections) == 0 {
		return nil, fmt.Errorf("generated document %q has no sections", content.Title)
	}
	return &content, nil
}

// compileDocument turns generated sections into one ordered batch of
// document edits starting at index 1.
func compileDocument(content *DocumentContent) []docops.Op {
	sections := make([]docops.Section, 0, len(content.Sections))
	for _, s := range content.Sections {
		sections = append(sections, docops.Section{
			Heading: s.Title,
			Blocks:  markup.Process(s.Content),
		})
	}
	ops, _ := docops.CompileDocument(sections, 1)
	return ops
}

// export runs the requested exports concurrently. Upload order is not
// meaningful, so each format writes its own slot.
func (ds *documentService) export(ctx context.Context, docsClient *gdocs.Client, documentID, title, ownerID string, formats []string) ([]DocumentExport, error) {
	out := make([]DocumentExport, len(formats))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		i, f := i, f
		g.Go(func() error {
			format, err := parseExportFormat(f)
			if err != nil {
				return err
			}
			data, err := docsClient.Export(gctx, documentID, format)
			if err != nil {
				return fmt.Errorf("export %s as %s: %w", documentID, format, err)
			}
			fileName := fmt.Sprintf("%s.%s", sanitizeFileName(title), format)
			info, err := ds.bucket.UploadDocument(gctx, data, fileName, ownerID)
			if err != nil {
				return fmt.Errorf("upload %s export: %w", format, err)
			}
			mu.Lock()
			out[i] = DocumentExport{Format: string(format), FileName: fileName, URL: info.PublicURL}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseExportFormat(s string) (gdocs.ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return gdocs.ExportPDF, nil
	case "docx":
		return gdocs.ExportDOCX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func sanitizeFileName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "document"
	}
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "document"
	}
	return b.String()
}
