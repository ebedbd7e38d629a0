package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
	"github.com/yungbote/contentforge-backend/internal/platform/gcp"
	"github.com/yungbote/contentforge-backend/internal/platform/gmailx"
	"github.com/yungbote/contentforge-backend/internal/platform/gslides"
	"github.com/yungbote/contentforge-backend/internal/platform/openai"
	"github.com/yungbote/contentforge-backend/internal/slideops"
)

type PresentationRequest struct {
	Topic          string `json:"topic" binding:"required"`
	NumSlides      int    `json:"num_slides"`
	GenerateImages bool   `json:"generate_images"`
	Recipient      string `json:"recipient"`
}

// SlideDescriptor is one slide as produced by the structured content
// generator.
type SlideDescriptor struct {
	Layout           string   `json:"layout"`
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	Content          []string `json:"content"`
	ImagePlaceholder string   `json:"imagePlaceholder"`

	// ImageURL is filled in after the generated image has been
	// re-hosted on the bucket.
	ImageURL string `json:"-"`
}

type EmailContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type PresentationStructure struct {
	Slides []SlideDescriptor `json:"slides"`
	Theme  string            `json:"theme"`
	Email  EmailContent      `json:"email"`
}

type PresentationResponse struct {
	PresentationID  string `json:"presentation_id"`
	PresentationURL string `json:"presentation_url"`
	Theme           string `json:"theme"`
	SlideCount      int    `json:"slide_count"`
	ImageURL        string `json:"image_url,omitempty"`
	CoverCardURL    string `json:"cover_card_url,omitempty"`
	EmailMessageID  string `json:"email_message_id,omitempty"`
}

type PresentationService interface {
	Generate(ctx context.Context, userID string, req PresentationRequest) (*PresentationResponse, error)
}

type presentationService struct {
	log      *logger.Logger
	ai       openai.Client
	tokens   TokenProvider
	bucket   gcp.BucketService
	compiler *slideops.Compiler
	cover    CoverCardService
}

func NewPresentationService(log *logger.Logger, ai openai.Client, tokens TokenProvider, bucket gcp.BucketService, compiler *slideops.Compiler, cover CoverCardService) PresentationService {
	return &presentationService{
		log:      log.With("service", "PresentationService"),
		ai:       ai,
		tokens:   tokens,
		bucket:   bucket,
		compiler: compiler,
		cover:    cover,
	}
}

// imageSlideIndex is the single slide that carries a generated image.
const imageSlideIndex = 2

func (ps *presentationService) Generate(ctx context.Context, userID string, req PresentationRequest) (*PresentationResponse, error) {
	token, err := ps.tokens.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	numSlides := req.NumSlides
	if numSlides <= 0 {
		numSlides = 5
	}

	structure, err := ps.generateContent(ctx, req.Topic, numSlides)
	if err != nil {
		return nil, fmt.Errorf("generate presentation content: %w", err)
	}

	imageURL := ""
	if req.GenerateImages {
		imageURL, err = ps.attachImage(ctx, structure.Slides)
		if err != nil {
			ps.log.Warn("Image generation failed, continuing without image", "error", err)
		}
	}

	title := req.Topic
	if len(structure.Slides) > 0 && strings.TrimSpace(structure.Slides[0].Title) != "" {
		title = structure.Slides[0].Title
	}

	slidesClient, err := gslides.New(ctx, ps.log, token)
	if err != nil {
		return nil, err
	}
	presentationID, err := slidesClient.CreatePresentation(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}
	ps.log.Info("Created presentation", "presentationID", presentationID, "theme", structure.Theme)

	theme := slideops.LookupTheme(structure.Theme)
	for i, sd := range structure.Slides {
		slideID := fmt.Sprintf("slide_%d_%s", i, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		if err := slidesClient.CreateSlide(ctx, presentationID, slideID, int64(i)); err != nil {
			return nil, fmt.Errorf("create slide %d: %w", i, err)
		}
		ops := ps.compiler.Compile(ctx, slideID, toSlide(sd), theme)
		if err := slidesClient.ApplyOperations(ctx, presentationID, ops); err != nil {
			return nil, fmt.Errorf("populate slide %d: %w", i, err)
		}
	}

	coverURL := ""
	if ps.cover != nil {
		coverURL, err = ps.cover.CreateAndUpload(ctx, title, theme)
		if err != nil {
			ps.log.Warn("Cover card upload failed, continuing without it", "error", err)
			coverURL = ""
		}
	}

	messageID := ""
	if strings.TrimSpace(req.Recipient) != "" {
		messageID, err = ps.sendEmail(ctx, token, req.Recipient, structure.Email, presentationID)
		if err != nil {
			return nil, fmt.Errorf("send presentation email: %w", err)
		}
	}

	return &PresentationResponse{
		PresentationID:  presentationID,
		PresentationURL: gslides.PresentationURL(presentationID),
		Theme:           theme.Name,
		SlideCount:      len(structure.Slides),
		ImageURL:        imageURL,
		CoverCardURL:    coverURL,
		EmailMessageID:  messageID,
	}, nil
}

func (ps *presentationService) generateContent(ctx context.Context, topic string, numSlides int) (*PresentationStructure, error) {
	var structure PresentationStructure
	instructions := presentationInstructions(topic, numSlides)
	if err := ps.ai.GenerateJSON(ctx, instructions, topic, "presentation_structure", presentationStructureSchema(), &structure); err != nil {
		return nil, err
	}
	if len(structure.Slides) == 0 {
		return nil, fmt.Errorf("generated presentation has no slides")
	}

	theme := strings.ToUpper(strings.TrimSpace(structure.Theme))
	if !slideops.KnownTheme(theme) {
		ps.log.Warn("Invalid theme, defaulting", "theme", structure.Theme, "default", slideops.DefaultThemeName)
		theme = slideops.DefaultThemeName
	}
	structure.Theme = theme

	if strings.TrimSpace(structure.Email.Subject) == "" {
		structure.Email = EmailContent{
			Subject: fmt.Sprintf("Your Presentation: %s is Ready!", structure.Slides[0].Title),
			Body:    "Your AI-generated presentation is ready to view.\n\nBest regards,\nContentForge",
		}
	}

	for i := range structure.Slides {
		sd := &structure.Slides[i]
		if isTwoColumnLayout(sd.Layout) && len(sd.Content) < 2 {
			sd.Content = []string{
				fmt.Sprintf("leftContent: Key points about %s", sd.Title),
				fmt.Sprintf("rightContent: Details about %s", sd.Title),
			}
		}
	}

	return &structure, nil
}

// attachImage generates one image for the designated slide, re-hosts it
// on the bucket, and strips image placeholders from every other slide.
func (ps *presentationService) attachImage(ctx context.Context, slides []SlideDescriptor) (string, error) {
	if len(slides) <= imageSlideIndex {
		return "", nil
	}

	for i := range slides {
		if i != imageSlideIndex {
			slides[i].ImagePlaceholder = ""
			slides[i].ImageURL = ""
		}
	}

	sd := &slides[imageSlideIndex]
	prompt := sd.ImagePlaceholder
	if strings.TrimSpace(prompt) == "" {
		subject := sd.Title
		if len(sd.Content) > 0 {
			n := len(sd.Content)
			if n > 2 {
				n = 2
			}
			subject += " showing " + strings.Join(sd.Content[:n], ", ")
		}
		prompt = fmt.Sprintf("Professional visualization of %s, modern style, high quality, photorealistic", subject)
	}

	ps.log.Info("Generating slide image", "prompt", prompt)
	result, err := ps.ai.GenerateImage(ctx, openai.ImageRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	var url string
	switch {
	case len(result.Bytes) > 0:
		url, err = ps.bucket.StoreImageBytes(ctx, result.Bytes, result.MimeType)
	case result.URL != "":
		url, err = ps.bucket.StoreImageFromURL(ctx, result.URL)
	default:
		return "", fmt.Errorf("image generation returned no data")
	}
	if err != nil {
		return "", fmt.Errorf("store generated image: %w", err)
	}

	sd.Layout = string(slideops.ImageCentered)
	sd.ImageURL = url
	sd.ImagePlaceholder = ""
	ps.log.Info("Stored slide image", "url", url)
	return url, nil
}

func (ps *presentationService) sendEmail(ctx context.Context, token, recipient string, email EmailContent, presentationID string) (string, error) {
	mail, err := gmailx.New(ctx, ps.log, token)
	if err != nil {
		return "", err
	}
	body := fmt.Sprintf("%s\n\nView it here: %s", email.Body, gslides.PresentationURL(presentationID))
	return mail.Send(ctx, gmailx.Message{
		To:      recipient,
		Subject: email.Subject,
		Body:    body,
	})
}

func isTwoColumnLayout(layout string) bool {
	switch slideops.LayoutKind(strings.ToUpper(strings.TrimSpace(layout))) {
	case slideops.TwoColumnsEqual, slideops.TwoColumnsLeftWide, slideops.TwoColumnsRightWide:
		return true
	default:
		return false
	}
}

// toSlide maps a generated descriptor onto the compiler's slide shape.
func toSlide(sd SlideDescriptor) slideops.Slide {
	layout := slideops.ParseLayout(sd.Layout)
	s := slideops.Slide{
		Layout:   layout,
		Title:    sd.Title,
		Subtitle: sd.Subtitle,
	}

	switch layout {
	case slideops.BulletPoints, slideops.NumberPoints:
		s.Points = sd.Content
	case slideops.TwoColumnsEqual, slideops.TwoColumnsLeftWide, slideops.TwoColumnsRightWide:
		s.LeftContent, s.RightContent = splitColumns(sd.Content)
	case slideops.ImageCentered:
		s.ImageURL = sd.ImageURL
		s.Caption = strings.Join(sd.Content, "\n")
	case slideops.QuoteCentered, slideops.QuoteSide:
		if len(sd.Content) > 0 {
			s.Quote = sd.Content[0]
		}
		if len(sd.Content) > 1 {
			s.Author = sd.Content[1]
		}
		if len(sd.Content) > 2 {
			s.Context = sd.Content[2]
		}
	default:
		if s.Subtitle == "" {
			s.Subtitle = strings.Join(sd.Content, "\n")
		}
	}
	return s
}

// splitColumns extracts left and right column text from the generator's
// "leftContent:"/"rightContent:" convention. When neither marker is
// present the first two items are taken positionally.
func splitColumns(content []string) (left, right string) {
	for _, item := range content {
		switch {
		case strings.Contains(item, "leftContent:"):
			left = strings.TrimSpace(strings.Replace(item, "leftContent:", "", 1))
		case strings.Contains(item, "rightContent:"):
			right = strings.TrimSpace(strings.Replace(item, "rightContent:", "", 1))
		}
	}
	if left == "" && right == "" && len(content) >= 2 {
		left = content[0]
		right = content[1]
	}
	return left, right
}
