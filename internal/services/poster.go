package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
	"github.com/yungbote/contentforge-backend/internal/platform/gcp"
	"github.com/yungbote/contentforge-backend/internal/platform/gmailx"
	"github.com/yungbote/contentforge-backend/internal/platform/openai"
)

// IllustrationStyle selects a rendering style for generated designs.
type IllustrationStyle string

const (
	StylePosterDigital  IllustrationStyle = "POSTER_DIGITAL"
	StyleModernMinimal  IllustrationStyle = "MODERN_MINIMAL"
	StyleNeonFuturistic IllustrationStyle = "NEON_FUTURISTIC"
	StyleBoldVector     IllustrationStyle = "BOLD_VECTOR"
	StyleRealistic      IllustrationStyle = "REALISTIC"
	StyleUrban          IllustrationStyle = "URBAN"
	StylePopArt         IllustrationStyle = "POP_ART"
	StyleHandDrawn      IllustrationStyle = "HAND_DRAWN"
	StylePixelArt       IllustrationStyle = "PIXEL_ART"
	StyleInfographic    IllustrationStyle = "INFOGRAPHIC"
)

var illustrationStyles = map[IllustrationStyle]string{
	StylePosterDigital:  "digital_illustration/2d_art_poster",
	StyleModernMinimal:  "digital_illustration/modern_folk",
	StyleNeonFuturistic: "digital_illustration/neon_calm",
	StyleBoldVector:     "vector_illustration/bold_stroke",
	StyleRealistic:      "realistic_image/natural_light",
	StyleUrban:          "digital_illustration/urban_glow",
	StylePopArt:         "digital_illustration/pop_art",
	StyleHandDrawn:      "digital_illustration/hand_drawn",
	StylePixelArt:       "digital_illustration/pixel_art",
	StyleInfographic:    "vector_illustration/infographical",
}

// StyleValue is the renderer-facing style identifier. Unknown styles
// fall back to the poster style.
func (s IllustrationStyle) StyleValue() string {
	if v, ok := illustrationStyles[s]; ok {
		return v
	}
	return illustrationStyles[StylePosterDigital]
}

func illustrationStyleNames() []string {
	return []string{
		string(StylePosterDigital), string(StyleModernMinimal), string(StyleNeonFuturistic),
		string(StyleBoldVector), string(StyleRealistic), string(StyleUrban),
		string(StylePopArt), string(StyleHandDrawn), string(StylePixelArt),
		string(StyleInfographic),
	}
}

// ImageSize names a fixed output geometry.
type ImageSize string

const (
	SizeSquareHD     ImageSize = "SQUARE_HD"
	SizeSquare       ImageSize = "SQUARE"
	SizePortrait43   ImageSize = "PORTRAIT_4_3"
	SizePortrait169  ImageSize = "PORTRAIT_16_9"
	SizeLandscape43  ImageSize = "LANDSCAPE_4_3"
	SizeLandscape169 ImageSize = "LANDSCAPE_16_9"
)

const defaultImageSide = 1080

var imageSizes = map[ImageSize][2]int{
	SizeSquareHD:     {1080, 1080},
	SizeSquare:       {800, 800},
	SizePortrait43:   {1080, 1440},
	SizePortrait169:  {1080, 1920},
	SizeLandscape43:  {1440, 1080},
	SizeLandscape169: {1920, 1080},
}

// Dimensions returns the pixel geometry for this size. Unknown sizes
// fall back to the HD square.
func (s ImageSize) Dimensions() (width, height int) {
	if d, ok := imageSizes[s]; ok {
		return d[0], d[1]
	}
	return defaultImageSide, defaultImageSide
}

func (s ImageSize) String() string {
	w, h := s.Dimensions()
	return fmt.Sprintf("%dx%d", w, h)
}

func imageSizeNames() []string {
	return []string{
		string(SizeSquareHD), string(SizeSquare),
		string(SizePortrait43), string(SizePortrait169),
		string(SizeLandscape43), string(SizeLandscape169),
	}
}

// PosterContent is the structured design specification.
type PosterContent struct {
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	TextOverlay      string            `json:"text_overlay"`
	VisualStyle      IllustrationStyle `json:"visual_style"`
	SizeFormat       ImageSize         `json:"size_format"`
	ColorTheme       string            `json:"color_theme"`
	Mood             string            `json:"mood"`
	KeyElements      []string          `json:"key_elements"`
	CompositionNotes string            `json:"composition_notes"`
}

type DesignResponse struct {
	Content PosterContent `json:"content"`
	Email   EmailContent  `json:"email"`
}

type PosterStyle struct {
	Illustration IllustrationStyle `json:"illustration_style"`
	Size         ImageSize         `json:"size_format"`
	Colors       []string          `json:"colors"`
}

type PosterRequest struct {
	Topic        string       `json:"topic" binding:"required"`
	CustomPrompt string       `json:"custom_prompt"`
	Style        *PosterStyle `json:"style"`
	Recipient    string       `json:"recipient"`
}

type PosterResponse struct {
	ImageURL       string       `json:"image_url"`
	Email          EmailContent `json:"email"`
	EmailMessageID string       `json:"email_message_id,omitempty"`
}

type PosterService interface {
	CreateDesign(ctx context.Context, userID string, req PosterRequest) (*PosterResponse, error)
}

type posterService struct {
	log    *logger.Logger
	ai     openai.Client
	tokens TokenProvider
	bucket gcp.BucketService
}

func NewPosterService(log *logger.Logger, ai openai.Client, tokens TokenProvider, bucket gcp.BucketService) PosterService {
	return &posterService{
		log:    log.With("service", "PosterService"),
		ai:     ai,
		tokens: tokens,
		bucket: bucket,
	}
}

func (ps *posterService) CreateDesign(ctx context.Context, userID string, req PosterRequest) (*PosterResponse, error) {
	var (
		prompt string
		email  EmailContent
		style  PosterStyle
	)

	if strings.TrimSpace(req.CustomPrompt) == "" {
		design, err := ps.generateDesign(ctx, req.Topic)
		if err != nil {
			return nil, fmt.Errorf("generate design content: %w", err)
		}
		prompt = designPrompt(design.Content)
		email = design.Email
		style = PosterStyle{
			Illustration: design.Content.VisualStyle,
			Size:         design.Content.SizeFormat,
		}
	} else {
		prompt = req.CustomPrompt
		email = EmailContent{
			Subject: fmt.Sprintf("Your Design for %s", req.Topic),
			Body:    fmt.Sprintf("Here's your custom design for %s.\n\nBest regards,\nContentForge", req.Topic),
		}
	}
	if req.Style != nil {
		style = *req.Style
	}

	colors, err := validateHexColors(style.Colors)
	if err != nil {
		return nil, err
	}

	ps.log.Info("Generating design",
		"prompt", prompt,
		"style", style.Illustration.StyleValue(),
		"size", style.Size.String())

	result, err := ps.ai.GenerateImage(ctx, openai.ImageRequest{
		Prompt: prompt,
		Size:   style.Size.String(),
		Style:  style.Illustration.StyleValue(),
		Colors: colors,
	})
	if err != nil {
		return nil, fmt.Errorf("generate design image: %w", err)
	}

	var url string
	switch {
	case len(result.Bytes) > 0:
		url, err = ps.bucket.StoreImageBytes(ctx, result.Bytes, result.MimeType)
	case result.URL != "":
		url, err = ps.bucket.StoreImageFromURL(ctx, result.URL)
	default:
		return nil, fmt.Errorf("design generation returned no image")
	}
	if err != nil {
		return nil, fmt.Errorf("store design image: %w", err)
	}
	ps.log.Info("Design stored", "url", url)

	messageID := ""
	if strings.TrimSpace(req.Recipient) != "" {
		messageID, err = ps.sendEmail(ctx, userID, req.Recipient, email, url)
		if err != nil {
			return nil, fmt.Errorf("send design email: %w", err)
		}
	}

	return &PosterResponse{
		ImageURL:       url,
		Email:          email,
		EmailMessageID: messageID,
	}, nil
}

func (ps *posterService) generateDesign(ctx context.Context, topic string) (*DesignResponse, error) {
	var design DesignResponse
	if err := ps.ai.GenerateJSON(ctx, posterInstructions(topic), topic, "design_response", designResponseSchema(), &design); err != nil {
		return nil, err
	}
	if strings.TrimSpace(design.Content.Title) == "" {
		return nil, fmt.Errorf("generated design has no title")
	}
	return &design, nil
}

func (ps *posterService) sendEmail(ctx context.Context, userID, recipient string, email EmailContent, imageURL string) (string, error) {
	token, err := ps.tokens.AccessToken(ctx, userID)
	if err != nil {
		return "", err
	}
	mail, err := gmailx.New(ctx, ps.log, token)
	if err != nil {
		return "", err
	}
	body := fmt.Sprintf("%s\n\nDownload it here: %s", email.Body, imageURL)
	return mail.Send(ctx, gmailx.Message{To: recipient, Subject: email.Subject, Body: body})
}

// designPrompt builds a short, focused rendering prompt from the full
// design specification.
func designPrompt(content PosterContent) string {
	desc := content.Description
	if r := []rune(desc); len(r) > 200 {
		desc = string(r[:200])
	}
	return fmt.Sprintf("%s. %s %s...", content.Title, content.TextOverlay, desc)
}

// validateHexColors checks that every entry is a #RRGGBB color and
// returns them normalized with the leading #.
func validateHexColors(colors []string) ([]string, error) {
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		s := strings.TrimPrefix(strings.TrimSpace(c), "#")
		raw, err := hex.DecodeString(s)
		if err != nil || len(raw) != 3 {
			return nil, fmt.Errorf("invalid hex color %q", c)
		}
		out = append(out, "#"+strings.ToUpper(s))
	}
	return out, nil
}
