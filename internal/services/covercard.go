package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"

	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
	"github.com/yungbote/contentforge-backend/internal/platform/gcp"
	"github.com/yungbote/contentforge-backend/internal/slideops"
)

// CoverCardService renders a theme-colored title card for a generated
// presentation and hosts it on the bucket.
type CoverCardService interface {
	CreateAndUpload(ctx context.Context, title string, theme slideops.Theme) (string, error)
}

type coverCardService struct {
	log    *logger.Logger
	bucket gcp.BucketService

	titleFace font.Face
	nameFace  font.Face
}

// NewCoverCardService loads the card font from COVER_CARD_FONT. When
// the variable is unset the service stays disabled and CreateAndUpload
// returns an empty URL.
func NewCoverCardService(log *logger.Logger, bucket gcp.BucketService) (CoverCardService, error) {
	serviceLog := log.With("service", "CoverCardService")

	fontPath := strings.TrimSpace(os.Getenv("COVER_CARD_FONT"))
	if fontPath == "" {
		serviceLog.Warn("COVER_CARD_FONT not set, cover cards disabled")
		return &coverCardService{log: serviceLog, bucket: bucket}, nil
	}
	serviceLog.Info("Loading cover card font", "font", fontPath)

	titleFace, err := loadCardFont(fontPath, 72)
	if err != nil {
		return nil, fmt.Errorf("could not load cover card font: %w", err)
	}
	nameFace, err := loadCardFont(fontPath, 28)
	if err != nil {
		return nil, fmt.Errorf("could not load cover card font: %w", err)
	}

	return &coverCardService{
		log:       serviceLog,
		bucket:    bucket,
		titleFace: titleFace,
		nameFace:  nameFace,
	}, nil
}

func (cs *coverCardService) CreateAndUpload(ctx context.Context, title string, theme slideops.Theme) (string, error) {
	if cs.titleFace == nil {
		return "", nil
	}

	buf, err := cs.render(title, theme)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("cover_card/%d_%s.png", time.Now().UnixNano(), uuid.NewString()[:8])
	if err := cs.bucket.Upload(ctx, key, "image/png", bytes.NewReader(buf.Bytes())); err != nil {
		return "", fmt.Errorf("failed to upload cover card: %w", err)
	}

	url := cs.bucket.PublicURL(key)
	cs.log.Info("Uploaded cover card", "key", key, "url", url)
	return url, nil
}

func (cs *coverCardService) render(title string, theme slideops.Theme) (bytes.Buffer, error) {
	const width, height = 1280, 720

	dc := gg.NewContext(width, height)

	dc.SetColor(themeColor(theme.Background))
	dc.DrawRectangle(0, 0, width, height)
	dc.Fill()

	// Accent bar along the bottom edge
	dc.SetColor(themeColor(theme.Accent))
	dc.DrawRectangle(0, height-24, width, 24)
	dc.Fill()

	if strings.TrimSpace(title) == "" {
		title = "Untitled Presentation"
	}

	dc.SetFontFace(cs.titleFace)
	dc.SetColor(themeColor(theme.TextLight))
	dc.DrawStringWrapped(title, width/2, height/2-20, 0.5, 0.5, width-160, 1.3, gg.AlignCenter)

	dc.SetFontFace(cs.nameFace)
	dc.SetColor(themeColor(theme.Secondary))
	dc.DrawStringAnchored(strings.ToUpper(theme.Name), width/2, height-80, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

func themeColor(c slideops.RGB) color.NRGBA {
	return color.NRGBA{
		R: uint8(c.Red*255 + 0.5),
		G: uint8(c.Green*255 + 0.5),
		B: uint8(c.Blue*255 + 0.5),
		A: 255,
	}
}

func loadCardFont(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
