package slideops

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
)

var supportedImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

// ImageURLChecker verifies that an image URL is reachable and serves a
// format the slide backend accepts. URLs on the trusted storage host
// are taken on faith since we uploaded them ourselves.
type ImageURLChecker struct {
	log         *logger.Logger
	client      *http.Client
	trustedHost string
}

func NewImageURLChecker(log *logger.Logger, trustedHost string) *ImageURLChecker {
	return &ImageURLChecker{
		log:         log,
		client:      &http.Client{Timeout: 5 * time.Second},
		trustedHost: trustedHost,
	}
}

func (c *ImageURLChecker) ValidImageURL(ctx context.Context, raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		c.log.Error("Invalid image URL format", "url", raw)
		return false
	}

	if c.trustedHost != "" && strings.Contains(raw, c.trustedHost) {
		return true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, raw, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("Image URL check failed", "url", raw, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("Image URL not accessible", "url", raw, "status", resp.StatusCode)
		return false
	}
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	for _, t := range supportedImageTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	c.log.Error("Unsupported image content type", "url", raw, "contentType", contentType)
	return false
}
