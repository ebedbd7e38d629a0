// Package gcp wraps Google Cloud Storage for generated assets: model
// images re-hosted onto our bucket, document exports, and rendered
// cover cards.
package gcp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/yungbote/contentforge-backend/internal/pkg/httpx"
	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
	"github.com/yungbote/contentforge-backend/internal/platform/envutil"
)

// UploadInfo describes one stored object.
type UploadInfo struct {
	Key       string
	FileName  string
	PublicURL string
	Size      int64
	Uploaded  time.Time
}

type BucketService interface {
	// Upload writes an object under key with the given content type.
	Upload(ctx context.Context, key, contentType string, r io.Reader) error

	// UploadDocument stores a document export under a per-owner unique
	// key and returns where it landed.
	UploadDocument(ctx context.Context, data []byte, fileName, ownerID string) (UploadInfo, error)

	// StoreImageFromURL downloads an image from a short-lived URL and
	// re-hosts it on the bucket, returning the durable public URL.
	StoreImageFromURL(ctx context.Context, imageURL string) (string, error)

	// StoreImageBytes uploads raw image bytes and returns the public
	// URL.
	StoreImageBytes(ctx context.Context, data []byte, contentType string) (string, error)

	Delete(ctx context.Context, key string) error
	PublicURL(key string) string

	// Host is the public hostname serving this bucket's objects. Image
	// URL validation trusts it without a network round trip.
	Host() string
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	httpClient    *http.Client
	bucketName    string
	cdnDomain     string
	publicBaseURL string
	verifyUploads bool
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")

	bucketName := envutil.Str("CONTENT_GCS_BUCKET_NAME", "")
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var CONTENT_GCS_BUCKET_NAME")
	}

	opts := ClientOptionsFromEnv()
	stClient, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	bs := &bucketService{
		log:           serviceLog,
		storageClient: stClient,
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		bucketName:    bucketName,
		cdnDomain:     envutil.Str("CONTENT_CDN_DOMAIN", ""),
		publicBaseURL: strings.TrimRight(envutil.Str("OBJECT_STORAGE_PUBLIC_BASE_URL", ""), "/"),
		verifyUploads: envutil.Bool("CONTENT_VERIFY_UPLOADS", true),
	}

	serviceLog.Info("Object storage initialized",
		"bucket", bucketName,
		"cdn_domain", bs.cdnDomain,
		"public_base_url", bs.publicBaseURL,
	)
	return bs, nil
}

func (bs *bucketService) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := bs.storageClient.Bucket(bs.bucketName).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (bs *bucketService) UploadDocument(ctx context.Context, data []byte, fileName, ownerID string) (UploadInfo, error) {
	ext := "bin"
	if i := strings.LastIndex(fileName, "."); i >= 0 && i < len(fileName)-1 {
		ext = fileName[i+1:]
	}
	key := fmt.Sprintf("%s/%s.%s", ownerID, uuid.NewString(), ext)

	bs.log.Info("Uploading document", "owner", ownerID, "file", fileName, "key", key)
	if err := bs.Upload(ctx, key, "application/octet-stream", bytes.NewReader(data)); err != nil {
		return UploadInfo{}, err
	}

	return UploadInfo{
		Key:       key,
		FileName:  fileName,
		PublicURL: bs.PublicURL(key),
		Size:      int64(len(data)),
		Uploaded:  time.Now().UTC(),
	}, nil
}

func (bs *bucketService) StoreImageFromURL(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := bs.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &httpx.Error{
			Service:    "image fetch",
			StatusCode: resp.StatusCode,
			Body:       httpx.ReadBodyLimited(resp.Body, 512),
		}
	}

	key := generatedImageKey()
	if err := bs.Upload(ctx, key, "image/jpeg", resp.Body); err != nil {
		return "", err
	}

	publicURL := bs.PublicURL(key)
	if bs.verifyUploads {
		if err := bs.verifyAccessible(ctx, publicURL); err != nil {
			return "", err
		}
	}
	bs.log.Info("Stored generated image", "url", publicURL)
	return publicURL, nil
}

func (bs *bucketService) StoreImageBytes(ctx context.Context, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/png"
	}
	key := generatedImageKey()
	if err := bs.Upload(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		return "", err
	}
	publicURL := bs.PublicURL(key)
	if bs.verifyUploads {
		if err := bs.verifyAccessible(ctx, publicURL); err != nil {
			return "", err
		}
	}
	return publicURL, nil
}

func (bs *bucketService) verifyAccessible(ctx context.Context, publicURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, publicURL, nil)
	if err != nil {
		return err
	}
	resp, err := bs.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("verify stored object: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("stored object not accessible (status %d): %s", resp.StatusCode, publicURL)
	}
	return nil
}

func generatedImageKey() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("generated_image_%d_%s.jpg", time.Now().Unix(), hex[:6])
}

func (bs *bucketService) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	o := bs.storageClient.Bucket(bs.bucketName).Object(key)
	if err := o.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, bs.bucketName, err)
	}
	return nil
}

func (bs *bucketService) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if bs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", bs.cdnDomain, key)
	}
	if bs.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", bs.publicBaseURL, bs.bucketName, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}

func (bs *bucketService) Host() string {
	if bs.cdnDomain != "" {
		return bs.cdnDomain
	}
	if bs.publicBaseURL != "" {
		if i := strings.Index(bs.publicBaseURL, "://"); i >= 0 {
			host := bs.publicBaseURL[i+3:]
			if j := strings.IndexByte(host, '/'); j >= 0 {
				host = host[:j]
			}
			return host
		}
	}
	return "storage.googleapis.com"
}
