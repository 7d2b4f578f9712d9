package renderer

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// ImageResolver fetches the bytes behind an image reference in a
// template: a data URL, an absolute http(s) URL, or an /uploads/ path
// in the resource bucket.
type ImageResolver interface {
	Resolve(ctx context.Context, src string) ([]byte, error)
}

// AssetResolver is the production resolver backed by MinIO for
// uploaded assets and plain HTTP for external ones.
type AssetResolver struct {
	minIO  *minio.Client
	bucket string
	client *http.Client
}

func NewAssetResolver(minIO *minio.Client, bucket string) *AssetResolver {
	return &AssetResolver{
		minIO:  minIO,
		bucket: bucket,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *AssetResolver) Resolve(ctx context.Context, src string) ([]byte, error) {
	switch {
	case src == "":
		return nil, fmt.Errorf("empty image source")
	case strings.HasPrefix(src, "data:"):
		return decodeDataURL(src)
	case strings.HasPrefix(src, "/uploads/"):
		return a.fetchObject(ctx, strings.TrimPrefix(src, "/uploads/"))
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return a.fetchHTTP(ctx, src)
	default:
		// Bare object names are treated as bucket keys.
		return a.fetchObject(ctx, src)
	}
}

func (a *AssetResolver) fetchObject(ctx context.Context, objectName string) ([]byte, error) {
	if a.minIO == nil {
		return nil, fmt.Errorf("no object storage configured for %s", objectName)
	}

	object, err := a.minIO.GetObject(ctx, a.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset %s: %w", objectName, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", objectName, err)
	}
	return data, nil
}

func (a *AssetResolver) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch %s returned status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func decodeDataURL(src string) ([]byte, error) {
	_, payload, found := strings.Cut(src, ",")
	if !found {
		return nil, fmt.Errorf("malformed data URL")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL: %w", err)
	}
	return data, nil
}

// detectImageType sniffs the format gofpdf needs from magic bytes.
func detectImageType(data []byte) string {
	switch {
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return "PNG"
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "JPG"
	case len(data) >= 6 && (string(data[:6]) == "GIF87a" || string(data[:6]) == "GIF89a"):
		return "GIF"
	default:
		return ""
	}
}
