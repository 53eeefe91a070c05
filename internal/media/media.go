// Package media stores user-uploaded images in S3-compatible object storage.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// Store persists uploaded media and returns publicly reachable URLs.
type Store interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// DecodeDataURI splits a data URI ("data:image/png;base64,....") into its
// raw bytes and content type. Plain base64 payloads are accepted and
// default to image/jpeg.
func DecodeDataURI(uri string) ([]byte, string, error) {
	contentType := "image/jpeg"
	payload := uri

	if strings.HasPrefix(uri, "data:") {
		rest := strings.TrimPrefix(uri, "data:")
		semi := strings.Index(rest, ";base64,")
		if semi < 0 {
			return nil, "", fmt.Errorf("unsupported data URI encoding")
		}
		if mime := rest[:semi]; mime != "" {
			contentType = mime
		}
		payload = rest[semi+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image payload")
	}
	return data, contentType, nil
}

// extensionFor maps a content type to a file extension for object keys.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
